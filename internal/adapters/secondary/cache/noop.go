package cache

import (
	"context"

	"github.com/jupiterclapton/filmotek/internal/core/domain"
)

// Noop : toujours miss, utilisé quand Redis n'est pas configuré (dev, tests).
type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) Get(ctx context.Context, count int) ([]domain.Film, bool) { return nil, false }
func (Noop) Set(ctx context.Context, count int, films []domain.Film)  {}
func (Noop) Invalidate(ctx context.Context)                           {}
