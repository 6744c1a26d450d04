package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jupiterclapton/filmotek/internal/core/domain"
)

func testUser(login string) *domain.User {
	return &domain.User{
		Email:    login + "@example.com",
		Login:    login,
		Name:     login,
		Birthday: domain.NewDate(1990, time.June, 15),
	}
}

func TestUserRepoSaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepo()

	stored, err := repo.Save(ctx, testUser("neo"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.ID)

	got, err := repo.Get(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "neo", got.Login)
}

func TestUserRepoCopyIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepo()

	in := testUser("neo")
	stored, err := repo.Save(ctx, in)
	require.NoError(t, err)

	in.Login = "agent_smith"

	got, err := repo.Get(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "neo", got.Login)
}

func TestUserRepoUpdateUnknownID(t *testing.T) {
	repo := NewUserRepo()

	u := testUser("neo")
	u.ID = 17
	_, err := repo.Update(context.Background(), u)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "17")
}

func TestUserRepoClearResetsIDCounter(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepo()

	_, err := repo.Save(ctx, testUser("neo"))
	require.NoError(t, err)
	require.NoError(t, repo.Clear(ctx))

	stored, err := repo.Save(ctx, testUser("trinity"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.ID)
}
