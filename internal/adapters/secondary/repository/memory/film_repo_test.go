package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jupiterclapton/filmotek/internal/core/domain"
)

func testFilm(name string) *domain.Film {
	return &domain.Film{
		Name:        name,
		ReleaseDate: domain.NewDate(1999, time.March, 31),
		Duration:    136,
	}
}

func TestFilmRepoSaveAssignsMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewFilmRepo()

	a, err := repo.Save(ctx, testFilm("Matrix"))
	require.NoError(t, err)
	b, err := repo.Save(ctx, testFilm("Alien"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
}

func TestFilmRepoSaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewFilmRepo()

	in := testFilm("Matrix")
	in.Description = "La pilule rouge."
	in.Mpa = &domain.Mpa{ID: 4, Name: "R"}
	in.Genres = []domain.Genre{{ID: 6, Name: "Action"}}

	stored, err := repo.Save(ctx, in)
	require.NoError(t, err)

	got, err := repo.Get(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, in.Description, got.Description)
	assert.True(t, got.ReleaseDate.Equal(in.ReleaseDate.Time))
	assert.Equal(t, in.Duration, got.Duration)
	assert.Equal(t, in.Mpa, got.Mpa)
	assert.Equal(t, in.Genres, got.Genres)
}

// Copie à la frontière : muter l'original du caller (ou la valeur retournée)
// après un Save ne doit pas toucher l'enregistrement stocké.
func TestFilmRepoCopyIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewFilmRepo()

	in := testFilm("Matrix")
	stored, err := repo.Save(ctx, in)
	require.NoError(t, err)

	in.Name = "modifié après coup"
	stored.Name = "modifié aussi"

	got, err := repo.Get(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "Matrix", got.Name)
}

func TestFilmRepoUpdateUnknownID(t *testing.T) {
	ctx := context.Background()
	repo := NewFilmRepo()

	f := testFilm("Matrix")
	f.ID = 42
	_, err := repo.Update(ctx, f)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "42")
}

func TestFilmRepoGetUnknownID(t *testing.T) {
	repo := NewFilmRepo()
	_, err := repo.Get(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFilmRepoLikesAreIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewFilmRepo()

	f, err := repo.Save(ctx, testFilm("Matrix"))
	require.NoError(t, err)

	require.NoError(t, repo.AddLike(ctx, f.ID, 10))
	require.NoError(t, repo.AddLike(ctx, f.ID, 10))

	likes, err := repo.Likes(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{10}, likes)

	// retirer un like absent est un no-op
	require.NoError(t, repo.RemoveLike(ctx, f.ID, 99))
	require.NoError(t, repo.RemoveLike(ctx, f.ID, 10))

	likes, err = repo.Likes(ctx, f.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)
}

// Les likes survivent à un Update : le graphe vit hors de l'enregistrement.
func TestFilmRepoLikesSurviveUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewFilmRepo()

	f, err := repo.Save(ctx, testFilm("Matrix"))
	require.NoError(t, err)
	require.NoError(t, repo.AddLike(ctx, f.ID, 10))

	f.Name = "Matrix Reloaded"
	_, err = repo.Update(ctx, f)
	require.NoError(t, err)

	likes, err := repo.Likes(ctx, f.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 1)
}

func TestFilmRepoPopularOrdering(t *testing.T) {
	ctx := context.Background()
	repo := NewFilmRepo()

	// X et Y à 2 likes chacun (X avant Y par nom), Z à 1 like
	x, _ := repo.Save(ctx, testFilm("Alien"))
	y, _ := repo.Save(ctx, testFilm("Brazil"))
	z, _ := repo.Save(ctx, testFilm("Casablanca"))

	for _, userID := range []int64{1, 2} {
		require.NoError(t, repo.AddLike(ctx, x.ID, userID))
		require.NoError(t, repo.AddLike(ctx, y.ID, userID))
	}
	require.NoError(t, repo.AddLike(ctx, z.ID, 1))

	top, err := repo.Popular(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Alien", top[0].Name)
	assert.Equal(t, "Brazil", top[1].Name)

	top, err = repo.Popular(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Alien", top[0].Name)

	// demander plus que le total rend tout, sans erreur
	top, err = repo.Popular(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, top, 3)
}

func TestFilmRepoClearResetsIDCounter(t *testing.T) {
	ctx := context.Background()
	repo := NewFilmRepo()

	for i := 0; i < 3; i++ {
		_, err := repo.Save(ctx, testFilm(fmt.Sprintf("Film %d", i)))
		require.NoError(t, err)
	}

	require.NoError(t, repo.Clear(ctx))

	films, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, films)

	f, err := repo.Save(ctx, testFilm("Premier après reset"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.ID)
}
