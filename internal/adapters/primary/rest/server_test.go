package rest_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jupiterclapton/filmotek/internal/adapters/primary/rest"
	"github.com/jupiterclapton/filmotek/internal/adapters/secondary/cache"
	"github.com/jupiterclapton/filmotek/internal/adapters/secondary/eventbroker"
	"github.com/jupiterclapton/filmotek/internal/adapters/secondary/repository/memory"
	"github.com/jupiterclapton/filmotek/internal/core/domain"
	"github.com/jupiterclapton/filmotek/internal/core/services"
)

func newTestServer() http.Handler {
	filmRepo := memory.NewFilmRepo()
	userRepo := memory.NewUserRepo()
	refRepo := memory.NewReferenceRepo()
	broker := eventbroker.NewNoop()

	films := services.NewFilmService(filmRepo, userRepo, refRepo, broker, cache.NewNoop())
	users := services.NewUserService(userRepo, memory.NewFriendGraph(), broker, services.FriendshipMutual)
	refs := services.NewReferenceService(refRepo)

	return rest.NewServer(films, users, refs).Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func validFilmBody(name string) map[string]any {
	return map[string]any{
		"name":        name,
		"description": "Un classique.",
		"releaseDate": "1979-05-25",
		"duration":    117,
	}
}

func validUserBody(login string) map[string]any {
	return map[string]any{
		"email":    login + "@example.com",
		"login":    login,
		"birthday": "1990-06-15",
	}
}

func TestAddAndGetFilm(t *testing.T) {
	h := newTestServer()

	rec := doJSON(t, h, http.MethodPost, "/films", validFilmBody("Alien"))
	require.Equal(t, http.StatusOK, rec.Code)

	var created domain.Film
	decodeInto(t, rec, &created)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Alien", created.Name)

	rec = doJSON(t, h, http.MethodGet, "/films/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.Film
	decodeInto(t, rec, &got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "1979-05-25", got.ReleaseDate.String())
}

func TestAddFilmValidationFailure(t *testing.T) {
	h := newTestServer()

	body := validFilmBody("Alien")
	body["duration"] = -5
	rec := doJSON(t, h, http.MethodPost, "/films", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var payload map[string]string
	decodeInto(t, rec, &payload)
	assert.NotEmpty(t, payload["error"])
}

func TestAddFilmMalformedBody(t *testing.T) {
	h := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/films", bytes.NewBufferString("{pas du json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetFilmNotFound(t *testing.T) {
	h := newTestServer()

	rec := doJSON(t, h, http.MethodGet, "/films/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetFilmNonNumericID(t *testing.T) {
	h := newTestServer()

	rec := doJSON(t, h, http.MethodGet, "/films/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateFilmUnknownIDReturns404(t *testing.T) {
	h := newTestServer()

	body := validFilmBody("Alien")
	body["id"] = 42
	rec := doJSON(t, h, http.MethodPut, "/films", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLikeEndpoints(t *testing.T) {
	h := newTestServer()

	require.Equal(t, http.StatusOK, doJSON(t, h, http.MethodPost, "/films", validFilmBody("Alien")).Code)
	require.Equal(t, http.StatusOK, doJSON(t, h, http.MethodPost, "/users", validUserBody("ripley")).Code)

	rec := doJSON(t, h, http.MethodPut, "/films/1/like/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// idempotent
	rec = doJSON(t, h, http.MethodPut, "/films/1/like/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/films/1/likes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var likes []int64
	decodeInto(t, rec, &likes)
	assert.Equal(t, []int64{1}, likes)

	// film inconnu -> 404
	rec = doJSON(t, h, http.MethodPut, "/films/9/like/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/films/1/like/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/films/1/likes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	likes = nil
	decodeInto(t, rec, &likes)
	assert.Empty(t, likes)
}

func TestPopularDefaultCountIsTen(t *testing.T) {
	h := newTestServer()

	for i := 0; i < 12; i++ {
		rec := doJSON(t, h, http.MethodPost, "/films", validFilmBody(fmt.Sprintf("Film %02d", i)))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(t, h, http.MethodGet, "/films/popular", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var films []domain.Film
	decodeInto(t, rec, &films)
	assert.Len(t, films, 10)

	rec = doJSON(t, h, http.MethodGet, "/films/popular?count=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	films = nil
	decodeInto(t, rec, &films)
	assert.Len(t, films, 3)
}

func TestPopularRejectsBadCount(t *testing.T) {
	h := newTestServer()

	assert.Equal(t, http.StatusBadRequest, doJSON(t, h, http.MethodGet, "/films/popular?count=abc", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, h, http.MethodGet, "/films/popular?count=0", nil).Code)
}

func TestAddUserDefaultsName(t *testing.T) {
	h := newTestServer()

	rec := doJSON(t, h, http.MethodPost, "/users", validUserBody("ripley"))
	require.Equal(t, http.StatusOK, rec.Code)

	var created domain.User
	decodeInto(t, rec, &created)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "ripley", created.Name)
}

func TestAddUserValidationFailure(t *testing.T) {
	h := newTestServer()

	body := validUserBody("ripley")
	body["email"] = "pas-un-email"
	assert.Equal(t, http.StatusBadRequest, doJSON(t, h, http.MethodPost, "/users", body).Code)
}

func TestFriendEndpoints(t *testing.T) {
	h := newTestServer()

	require.Equal(t, http.StatusOK, doJSON(t, h, http.MethodPost, "/users", validUserBody("ripley")).Code)
	require.Equal(t, http.StatusOK, doJSON(t, h, http.MethodPost, "/users", validUserBody("dallas")).Code)
	require.Equal(t, http.StatusOK, doJSON(t, h, http.MethodPost, "/users", validUserBody("lambert")).Code)

	require.Equal(t, http.StatusOK, doJSON(t, h, http.MethodPut, "/users/1/friends/3", nil).Code)
	require.Equal(t, http.StatusOK, doJSON(t, h, http.MethodPut, "/users/2/friends/3", nil).Code)

	rec := doJSON(t, h, http.MethodGet, "/users/1/friends", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var friends []domain.User
	decodeInto(t, rec, &friends)
	require.Len(t, friends, 1)
	assert.Equal(t, "lambert", friends[0].Login)

	rec = doJSON(t, h, http.MethodGet, "/users/1/friends/common/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	friends = nil
	decodeInto(t, rec, &friends)
	require.Len(t, friends, 1)
	assert.Equal(t, int64(3), friends[0].ID)

	// ami inconnu -> 404
	assert.Equal(t, http.StatusNotFound, doJSON(t, h, http.MethodPut, "/users/1/friends/99", nil).Code)

	require.Equal(t, http.StatusOK, doJSON(t, h, http.MethodDelete, "/users/1/friends/3", nil).Code)
	rec = doJSON(t, h, http.MethodGet, "/users/1/friends", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	friends = nil
	decodeInto(t, rec, &friends)
	assert.Empty(t, friends)
}

func TestReferenceEndpoints(t *testing.T) {
	h := newTestServer()

	rec := doJSON(t, h, http.MethodGet, "/mpa", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mpas []domain.Mpa
	decodeInto(t, rec, &mpas)
	assert.Len(t, mpas, 5)

	rec = doJSON(t, h, http.MethodGet, "/mpa/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mpa domain.Mpa
	decodeInto(t, rec, &mpa)
	assert.Equal(t, "G", mpa.Name)

	assert.Equal(t, http.StatusNotFound, doJSON(t, h, http.MethodGet, "/mpa/42", nil).Code)

	rec = doJSON(t, h, http.MethodGet, "/genres", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var genres []domain.Genre
	decodeInto(t, rec, &genres)
	assert.Len(t, genres, 6)

	assert.Equal(t, http.StatusBadRequest, doJSON(t, h, http.MethodGet, "/genres/abc", nil).Code)
}

func TestHealthz(t *testing.T) {
	h := newTestServer()
	assert.Equal(t, http.StatusOK, doJSON(t, h, http.MethodGet, "/healthz", nil).Code)
}
