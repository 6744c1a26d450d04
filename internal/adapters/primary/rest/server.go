// Package rest est l'adapter primaire : un routage d'endpoints très fin
// au-dessus des services du core. Il ne fait que décoder, appeler et
// traduire les erreurs du domaine en codes HTTP.
package rest

import (
	"net/http"

	"github.com/jupiterclapton/filmotek/internal/core/ports"
)

type Server struct {
	films ports.FilmService
	users ports.UserService
	refs  ports.ReferenceService
}

func NewServer(films ports.FilmService, users ports.UserService, refs ports.ReferenceService) *Server {
	return &Server{films: films, users: users, refs: refs}
}

// Handler construit le routeur. Les middlewares transverses (CORS, tracing,
// request-id) sont empilés par le main, pas ici.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Films
	mux.HandleFunc("GET /films", s.listFilms)
	mux.HandleFunc("POST /films", s.addFilm)
	mux.HandleFunc("PUT /films", s.updateFilm)
	mux.HandleFunc("GET /films/popular", s.popularFilms)
	mux.HandleFunc("GET /films/{id}", s.getFilm)
	mux.HandleFunc("GET /films/{id}/likes", s.filmLikes)
	mux.HandleFunc("PUT /films/{id}/like/{userId}", s.addLike)
	mux.HandleFunc("DELETE /films/{id}/like/{userId}", s.removeLike)

	// Utilisateurs et amitiés
	mux.HandleFunc("GET /users", s.listUsers)
	mux.HandleFunc("POST /users", s.addUser)
	mux.HandleFunc("PUT /users", s.updateUser)
	mux.HandleFunc("GET /users/{id}", s.getUser)
	mux.HandleFunc("GET /users/{id}/friends", s.userFriends)
	mux.HandleFunc("GET /users/{id}/friends/common/{otherId}", s.commonFriends)
	mux.HandleFunc("PUT /users/{id}/friends/{friendId}", s.addFriend)
	mux.HandleFunc("DELETE /users/{id}/friends/{friendId}", s.removeFriend)

	// Vocabulaires fixes
	mux.HandleFunc("GET /mpa", s.listMpa)
	mux.HandleFunc("GET /mpa/{id}", s.getMpa)
	mux.HandleFunc("GET /genres", s.listGenres)
	mux.HandleFunc("GET /genres/{id}", s.getGenre)

	// Health check (standard K8s)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return mux
}
