package rest

import (
	"net/http"
	"strconv"

	"github.com/jupiterclapton/filmotek/internal/core/domain"
)

func (s *Server) listMpa(w http.ResponseWriter, r *http.Request) {
	mpas, err := s.refs.Mpas(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mpas)
}

func (s *Server) getMpa(w http.ResponseWriter, r *http.Request) {
	id, err := refID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	mpa, err := s.refs.Mpa(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mpa)
}

func (s *Server) listGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.refs.Genres(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, genres)
}

func (s *Server) getGenre(w http.ResponseWriter, r *http.Request) {
	id, err := refID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	genre, err := s.refs.Genre(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, genre)
}

func refID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, domain.Invalidf("path parameter \"id\" must be an integer")
	}
	return id, nil
}
