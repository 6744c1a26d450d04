package rest

import (
	"net/http"
	"strconv"

	"github.com/jupiterclapton/filmotek/internal/core/domain"
	"github.com/jupiterclapton/filmotek/internal/core/services"
)

func (s *Server) listFilms(w http.ResponseWriter, r *http.Request) {
	films, err := s.films.Films(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, films)
}

func (s *Server) getFilm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	film, err := s.films.Film(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, film)
}

func (s *Server) addFilm(w http.ResponseWriter, r *http.Request) {
	var film domain.Film
	if err := decodeBody(r, &film); err != nil {
		writeError(w, err)
		return
	}
	stored, err := s.films.AddFilm(r.Context(), &film)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

func (s *Server) updateFilm(w http.ResponseWriter, r *http.Request) {
	var film domain.Film
	if err := decodeBody(r, &film); err != nil {
		writeError(w, err)
		return
	}
	stored, err := s.films.UpdateFilm(r.Context(), &film)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

func (s *Server) addLike(w http.ResponseWriter, r *http.Request) {
	filmID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.films.AddLike(r.Context(), filmID, userID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) removeLike(w http.ResponseWriter, r *http.Request) {
	filmID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.films.RemoveLike(r.Context(), filmID, userID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) filmLikes(w http.ResponseWriter, r *http.Request) {
	filmID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	likes, err := s.films.Likes(r.Context(), filmID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, likes)
}

// popularFilms : ?count= absent -> 10 par défaut ; non numérique ou < 1 -> 400.
func (s *Server) popularFilms(w http.ResponseWriter, r *http.Request) {
	count := services.DefaultPopularCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, domain.Invalidf("query parameter \"count\" must be an integer"))
			return
		}
		count = parsed
	}

	films, err := s.films.Popular(r.Context(), count)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, films)
}
