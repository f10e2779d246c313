package web

import (
	"net/http"

	"github.com/vbonduro/mediacatalog/internal/domain"
)

func (s *Server) handleGetHero(w http.ResponseWriter, r *http.Request) {
	doc, err := s.services.Hero.GetComplete(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if doc == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success": false,
			"message": "no hero content configured",
			"data":    nil,
		}, s.logger)
		return
	}
	s.writeData(w, http.StatusOK, doc)
}

func (s *Server) handleSaveHero(w http.ResponseWriter, r *http.Request) {
	var doc domain.HeroDocument
	if err := s.decodeJSON(w, r, &doc); err != nil {
		s.writeError(w, r, err)
		return
	}

	heroID, err := s.services.Hero.SaveComplete(r.Context(), &doc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusOK, map[string]int64{"heroId": heroID})
}

func (s *Server) handleDeleteHero(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.services.Hero.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeMessage(w, http.StatusOK, "hero deleted")
}
