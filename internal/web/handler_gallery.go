package web

import "net/http"

func (s *Server) handleScanGallery(w http.ResponseWriter, r *http.Request) {
	result, err := s.services.Scanner.Scan(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusOK, result)
}

func (s *Server) handleScanCategories(w http.ResponseWriter, r *http.Request) {
	result, err := s.services.Scanner.Scan(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusOK, result.Categories)
}

func (s *Server) handleCreateGalleryCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	category, err := s.services.Scanner.CreateCategory(r.Context(), req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusCreated, category)
}
