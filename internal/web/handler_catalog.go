package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/vbonduro/mediacatalog/internal/domain"
	"github.com/vbonduro/mediacatalog/internal/service"
)

type createCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type imageRequest struct {
	CategoryID   int64    `json:"category_id" validate:"required"`
	Src          string   `json:"src" validate:"required"`
	Alt          string   `json:"alt" validate:"required"`
	Title        string   `json:"title" validate:"required"`
	Description  *string  `json:"description"`
	Tags         []string `json:"tags"`
	Type         string   `json:"type" validate:"omitempty,oneof=image video"`
	ThumbnailSrc *string  `json:"thumbnail_src"`
}

func (req imageRequest) input() service.ImageInput {
	return service.ImageInput{
		CategoryID:   req.CategoryID,
		Src:          req.Src,
		Alt:          req.Alt,
		Title:        req.Title,
		Description:  req.Description,
		Tags:         req.Tags,
		Type:         req.Type,
		ThumbnailSrc: req.ThumbnailSrc,
	}
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.services.Catalog.ListCategories(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusOK, categories)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	category, err := s.services.Catalog.CreateCategory(r.Context(), req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusCreated, category)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.services.Catalog.DeleteCategory(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeMessage(w, http.StatusOK, "category deleted")
}

// handleDeleteAllCategories requires ?all=true so a bare DELETE on the
// collection cannot wipe it by accident.
func (s *Server) handleDeleteAllCategories(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("all") != "true" {
		s.writeError(w, r, fmt.Errorf("%w: category id or all=true is required", domain.ErrValidation))
		return
	}

	if err := s.services.Catalog.DeleteAllCategories(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeMessage(w, http.StatusOK, "all categories deleted")
}

func (s *Server) handleListImages(w http.ResponseWriter, r *http.Request) {
	var categoryID *int64
	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.writeError(w, r, fmt.Errorf("%w: invalid categoryId %q", domain.ErrValidation, raw))
			return
		}
		categoryID = &id
	}

	images, err := s.services.Catalog.ListImages(r.Context(), categoryID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusOK, images)
}

func (s *Server) handleCreateImage(w http.ResponseWriter, r *http.Request) {
	var req imageRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	img, err := s.services.Catalog.CreateImage(r.Context(), req.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusCreated, map[string]int64{"id": img.ID})
}

func (s *Server) handleUpdateImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req imageRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	img, err := s.services.Catalog.UpdateImage(r.Context(), id, req.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusOK, img)
}

func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.services.Catalog.DeleteImage(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeMessage(w, http.StatusOK, "image deleted")
}
