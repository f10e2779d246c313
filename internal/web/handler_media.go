package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/vbonduro/mediacatalog/internal/domain"
	"github.com/vbonduro/mediacatalog/internal/service"
)

// flexibleID accepts either a JSON number or a JSON string.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*f = flexibleID(n.String())
	return nil
}

type deleteMediaRequest struct {
	ID        *flexibleID `json:"id"`
	FilePath  string      `json:"filePath" validate:"required"`
	Section   string      `json:"section" validate:"required"`
	Subfolder string      `json:"subfolder"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.opts.MaxMultipartMemory); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: failed to parse form: %v", domain.ErrValidation, err))
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			s.logger.Error("failed to remove multipart temp files", "error", err)
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: file is required", domain.ErrValidation))
		return
	}
	defer closeWithLog(file, "upload file", s.logger)

	section := r.FormValue("section")
	if section == "" {
		s.writeError(w, r, fmt.Errorf("%w: section is required", domain.ErrValidation))
		return
	}

	tags, err := parseTagsField(r.FormValue("tags"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.services.Uploads.Upload(r.Context(), service.UploadRequest{
		File:      file,
		Filename:  header.Filename,
		MimeType:  header.Header.Get("Content-Type"),
		Size:      header.Size,
		Section:   section,
		Subfolder: r.FormValue("subfolder"),
		Tags:      tags,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	body := envelope{Success: true, Data: result}
	if result.Warning != "" {
		body.Message = result.Warning
	}
	writeJSON(w, http.StatusCreated, body, s.logger)
}

// parseTagsField accepts a JSON array or a comma-separated list.
func parseTagsField(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if strings.HasPrefix(raw, "[") {
		var tags []string
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			return nil, fmt.Errorf("%w: tags must be a JSON array of strings", domain.ErrValidation)
		}
		return tags, nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags, nil
}

func (s *Server) handleDeleteMedia(w http.ResponseWriter, r *http.Request) {
	var req deleteMediaRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var id *string
	if req.ID != nil && *req.ID != "" {
		v := string(*req.ID)
		id = &v
	}

	result, err := s.services.Deletions.Delete(r.Context(), service.DeleteRequest{
		ID:        id,
		FilePath:  req.FilePath,
		Section:   req.Section,
		Subfolder: req.Subfolder,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result, s.logger)
}
