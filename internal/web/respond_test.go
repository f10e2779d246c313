package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/mediacatalog/internal/domain"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: bad", domain.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: dup", domain.ErrConflict), http.StatusConflict},
		{fmt.Errorf("wrapped: %w", fmt.Errorf("%w: gone", domain.ErrNotFound)), http.StatusNotFound},
		{fmt.Errorf("%w: disk", domain.ErrStorage), http.StatusInternalServerError},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestFlexibleID(t *testing.T) {
	var req deleteMediaRequest
	require.NoError(t, json.Unmarshal([]byte(`{"id": 42, "filePath": "/a", "section": "gallery"}`), &req))
	require.NotNil(t, req.ID)
	assert.Equal(t, flexibleID("42"), *req.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id": "3f2a-token"}`), &req))
	assert.Equal(t, flexibleID("3f2a-token"), *req.ID)

	req = deleteMediaRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"id": null}`), &req))
	assert.Nil(t, req.ID)

	assert.Error(t, json.Unmarshal([]byte(`{"id": {}}`), &req))
}

func TestParseTagsField(t *testing.T) {
	tags, err := parseTagsField(`["a","b c"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b c"}, tags)

	tags, err = parseTagsField(" a, ,b ")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tags)

	tags, err = parseTagsField("")
	require.NoError(t, err)
	assert.Nil(t, tags)

	_, err = parseTagsField(`[1,2`)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestValidationErrorUsesJSONNames(t *testing.T) {
	v := newValidator()
	err := validationError(v.Struct(imageRequest{Src: "/a.jpg", Type: "audio"}))
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "category_id is required")
	assert.Contains(t, err.Error(), "type must be one of: image video")
	assert.NotContains(t, err.Error(), "src")
}
