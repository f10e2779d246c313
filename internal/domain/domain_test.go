package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagsRoundTrip(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ParseTags(SerializeTags([]string{"a", "b"})))
	assert.Nil(t, SerializeTags(nil))
	assert.Equal(t, []string{}, ParseTags(nil))
}

func TestParseTags_Malformed(t *testing.T) {
	bad := "not json"
	assert.Equal(t, []string{}, ParseTags(&bad))
}

func TestTagsScanner(t *testing.T) {
	var tags Tags
	require.NoError(t, tags.Scan(`["x","y"]`))
	assert.Equal(t, Tags{"x", "y"}, tags)

	require.NoError(t, tags.Scan(nil))
	assert.Equal(t, Tags{}, tags)

	v, err := Tags(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestMediaTypeForPath(t *testing.T) {
	tests := []struct {
		path   string
		want   MediaType
		wantOK bool
	}{
		{"foo.JPG", MediaTypeImage, true},
		{"a/b/c.svg", MediaTypeImage, true},
		{"bar.mp4", MediaTypeVideo, true},
		{"clip.OGG", MediaTypeVideo, true},
		{"notes.txt", "", false},
		{"noext", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := MediaTypeForPath(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCustomStyle(t *testing.T) {
	style, err := ParseCustomStyle(nil)
	require.NoError(t, err)
	assert.Nil(t, style)

	raw := `{"color":"#fff","fontSize":32}`
	style, err = ParseCustomStyle(&raw)
	require.NoError(t, err)
	assert.Equal(t, "#fff", style["color"])

	broken := `{"color":`
	_, err = ParseCustomStyle(&broken)
	assert.Error(t, err)
}
