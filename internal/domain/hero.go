package domain

import (
	"encoding/json"
	"time"
)

// HeroContent is the parent row of the hero aggregate. At most one row is
// expected to be active at a time.
type HeroContent struct {
	ID        int64
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type HeroBackground struct {
	Type           string  `json:"type"`
	Value          string  `json:"value"`
	Overlay        bool    `json:"overlay"`
	OverlayOpacity float64 `json:"overlay_opacity"`
	SortOrder      int     `json:"-"`
}

type HeroCarousel struct {
	Enabled         bool                `json:"enabled"`
	Autoplay        bool                `json:"autoplay"`
	IntervalSeconds int                 `json:"interval_seconds"`
	ShowControls    bool                `json:"show_controls"`
	ShowIndicators  bool                `json:"show_indicators"`
	Effect          string              `json:"effect"`
	Images          []HeroCarouselImage `json:"images"`
}

// HeroCarouselImage is addressed externally by Token, never by row id or
// position.
type HeroCarouselImage struct {
	Token          string    `json:"id"`
	URL            string    `json:"url"`
	Type           MediaType `json:"type"`
	AltText        string    `json:"alt_text"`
	Overlay        bool      `json:"overlay"`
	OverlayOpacity float64   `json:"overlay_opacity"`
	SortOrder      int       `json:"-"`
}

type HeroText struct {
	Type              string      `json:"type"`
	Content           string      `json:"content"`
	PositionX         string      `json:"position_x"`
	PositionY         string      `json:"position_y"`
	Alignment         string      `json:"alignment"`
	CustomStyle       CustomStyle `json:"custom_style"`
	Animation         string      `json:"animation"`
	AnimationDelay    float64     `json:"animation_delay"`
	AnimationDuration float64     `json:"animation_duration"`
	SortOrder         int         `json:"-"`
}

type HeroButton struct {
	Text           string  `json:"text"`
	URL            string  `json:"url"`
	Variant        string  `json:"variant"`
	Size           string  `json:"size"`
	Icon           string  `json:"icon"`
	IconPosition   string  `json:"icon_position"`
	CustomClass    string  `json:"custom_class"`
	Animation      string  `json:"animation"`
	AnimationDelay float64 `json:"animation_delay"`
	SortOrder      int     `json:"-"`
}

// HeroDocument is the nested form of the hero aggregate as read and written
// over the API. Only one background is exposed even though the store keeps
// many.
type HeroDocument struct {
	ID         int64           `json:"id,omitempty"`
	Name       string          `json:"name"`
	Background *HeroBackground `json:"background"`
	Carousel   *HeroCarousel   `json:"carousel,omitempty"`
	Texts      []HeroText      `json:"texts"`
	Buttons    []HeroButton    `json:"buttons"`
}

// CustomStyle is the decoded form of a text's style overrides.
type CustomStyle map[string]any

// ParseCustomStyle decodes stored style JSON. Nil or empty input returns a nil
// style and no error.
func ParseCustomStyle(s *string) (CustomStyle, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	var style CustomStyle
	if err := json.Unmarshal([]byte(*s), &style); err != nil {
		return nil, err
	}
	return style, nil
}

// SerializeCustomStyle encodes a style for storage; a nil style is stored as
// NULL.
func SerializeCustomStyle(style CustomStyle) (*string, error) {
	if style == nil {
		return nil, nil
	}
	b, err := json.Marshal(style)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}
