package domain

import "time"

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Image struct {
	ID           int64     `json:"id"`
	CategoryID   int64     `json:"category_id"`
	Src          string    `json:"src"`
	Alt          string    `json:"alt"`
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	Tags         Tags      `json:"tags"`
	Type         MediaType `json:"type"`
	ThumbnailSrc *string   `json:"thumbnail_src,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FileInfo describes bytes written by the upload pipeline. It is never
// persisted on its own.
type FileInfo struct {
	Filename  string   `json:"filename"`
	PublicURL string   `json:"url"`
	MimeType  string   `json:"mimeType"`
	Size      int64    `json:"size"`
	Width     *int     `json:"width,omitempty"`
	Height    *int     `json:"height,omitempty"`
	Duration  *float64 `json:"duration,omitempty"`
}
