package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Tags is an ordered tag list persisted as JSON array text.
type Tags []string

// SerializeTags returns the stored text form of tags, or nil when tags is nil.
func SerializeTags(tags []string) *string {
	if tags == nil {
		return nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}

// ParseTags decodes stored tag text. Absent, empty or malformed text yields an
// empty list.
func ParseTags(s *string) []string {
	if s == nil || *s == "" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(*s), &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}

func (t Tags) Value() (driver.Value, error) {
	s := SerializeTags(t)
	if s == nil {
		return nil, nil
	}
	return *s, nil
}

func (t *Tags) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = ParseTags(nil)
	case string:
		*t = ParseTags(&v)
	case []byte:
		s := string(v)
		*t = ParseTags(&s)
	default:
		return fmt.Errorf("unsupported tags column type %T", src)
	}
	return nil
}
