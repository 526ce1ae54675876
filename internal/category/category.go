// Package category holds the fixed media-category enumeration and the
// per-category rules applied to item input before it is written.
package category

import (
	"fmt"
	"strings"
)

type Category int

const (
	Movies Category = 1
	TV     Category = 2
	Books  Category = 3
	Music  Category = 4
	Games  Category = 5
)

var slugs = map[Category]string{
	Movies: "movies",
	TV:     "tv",
	Books:  "books",
	Music:  "music",
	Games:  "games",
}

func (c Category) Valid() bool {
	_, ok := slugs[c]
	return ok
}

func (c Category) Slug() string {
	return slugs[c]
}

// FromSlug resolves a category by its slug; ok is false for unknown slugs.
func FromSlug(s string) (Category, bool) {
	for c, slug := range slugs {
		if slug == s {
			return c, true
		}
	}
	return 0, false
}

// All returns the categories in id order.
func All() []Category {
	return []Category{Movies, TV, Books, Music, Games}
}

// Fields is the category-sensitive slice of an item payload. Normalize
// mutates it in place; Validate reports the first rule violation as a
// field name and message.
type Fields struct {
	Title    string
	Subtitle string
	Platform string
	Subtype  string
	Rating   int
}

// Normalize trims free-text fields and lowercases the music subtype.
// Call before Validate.
func Normalize(c Category, f *Fields) {
	f.Title = strings.TrimSpace(f.Title)
	f.Subtitle = strings.TrimSpace(f.Subtitle)
	f.Platform = strings.TrimSpace(f.Platform)
	f.Subtype = strings.ToLower(strings.TrimSpace(f.Subtype))
}

// Validate applies the per-category field rules: platform is a game-only
// field, subtype is a music-only field restricted to album|song. There is
// no state here, just a dispatch over the enum.
func Validate(c Category, f Fields) (field, msg string, ok bool) {
	if !c.Valid() {
		return "category", "unknown category", false
	}
	if f.Title == "" {
		return "title", "is required", false
	}
	if f.Rating < 0 || f.Rating > 10 {
		return "rating", "must be between 0 and 10", false
	}
	switch c {
	case Games:
		if f.Subtype != "" {
			return "subtype", "only allowed for music items", false
		}
	case Music:
		if f.Platform != "" {
			return "platform", "only allowed for game items", false
		}
		if f.Subtype != "" && f.Subtype != "album" && f.Subtype != "song" {
			return "subtype", "must be one of album song", false
		}
	default:
		if f.Platform != "" {
			return "platform", "only allowed for game items", false
		}
		if f.Subtype != "" {
			return "subtype", "only allowed for music items", false
		}
	}
	return "", "", true
}

// DefaultSubtype fills the music subtype when the client omitted it.
func DefaultSubtype(c Category, subtype string) string {
	if c == Music && subtype == "" {
		return "album"
	}
	return subtype
}

func (c Category) String() string {
	if s, ok := slugs[c]; ok {
		return s
	}
	return fmt.Sprintf("category(%d)", int(c))
}
