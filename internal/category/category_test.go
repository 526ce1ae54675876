package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSlug(t *testing.T) {
	for _, c := range All() {
		got, ok := FromSlug(c.Slug())
		require.True(t, ok)
		assert.Equal(t, c, got)
	}
	_, ok := FromSlug("podcasts")
	assert.False(t, ok)
}

func TestNormalizeTrims(t *testing.T) {
	f := Fields{Title: "  Dune  ", Subtitle: " Frank Herbert ", Subtype: " ALBUM "}
	Normalize(Books, &f)
	assert.Equal(t, "Dune", f.Title)
	assert.Equal(t, "Frank Herbert", f.Subtitle)
	assert.Equal(t, "album", f.Subtype)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name      string
		cat       Category
		fields    Fields
		ok        bool
		wantField string
	}{
		{"movie plain", Movies, Fields{Title: "Dune"}, true, ""},
		{"empty title", Movies, Fields{Title: ""}, false, "title"},
		{"unknown category", Category(42), Fields{Title: "X"}, false, "category"},
		{"game with platform", Games, Fields{Title: "Hades", Platform: "Switch"}, true, ""},
		{"movie with platform", Movies, Fields{Title: "Dune", Platform: "PC"}, false, "platform"},
		{"book with subtype", Books, Fields{Title: "Dune", Subtype: "album"}, false, "subtype"},
		{"music album", Music, Fields{Title: "OK Computer", Subtype: "album"}, true, ""},
		{"music song", Music, Fields{Title: "Karma Police", Subtype: "song"}, true, ""},
		{"music bad subtype", Music, Fields{Title: "X", Subtype: "mixtape"}, false, "subtype"},
		{"music with platform", Music, Fields{Title: "X", Platform: "PC"}, false, "platform"},
		{"game with subtype", Games, Fields{Title: "Hades", Subtype: "song"}, false, "subtype"},
		{"rating too high", Movies, Fields{Title: "Dune", Rating: 11}, false, "rating"},
		{"rating negative", Movies, Fields{Title: "Dune", Rating: -1}, false, "rating"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			field, msg, ok := Validate(tc.cat, tc.fields)
			assert.Equal(t, tc.ok, ok)
			if !tc.ok {
				assert.Equal(t, tc.wantField, field)
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestDefaultSubtype(t *testing.T) {
	assert.Equal(t, "album", DefaultSubtype(Music, ""))
	assert.Equal(t, "song", DefaultSubtype(Music, "song"))
	assert.Equal(t, "", DefaultSubtype(Games, ""))
}
