package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() Snapshot {
	return Snapshot{
		Categories: []Category{
			{ID: 1, Name: "Programming"},
			{ID: 2, Name: "Bugs"},
			{ID: 3, Name: "Art"},
		},
		Tags: []Tag{
			{ID: 10, Name: "ui"},
			{ID: 11, Name: "Bugs"},
			{ID: 12, Name: "backend"},
		},
		Users: []User{
			{ID: 20, Name: "Alice Smith", Username: "alice1"},
			{ID: 21, Name: "Bob", Username: "bob92"},
			{ID: 22, Name: "Bobby Tables", Username: "tables"},
		},
		ImportanceLevels: []ImportanceLevel{
			{ID: 30, Name: "Low"},
			{ID: 31, Name: "Normal", IsDefault: true},
			{ID: 32, Name: "High"},
			{ID: 33, Name: "Urgent"},
		},
	}
}

func TestHashTagResolver_Resolve(t *testing.T) {
	r := testSnapshot().HashTags()

	tests := []struct {
		name  string
		token string
		want  Match
	}{
		{"category exact ignoring case", "programming", CategoryRef{ID: 1, Name: "Programming"}},
		{"mixed case token", "PrOgRaMmInG", CategoryRef{ID: 1, Name: "Programming"}},
		{"tag", "ui", TagRef{ID: 10, Name: "ui"}},
		{"category beats tag with same name", "bugs", CategoryRef{ID: 2, Name: "Bugs"}},
		{"unresolved keeps lower-cased name", "Shiny", UnresolvedTag{Name: "shiny"}},
		{"no substring matching for categories", "prog", UnresolvedTag{Name: "prog"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type failingCategories struct{ err error }

func (f failingCategories) Resolve(string) (CategoryRef, error) { return CategoryRef{}, f.err }

func TestHashTagResolver_PropagatesUnexpectedErrors(t *testing.T) {
	boom := errors.New("catalog unavailable")
	r := NewHashTagResolver(failingCategories{err: boom}, TagResolver(nil))

	_, err := r.Resolve("anything")
	require.ErrorIs(t, err, boom)
}

func TestUserResolver_Resolve(t *testing.T) {
	r := testSnapshot().Mentions()

	got, err := r.Resolve("bo")
	require.NoError(t, err)
	assert.Equal(t, MentionRef{ID: 21, Name: "Bob", Handle: "bob92"}, got, "first match in catalog order wins")

	got, err = r.Resolve("SMITH")
	require.NoError(t, err)
	assert.Equal(t, ID(20), got.ID)

	_, err = r.Resolve("carol")
	require.ErrorIs(t, err, ErrUnknownUser)
	assert.Contains(t, err.Error(), "@carol")
}

func TestImportanceResolver(t *testing.T) {
	r := testSnapshot().Importance()

	got, err := r.Resolve("high")
	require.NoError(t, err)
	assert.Equal(t, ImportanceRef{ID: 32, Name: "High"}, got)

	got, err = r.Resolve("urg")
	require.NoError(t, err)
	assert.Equal(t, ID(33), got.ID)

	_, err = r.Resolve("critical")
	require.ErrorIs(t, err, ErrUnknownImportance)

	def, err := r.Default()
	require.NoError(t, err)
	assert.Equal(t, ID(31), def.ID)

	_, err = ImportanceResolver{{ID: 1, Name: "Only"}}.Default()
	require.ErrorIs(t, err, ErrNoDefaultImportance)
}

func TestSnapshot_WithTaxonomy(t *testing.T) {
	original := testSnapshot()
	refreshed := original.WithTaxonomy(
		[]Category{{ID: 1, Name: "Programming"}},
		[]Tag{{ID: 99, Name: "shiny"}},
	)

	got, err := refreshed.HashTags().Resolve("shiny")
	require.NoError(t, err)
	assert.Equal(t, TagRef{ID: 99, Name: "shiny"}, got)

	got, err = original.HashTags().Resolve("shiny")
	require.NoError(t, err)
	assert.Equal(t, UnresolvedTag{Name: "shiny"}, got, "original snapshot must not see refreshed tags")

	assert.Equal(t, original.Users, refreshed.Users)
	refreshed.Users[0].Name = "changed"
	assert.Equal(t, "Alice Smith", original.Users[0].Name, "snapshots must not share backing arrays")
}
