// Package catalog holds immutable snapshots of the tracker's reference
// catalogs and the resolvers that map annotation tokens onto them.
package catalog

import "errors"

// ID is a tracker identifier.
type ID = int64

// Category is a work item category.
type Category struct {
	ID   ID
	Name string
}

// Tag is a free-form work item label.
type Tag struct {
	ID   ID
	Name string
}

// User is a project member. Name is the display name, Username the handle.
type User struct {
	ID       ID
	Name     string
	Username string
}

// ImportanceLevel is a priority level. Exactly one level is expected to be
// flagged as the default.
type ImportanceLevel struct {
	ID        ID
	Name      string
	IsDefault bool
}

// Board is a project board.
type Board struct {
	ID   ID
	Name string
}

// Errors returned by resolvers.
var (
	ErrNoMatch             = errors.New("no catalog entry matches")
	ErrUnknownUser         = errors.New("no user matches mention")
	ErrUnknownImportance   = errors.New("no importance level matches urgency")
	ErrNoDefaultImportance = errors.New("no importance level is flagged as default")
)

// Snapshot is a point-in-time copy of every catalog. Snapshots are values;
// WithTaxonomy returns a new snapshot and leaves the receiver untouched.
type Snapshot struct {
	Categories       []Category
	Tags             []Tag
	Users            []User
	ImportanceLevels []ImportanceLevel
}

// WithTaxonomy returns a copy of s with categories and tags replaced.
func (s Snapshot) WithTaxonomy(categories []Category, tags []Tag) Snapshot {
	return Snapshot{
		Categories:       append([]Category(nil), categories...),
		Tags:             append([]Tag(nil), tags...),
		Users:            append([]User(nil), s.Users...),
		ImportanceLevels: append([]ImportanceLevel(nil), s.ImportanceLevels...),
	}
}

// HashTags returns the hash-tag resolver for this snapshot.
func (s Snapshot) HashTags() *HashTagResolver {
	return NewHashTagResolver(CategoryResolver(s.Categories), TagResolver(s.Tags))
}

// Mentions returns the mention resolver for this snapshot.
func (s Snapshot) Mentions() UserResolver {
	return UserResolver(s.Users)
}

// Importance returns the urgency resolver for this snapshot.
func (s Snapshot) Importance() ImportanceResolver {
	return ImportanceResolver(s.ImportanceLevels)
}
