package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Match is the closed set of resolution outcomes for an annotation token.
type Match interface {
	isMatch()
}

// CategoryRef is a hash-tag resolved against the category catalog.
type CategoryRef struct {
	ID   ID
	Name string
}

// TagRef is a hash-tag resolved against the tag catalog.
type TagRef struct {
	ID   ID
	Name string
}

// UnresolvedTag is a hash-tag that matched neither catalog.
type UnresolvedTag struct {
	Name string
}

// MentionRef is a mention resolved against the user catalog.
type MentionRef struct {
	ID     ID
	Name   string
	Handle string
}

// ImportanceRef is an importance level chosen by an urgency marker or by
// the catalog default.
type ImportanceRef struct {
	ID   ID
	Name string
}

func (CategoryRef) isMatch()   {}
func (TagRef) isMatch()        {}
func (UnresolvedTag) isMatch() {}
func (MentionRef) isMatch()    {}
func (ImportanceRef) isMatch() {}

// Resolver resolves a raw annotation token (sigil removed) against one
// catalog.
type Resolver[T any] interface {
	Resolve(token string) (T, error)
}

func normalize(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

// CategoryResolver matches category names exactly, ignoring case.
type CategoryResolver []Category

// Resolve returns ErrNoMatch when no category carries the token's name.
func (r CategoryResolver) Resolve(token string) (CategoryRef, error) {
	token = normalize(token)
	for _, c := range r {
		if strings.ToLower(c.Name) == token {
			return CategoryRef{ID: c.ID, Name: c.Name}, nil
		}
	}
	return CategoryRef{}, fmt.Errorf("category %q: %w", token, ErrNoMatch)
}

// TagResolver matches tag names exactly, ignoring case.
type TagResolver []Tag

// Resolve returns ErrNoMatch when no tag carries the token's name.
func (r TagResolver) Resolve(token string) (TagRef, error) {
	token = normalize(token)
	for _, t := range r {
		if strings.ToLower(t.Name) == token {
			return TagRef{ID: t.ID, Name: t.Name}, nil
		}
	}
	return TagRef{}, fmt.Errorf("tag %q: %w", token, ErrNoMatch)
}

// HashTagResolver classifies a hash-tag as a category, a tag, or
// unresolved. Categories always take precedence over tags.
type HashTagResolver struct {
	categories Resolver[CategoryRef]
	tags       Resolver[TagRef]
}

// NewHashTagResolver creates a HashTagResolver over the given catalogs.
func NewHashTagResolver(categories Resolver[CategoryRef], tags Resolver[TagRef]) *HashTagResolver {
	return &HashTagResolver{categories: categories, tags: tags}
}

// Resolve returns a CategoryRef, TagRef or UnresolvedTag. Only errors other
// than ErrNoMatch are returned.
func (r *HashTagResolver) Resolve(token string) (Match, error) {
	token = normalize(token)

	category, err := r.categories.Resolve(token)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, ErrNoMatch) {
		return nil, err
	}

	tag, err := r.tags.Resolve(token)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, ErrNoMatch) {
		return nil, err
	}

	return UnresolvedTag{Name: token}, nil
}

// UserResolver matches mentions against display names by substring.
// The first user in catalog order whose display name contains the token wins.
type UserResolver []User

// Resolve returns ErrUnknownUser when no display name contains the token.
func (r UserResolver) Resolve(token string) (MentionRef, error) {
	token = normalize(token)
	for _, u := range r {
		if strings.Contains(strings.ToLower(u.Name), token) {
			return MentionRef{ID: u.ID, Name: u.Name, Handle: u.Username}, nil
		}
	}
	return MentionRef{}, fmt.Errorf("%w: @%s", ErrUnknownUser, token)
}

// ImportanceResolver matches urgency markers against importance level
// names by substring, first match in catalog order.
type ImportanceResolver []ImportanceLevel

// Resolve returns ErrUnknownImportance when no level name contains the token.
func (r ImportanceResolver) Resolve(token string) (ImportanceRef, error) {
	token = normalize(token)
	for _, l := range r {
		if strings.Contains(strings.ToLower(l.Name), token) {
			return ImportanceRef{ID: l.ID, Name: l.Name}, nil
		}
	}
	return ImportanceRef{}, fmt.Errorf("%w: !%s", ErrUnknownImportance, token)
}

// Default returns the level flagged as default.
func (r ImportanceResolver) Default() (ImportanceRef, error) {
	for _, l := range r {
		if l.IsDefault {
			return ImportanceRef{ID: l.ID, Name: l.Name}, nil
		}
	}
	return ImportanceRef{}, ErrNoDefaultImportance
}

var (
	_ Resolver[CategoryRef]   = CategoryResolver(nil)
	_ Resolver[TagRef]        = TagResolver(nil)
	_ Resolver[Match]         = (*HashTagResolver)(nil)
	_ Resolver[MentionRef]    = UserResolver(nil)
	_ Resolver[ImportanceRef] = ImportanceResolver(nil)
)
