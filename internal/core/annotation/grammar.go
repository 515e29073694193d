// Package annotation contains the fixed grammar for the inline shorthand used in
// ticket documents: hash-tags, mentions, sub-task lines, estimates and urgency
// markers. Everything here is pure; a Grammar is compiled once and reused.
package annotation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies one of the annotation matchers.
type Kind int

const (
	HashTag Kind = iota
	Mention
	SubTask
	Estimate
	Urgency
)

// kindCount is the number of Kind variants.
const kindCount = int(Urgency) + 1

// TitleKinds are the annotations stripped from a title during cleanup.
var TitleKinds = []Kind{HashTag, Mention, Estimate, Urgency}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case HashTag:
		return "hash-tag"
	case Mention:
		return "mention"
	case SubTask:
		return "sub-task"
	case Estimate:
		return "estimate"
	case Urgency:
		return "urgency"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// sigil returns the leading marker of a token of this kind.
func (k Kind) sigil() string {
	switch k {
	case HashTag:
		return "#"
	case Mention:
		return "@"
	case SubTask:
		return "[]"
	case Estimate:
		return "~"
	case Urgency:
		return "!"
	default:
		return ""
	}
}

// word matches a Unicode word character: letters, marks, decimal digits and
// connector punctuation.
const word = `[\p{L}\p{M}\p{Nd}\p{Pc}]`

var sources = [kindCount]string{
	HashTag:  `#` + word + `+`,
	Mention:  `@` + word + `+`,
	SubTask:  `(?m)^\[\].*$`,
	Estimate: `~(?:(?P<days>[0-9]+)d)?(?:(?P<hours>[0-9]+)h)?(?:(?P<minutes>[0-9]+)m)?(?:(?P<seconds>[0-9]+)s)?`,
	Urgency:  `!` + word + `+`,
}

// Hours per estimate unit. A working day is eight hours.
const (
	hoursPerDay    = 8.0
	minutesPerHour = 60.0
	secondsPerHour = 3600.0
)

// Token is a single annotation occurrence in a piece of text.
type Token struct {
	Kind  Kind
	Raw   string // matched text including the sigil
	Start int    // byte offset of Raw in the source text
	End   int
}

// Name returns the token text without its sigil, trimmed and lower-cased.
// This is the form used for catalog resolution.
func (t Token) Name() string {
	name := strings.TrimPrefix(t.Raw, t.Kind.sigil())
	return strings.ToLower(strings.TrimSpace(name))
}

// Text returns the token text without its sigil, trimmed, with case kept.
// Sub-task lines use this as their task text.
func (t Token) Text() string {
	return strings.TrimSpace(strings.TrimPrefix(t.Raw, t.Kind.sigil()))
}

// Grammar holds the compiled matchers for every annotation kind.
type Grammar struct {
	patterns [kindCount]*regexp.Regexp
}

// New compiles the annotation grammar.
func New() *Grammar {
	g := &Grammar{}
	for k, src := range sources {
		g.patterns[k] = regexp.MustCompile(src)
	}
	return g
}

// Find returns every token of the given kind in text, in order.
func (g *Grammar) Find(kind Kind, text string) []Token {
	re := g.patterns[kind]
	locs := re.FindAllStringIndex(text, -1)
	tokens := make([]Token, 0, len(locs))
	for _, loc := range locs {
		tokens = append(tokens, Token{
			Kind:  kind,
			Raw:   text[loc[0]:loc[1]],
			Start: loc[0],
			End:   loc[1],
		})
	}
	return tokens
}

// First returns the first token of the given kind in text.
func (g *Grammar) First(kind Kind, text string) (Token, bool) {
	loc := g.patterns[kind].FindStringIndex(text)
	if loc == nil {
		return Token{}, false
	}
	return Token{Kind: kind, Raw: text[loc[0]:loc[1]], Start: loc[0], End: loc[1]}, true
}

// Strip removes every token of the given kinds from text. Removal repeats
// until nothing matches, so the result never contains a token that the
// removal itself produced (for example "@~x" becoming "@x").
func (g *Grammar) Strip(text string, kinds ...Kind) string {
	for {
		next := text
		for _, k := range kinds {
			next = g.patterns[k].ReplaceAllString(next, "")
		}
		if next == text {
			return text
		}
		text = next
	}
}

// CleanTitle strips title annotations and collapses runs of whitespace into
// single spaces. Applying it to its own output is a no-op.
func (g *Grammar) CleanTitle(title string) string {
	stripped := g.Strip(title, TitleKinds...)
	return strings.Join(strings.Fields(stripped), " ")
}

// Hours parses the first estimate token in text into hours.
// Text without an estimate yields zero.
func (g *Grammar) Hours(text string) float64 {
	re := g.patterns[Estimate]
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0
	}

	units := map[string]float64{
		"days":    hoursPerDay,
		"hours":   1,
		"minutes": 1 / minutesPerHour,
		"seconds": 1 / secondsPerHour,
	}

	var hours float64
	for i, name := range re.SubexpNames() {
		factor, ok := units[name]
		if !ok || m[i] == "" {
			continue
		}
		// Only digits reach here; an overflowing value parses to +Inf.
		n, _ := strconv.ParseFloat(m[i], 64)
		hours += n * factor
	}
	return hours
}

// SubTasks returns the text of every sub-task line, in order.
func (g *Grammar) SubTasks(description string) []string {
	tokens := g.Find(SubTask, description)
	tasks := make([]string, 0, len(tokens))
	for _, t := range tokens {
		tasks = append(tasks, t.Text())
	}
	return tasks
}

// RemoveSubTasks blanks every sub-task line and trims the result.
func (g *Grammar) RemoveSubTasks(description string) string {
	return strings.TrimSpace(g.patterns[SubTask].ReplaceAllString(description, ""))
}

// ReplaceAll rewrites every token of the given kind using fn. The first
// error returned by fn stops the rewrite and is returned as is.
func (g *Grammar) ReplaceAll(kind Kind, text string, fn func(Token) (string, error)) (string, error) {
	tokens := g.Find(kind, text)
	if len(tokens) == 0 {
		return text, nil
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, t := range tokens {
		repl, err := fn(t)
		if err != nil {
			return "", err
		}
		b.WriteString(text[last:t.Start])
		b.WriteString(repl)
		last = t.End
	}
	b.WriteString(text[last:])
	return b.String(), nil
}
