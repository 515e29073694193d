// Package document splits a ticket document into per-ticket blocks.
//
// A document is a sequence of blocks separated by "---". Each block is a
// title region, optionally followed by "===" and a description region.
package document

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Delimiters of the document format.
const (
	BlockDelimiter = "---"
	TitleDelimiter = "==="
)

// Errors for malformed documents.
var (
	ErrMultipleDelimiters = errors.New("block contains more than one title/description delimiter")
	ErrNotUTF8            = errors.New("document is not valid UTF-8")
)

// Block is one ticket's worth of text.
type Block struct {
	Number      int // 1-based position among non-empty blocks
	Title       string
	Description string
}

// Read reads a whole document and checks that it is UTF-8.
func Read(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	if !utf8.Valid(data) {
		return "", ErrNotUTF8
	}
	return string(data), nil
}

// Split segments doc into blocks. Blocks that are blank after trimming are
// dropped, which tolerates leading and trailing delimiters.
func Split(doc string) ([]Block, error) {
	var blocks []Block
	for _, text := range strings.Split(doc, BlockDelimiter) {
		if strings.TrimSpace(text) == "" {
			continue
		}

		number := len(blocks) + 1
		if n := strings.Count(text, TitleDelimiter); n > 1 {
			return nil, fmt.Errorf("block %d (%q): %w", number, firstLine(text), ErrMultipleDelimiters)
		}

		title, description, _ := strings.Cut(text, TitleDelimiter)
		blocks = append(blocks, Block{
			Number:      number,
			Title:       strings.TrimSpace(title),
			Description: strings.TrimSpace(description),
		})
	}
	return blocks, nil
}

func firstLine(text string) string {
	text = strings.TrimSpace(text)
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimSpace(line)
}
