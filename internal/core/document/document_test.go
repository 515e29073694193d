package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []Block
	}{
		{
			name: "title and description",
			doc:  "Fix bug #bugs\n===\nDetails here\n",
			want: []Block{{Number: 1, Title: "Fix bug #bugs", Description: "Details here"}},
		},
		{
			name: "title only",
			doc:  "Just a title",
			want: []Block{{Number: 1, Title: "Just a title"}},
		},
		{
			name: "blank blocks are dropped",
			doc:  "---\nFirst\n---\n   \n---\nSecond\n===\nBody\n---\n",
			want: []Block{
				{Number: 1, Title: "First"},
				{Number: 2, Title: "Second", Description: "Body"},
			},
		},
		{
			name: "empty description after delimiter",
			doc:  "Title\n===\n",
			want: []Block{{Number: 1, Title: "Title"}},
		},
		{
			name: "empty document",
			doc:  "\n\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.doc)
			if err != nil {
				t.Fatalf("Split failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Split mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplit_RejectsMultipleTitleDelimiters(t *testing.T) {
	doc := "Good one\n===\nok\n---\nDouble ticket\n===\nfirst\n===\nsecond"

	_, err := Split(doc)
	if !errors.Is(err, ErrMultipleDelimiters) {
		t.Fatalf("expected ErrMultipleDelimiters, got %v", err)
	}
	if !strings.Contains(err.Error(), "block 2") || !strings.Contains(err.Error(), "Double ticket") {
		t.Errorf("error should identify the offending block, got %q", err)
	}
}

func TestRead(t *testing.T) {
	got, err := Read(strings.NewReader("Title #tag\n"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got != "Title #tag\n" {
		t.Errorf("Read = %q", got)
	}

	_, err = Read(strings.NewReader("bad \xff byte"))
	if !errors.Is(err, ErrNotUTF8) {
		t.Errorf("expected ErrNotUTF8, got %v", err)
	}
}
