// Package preview renders would-be tracker mutations instead of performing
// them, and announces real submissions.
package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"github.com/example/hnp/internal/core/ticket"
	"github.com/example/hnp/internal/ports/secondary"
)

// Format selects how payloads are rendered.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown preview format %q (want json or yaml)", s)
	}
}

// tagPayload is the body a tag creation would send.
type tagPayload struct {
	Name string `json:"name" yaml:"name"`
}

// Renderer implements secondary.TagCreator and secondary.TicketSink by
// printing each payload. It also keeps the payloads for Export.
type Renderer struct {
	out    io.Writer
	format Format

	mu     sync.Mutex
	tags   []tagPayload
	drafts []*ticket.Draft
}

// NewRenderer creates a Renderer writing to out.
func NewRenderer(out io.Writer, format Format) *Renderer {
	if format == "" {
		format = FormatJSON
	}
	return &Renderer{out: out, format: format}
}

// CreateTag prints the tag payload.
func (r *Renderer) CreateTag(ctx context.Context, name string) error {
	payload := tagPayload{Name: name}
	body, err := Render(r.format, payload)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.tags = append(r.tags, payload)
	r.mu.Unlock()

	fmt.Fprintf(r.out, "%s\n%s\n", color.New(color.FgYellow).Sprint(`"Pretend" creating tag:`), body)
	return nil
}

// SubmitTicket prints the work item payload.
func (r *Renderer) SubmitTicket(ctx context.Context, draft *ticket.Draft) error {
	body, err := Render(r.format, draft)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.drafts = append(r.drafts, draft)
	r.mu.Unlock()

	fmt.Fprintf(r.out, "%s\n%s\n", color.New(color.FgYellow).Sprint(`"Pretend" uploading ticket:`), body)
	return nil
}

// exportDocument is the shape written by Export.
type exportDocument struct {
	Tags      []tagPayload    `json:"tags" yaml:"tags"`
	WorkItems []*ticket.Draft `json:"workItems" yaml:"workItems"`
}

// Export atomically writes every rendered payload to path.
func (r *Renderer) Export(path string) error {
	r.mu.Lock()
	doc := exportDocument{
		Tags:      append([]tagPayload{}, r.tags...),
		WorkItems: append([]*ticket.Draft{}, r.drafts...),
	}
	r.mu.Unlock()

	body, err := Render(r.format, doc)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(path, strings.NewReader(body+"\n")); err != nil {
		return fmt.Errorf("failed to write preview %s: %w", path, err)
	}
	return nil
}

// Render encodes v as indented JSON or YAML, without a trailing newline.
func Render(format Format, v any) (string, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return "", fmt.Errorf("failed to render yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("failed to render yaml: %w", err)
		}
		return strings.TrimRight(buf.String(), "\n"), nil
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to render json: %w", err)
		}
		return string(data), nil
	}
}

// Announcer prints each work item before handing it to the wrapped sink.
type Announcer struct {
	next secondary.TicketSink
	out  io.Writer
}

// NewAnnouncer wraps next.
func NewAnnouncer(next secondary.TicketSink, out io.Writer) *Announcer {
	return &Announcer{next: next, out: out}
}

// SubmitTicket announces the draft, then submits it.
func (a *Announcer) SubmitTicket(ctx context.Context, draft *ticket.Draft) error {
	body, err := Render(FormatJSON, draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\n%s\n", color.New(color.FgGreen).Sprint("Uploading ticket:"), body)
	return a.next.SubmitTicket(ctx, draft)
}

var (
	_ secondary.TagCreator = (*Renderer)(nil)
	_ secondary.TicketSink = (*Renderer)(nil)
	_ secondary.TicketSink = (*Announcer)(nil)
)
