// CLAUDE:SUMMARY Evidence clips: user-selected page excerpts with context windows and pure list ops.
// Package evidence manages user-captured excerpts of page text. A clip ties
// a selection to its surrounding context and optionally to the field or
// claim it substantiates. The clip list is owned by the host session; all
// list operations here are pure and non-mutating.
package evidence

import (
	"strings"
	"time"

	"github.com/openthreads/threadmark/idgen"
)

const isoFormat = "2006-01-02T15:04:05.000Z07:00"

// DefaultContextRadius is the context window around a selection, in bytes
// each side.
const DefaultContextRadius = 80

// Clip is one captured excerpt. Never auto-expires; removed only by
// explicit user action.
type Clip struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	Context      string `json:"context"`
	URL          string `json:"url"`
	Timestamp    string `json:"timestamp"`
	FieldKey     string `json:"fieldKey,omitempty"`
	ClaimKeyword string `json:"claimKeyword,omitempty"`
}

// ClipOptions tags a clip with the field or claim it belongs to. The two
// annotations are mutually optional, not enforced exclusive.
type ClipOptions struct {
	FieldKey     string
	ClaimKeyword string
}

// Clipper creates clips. The ID strategy and clock are injected so hosts
// and tests control them; defaults are a timestamp+counter sequence and the
// wall clock.
type Clipper struct {
	newID idgen.Generator
	now   func() time.Time
}

// Option configures a Clipper.
type Option func(*Clipper)

// WithGenerator sets the clip ID strategy.
func WithGenerator(g idgen.Generator) Option {
	return func(c *Clipper) { c.newID = g }
}

// WithClock sets the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Clipper) { c.now = now }
}

// NewClipper creates a Clipper.
func NewClipper(opts ...Option) *Clipper {
	c := &Clipper{
		newID: idgen.Sequence("clip"),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create builds a clip from a user selection. Empty or whitespace-only
// selections return nil: a "nothing selected" condition for the caller to
// surface, never an error.
func (c *Clipper) Create(text, pageText, pageURL string, opts *ClipOptions) *Clip {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	clip := &Clip{
		ID:        c.newID(),
		Text:      trimmed,
		Context:   ExtractContext(pageText, trimmed, DefaultContextRadius),
		URL:       pageURL,
		Timestamp: c.now().UTC().Format(isoFormat),
	}
	if opts != nil {
		clip.FieldKey = opts.FieldKey
		clip.ClaimKeyword = opts.ClaimKeyword
	}
	return clip
}

// ExtractContext returns a window of radius bytes each side of the first
// exact occurrence of selected in fullText, trimmed, with an ellipsis
// marker on each truncated end. If the selection does not occur, it is
// returned unchanged (graceful degradation, not an error).
func ExtractContext(fullText, selected string, radius int) string {
	idx := strings.Index(fullText, selected)
	if idx == -1 {
		return selected
	}

	start := idx - radius
	if start < 0 {
		start = 0
	}
	end := idx + len(selected) + radius
	if end > len(fullText) {
		end = len(fullText)
	}

	context := strings.TrimSpace(fullText[start:end])
	if start > 0 {
		context = "…" + context
	}
	if end < len(fullText) {
		context = context + "…"
	}
	return context
}

// Add returns a new list with the clip appended. The input is not mutated.
func Add(clips []Clip, clip Clip) []Clip {
	out := make([]Clip, len(clips), len(clips)+1)
	copy(out, clips)
	return append(out, clip)
}

// Remove returns a new list without the clip of the given ID. An unknown ID
// returns the list content unchanged.
func Remove(clips []Clip, id string) []Clip {
	out := make([]Clip, 0, len(clips))
	for _, c := range clips {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

// ForField returns the clips tagged with the given field key.
func ForField(clips []Clip, fieldKey string) []Clip {
	var out []Clip
	for _, c := range clips {
		if c.FieldKey == fieldKey {
			out = append(out, c)
		}
	}
	return out
}

// ForClaim returns the clips tagged with the given claim keyword.
func ForClaim(clips []Clip, keyword string) []Clip {
	var out []Clip
	for _, c := range clips {
		if c.ClaimKeyword == keyword {
			out = append(out, c)
		}
	}
	return out
}
