// CLAUDE:SUMMARY PageSnapshot capture: normalized text, meta map, SKU hints, content hash.
// Package snapshot turns a product page into a normalized, timestamped
// PageSnapshot: visible text with boilerplate removed, a meta-tag map, and
// SKU-like identifier hints. The rule engine consumes snapshots, never raw
// documents.
//
// The DOM dependency is abstracted behind the Document interface so the
// capture logic works the same over a parsed HTML file, a string fixture in
// tests, or a live page serialized by the capture package.
package snapshot

import (
	"encoding/hex"
	"time"

	"golang.org/x/crypto/blake2b"
)

const isoFormat = "2006-01-02T15:04:05.000Z07:00"

// Document is the minimal page capability the extractor needs.
type Document interface {
	// Title returns the page title, trimmed.
	Title() string
	// MetaTags returns the resolved meta map. Per element the key is the
	// first non-empty of the name, property, itemprop attributes in that
	// order; entries with empty content are skipped; duplicate keys are
	// last-write-wins in document order.
	MetaTags() map[string]string
	// BodyText returns the visible body text with script/style/noscript/
	// svg/iframe subtrees removed and all whitespace runs collapsed to a
	// single space, trimmed. Empty body yields "".
	BodyText() string
}

// PageSnapshot is the normalized extraction of a single page.
// Immutable once created; one instance per scan.
type PageSnapshot struct {
	URL         string            `json:"url"`
	Title       string            `json:"title"`
	Timestamp   string            `json:"timestamp"`
	Meta        map[string]string `json:"meta"`
	TextContent string            `json:"textContent"`
	SkuHints    []string          `json:"skuHints"`
	TextHash    string            `json:"textHash,omitempty"`
}

// Capture composes a PageSnapshot from a document and its URL, stamped with
// the current time.
func Capture(doc Document, pageURL string) *PageSnapshot {
	text := doc.BodyText()
	return &PageSnapshot{
		URL:         pageURL,
		Title:       doc.Title(),
		Timestamp:   time.Now().UTC().Format(isoFormat),
		Meta:        doc.MetaTags(),
		TextContent: text,
		SkuHints:    SkuHints(text),
		TextHash:    hashText(text),
	}
}

// hashText returns a hex BLAKE2b-256 digest of the page text, used as a
// cheap change-detection identity across repeated captures of the same URL.
func hashText(text string) string {
	sum := blake2b.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
