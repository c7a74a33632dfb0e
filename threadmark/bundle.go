// CLAUDE:SUMMARY Versioned export bundle: scan results + evidence + risk summary, JSON + filename.
// Package threadmark assembles scan artifacts into the versioned export
// format consumed downstream. The bundle carries fields, claims and
// evidence verbatim, and projects the risk breakdown down to aggregate
// counts.
package threadmark

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/openthreads/threadmark/evidence"
	"github.com/openthreads/threadmark/rules"
	"github.com/openthreads/threadmark/scoring"
)

// Export format constants.
const (
	Version   = "1.0.0"
	Generator = "openthreads-trace"
)

const isoFormat = "2006-01-02T15:04:05.000Z07:00"

// ScanResult aggregates everything one scan produced; it is the unit passed
// to export. Per-scan entities are owned exclusively by the scan that
// produced them.
type ScanResult struct {
	URL           string                      `json:"url"`
	Title         string                      `json:"title"`
	Category      rules.Category              `json:"category"`
	Timestamp     string                      `json:"timestamp"`
	Fields        []rules.FieldResult         `json:"fields"`
	Claims        []rules.ClaimFlag           `json:"claims"`
	RiskBreakdown *scoring.RiskScoreBreakdown `json:"riskBreakdown,omitempty"`
	Evidence      []evidence.Clip             `json:"evidence"`
}

// ScanMetadata is the scan header carried in a bundle.
type ScanMetadata struct {
	URL       string         `json:"url"`
	Title     string         `json:"title"`
	Category  rules.Category `json:"category"`
	ScannedAt string         `json:"scannedAt"`
}

// RiskSummary keeps only the aggregates of a risk breakdown: the score pair
// and the counts, not the contents, of each penalty list.
type RiskSummary struct {
	Score             int `json:"score"`
	MaxScore          int `json:"maxScore"`
	FieldPenaltyCount int `json:"fieldPenaltyCount"`
	ClaimPenaltyCount int `json:"claimPenaltyCount"`
}

// Bundle is the versioned export artifact.
type Bundle struct {
	Version    string              `json:"version"`
	Generator  string              `json:"generator"`
	ExportedAt string              `json:"exportedAt"`
	Scan       ScanMetadata        `json:"scan"`
	Fields     []rules.FieldResult `json:"fields"`
	Claims     []rules.ClaimFlag   `json:"claims"`
	Evidence   []evidence.Clip     `json:"evidence"`
	// RiskSummary is null when no breakdown was computed.
	RiskSummary *RiskSummary `json:"riskSummary"`
}

// Build assembles a bundle from a scan result. An empty exportedAt stamps
// the current time.
func Build(scan *ScanResult, exportedAt string) *Bundle {
	if exportedAt == "" {
		exportedAt = time.Now().UTC().Format(isoFormat)
	}

	var summary *RiskSummary
	if scan.RiskBreakdown != nil {
		summary = &RiskSummary{
			Score:             scan.RiskBreakdown.Score,
			MaxScore:          scan.RiskBreakdown.MaxScore,
			FieldPenaltyCount: len(scan.RiskBreakdown.FieldPenalties),
			ClaimPenaltyCount: len(scan.RiskBreakdown.ClaimPenalties),
		}
	}

	return &Bundle{
		Version:    Version,
		Generator:  Generator,
		ExportedAt: exportedAt,
		Scan: ScanMetadata{
			URL:       scan.URL,
			Title:     scan.Title,
			Category:  scan.Category,
			ScannedAt: scan.Timestamp,
		},
		Fields:      scan.Fields,
		Claims:      scan.Claims,
		Evidence:    scan.Evidence,
		RiskSummary: summary,
	}
}

// Serialize renders the bundle as deterministic, human-readable JSON with
// 2-space indentation.
func Serialize(b *Bundle) ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize bundle: %w", err)
	}
	return data, nil
}

// Deserialize parses a serialized bundle.
func Deserialize(data []byte) (*Bundle, error) {
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("deserialize bundle: %w", err)
	}
	return &b, nil
}

var hostnameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// Filename derives "threadmark-<host>-<date>.json" from a bundle: the
// sanitized hostname of the scanned URL and the calendar-date portion of
// the export timestamp.
func Filename(b *Bundle) string {
	date := b.ExportedAt
	if len(date) > 10 {
		date = date[:10]
	}
	return fmt.Sprintf("threadmark-%s-%s.json", safeHostname(b.Scan.URL), date)
}

// safeHostname returns the URL's hostname with all characters outside
// [A-Za-z0-9.-] replaced by underscore, or "unknown" when the URL has no
// parseable host.
func safeHostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	return hostnameSanitizer.ReplaceAllString(u.Hostname(), "_")
}
