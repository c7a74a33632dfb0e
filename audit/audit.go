// CLAUDE:SUMMARY Scan orchestrator: snapshot → rule engine → scoring, plus evidence clipping and export.
// Package audit runs the full disclosure audit over a page snapshot and
// assembles the result for the transports. The pipeline is strictly
// staged: extraction first, detection second, scoring last; no stage
// reaches back into an earlier one.
package audit

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/openthreads/threadmark/evidence"
	"github.com/openthreads/threadmark/rules"
	"github.com/openthreads/threadmark/scoring"
	"github.com/openthreads/threadmark/snapshot"
	"github.com/openthreads/threadmark/threadmark"
)

// Config configures the audit service.
type Config struct {
	// Logger for debug/error messages.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Service is the audit engine.
type Service struct {
	cfg     Config
	logger  *slog.Logger
	clipper *evidence.Clipper
}

// New creates a Service with the given configuration.
func New(cfg Config) *Service {
	cfg.defaults()
	return &Service{
		cfg:     cfg,
		logger:  cfg.Logger,
		clipper: evidence.NewClipper(),
	}
}

// Scan runs detection and scoring over an already-captured snapshot.
func (s *Service) Scan(snap *snapshot.PageSnapshot, category rules.Category) *threadmark.ScanResult {
	res := rules.Run(snap, category)
	breakdown := scoring.RiskScore(res.Fields, res.Claims)

	s.logger.Debug("scan complete",
		"url", snap.URL,
		"category", category,
		"fields", len(res.Fields),
		"claims", len(res.Claims),
		"score", breakdown.Score,
		"max_score", breakdown.MaxScore)

	return &threadmark.ScanResult{
		URL:           snap.URL,
		Title:         snap.Title,
		Category:      category,
		Timestamp:     snap.Timestamp,
		Fields:        res.Fields,
		Claims:        res.Claims,
		RiskBreakdown: &breakdown,
		Evidence:      []evidence.Clip{},
	}
}

// ScanHTML parses raw HTML, captures a snapshot and runs a full scan.
func (s *Service) ScanHTML(r io.Reader, pageURL string, category rules.Category) (*threadmark.ScanResult, error) {
	doc, err := snapshot.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	snap := snapshot.Capture(doc, pageURL)
	return s.Scan(snap, category), nil
}

// Clip captures an evidence clip from a user selection. Returns nil when
// the selection is empty.
func (s *Service) Clip(text, pageText, pageURL string, opts *evidence.ClipOptions) *evidence.Clip {
	return s.clipper.Create(text, pageText, pageURL, opts)
}

// Export bundles a scan result for download. An empty exportedAt stamps
// the current time.
func (s *Service) Export(scan *threadmark.ScanResult, exportedAt string) (*threadmark.Bundle, []byte, error) {
	bundle := threadmark.Build(scan, exportedAt)
	data, err := threadmark.Serialize(bundle)
	if err != nil {
		return nil, nil, err
	}
	return bundle, data, nil
}
