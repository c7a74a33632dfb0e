package audit

import (
	"strings"
	"testing"

	"github.com/openthreads/threadmark/rules"
	"github.com/openthreads/threadmark/snapshot"
	"github.com/openthreads/threadmark/threadmark"
)

const productHTML = `<!DOCTYPE html>
<html>
<head>
<title>Acme Organic Tee</title>
<meta property="og:title" content="Acme Organic Tee">
<meta property="og:brand" content="Acme">
</head>
<body>
<h1>Acme Organic Tee</h1>
<p>SKU: TEE-100-XL</p>
<p>Materials: 100% organic cotton</p>
<p>This eco-friendly shirt is made to last.</p>
</body>
</html>`

func TestScanHTML(t *testing.T) {
	svc := New(Config{})
	scan, err := svc.ScanHTML(strings.NewReader(productHTML), "https://example.com/tee", rules.CategoryTextiles)
	if err != nil {
		t.Fatalf("ScanHTML: %v", err)
	}

	if scan.URL != "https://example.com/tee" {
		t.Errorf("url = %q", scan.URL)
	}
	if scan.Title != "Acme Organic Tee" {
		t.Errorf("title = %q", scan.Title)
	}
	if scan.Category != rules.CategoryTextiles {
		t.Errorf("category = %q", scan.Category)
	}
	if len(scan.Fields) != rules.FieldCount() {
		t.Errorf("fields: got %d, want %d", len(scan.Fields), rules.FieldCount())
	}

	byKey := map[string]rules.FieldResult{}
	for _, f := range scan.Fields {
		byKey[f.Key] = f
	}
	if byKey["product_name"].Status != rules.StatusFound {
		t.Errorf("product_name status = %q", byKey["product_name"].Status)
	}
	if byKey["brand"].Status != rules.StatusFound {
		t.Errorf("brand status = %q", byKey["brand"].Status)
	}
	if byKey["materials"].Status != rules.StatusFound {
		t.Errorf("materials status = %q", byKey["materials"].Status)
	}

	found := false
	for _, c := range scan.Claims {
		if c.Claim == "eco-friendly" {
			found = true
			if c.RiskLevel != rules.RiskHigh {
				t.Errorf("eco-friendly risk = %q", c.RiskLevel)
			}
		}
	}
	if !found {
		t.Error("eco-friendly claim not flagged")
	}

	if scan.RiskBreakdown == nil {
		t.Fatal("riskBreakdown should be set")
	}
	if scan.RiskBreakdown.Score <= 0 {
		t.Errorf("score = %d, want positive (missing fields + claim)", scan.RiskBreakdown.Score)
	}
	if scan.RiskBreakdown.Score > scan.RiskBreakdown.MaxScore {
		t.Errorf("score %d exceeds maxScore %d", scan.RiskBreakdown.Score, scan.RiskBreakdown.MaxScore)
	}
	if scan.Evidence == nil {
		t.Error("evidence should be an empty list, not nil")
	}
}

func TestScan_UsesSnapshotTimestamp(t *testing.T) {
	svc := New(Config{})
	doc, err := snapshot.ParseString("<html><body>hello</body></html>")
	if err != nil {
		t.Fatal(err)
	}
	snap := snapshot.Capture(doc, "https://example.com")

	scan := svc.Scan(snap, rules.CategoryGeneral)
	if scan.Timestamp != snap.Timestamp {
		t.Errorf("timestamp = %q, want %q", scan.Timestamp, snap.Timestamp)
	}
}

func TestClip(t *testing.T) {
	svc := New(Config{})
	clip := svc.Clip("organic cotton", "made from organic cotton fibers", "https://example.com", nil)
	if clip == nil {
		t.Fatal("clip should not be nil")
	}
	if clip.Text != "organic cotton" {
		t.Errorf("text = %q", clip.Text)
	}

	if got := svc.Clip("   ", "page text", "https://example.com", nil); got != nil {
		t.Errorf("whitespace selection: got %+v, want nil", got)
	}
}

func TestExport(t *testing.T) {
	svc := New(Config{})
	scan, err := svc.ScanHTML(strings.NewReader(productHTML), "https://example.com/tee", rules.CategoryGeneral)
	if err != nil {
		t.Fatal(err)
	}

	bundle, data, err := svc.Export(scan, "2026-02-28T12:00:00.000Z")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if bundle.Version != threadmark.Version {
		t.Errorf("version = %q", bundle.Version)
	}
	if len(data) == 0 {
		t.Error("serialized bundle should not be empty")
	}
	if got := threadmark.Filename(bundle); got != "threadmark-example.com-2026-02-28.json" {
		t.Errorf("filename = %q", got)
	}
}
