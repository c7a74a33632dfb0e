package rules

import (
	"strings"
	"testing"

	"github.com/openthreads/threadmark/snapshot"
)

func makeSnapshot(text string, meta map[string]string) *snapshot.PageSnapshot {
	if meta == nil {
		meta = map[string]string{}
	}
	return &snapshot.PageSnapshot{
		URL:         "https://example.com/product",
		Title:       "Test Product",
		Timestamp:   "2026-08-28T00:00:00.000Z",
		Meta:        meta,
		TextContent: text,
	}
}

func TestDetectField_MetaTag(t *testing.T) {
	det := DetectField("product_name", "", map[string]string{"og:title": "Widget X"})
	if det.Status != StatusFound {
		t.Fatalf("status = %q, want found", det.Status)
	}
	if det.Value != "Widget X" {
		t.Errorf("value = %q, want Widget X", det.Value)
	}
	if det.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", det.Confidence)
	}
}

func TestDetectField_TextPattern(t *testing.T) {
	det := DetectField("country_of_origin", "This product is Made in USA with care", nil)
	if det.Status != StatusFound {
		t.Fatalf("status = %q, want found", det.Status)
	}
	if det.Value == "" {
		t.Error("value should be set for a text match")
	}
	if det.Confidence != 0.7 {
		t.Errorf("confidence = %v, want 0.7", det.Confidence)
	}
}

func TestDetectField_Missing(t *testing.T) {
	det := DetectField("manufacturer_address", "Nothing here", nil)
	if det.Status != StatusMissing {
		t.Fatalf("status = %q, want missing", det.Status)
	}
	if det.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", det.Confidence)
	}
	if det.Value != "" {
		t.Errorf("value = %q, want absent", det.Value)
	}
}

func TestDetectField_MetaWinsOverText(t *testing.T) {
	det := DetectField("brand", "Brand: TextBrand", map[string]string{"og:brand": "MetaBrand"})
	if det.Value != "MetaBrand" {
		t.Errorf("value = %q, want MetaBrand", det.Value)
	}
	if det.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", det.Confidence)
	}
}

func TestDetectField_UnknownKeyAlwaysMissing(t *testing.T) {
	// WHAT: A key with no meta aliases and no patterns resolves to missing.
	det := DetectField("no_such_field", "Brand: Acme", map[string]string{"brand": "Acme"})
	if det.Status != StatusMissing {
		t.Errorf("status = %q, want missing", det.Status)
	}
}

func TestDetectField_TextVariants(t *testing.T) {
	tests := []struct {
		key  string
		text string
	}{
		{"contact_email_or_url", "Reach us at help@example.com for support"},
		{"warnings", "WARNING: This product contains chemicals known to cause harm"},
		{"materials", "Materials: 100% organic cotton"},
		{"care_instructions", "Care instructions: Machine wash cold, tumble dry low"},
		{"certifications", "Certified by OEKO-TEX Standard 100"},
		{"instructions", "How to use: apply a thin layer daily"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			det := DetectField(tt.key, tt.text, nil)
			if det.Status != StatusFound {
				t.Errorf("DetectField(%q, %q): status = %q, want found", tt.key, tt.text, det.Status)
			}
		})
	}
}

func TestEvaluateFields_AlwaysCatalogSize(t *testing.T) {
	results := EvaluateFields(makeSnapshot("", nil), CategoryGeneral)
	if len(results) != 12 {
		t.Fatalf("results: got %d, want 12", len(results))
	}

	// Keys must form the catalog's key set, in catalog order.
	i := 0
	for _, g := range FieldGroups() {
		for _, f := range g.Fields {
			if results[i].Key != f.Key {
				t.Errorf("results[%d].Key = %q, want %q", i, results[i].Key, f.Key)
			}
			i++
		}
	}
}

func TestEvaluateFields_EmptySnapshotAllMissing(t *testing.T) {
	for _, r := range EvaluateFields(makeSnapshot("", nil), CategoryGeneral) {
		if r.Status != StatusMissing {
			t.Errorf("%s: status = %q, want missing", r.Key, r.Status)
		}
		if r.Confidence != 1.0 {
			t.Errorf("%s: confidence = %v, want 1.0", r.Key, r.Confidence)
		}
		if r.Value != "" {
			t.Errorf("%s: value = %q, want absent", r.Key, r.Value)
		}
	}
}

func TestEvaluateFields_FindsPopulatedFields(t *testing.T) {
	snap := makeSnapshot(
		"Brand: Acme Corp. Materials: 100% cotton. Made in Portugal. Warning: Keep away from fire.",
		map[string]string{"og:title": "Acme T-Shirt"},
	)
	results := EvaluateFields(snap, CategoryTextiles)

	found := 0
	byKey := map[string]FieldResult{}
	for _, r := range results {
		byKey[r.Key] = r
		if r.Status == StatusFound {
			found++
		}
	}
	if found < 4 {
		t.Errorf("found %d fields, want >= 4", found)
	}
	if byKey["product_name"].Status != StatusFound {
		t.Error("product_name should be found via og:title")
	}
	if byKey["product_name"].Confidence != 0.9 {
		t.Errorf("product_name confidence = %v, want 0.9", byKey["product_name"].Confidence)
	}
	if byKey["brand"].Status != StatusFound {
		t.Error("brand should be found via text")
	}
	if byKey["brand"].Confidence != 0.7 {
		t.Errorf("brand confidence = %v, want 0.7", byKey["brand"].Confidence)
	}
}

func TestEvaluateFields_PreservesGroupAndRequired(t *testing.T) {
	results := EvaluateFields(makeSnapshot("", nil), CategoryGeneral)
	byKey := map[string]FieldResult{}
	for _, r := range results {
		byKey[r.Key] = r
	}

	if g := byKey["product_name"].Group; g != "Identity & Contacts" {
		t.Errorf("product_name group = %q", g)
	}
	if !byKey["product_name"].Required {
		t.Error("product_name should be required")
	}
	if g := byKey["materials"].Group; g != "Composition & Origin" {
		t.Errorf("materials group = %q", g)
	}
	if byKey["materials"].Required {
		t.Error("materials should be optional")
	}
}

func TestDetectClaims_EcoFriendlyHighRisk(t *testing.T) {
	claims := DetectClaims(makeSnapshot("Our eco-friendly product is made with care", nil))
	if len(claims) != 1 {
		t.Fatalf("claims: got %d, want 1", len(claims))
	}
	if claims[0].Claim != "eco-friendly" {
		t.Errorf("claim = %q, want eco-friendly", claims[0].Claim)
	}
	if claims[0].RiskLevel != RiskHigh {
		t.Errorf("riskLevel = %q, want high", claims[0].RiskLevel)
	}
	if claims[0].Source == "" {
		t.Error("source context should be set")
	}
}

func TestDetectClaims_MultipleInCatalogOrder(t *testing.T) {
	claims := DetectClaims(makeSnapshot("This sustainable, biodegradable, and organic product is vegan", nil))
	got := make([]string, len(claims))
	for i, c := range claims {
		got[i] = c.Claim
	}
	want := []string{"sustainable", "biodegradable", "organic", "vegan"}
	if len(got) != len(want) {
		t.Fatalf("claims = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("claims[%d] = %q, want %q (catalog order)", i, got[i], want[i])
		}
	}
}

func TestDetectClaims_NoClaims(t *testing.T) {
	claims := DetectClaims(makeSnapshot("A regular product description with no special claims", nil))
	if len(claims) != 0 {
		t.Errorf("claims = %v, want none", claims)
	}
}

func TestDetectClaims_CaseInsensitive(t *testing.T) {
	claims := DetectClaims(makeSnapshot("ECO-FRIENDLY and SUSTAINABLE materials", nil))
	if len(claims) < 2 {
		t.Errorf("claims: got %d, want >= 2", len(claims))
	}
}

func TestDetectClaims_WholeWordOnly(t *testing.T) {
	// WHAT: Keywords embedded in longer words do not match.
	// WHY: "unsustainable" is the opposite of a sustainability claim.
	claims := DetectClaims(makeSnapshot("This veganic blend uses unsustainable inputs", nil))
	for _, c := range claims {
		if c.Claim == "vegan" || c.Claim == "sustainable" {
			t.Errorf("%q matched inside a longer word", c.Claim)
		}
	}
}

func TestDetectClaims_SourceWindow(t *testing.T) {
	claims := DetectClaims(makeSnapshot("We are proud to offer a non-toxic cleaning solution", nil))
	var nonToxic *ClaimFlag
	for i := range claims {
		if claims[i].Claim == "non-toxic" {
			nonToxic = &claims[i]
		}
	}
	if nonToxic == nil {
		t.Fatal("non-toxic not flagged")
	}
	if !strings.Contains(nonToxic.Source, "non-toxic") {
		t.Errorf("source %q should contain the keyword", nonToxic.Source)
	}
	if len(nonToxic.Source) <= 10 {
		t.Errorf("source %q should include surrounding context", nonToxic.Source)
	}
}

func TestDetectClaims_OneFlagPerKeyword(t *testing.T) {
	claims := DetectClaims(makeSnapshot("vegan vegan vegan, always vegan", nil))
	if len(claims) != 1 {
		t.Fatalf("claims: got %d, want 1 (first occurrence wins)", len(claims))
	}
	if !strings.HasPrefix(claims[0].Source, "vegan") {
		t.Errorf("source %q should start at the first occurrence window", claims[0].Source)
	}
}

func TestRun_Composition(t *testing.T) {
	snap := makeSnapshot(
		"Brand: TestCo. Materials: recycled plastic. This eco-friendly product is non-toxic.",
		map[string]string{"og:title": "TestCo Green Widget"},
	)
	res := Run(snap, CategoryGeneral)

	if len(res.Fields) != 12 {
		t.Errorf("fields: got %d, want 12", len(res.Fields))
	}
	if len(res.Claims) < 2 {
		t.Errorf("claims: got %d, want >= 2", len(res.Claims))
	}
	for _, f := range res.Fields {
		if f.Key == "brand" && f.Status != StatusFound {
			t.Error("brand should be found")
		}
	}
}

func TestRun_EmptySnapshot(t *testing.T) {
	res := Run(makeSnapshot("", nil), CategoryGeneral)
	if len(res.Fields) != 12 {
		t.Errorf("fields: got %d, want 12", len(res.Fields))
	}
	if len(res.Claims) != 0 {
		t.Errorf("claims: got %d, want 0", len(res.Claims))
	}
}
