// CLAUDE:SUMMARY Rule engine: field detection (meta beats text), claim flagging with context windows.
package rules

import (
	"regexp"
	"strings"

	"github.com/openthreads/threadmark/snapshot"
)

// FieldStatus is the outcome of one field detection.
type FieldStatus string

const (
	StatusFound   FieldStatus = "found"
	StatusMissing FieldStatus = "missing"
	// StatusPartial is reserved for below-floor confidence detection.
	// No code path produces it today and the scorer does not penalize it.
	StatusPartial FieldStatus = "partial"
)

// Detection confidences. Confidence models certainty of the status, not
// correctness of a found value: missing is reported with full certainty.
const (
	confidenceMeta    = 0.9
	confidenceText    = 0.7
	confidenceMissing = 1.0
)

// FieldResult is the per-field detection outcome, one per catalog entry.
type FieldResult struct {
	Key        string      `json:"key"`
	Group      string      `json:"group"`
	Required   bool        `json:"required"`
	Status     FieldStatus `json:"status"`
	Value      string      `json:"value,omitempty"`
	Confidence float64     `json:"confidence"`
}

// ClaimFlag marks one catalogued keyword found on the page, with the
// surrounding text as source context.
type ClaimFlag struct {
	Claim            string    `json:"claim"`
	RiskLevel        RiskLevel `json:"riskLevel"`
	EvidenceRequired string    `json:"evidenceRequired"`
	Source           string    `json:"source,omitempty"`
}

// Detection is the raw outcome of DetectField.
type Detection struct {
	Status     FieldStatus
	Value      string
	Confidence float64
}

// metaKeyAliases maps a field key to the meta keys that satisfy it, in
// preference order. Meta always wins over text when both are present.
var metaKeyAliases = map[string][]string{
	"product_name":      {"og:title", "twitter:title", "product:name", "name"},
	"brand":             {"og:brand", "product:brand", "brand"},
	"materials":         {"product:material"},
	"country_of_origin": {"product:origin", "og:country-name"},
}

// fieldSearchPatterns maps a field key to its ordered text-search patterns.
// First match wins; the first capture group (if any) is the value.
var fieldSearchPatterns = map[string][]*regexp.Regexp{
	"product_name": {
		regexp.MustCompile(`(?i)(?:product\s*name|item\s*name)[:\s]+(.+?)(?:\n|$)`),
		regexp.MustCompile(`(?i)(?:og:title|twitter:title)`),
	},
	"brand": {
		regexp.MustCompile(`(?i)(?:brand|manufacturer)[:\s]+(.+?)(?:\n|$)`),
		regexp.MustCompile(`(?i)(?:og:brand|product:brand)`),
	},
	"manufacturer_name": {
		regexp.MustCompile(`(?i)(?:manufacturer|made\s*by|produced\s*by)[:\s]+(.+?)(?:\n|$)`),
	},
	"manufacturer_address": {
		regexp.MustCompile(`(?i)(?:manufacturer\s*address|company\s*address|business\s*address)[:\s]+(.+?)(?:\n|$)`),
	},
	"contact_email_or_url": {
		regexp.MustCompile(`(?i)(?:contact\s*us|customer\s*service|support|email)[:\s]+(.+?)(?:\n|$)`),
		regexp.MustCompile(`(?i)[\w.-]+@[\w.-]+\.\w{2,}`),
	},
	"materials": {
		regexp.MustCompile(`(?i)(?:materials?|composition|made\s*(?:from|of|with)|fabric|ingredients?)[:\s]+(.+?)(?:\n|$)`),
	},
	"country_of_origin": {
		regexp.MustCompile(`(?i)(?:country\s*of\s*origin|made\s*in|manufactured\s*in|origin|product\s*of)[:\s]+(.+?)(?:\n|$)`),
	},
	"warnings": {
		regexp.MustCompile(`(?i)(?:warning|caution|danger|hazard|prop\s*65|⚠)[:\s]+(.+?)(?:\n|$)`),
	},
	"instructions": {
		regexp.MustCompile(`(?i)(?:instructions?|directions?|how\s*to\s*use|usage)[:\s]+(.+?)(?:\n|$)`),
	},
	"care_instructions": {
		regexp.MustCompile(`(?i)(?:care\s*instructions?|wash|cleaning|maintenance)[:\s]+(.+?)(?:\n|$)`),
	},
	"marketing_claims": {
		regexp.MustCompile(`(?i)(?:features?|benefits?|highlights?)[:\s]+(.+?)(?:\n|$)`),
	},
	"certifications": {
		regexp.MustCompile(`(?i)(?:certif(?:ied|ication)|certified\s*by|compliant|approved\s*by|tested\s*by)[:\s]+(.+?)(?:\n|$)`),
	},
}

// DetectField resolves one field against meta tags first, then text
// patterns. Fields absent from both lookup tables always resolve to missing.
func DetectField(key, text string, meta map[string]string) Detection {
	for _, mk := range metaKeyAliases[key] {
		if v := meta[mk]; v != "" {
			return Detection{Status: StatusFound, Value: v, Confidence: confidenceMeta}
		}
	}

	for _, pat := range fieldSearchPatterns[key] {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value := ""
		if len(m) > 1 {
			value = strings.TrimSpace(m[1])
		}
		if value == "" {
			value = strings.TrimSpace(m[0])
		}
		return Detection{Status: StatusFound, Value: value, Confidence: confidenceText}
	}

	return Detection{Status: StatusMissing, Confidence: confidenceMissing}
}

// EvaluateFields runs DetectField over the catalog in group-then-definition
// order. Output length always equals the catalog size.
func EvaluateFields(snap *snapshot.PageSnapshot, category Category) []FieldResult {
	set := rulesFor(category)
	results := make([]FieldResult, 0, FieldCount())

	for _, group := range set.groups {
		for _, field := range group.Fields {
			det := DetectField(field.Key, snap.TextContent, snap.Meta)
			results = append(results, FieldResult{
				Key:        field.Key,
				Group:      group.Group,
				Required:   field.Required,
				Status:     det.Status,
				Value:      det.Value,
				Confidence: det.Confidence,
			})
		}
	}

	return results
}

// contextRadius is the claim context window, in bytes each side.
const contextRadius = 40

// DetectClaims flags catalogued keywords appearing in the page text.
// Matching is case-insensitive and whole-word; one flag per keyword with the
// context of its first occurrence, sliced from the original-case text.
func DetectClaims(snap *snapshot.PageSnapshot) []ClaimFlag {
	var flags []ClaimFlag
	text := snap.TextContent

	for _, kw := range claimKeywords {
		loc := claimRegexps[kw.Pattern].FindStringIndex(text)
		if loc == nil {
			continue
		}
		start := loc[0] - contextRadius
		if start < 0 {
			start = 0
		}
		end := loc[1] + contextRadius
		if end > len(text) {
			end = len(text)
		}
		flags = append(flags, ClaimFlag{
			Claim:            kw.Pattern,
			RiskLevel:        kw.RiskLevel,
			EvidenceRequired: kw.EvidenceRequired,
			Source:           strings.TrimSpace(text[start:end]),
		})
	}

	return flags
}

// Results pairs the two rule-engine outputs for one scan.
type Results struct {
	Fields []FieldResult `json:"fields"`
	Claims []ClaimFlag   `json:"claims"`
}

// Run composes field evaluation and claim detection. Pure: no side effects,
// no I/O.
func Run(snap *snapshot.PageSnapshot, category Category) Results {
	return Results{
		Fields: EvaluateFields(snap, category),
		Claims: DetectClaims(snap),
	}
}
