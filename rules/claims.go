// CLAUDE:SUMMARY Static marketing-claim keyword catalog with risk levels and evidence requirements.
package rules

import "regexp"

// RiskLevel grades how much substantiation a claim demands.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ClaimKeyword is one marketing assertion subject to evidence requirements.
type ClaimKeyword struct {
	Pattern          string    `json:"pattern"`
	RiskLevel        RiskLevel `json:"riskLevel"`
	EvidenceRequired string    `json:"evidenceRequired"`
}

// claimKeywords is the fixed claim catalog, tested in this order.
var claimKeywords = []ClaimKeyword{
	{Pattern: "eco-friendly", RiskLevel: RiskHigh, EvidenceRequired: "Third-party environmental certification"},
	{Pattern: "sustainable", RiskLevel: RiskHigh, EvidenceRequired: "Sustainability certification or lifecycle analysis"},
	{Pattern: "biodegradable", RiskLevel: RiskHigh, EvidenceRequired: "Biodegradability test results (e.g., ASTM D6400)"},
	{Pattern: "non-toxic", RiskLevel: RiskHigh, EvidenceRequired: "Toxicology report or safety data sheet"},
	{Pattern: "organic", RiskLevel: RiskMedium, EvidenceRequired: "Organic certification (e.g., USDA, GOTS)"},
	{Pattern: "natural", RiskLevel: RiskMedium, EvidenceRequired: "Ingredient/material disclosure substantiating claim"},
	{Pattern: "hypoallergenic", RiskLevel: RiskMedium, EvidenceRequired: "Dermatological testing results"},
	{Pattern: "recyclable", RiskLevel: RiskLow, EvidenceRequired: "Material composition confirming recyclability"},
	{Pattern: "vegan", RiskLevel: RiskLow, EvidenceRequired: "Material/ingredient list confirming no animal products"},
	{Pattern: "cruelty-free", RiskLevel: RiskMedium, EvidenceRequired: "Cruelty-free certification (e.g., Leaping Bunny, PETA)"},
}

// claimRegexps holds the compiled case-insensitive whole-word matcher for
// each catalogued keyword, keyed by pattern.
var claimRegexps = compileClaimRegexps()

func compileClaimRegexps() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(claimKeywords))
	for _, kw := range claimKeywords {
		res[kw.Pattern] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw.Pattern) + `\b`)
	}
	return res
}

// ClaimKeywords returns the claim catalog in matching order.
func ClaimKeywords() []ClaimKeyword {
	return claimKeywords
}
