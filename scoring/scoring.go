// CLAUDE:SUMMARY Penalty-weight arithmetic: missing-field and claim penalties into a risk score.
// Package scoring turns rule-engine detections into a numeric risk score.
//
// Missing fields and unsubstantiated claims each contribute a weighted
// penalty; the aggregate is reported against the worst-case achievable total
// so consumers can render a completeness percentage.
package scoring

import (
	"fmt"
	"strings"

	"github.com/openthreads/threadmark/rules"
)

// Field penalty weights.
const (
	RequiredFieldWeight = 10
	OptionalFieldWeight = 3
)

// ClaimRiskWeights maps a claim's risk level to its penalty weight.
var ClaimRiskWeights = map[rules.RiskLevel]int{
	rules.RiskLow:    2,
	rules.RiskMedium: 5,
	rules.RiskHigh:   8,
}

// FieldPenalty is the risk contribution of one missing field.
type FieldPenalty struct {
	Key      string `json:"key"`
	Group    string `json:"group"`
	Required bool   `json:"required"`
	Penalty  int    `json:"penalty"`
	Reason   string `json:"reason"`
}

// ClaimPenalty is the risk contribution of one unsubstantiated claim.
type ClaimPenalty struct {
	Claim     string          `json:"claim"`
	RiskLevel rules.RiskLevel `json:"riskLevel"`
	Penalty   int             `json:"penalty"`
	Reason    string          `json:"reason"`
}

// RiskScoreBreakdown is the scored outcome of one scan.
// Invariant: Score <= MaxScore, because each field penalty is bounded by its
// term in the max field score and claim-penalty terms appear identically on
// both sides.
type RiskScoreBreakdown struct {
	Score          int            `json:"score"`
	MaxScore       int            `json:"maxScore"`
	FieldPenalties []FieldPenalty `json:"fieldPenalties"`
	ClaimPenalties []ClaimPenalty `json:"claimPenalties"`
}

// FieldPenalties emits one penalty per field with status exactly missing.
// Partial detections are intentionally not penalized.
func FieldPenalties(fields []rules.FieldResult) []FieldPenalty {
	var penalties []FieldPenalty
	for _, f := range fields {
		if f.Status != rules.StatusMissing {
			continue
		}
		weight := OptionalFieldWeight
		kind := "Optional"
		if f.Required {
			weight = RequiredFieldWeight
			kind = "Required"
		}
		penalties = append(penalties, FieldPenalty{
			Key:      f.Key,
			Group:    f.Group,
			Required: f.Required,
			Penalty:  weight,
			Reason:   fmt.Sprintf("%s field %q is missing", kind, f.Key),
		})
	}
	return penalties
}

// ClaimPenalties emits one penalty per distinct claim keyword
// (case-insensitive dedup, first occurrence order preserved).
func ClaimPenalties(claims []rules.ClaimFlag) []ClaimPenalty {
	seen := make(map[string]struct{})
	var penalties []ClaimPenalty
	for _, c := range claims {
		key := strings.ToLower(c.Claim)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		penalties = append(penalties, ClaimPenalty{
			Claim:     c.Claim,
			RiskLevel: c.RiskLevel,
			Penalty:   ClaimRiskWeights[c.RiskLevel],
			Reason:    fmt.Sprintf("Unsubstantiated %q claim (%s risk)", c.Claim, c.RiskLevel),
		})
	}
	return penalties
}

// MaxFieldScore sums the weights as if every field were missing, regardless
// of actual status.
func MaxFieldScore(fields []rules.FieldResult) int {
	max := 0
	for _, f := range fields {
		if f.Required {
			max += RequiredFieldWeight
		} else {
			max += OptionalFieldWeight
		}
	}
	return max
}

// RiskScore computes the full breakdown. The max score assumes worst-case
// field completeness but only actually-detected claims: a flagged claim is
// evidence of a real problem, not a missing-data gap, so claims cannot be
// "maximally" worse than what was found.
func RiskScore(fields []rules.FieldResult, claims []rules.ClaimFlag) RiskScoreBreakdown {
	fieldPenalties := FieldPenalties(fields)
	claimPenalties := ClaimPenalties(claims)

	score := 0
	for _, p := range fieldPenalties {
		score += p.Penalty
	}
	claimScore := 0
	for _, p := range claimPenalties {
		claimScore += p.Penalty
	}

	return RiskScoreBreakdown{
		Score:          score + claimScore,
		MaxScore:       MaxFieldScore(fields) + claimScore,
		FieldPenalties: fieldPenalties,
		ClaimPenalties: claimPenalties,
	}
}
