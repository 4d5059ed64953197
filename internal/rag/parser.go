package rag

import "strings"

const (
	labelRecommendation = "RECOMMENDATION:"
	labelRationale      = "RATIONALE:"
	labelAssumptions    = "ASSUMPTIONS:"

	defaultRecommendation = "keep"
)

// Outcome tells whether any receipt label was found in the model output.
type Outcome int

const (
	OutcomeFallback Outcome = iota
	OutcomeParsed
)

func (o Outcome) String() string {
	if o == OutcomeParsed {
		return "parsed"
	}
	return "fallback"
}

type ParsedReceipt struct {
	Recommendation string
	Rationale      string
	Assumptions    []string
	Outcome        Outcome
}

// ParseReceipt reads the RECOMMENDATION/RATIONALE/ASSUMPTIONS lines out of
// generated text. It never fails: missing labels keep their defaults, and a
// repeated label keeps its last value. The recommendation is not checked
// against Recommendations.
func ParseReceipt(text string) ParsedReceipt {
	out := ParsedReceipt{
		Recommendation: defaultRecommendation,
		Rationale:      DeclineSentence,
		Assumptions:    []string{},
		Outcome:        OutcomeFallback,
	}
	assumptions := "none"

	for _, line := range strings.Split(text, "\n") {
		t := strings.TrimSpace(line)
		if v, ok := labelValue(t, labelRecommendation); ok {
			out.Recommendation = v
			out.Outcome = OutcomeParsed
		}
		if v, ok := labelValue(t, labelRationale); ok {
			out.Rationale = v
			out.Outcome = OutcomeParsed
		}
		if v, ok := labelValue(t, labelAssumptions); ok {
			assumptions = v
			out.Outcome = OutcomeParsed
		}
	}

	out.Assumptions = splitAssumptions(assumptions)
	return out
}

func labelValue(line, label string) (string, bool) {
	if len(line) < len(label) || !strings.EqualFold(line[:len(label)], label) {
		return "", false
	}
	return strings.TrimSpace(line[len(label):]), true
}

func splitAssumptions(raw string) []string {
	if raw == "" || strings.EqualFold(raw, "none") {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
