package pricing

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// maxRepurposeOptions mirrors the prompt's top-5 limit; anything past it is
// discarded even when the model over-delivers.
const maxRepurposeOptions = 5

// RepurposeOption is one second-life product recommendation for a battery.
type RepurposeOption struct {
	ProductName              string  `json:"productName"`
	Description              string  `json:"description"`
	CapacitySpecification    float64 `json:"capacitySpecification"`
	RecoveryValue            float64 `json:"recoveryValue"`
	RecoveryPercentage       float64 `json:"recoveryPercentage"`
	ImplementationComplexity string  `json:"implementationComplexity"`
	MarketDemand             string  `json:"marketDemand"`
	TechnicalViabilityScore  float64 `json:"technicalViabilityScore"`
}

var jsonFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// stripJSONFence unwraps a ```json fenced block if present; otherwise the
// trimmed text is used as-is.
func stripJSONFence(text string) string {
	if m := jsonFenceRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}

// ParseRepurposeOptions is the strict-parse path: the response must be a
// well-formed JSON array (optionally fenced) or the whole payload is
// rejected. Recovery values are used for ranking, so a partially-guessed
// record is worse than no record.
func ParseRepurposeOptions(report string) ([]RepurposeOption, error) {
	payload := stripJSONFence(report)

	var options []RepurposeOption
	if err := json.Unmarshal([]byte(payload), &options); err != nil {
		return nil, fmt.Errorf("repurpose options not valid JSON: %w", err)
	}
	if len(options) > maxRepurposeOptions {
		options = options[:maxRepurposeOptions]
	}
	return options, nil
}
