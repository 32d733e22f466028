package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"comms_governance/internal/domain/communication"
)

var (
	ErrNoCredentials     = errors.New("insight generator is not configured")
	ErrMalformedResponse = errors.New("insight response is not the expected JSON object")
)

// Generator sends a prompt to a generative-language service and returns its raw text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Projection is the only slice of an entry that leaves the system. Titles, evidence
// and money stay behind.
type Projection struct {
	Channel         communication.Channel           `json:"channel"`
	Objective       communication.Objective         `json:"objective"`
	Type            communication.CommunicationType `json:"type"`
	IsComprehended  communication.Comprehension     `json:"isComprehended"`
	ReturnIndicator string                          `json:"returnIndicator"`
}

func Project(entries []communication.Entry) []Projection {
	out := make([]Projection, 0, len(entries))
	for _, e := range entries {
		out = append(out, Projection{
			Channel:         e.Channel,
			Objective:       e.Objective,
			Type:            e.Type,
			IsComprehended:  e.IsComprehended,
			ReturnIndicator: e.ReturnIndicator,
		})
	}
	return out
}

const promptTemplate = `Analyse the following internal communication governance data and provide 3 strategic insights and 3 improvement suggestions for the HR team.
Consider channels, objectives and effectiveness.

Data: %s

Answer in JSON with the fields "insights" and "suggestions", both arrays of strings.`

// BuildPrompt embeds the projections as a JSON array in the instruction text.
func BuildPrompt(projections []Projection) (string, error) {
	if projections == nil {
		projections = []Projection{}
	}
	data, err := json.Marshal(projections)
	if err != nil {
		return "", fmt.Errorf("encoding insight projections: %w", err)
	}
	return fmt.Sprintf(promptTemplate, data), nil
}

// Report is the narrative result. Both lists are usually three items long, but
// consumers must accept any length.
type Report struct {
	Insights    []string `json:"insights"`
	Suggestions []string `json:"suggestions"`
}

// ParseReport decodes a generator answer. Both fields must be present; a fenced
// ```json block is tolerated.
func ParseReport(text string) (Report, error) {
	body := strings.TrimSpace(text)
	body = strings.TrimPrefix(body, "```json")
	body = strings.TrimPrefix(body, "```")
	body = strings.TrimSuffix(body, "```")

	var raw struct {
		Insights    *[]string `json:"insights"`
		Suggestions *[]string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(body)), &raw); err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if raw.Insights == nil || raw.Suggestions == nil {
		return Report{}, fmt.Errorf("%w: missing insights or suggestions", ErrMalformedResponse)
	}
	return Report{Insights: *raw.Insights, Suggestions: *raw.Suggestions}.normalized(), nil
}

func (r Report) normalized() Report {
	if r.Insights == nil {
		r.Insights = []string{}
	}
	if r.Suggestions == nil {
		r.Suggestions = []string{}
	}
	return r
}

// Fallback is the fixed answer shown whenever the generator cannot be used.
func Fallback() Report {
	return Report{
		Insights: []string{
			"Not enough data for an in-depth analysis.",
			"Digital channels stand out in the current mix.",
			"Keep monitoring feedback returns.",
		},
		Suggestions: []string{
			"Standardise the return KPIs.",
			"Diversify channels for the operational audience.",
			"Run periodic audits.",
		},
	}
}

// Outcome is what callers display: a report, where it came from and which request
// produced it.
type Outcome struct {
	Report
	Seq         uint64    `json:"seq"`
	Fallback    bool      `json:"fallback"`
	Stale       bool      `json:"stale"`
	Reason      string    `json:"reason,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`
}
