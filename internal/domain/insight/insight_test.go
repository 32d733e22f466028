package insight

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comms_governance/internal/domain/communication"
)

func TestProjectKeepsOnlyAnalyticalFields(t *testing.T) {
	entries := []communication.Entry{{
		ID:              "secret-id",
		Title:           "Salary adjustments",
		Channel:         communication.ChannelEmail,
		Objective:       communication.ObjectiveInform,
		Type:            communication.TypeCompensation,
		IsComprehended:  communication.ComprehensionPartially,
		ReturnIndicator: "12 questions",
		EvidenceLink:    "data:image/png;base64,AAAA",
		BudgetedValue:   decimal.NewFromInt(900),
	}}

	prompt, err := BuildPrompt(Project(entries))
	require.NoError(t, err)

	assert.Contains(t, prompt, `"channel":"E-mail"`)
	assert.Contains(t, prompt, `"isComprehended":"Partially"`)
	assert.Contains(t, prompt, `"returnIndicator":"12 questions"`)
	assert.NotContains(t, prompt, "Salary adjustments")
	assert.NotContains(t, prompt, "secret-id")
	assert.NotContains(t, prompt, "base64")
	assert.NotContains(t, prompt, "900")
}

func TestBuildPromptWithNoEntriesEmbedsEmptyArray(t *testing.T) {
	prompt, err := BuildPrompt(nil)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Data: []")
}

func TestParseReport(t *testing.T) {
	r, err := ParseReport("```json\n{\"insights\":[\"a\"],\"suggestions\":[]}\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, r.Insights)
	assert.Equal(t, []string{}, r.Suggestions)

	_, err = ParseReport(`{"insights":null,"suggestions":["b","c","d","e"]}`)
	assert.ErrorIs(t, err, ErrMalformedResponse)

	_, err = ParseReport(`{"insights":["a"]}`)
	assert.ErrorIs(t, err, ErrMalformedResponse)

	_, err = ParseReport("I cannot help with that")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestOutcomeFlattensReport(t *testing.T) {
	data, err := json.Marshal(Outcome{Report: Fallback(), Seq: 3, Fallback: true})
	require.NoError(t, err)
	s := string(data)
	assert.True(t, strings.HasPrefix(s, `{"insights":[`), s)
	assert.Contains(t, s, `"suggestions":[`)
	assert.Contains(t, s, `"fallback":true`)
	assert.Len(t, Fallback().Insights, 3)
	assert.Len(t, Fallback().Suggestions, 3)
}
