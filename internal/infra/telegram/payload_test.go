package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comms_governance/internal/domain/communication"
)

func TestParseDraft(t *testing.T) {
	d, err := ParseDraft("title=Safety Week; date=2024-03-10; Channel=TV; audience=operational; budget=1500; spent=12,50; return=95% viewing")
	require.NoError(t, err)
	assert.Equal(t, "Safety Week", d.Title)
	assert.Equal(t, "2024-03-10", d.Date)
	assert.Equal(t, "TV", d.Channel)
	assert.Equal(t, "operational", d.Audience)
	assert.Equal(t, "1500", d.BudgetedValue)
	assert.Equal(t, "12,50", d.SpentValue)
	assert.Equal(t, "95% viewing", d.ReturnIndicator)
}

func TestParseDraftKeepsEqualsInValues(t *testing.T) {
	d, err := ParseDraft("evidence=https://example.com/a?b=c;")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a?b=c", d.EvidenceLink)
}

func TestParseDraftErrors(t *testing.T) {
	_, err := ParseDraft("title")
	assert.ErrorIs(t, err, ErrBadPayload)

	_, err = ParseDraft("=oops")
	assert.ErrorIs(t, err, ErrBadPayload)

	_, err = ParseDraft("title=x; colour=blue; mood=happy")
	require.ErrorIs(t, err, ErrBadPayload)
	assert.Contains(t, err.Error(), "colour, mood")
}

func TestParsePredicate(t *testing.T) {
	p, err := ParsePredicate("")
	require.NoError(t, err)
	assert.False(t, p.Active())

	p, err = ParsePredicate("channel=e-mail; status=executed; title=vacation")
	require.NoError(t, err)
	assert.Equal(t, communication.ChannelEmail, p.Channel)
	assert.Equal(t, communication.StatusExecuted, p.Status)
	assert.Equal(t, "vacation", p.Title)

	_, err = ParsePredicate("channel=fax")
	assert.ErrorIs(t, err, ErrBadPayload)

	_, err = ParsePredicate("budget=10")
	assert.ErrorIs(t, err, ErrBadPayload)
}

func TestSplitMessage(t *testing.T) {
	assert.Equal(t, []string{"short"}, splitMessage("short", 10))

	text := strings.Repeat("line\n", 5)
	chunks := splitMessage(text, 12)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 12)
	}
	assert.Equal(t, strings.ReplaceAll(text, "\n", ""), strings.ReplaceAll(strings.Join(chunks, ""), "\n", ""))

	runes := splitMessage(strings.Repeat("é", 10), 5)
	for _, c := range runes {
		assert.True(t, strings.ToValidUTF8(c, "?") == c, "chunk %q splits a rune", c)
	}
}
