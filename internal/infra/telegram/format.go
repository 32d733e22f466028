package telegram

import (
	"fmt"
	"strings"

	"comms_governance/internal/app"
	"comms_governance/internal/domain/calendar"
	"comms_governance/internal/domain/communication"
	"comms_governance/internal/domain/insight"
)

func formatEntry(e communication.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", e.Title, e.Date)
	fmt.Fprintf(&b, "  id: %s\n", e.ID)
	fmt.Fprintf(&b, "  %s · %s · %s", e.Channel, e.Audience, e.Status)
	if e.Type != "" {
		fmt.Fprintf(&b, " · %s", e.Type)
	}
	fmt.Fprintf(&b, "\n  comprehended: %s", e.IsComprehended)
	if e.ReturnIndicator != "" {
		fmt.Fprintf(&b, ", return: %s", e.ReturnIndicator)
	}
	if !e.BudgetedValue.IsZero() || !e.SpentValue.IsZero() {
		fmt.Fprintf(&b, "\n  budget: %s, spent: %s", e.BudgetedValue.StringFixed(2), e.SpentValue.StringFixed(2))
	}
	return b.String()
}

func formatList(res app.QueryResult) string {
	if res.Count == 0 {
		if res.Filtered {
			return "No communication matches these filters."
		}
		return "No communication registered yet. Use /register to add one."
	}
	parts := make([]string, 0, res.Count+1)
	parts = append(parts, fmt.Sprintf("%d communication(s):", res.Count))
	for _, e := range res.Entries {
		parts = append(parts, formatEntry(e))
	}
	return strings.Join(parts, "\n\n")
}

func formatCounts(counts communication.Counts) string {
	if len(counts) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		parts = append(parts, fmt.Sprintf("%s %d", c.Name, c.Value))
	}
	return strings.Join(parts, ", ")
}

func formatStats(s communication.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Communications: %d\n", s.Total)
	fmt.Fprintf(&b, "Channels: %s\n", formatCounts(s.ChannelCounts))
	fmt.Fprintf(&b, "Types: %s\n", formatCounts(s.TypeCounts))
	fmt.Fprintf(&b, "Audiences: %s\n", formatCounts(s.AudienceCounts))
	fmt.Fprintf(&b, "Statuses: %s\n", formatCounts(s.StatusCounts))
	fmt.Fprintf(&b, "Effectiveness: %s\n", formatCounts(s.EffectivenessCounts))
	fmt.Fprintf(&b, "Budgeted: %s\n", s.TotalBudgeted.StringFixed(2))
	fmt.Fprintf(&b, "Spent: %s\n", s.TotalSpent.StringFixed(2))
	fmt.Fprintf(&b, "Balance: %s", s.Balance.StringFixed(2))
	return b.String()
}

// formatMonth lists only the days that carry entries or a holiday.
func formatMonth(m calendar.Month) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d", m.Month, m.Year)
	busy := false
	for _, d := range m.Days {
		if len(d.Entries) == 0 && d.Holiday == nil {
			continue
		}
		busy = true
		fmt.Fprintf(&b, "\n\n%02d", d.Day)
		if d.Holiday != nil {
			fmt.Fprintf(&b, " [holiday: %s]", d.Holiday.Name)
		}
		for _, e := range d.Entries {
			fmt.Fprintf(&b, "\n  • %s (%s)", e.Title, e.Channel)
		}
	}
	if !busy {
		b.WriteString("\n\nNothing scheduled.")
	}
	return b.String()
}

func formatOutcome(o insight.Outcome) string {
	var b strings.Builder
	if o.Fallback {
		b.WriteString("AI analysis unavailable, showing default guidance.\n\n")
	}
	b.WriteString("Insights:")
	for _, s := range o.Insights {
		fmt.Fprintf(&b, "\n• %s", s)
	}
	b.WriteString("\n\nSuggestions:")
	for _, s := range o.Suggestions {
		fmt.Fprintf(&b, "\n• %s", s)
	}
	return b.String()
}

func formatValidation(verr *communication.ValidationError) string {
	return "Could not save the communication: " + strings.TrimPrefix(verr.Error(), communication.ErrValidation.Error()+": ")
}
