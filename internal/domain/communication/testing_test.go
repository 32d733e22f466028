package communication

import (
	"fmt"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"
)

func validEntry(id, title string) Entry {
	return Entry{
		ID:             id,
		Title:          title,
		Date:           "2024-03-10",
		Channel:        ChannelTV,
		Audience:       AudienceOperational,
		IsComprehended: ComprehensionYes,
		Status:         StatusPlanned,
		BudgetedValue:  decimal.Zero,
		SpentValue:     decimal.Zero,
	}
}

// entryGen draws entries from the closed domains with cent-precision amounts.
func entryGen() *rapid.Generator[Entry] {
	return rapid.Custom(func(t *rapid.T) Entry {
		day := rapid.IntRange(1, 28).Draw(t, "day")
		return Entry{
			ID:             rapid.StringMatching(`[a-z0-9]{8}`).Draw(t, "id"),
			Title:          rapid.StringMatching(`[A-Za-z ]{1,20}`).Draw(t, "title"),
			Date:           fmt.Sprintf("2024-%02d-%02d", rapid.IntRange(1, 12).Draw(t, "month"), day),
			Channel:        rapid.SampledFrom(Channels).Draw(t, "channel"),
			Audience:       rapid.SampledFrom(Audiences).Draw(t, "audience"),
			Type:           rapid.SampledFrom(append([]CommunicationType{""}, CommunicationTypes...)).Draw(t, "type"),
			IsComprehended: rapid.SampledFrom(ComprehensionLevels).Draw(t, "comprehended"),
			Status:         rapid.SampledFrom(Statuses).Draw(t, "status"),
			BudgetedValue:  decimal.New(rapid.Int64Range(0, 10_000_000).Draw(t, "budgetCents"), -2),
			SpentValue:     decimal.New(rapid.Int64Range(0, 10_000_000).Draw(t, "spentCents"), -2),
		}
	})
}
