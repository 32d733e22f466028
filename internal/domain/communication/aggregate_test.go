package communication

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestAggregateKeepsFirstOccurrenceOrder(t *testing.T) {
	a := validEntry("a", "x")
	a.Channel = ChannelEmail
	a.Type = TypeAudit
	b := validEntry("b", "y")
	b.Channel = ChannelTV
	c := validEntry("c", "z")
	c.Channel = ChannelEmail
	c.IsComprehended = ComprehensionNo

	stats := Aggregate([]Entry{a, b, c})

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, Counts{{Name: "E-mail", Value: 2}, {Name: "TV", Value: 1}}, stats.ChannelCounts)
	assert.Equal(t, Counts{{Name: "Audit", Value: 1}}, stats.TypeCounts)
	assert.Equal(t, Counts{{Name: "Yes", Value: 2}, {Name: "Partially", Value: 0}, {Name: "No", Value: 1}}, stats.EffectivenessCounts)
}

func TestAggregateOfNothing(t *testing.T) {
	stats := Aggregate(nil)
	assert.Equal(t, 0, stats.Total)
	assert.Empty(t, stats.ChannelCounts)
	require.Len(t, stats.EffectivenessCounts, 3)
	assert.Equal(t, 0, stats.EffectivenessCounts.Sum())
	assert.True(t, stats.TotalBudgeted.IsZero())
	assert.True(t, stats.TotalSpent.IsZero())
}

func TestAggregateSumsCentsWithoutDrift(t *testing.T) {
	entries := make([]Entry, 0, 1000)
	for i := 0; i < 1000; i++ {
		e := validEntry("id", "x")
		e.BudgetedValue = decimal.RequireFromString("0.10")
		entries = append(entries, e)
	}
	stats := Aggregate(entries)
	assert.Equal(t, "100", stats.TotalBudgeted.String())
	assert.Equal(t, "100", stats.Balance.String())
}

func TestAggregateEffectivenessAlwaysHasThreeKeys(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		entries := rapid.SliceOf(entryGen()).Draw(rt, "entries")
		stats := Aggregate(entries)
		if len(stats.EffectivenessCounts) != 3 {
			rt.Fatalf("got %d keys", len(stats.EffectivenessCounts))
		}
		for i, level := range ComprehensionLevels {
			if stats.EffectivenessCounts[i].Name != string(level) {
				rt.Fatalf("key %d is %q, want %q", i, stats.EffectivenessCounts[i].Name, level)
			}
		}
		if stats.EffectivenessCounts.Sum() != len(entries) {
			rt.Fatalf("sum %d, want %d", stats.EffectivenessCounts.Sum(), len(entries))
		}
	})
}

func TestAggregateTotalsEqualArithmeticSum(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		entries := rapid.SliceOf(entryGen()).Draw(rt, "entries")
		var budgetCents, spentCents int64
		for _, e := range entries {
			budgetCents += e.BudgetedValue.Shift(2).IntPart()
			spentCents += e.SpentValue.Shift(2).IntPart()
		}
		stats := Aggregate(entries)
		if !stats.TotalBudgeted.Equal(decimal.New(budgetCents, -2)) {
			rt.Fatalf("budgeted %s, want %d cents", stats.TotalBudgeted, budgetCents)
		}
		if !stats.TotalSpent.Equal(decimal.New(spentCents, -2)) {
			rt.Fatalf("spent %s, want %d cents", stats.TotalSpent, spentCents)
		}
		if stats.ChannelCounts.Sum() != len(entries) || stats.AudienceCounts.Sum() != len(entries) {
			rt.Fatalf("channel/audience counts do not cover every entry")
		}
	})
}

func TestAggregateTreatsZeroValueAmountsAsZero(t *testing.T) {
	a := Entry{Channel: ChannelTV, Audience: AudienceOperational, IsComprehended: ComprehensionYes}
	b := validEntry("b", "y")
	b.BudgetedValue = decimal.NewFromInt(1500)

	stats := Aggregate([]Entry{a, b})
	assert.True(t, stats.TotalBudgeted.Equal(decimal.NewFromInt(1500)))
	assert.True(t, stats.TotalSpent.IsZero())
}
