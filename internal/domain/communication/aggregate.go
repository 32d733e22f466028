package communication

import "github.com/shopspring/decimal"

// Count is one bar or slice of a chart.
type Count struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Counts keeps the order in which keys were first seen.
type Counts []Count

// Get returns the count for name, zero when absent.
func (c Counts) Get(name string) int {
	for _, item := range c {
		if item.Name == name {
			return item.Value
		}
	}
	return 0
}

// Sum adds up every value.
func (c Counts) Sum() int {
	total := 0
	for _, item := range c {
		total += item.Value
	}
	return total
}

type counter struct {
	index map[string]int
	items Counts
}

func newCounter(preset ...string) *counter {
	c := &counter{index: make(map[string]int, len(preset)), items: make(Counts, 0, len(preset))}
	for _, key := range preset {
		c.index[key] = len(c.items)
		c.items = append(c.items, Count{Name: key})
	}
	return c
}

func (c *counter) inc(key string) {
	if i, ok := c.index[key]; ok {
		c.items[i].Value++
		return
	}
	c.index[key] = len(c.items)
	c.items = append(c.items, Count{Name: key, Value: 1})
}

// incKnown only counts keys the counter was preset with.
func (c *counter) incKnown(key string) {
	if i, ok := c.index[key]; ok {
		c.items[i].Value++
	}
}

// Stats is the reporting projection of the registry.
type Stats struct {
	Total               int             `json:"total"`
	ChannelCounts       Counts          `json:"channelCounts"`
	TypeCounts          Counts          `json:"typeCounts"`
	AudienceCounts      Counts          `json:"audienceCounts"`
	StatusCounts        Counts          `json:"statusCounts"`
	EffectivenessCounts Counts          `json:"effectivenessCounts"`
	TotalBudgeted       decimal.Decimal `json:"totalBudgeted"`
	TotalSpent          decimal.Decimal `json:"totalSpent"`
	Balance             decimal.Decimal `json:"balance"`
}

// Aggregate computes every grouped count and money total in a single pass.
// Effectiveness always lists Yes, Partially and No; other groups only hold
// observed values. Entries without a type are left out of TypeCounts.
func Aggregate(entries []Entry) Stats {
	levels := make([]string, len(ComprehensionLevels))
	for i, level := range ComprehensionLevels {
		levels[i] = string(level)
	}

	channels := newCounter()
	types := newCounter()
	audiences := newCounter()
	statuses := newCounter()
	effectiveness := newCounter(levels...)
	budgeted := decimal.Zero
	spent := decimal.Zero

	for _, e := range entries {
		channels.inc(string(e.Channel))
		if e.Type != "" {
			types.inc(string(e.Type))
		}
		audiences.inc(string(e.Audience))
		statuses.inc(string(e.Status))
		effectiveness.incKnown(string(e.IsComprehended))
		budgeted = budgeted.Add(e.BudgetedValue)
		spent = spent.Add(e.SpentValue)
	}

	return Stats{
		Total:               len(entries),
		ChannelCounts:       channels.items,
		TypeCounts:          types.items,
		AudienceCounts:      audiences.items,
		StatusCounts:        statuses.items,
		EffectivenessCounts: effectiveness.items,
		TotalBudgeted:       budgeted,
		TotalSpent:          spent,
		Balance:             budgeted.Sub(spent),
	}
}
