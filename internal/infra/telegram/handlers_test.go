package telegram

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"

	"comms_governance/internal/app"
	"comms_governance/internal/domain/calendar"
	"comms_governance/internal/infra/memory"
)

// fakeContext implements the parts of telebot.Context the handlers use.
type fakeContext struct {
	telebot.Context
	payload   string
	callback  *telebot.Callback
	sent      []string
	options   [][]interface{}
	edited    string
	responded bool
}

func (f *fakeContext) Message() *telebot.Message { return &telebot.Message{Payload: f.payload} }
func (f *fakeContext) Sender() *telebot.User     { return &telebot.User{ID: 7, FirstName: "Ana"} }
func (f *fakeContext) Callback() *telebot.Callback {
	return f.callback
}
func (f *fakeContext) Notify(telebot.ChatAction) error { return nil }

func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	f.sent = append(f.sent, what.(string))
	f.options = append(f.options, opts)
	return nil
}

func (f *fakeContext) Edit(what interface{}, opts ...interface{}) error {
	f.edited = what.(string)
	return nil
}

func (f *fakeContext) Respond(...*telebot.CallbackResponse) error {
	f.responded = true
	return nil
}

func (f *fakeContext) last() string {
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1]
}

type fakeRegistrar struct {
	endpoints []interface{}
}

func (r *fakeRegistrar) Handle(endpoint interface{}, _ telebot.HandlerFunc, _ ...telebot.MiddlewareFunc) {
	r.endpoints = append(r.endpoints, endpoint)
}

type staticGenerator string

func (g staticGenerator) Generate(context.Context, string) (string, error) { return string(g), nil }

func newHandlers(t *testing.T) *Handlers {
	t.Helper()
	l, _ := test.NewNullLogger()
	log := logrus.NewEntry(l)
	reg, err := memory.NewRegistry(app.SampleEntries())
	require.NoError(t, err)
	registry := app.NewRegistryService(reg, calendar.DefaultHolidays, log)
	insights := app.NewInsightService(staticGenerator(`{"insights":["TV reaches operations"],"suggestions":["Keep it"]}`), time.Second, log)
	h := NewHandlers(registry, insights, log)
	h.now = func() time.Time { return time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC) }
	return h
}

func TestRegisterBotCommands(t *testing.T) {
	r := &fakeRegistrar{}
	newHandlers(t).RegisterBotCommands(r)
	assert.Contains(t, r.endpoints, "/register")
	assert.Contains(t, r.endpoints, "/insights")
	assert.Len(t, r.endpoints, 9)
	assert.Len(t, Commands(), 7)
}

func TestHandleListWithFilters(t *testing.T) {
	h := newHandlers(t)

	c := &fakeContext{payload: "channel=TV"}
	require.NoError(t, h.handleList(c))
	assert.Contains(t, c.last(), "1 communication(s):")
	assert.Contains(t, c.last(), "Workplace Safety Campaign")
	assert.NotContains(t, c.last(), "New Vacation Policy Notice")

	c = &fakeContext{payload: "channel=WhatsApp"}
	require.NoError(t, h.handleList(c))
	assert.Equal(t, "No communication matches these filters.", c.last())

	c = &fakeContext{payload: "channel=fax"}
	require.NoError(t, h.handleList(c))
	assert.Contains(t, c.last(), "Invalid filters")
}

func TestHandleRegisterAndUpdate(t *testing.T) {
	h := newHandlers(t)

	c := &fakeContext{payload: "title=Safety Week; date=2024-03-20; channel=tv; audience=Operational; budget=300"}
	require.NoError(t, h.handleRegister(c))
	require.True(t, strings.HasPrefix(c.last(), "Registered:"), c.last())

	all, err := h.registry.Entries(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	id := all[0].ID
	assert.Equal(t, "Safety Week", all[0].Title)

	c = &fakeContext{payload: id + " title=Safety Week II; date=2024-03-21; channel=TV; audience=Operational; status=Executed"}
	require.NoError(t, h.handleUpdate(c))
	assert.True(t, strings.HasPrefix(c.last(), "Updated:"), c.last())

	got, err := h.registry.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Safety Week II", got.Title)
	assert.True(t, got.BudgetedValue.IsZero(), "update replaces wholesale")
}

func TestHandleRegisterRejections(t *testing.T) {
	h := newHandlers(t)

	c := &fakeContext{payload: "title=Only a title"}
	require.NoError(t, h.handleRegister(c))
	assert.Contains(t, c.last(), "Could not save the communication")
	assert.Contains(t, c.last(), "channel required")

	c = &fakeContext{}
	require.NoError(t, h.handleRegister(c))
	assert.Contains(t, c.last(), "Usage: /register")

	c = &fakeContext{payload: "ghost title=x; date=2024-01-01; channel=TV; audience=Everyone"}
	require.NoError(t, h.handleUpdate(c))
	assert.Equal(t, "No communication with id ghost.", c.last())
}

func TestHandleRegisterAcceptsGroupedAmounts(t *testing.T) {
	h := newHandlers(t)

	c := &fakeContext{payload: "title=Town Hall; date=2024-03-22; channel=Meeting; audience=Everyone; budget=1.500,00; spent=1,250.75"}
	require.NoError(t, h.handleRegister(c))
	require.True(t, strings.HasPrefix(c.last(), "Registered:"), c.last())

	all, err := h.registry.Entries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1500", all[0].BudgetedValue.String())
	assert.Equal(t, "1250.75", all[0].SpentValue.String())

	c = &fakeContext{payload: "title=Huge; date=2024-03-22; channel=Meeting; audience=Everyone; budget=1e20000000"}
	require.NoError(t, h.handleRegister(c))
	assert.Contains(t, c.last(), "budgetedValue max")

	c = &fakeContext{}
	require.NoError(t, h.handleHelp(c))
	assert.Contains(t, c.last(), "1.500,50")
}

func TestHandleStats(t *testing.T) {
	c := &fakeContext{}
	require.NoError(t, newHandlers(t).handleStats(c))
	assert.Contains(t, c.last(), "Communications: 2")
	assert.Contains(t, c.last(), "Channels: TV 1, E-mail 1")
	assert.Contains(t, c.last(), "Budgeted: 1500.00")
	assert.Contains(t, c.last(), "Balance: 250.00")
}

func TestHandleCalendarDefaultsToCurrentMonth(t *testing.T) {
	c := &fakeContext{}
	require.NoError(t, newHandlers(t).handleCalendar(c))
	assert.True(t, strings.HasPrefix(c.last(), "March 2024"), c.last())
	assert.Contains(t, c.last(), "10\n  • Workplace Safety Campaign (TV)")

	require.Len(t, c.options[len(c.options)-1], 1)
	markup, ok := c.options[len(c.options)-1][0].(*telebot.ReplyMarkup)
	require.True(t, ok)
	require.Len(t, markup.InlineKeyboard, 1)
	assert.Equal(t, "2024-02", markup.InlineKeyboard[0][0].Data)
	assert.Equal(t, "2024-04", markup.InlineKeyboard[0][1].Data)
}

func TestHandleCalendarArgumentAndPaging(t *testing.T) {
	h := newHandlers(t)

	c := &fakeContext{payload: "2024-12"}
	require.NoError(t, h.handleCalendar(c))
	assert.Contains(t, c.last(), "25 [holiday: Christmas]")

	c = &fakeContext{payload: "december"}
	require.NoError(t, h.handleCalendar(c))
	assert.Contains(t, c.last(), "Invalid month")

	c = &fakeContext{callback: &telebot.Callback{Data: "2031-11"}}
	require.NoError(t, h.handleCalendarPage(c))
	assert.True(t, c.responded)
	assert.Contains(t, c.edited, "November 2031")
	assert.Contains(t, c.edited, "20 [holiday: Black Consciousness Day]")
}

func TestHandleInsights(t *testing.T) {
	c := &fakeContext{}
	require.NoError(t, newHandlers(t).handleInsights(c))
	assert.Contains(t, c.last(), "• TV reaches operations")
	assert.NotContains(t, c.last(), "unavailable")
}
