// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"comms_governance/internal/app"
)

// Registrar is the part of *telebot.Bot handlers are registered on.
type Registrar interface {
	Handle(endpoint interface{}, h telebot.HandlerFunc, m ...telebot.MiddlewareFunc)
}

// Handlers serves the bot commands over the registry and insight services.
type Handlers struct {
	registry *app.RegistryService
	insights *app.InsightService
	logger   *logrus.Entry
	now      func() time.Time
}

func NewHandlers(registry *app.RegistryService, insights *app.InsightService, baseLogger *logrus.Entry) *Handlers {
	return &Handlers{
		registry: registry,
		insights: insights,
		logger:   baseLogger.WithField("component", "telegram"),
		now:      time.Now,
	}
}

// RegisterBotCommands wires every command and callback on b.
func (h *Handlers) RegisterBotCommands(b Registrar) {
	b.Handle("/start", h.handleStart)
	b.Handle("/help", h.handleHelp)
	b.Handle("/list", h.handleList)
	b.Handle("/register", h.handleRegister)
	b.Handle("/update", h.handleUpdate)
	b.Handle("/stats", h.handleStats)
	b.Handle("/calendar", h.handleCalendar)
	b.Handle("/insights", h.handleInsights)
	b.Handle(&telebot.Btn{Unique: calendarPageUnique}, h.handleCalendarPage)
}

// Commands is the menu shown by Telegram clients.
func Commands() []telebot.Command {
	return []telebot.Command{
		{Text: "list", Description: "List communications, optionally filtered"},
		{Text: "register", Description: "Register a communication"},
		{Text: "update", Description: "Replace a communication by id"},
		{Text: "stats", Description: "Dashboard counts and budget"},
		{Text: "calendar", Description: "Monthly calendar with holidays"},
		{Text: "insights", Description: "AI analysis of the registry"},
		{Text: "help", Description: "Show usage"},
	}
}

func (h *Handlers) log(c telebot.Context, handler string) *logrus.Entry {
	fields := logrus.Fields{"handler": handler}
	if c.Sender() != nil {
		fields["sender_id"] = c.Sender().ID
	}
	return h.logger.WithFields(fields)
}

// reply sends text, split over several messages when needed.
func reply(c telebot.Context, text string, opts ...interface{}) error {
	chunks := splitMessage(text, maxMessageLen)
	for i, chunk := range chunks {
		var err error
		if i == len(chunks)-1 {
			err = c.Send(chunk, opts...)
		} else {
			err = c.Send(chunk)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (h *Handlers) handleStart(c telebot.Context) error {
	h.log(c, "/start").Info("Processing /start command")
	name := "there"
	if c.Sender() != nil && c.Sender().FirstName != "" {
		name = c.Sender().FirstName
	}
	return c.Send(fmt.Sprintf("Hi %s! I keep the internal communications registry. Use /help to see what I can do.", name))
}

func (h *Handlers) handleHelp(c telebot.Context) error {
	h.log(c, "/help").Info("Processing /help command")
	var helpText strings.Builder
	helpText.WriteString("Available commands:\n\n")
	helpText.WriteString("/list [title=...; channel=...; status=...; audience=...]\n - List communications, most recent first.\n\n")
	helpText.WriteString("/register key=value; key=value\n - Register a communication. title, date, channel and audience are required.\n\n")
	helpText.WriteString("/update <id> key=value; ...\n - Replace a communication wholesale.\n\n")
	helpText.WriteString("/stats\n - Counts by channel, type, audience, status and effectiveness, plus budget.\n\n")
	helpText.WriteString("/calendar [YYYY-MM]\n - Scheduled communications and holidays of a month.\n\n")
	helpText.WriteString("/insights\n - Strategic insights and suggestions.\n\n")
	helpText.WriteString("Keys: " + payloadUsage() + "\n")
	helpText.WriteString("Amounts: 1500, 1500.50, 1,500.50 or 1.500,50 (up to 4 decimals).\n")
	helpText.WriteString("Example: /register title=Safety Week; date=2024-03-10; channel=TV; audience=Operational; budget=1500")
	return c.Send(helpText.String())
}
