package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/telebot.v3"

	"comms_governance/internal/domain/calendar"
)

const calendarPageUnique = "cal"

func (h *Handlers) handleStats(c telebot.Context) error {
	handlerLogger := h.log(c, "/stats")
	handlerLogger.Info("Command received")

	stats, err := h.registry.Stats(context.Background())
	if err != nil {
		handlerLogger.WithError(err).Error("Failed to aggregate registry")
		return c.Send("Something went wrong while reading the registry. Please try again later.")
	}
	return c.Send(formatStats(stats))
}

func (h *Handlers) handleCalendar(c telebot.Context) error {
	handlerLogger := h.log(c, "/calendar")
	handlerLogger.Info("Command received")

	ym := calendar.Of(h.now())
	if arg := strings.TrimSpace(c.Message().Payload); arg != "" {
		parsed, err := calendar.ParseYearMonth(arg)
		if err != nil {
			handlerLogger.WithField("arg", arg).Warn("Invalid month format")
			return c.Send("Invalid month. Use: /calendar YYYY-MM")
		}
		ym = parsed
	}

	text, markup, err := h.calendarPage(ym)
	if err != nil {
		handlerLogger.WithError(err).Error("Failed to bind calendar")
		return c.Send("Could not build this calendar page.")
	}
	return reply(c, text, markup)
}

// handleCalendarPage serves the previous/next buttons under a calendar message.
func (h *Handlers) handleCalendarPage(c telebot.Context) error {
	data := c.Callback().Data
	handlerLogger := h.log(c, "calendar_page").WithField("data", data)

	ym, err := calendar.ParseYearMonth(data)
	if err != nil {
		c.Bot().OnError(fmt.Errorf("invalid calendar callback data %q: %w", data, err), c)
		return c.Respond(&telebot.CallbackResponse{Text: "Unknown calendar page."})
	}

	text, markup, err := h.calendarPage(ym)
	if err != nil {
		handlerLogger.WithError(err).Error("Failed to bind calendar")
		return c.Respond(&telebot.CallbackResponse{Text: "Could not build this calendar page."})
	}
	if err := c.Edit(text, markup); err != nil && !errors.Is(err, telebot.ErrSameMessageContent) {
		handlerLogger.WithError(err).Warn("Failed to edit calendar message")
	}
	return c.Respond()
}

func (h *Handlers) calendarPage(ym calendar.YearMonth) (string, *telebot.ReplyMarkup, error) {
	month, err := h.registry.Calendar(context.Background(), ym.Year, ym.Month)
	if err != nil {
		return "", nil, err
	}

	markup := &telebot.ReplyMarkup{}
	prev := markup.Data("◀ "+month.PrevPage.String(), calendarPageUnique, month.PrevPage.String())
	next := markup.Data(month.NextPage.String()+" ▶", calendarPageUnique, month.NextPage.String())
	markup.Inline(markup.Row(prev, next))

	return formatMonth(month), markup, nil
}

func (h *Handlers) handleInsights(c telebot.Context) error {
	handlerLogger := h.log(c, "/insights")
	handlerLogger.Info("Command received")

	entries, err := h.registry.Entries(context.Background())
	if err != nil {
		handlerLogger.WithError(err).Error("Failed to read registry")
		return c.Send("Something went wrong while reading the registry. Please try again later.")
	}
	_ = c.Notify(telebot.Typing)

	out := h.insights.Request(context.Background(), entries)
	if out.Stale {
		handlerLogger.WithField("seq", out.Seq).Info("Insight request overtaken by a newer one")
		return nil
	}
	return reply(c, formatOutcome(out))
}
