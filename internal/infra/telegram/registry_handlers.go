package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"comms_governance/internal/domain/communication"
	"comms_governance/internal/infra/memory"
)

func (h *Handlers) handleList(c telebot.Context) error {
	handlerLogger := h.log(c, "/list")
	handlerLogger.Info("Command received")

	p, err := ParsePredicate(c.Message().Payload)
	if err != nil {
		handlerLogger.WithError(err).Warn("Invalid filters")
		return c.Send(fmt.Sprintf("Invalid filters: %s\nUse: /list channel=TV; audience=Operational", err.Error()))
	}

	res, err := h.registry.List(context.Background(), p)
	if err != nil {
		handlerLogger.WithError(err).Error("Failed to list communications")
		return c.Send("Something went wrong while reading the registry. Please try again later.")
	}
	handlerLogger.WithFields(logrus.Fields{"filtered": res.Filtered, "count": res.Count}).Info("Communications listed")
	return reply(c, formatList(res))
}

func (h *Handlers) handleRegister(c telebot.Context) error {
	handlerLogger := h.log(c, "/register")
	handlerLogger.Info("Command received")

	payload := strings.TrimSpace(c.Message().Payload)
	if payload == "" {
		return c.Send("Usage: /register title=...; date=YYYY-MM-DD; channel=...; audience=...\nSee /help for every key.")
	}
	d, err := ParseDraft(payload)
	if err != nil {
		handlerLogger.WithError(err).Warn("Invalid payload")
		return c.Send(err.Error())
	}

	e, err := h.registry.Register(context.Background(), d)
	if err != nil {
		return h.replySaveError(c, handlerLogger, err)
	}
	handlerLogger.WithField("entry_id", e.ID).Info("Communication registered")
	return c.Send("Registered:\n" + formatEntry(e))
}

func (h *Handlers) handleUpdate(c telebot.Context) error {
	handlerLogger := h.log(c, "/update")
	handlerLogger.Info("Command received")

	// Expected format: /update <id> key=value; ...
	id, payload, _ := strings.Cut(strings.TrimSpace(c.Message().Payload), " ")
	if id == "" || strings.TrimSpace(payload) == "" {
		return c.Send("Usage: /update <id> title=...; date=YYYY-MM-DD; channel=...; audience=...\nThe communication is replaced wholesale.")
	}
	handlerLogger = handlerLogger.WithField("entry_id", id)

	d, err := ParseDraft(payload)
	if err != nil {
		handlerLogger.WithError(err).Warn("Invalid payload")
		return c.Send(err.Error())
	}

	e, err := h.registry.Update(context.Background(), id, d)
	if err != nil {
		if errors.Is(err, memory.ErrEntryNotFound) {
			handlerLogger.WithError(err).Warn("Communication to update not found")
			return c.Send(fmt.Sprintf("No communication with id %s.", id))
		}
		return h.replySaveError(c, handlerLogger, err)
	}
	handlerLogger.Info("Communication updated")
	return c.Send("Updated:\n" + formatEntry(e))
}

func (h *Handlers) replySaveError(c telebot.Context, handlerLogger *logrus.Entry, err error) error {
	var verr *communication.ValidationError
	if errors.As(err, &verr) {
		handlerLogger.WithError(err).Info("Communication rejected")
		return c.Send(formatValidation(verr))
	}
	handlerLogger.WithError(err).Error("Failed to save communication")
	return c.Send(fmt.Sprintf("An error occurred while saving the communication: %s", err.Error()))
}
