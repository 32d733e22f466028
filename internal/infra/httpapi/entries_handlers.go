package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"comms_governance/internal/app"
	"comms_governance/internal/domain/communication"
	"comms_governance/internal/infra/memory"
)

// amount accepts a JSON number or a numeric string.
type amount string

func (a *amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = amount(s)
	default:
		*a = amount(data)
	}
	return nil
}

type entryRequest struct {
	Title           string `json:"title"`
	Date            string `json:"date"`
	Responsible     string `json:"responsible"`
	Channel         string `json:"channel"`
	Audience        string `json:"audience"`
	Objective       string `json:"objective"`
	Type            string `json:"type"`
	EvidenceLink    string `json:"evidenceLink"`
	IsComprehended  string `json:"isComprehended"`
	ReturnIndicator string `json:"returnIndicator"`
	Observations    string `json:"observations"`
	Status          string `json:"status"`
	BudgetedValue   amount `json:"budgetedValue"`
	SpentValue      amount `json:"spentValue"`
}

func (r entryRequest) draft() app.Draft {
	return app.Draft{
		Title:           r.Title,
		Date:            r.Date,
		Responsible:     r.Responsible,
		Channel:         r.Channel,
		Audience:        r.Audience,
		Objective:       r.Objective,
		Type:            r.Type,
		EvidenceLink:    r.EvidenceLink,
		IsComprehended:  r.IsComprehended,
		ReturnIndicator: r.ReturnIndicator,
		Observations:    r.Observations,
		Status:          r.Status,
		BudgetedValue:   string(r.BudgetedValue),
		SpentValue:      string(r.SpentValue),
	}
}

func (s *Server) listEntries(c *fiber.Ctx) error {
	p := communication.Predicate{Title: c.Query("title")}
	var err error
	if raw := c.Query("channel"); raw != "" {
		if p.Channel, err = communication.ParseChannel(raw); err != nil {
			return ErrorWithDetails(c, fiber.StatusBadRequest, "Invalid filter", fiber.Map{"channel": "oneof"})
		}
	}
	if raw := c.Query("status"); raw != "" {
		if p.Status, err = communication.ParseStatus(raw); err != nil {
			return ErrorWithDetails(c, fiber.StatusBadRequest, "Invalid filter", fiber.Map{"status": "oneof"})
		}
	}
	if raw := c.Query("audience"); raw != "" {
		if p.Audience, err = communication.ParseAudience(raw); err != nil {
			return ErrorWithDetails(c, fiber.StatusBadRequest, "Invalid filter", fiber.Map{"audience": "oneof"})
		}
	}

	res, err := s.registry.List(c.UserContext(), p)
	if err != nil {
		return err
	}
	return Success(c, "Communications listed", res)
}

func (s *Server) getEntry(c *fiber.Ctx) error {
	e, err := s.registry.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.entryError(c, err)
	}
	return Success(c, "Communication found", e)
}

func (s *Server) createEntry(c *fiber.Ctx) error {
	var req entryRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	e, err := s.registry.Register(c.UserContext(), req.draft())
	if err != nil {
		return s.entryError(c, err)
	}
	s.requestLog(c).WithField("entry_id", e.ID).Info("Communication created")
	return SuccessWithCode(c, fiber.StatusCreated, "Communication registered", e)
}

func (s *Server) replaceEntry(c *fiber.Ctx) error {
	var req entryRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	e, err := s.registry.Update(c.UserContext(), c.Params("id"), req.draft())
	if err != nil {
		return s.entryError(c, err)
	}
	s.requestLog(c).WithField("entry_id", e.ID).Info("Communication replaced")
	return Success(c, "Communication updated", e)
}

func (s *Server) entryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, communication.ErrValidation):
		return ValidationError(c, err)
	case errors.Is(err, memory.ErrEntryNotFound):
		return Error(c, fiber.StatusNotFound, "Communication not found")
	case errors.Is(err, memory.ErrDuplicateID):
		return Error(c, fiber.StatusConflict, "Communication already exists")
	}
	s.requestLog(c).WithError(err).Error("Registry operation failed")
	return err
}
