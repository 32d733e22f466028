package httpapi

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"comms_governance/internal/domain/calendar"
	"comms_governance/internal/domain/communication"
	"comms_governance/internal/infra/evidence"
)

type reference struct {
	Channels            []communication.Channel           `json:"channels"`
	Audiences           []communication.Audience          `json:"audiences"`
	Objectives          []communication.Objective         `json:"objectives"`
	CommunicationTypes  []communication.CommunicationType `json:"types"`
	ComprehensionLevels []communication.Comprehension     `json:"comprehension"`
	Statuses            []communication.Status            `json:"statuses"`
	Holidays            []calendar.Holiday                `json:"holidays"`
}

func (s *Server) getReference(c *fiber.Ctx) error {
	return Success(c, "Reference data", reference{
		Channels:            communication.Channels,
		Audiences:           communication.Audiences,
		Objectives:          communication.Objectives,
		CommunicationTypes:  communication.CommunicationTypes,
		ComprehensionLevels: communication.ComprehensionLevels,
		Statuses:            communication.Statuses,
		Holidays:            s.registry.Holidays(),
	})
}

func (s *Server) getStats(c *fiber.Ctx) error {
	stats, err := s.registry.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return Success(c, "Dashboard statistics", stats)
}

func (s *Server) getCalendar(c *fiber.Ctx) error {
	now := s.now()
	year, okYear := queryInt(c, "year", now.Year())
	month, okMonth := queryInt(c, "month", int(now.Month()))
	if !okYear || !okMonth {
		return ErrorWithDetails(c, fiber.StatusBadRequest, "Invalid calendar month", fiber.Map{"month": "range"})
	}

	page, err := s.registry.Calendar(c.UserContext(), year, time.Month(month))
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidMonth) {
			return ErrorWithDetails(c, fiber.StatusBadRequest, "Invalid calendar month", fiber.Map{"month": "range"})
		}
		return err
	}
	return Success(c, "Calendar page", page)
}

func (s *Server) requestInsights(c *fiber.Ctx) error {
	entries, err := s.registry.Entries(c.UserContext())
	if err != nil {
		return err
	}
	out := s.insights.Request(c.UserContext(), entries)
	return Success(c, "Insight report", out)
}

func (s *Server) latestInsights(c *fiber.Ctx) error {
	out, ok := s.insights.Latest()
	if !ok {
		return Error(c, fiber.StatusNotFound, "No insight report generated yet")
	}
	return Success(c, "Insight report", out)
}

func (s *Server) uploadEvidence(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return ErrorWithDetails(c, fiber.StatusBadRequest, "Missing evidence file", fiber.Map{"file": "required"})
	}
	if fh.Size > s.evidence.MaxBytes() {
		return Error(c, fiber.StatusRequestEntityTooLarge, "Evidence file too large")
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, s.evidence.MaxBytes()+1))
	if err != nil {
		return err
	}

	uri, err := s.evidence.Encode(fh.Filename, data)
	switch {
	case errors.Is(err, evidence.ErrTooLarge):
		return Error(c, fiber.StatusRequestEntityTooLarge, "Evidence file too large")
	case errors.Is(err, evidence.ErrEmpty):
		return ErrorWithDetails(c, fiber.StatusBadRequest, "Empty evidence file", fiber.Map{"file": "required"})
	case err != nil:
		return err
	}
	s.requestLog(c).WithField("size", len(data)).Info("Evidence encoded")
	return Success(c, "Evidence encoded", fiber.Map{"evidenceLink": uri, "image": communication.Entry{EvidenceLink: uri}.IsImageEvidence()})
}

// queryInt reads an integer query parameter, falling back to def when it is absent.
// A present but non-numeric value reports false.
func queryInt(c *fiber.Ctx, key string, def int) (int, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	return v, err == nil
}
