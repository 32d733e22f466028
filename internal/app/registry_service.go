package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"comms_governance/internal/domain/calendar"
	"comms_governance/internal/domain/communication"
)

// Draft is an entry as typed by a user, before any parsing. HTTP bodies and Telegram
// payloads both end up here.
type Draft struct {
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
	BudgetedValue   string `json:"budgetedValue"`
	SpentValue      string `json:"spentValue"`
}

// QueryResult is a filtered listing. Filtered tells an empty registry apart from a
// filter that matched nothing.
type QueryResult struct {
	Entries  []communication.Entry `json:"entries"`
	Filtered bool                  `json:"filtered"`
	Count    int                   `json:"count"`
}

type RegistryService struct {
	registry communication.Registry
	holidays []calendar.Holiday
	logger   *logrus.Entry
}

func NewRegistryService(registry communication.Registry, holidays []calendar.Holiday, logger *logrus.Entry) *RegistryService {
	return &RegistryService{
		registry: registry,
		holidays: holidays,
		logger:   logger.WithField("component", "registry_service"),
	}
}

// Holidays is the table the calendar is bound with.
func (s *RegistryService) Holidays() []calendar.Holiday { return s.holidays }

// Register parses the draft, assigns a fresh id and inserts the entry at the top.
func (s *RegistryService) Register(ctx context.Context, d Draft) (communication.Entry, error) {
	e, err := parseDraft(uuid.NewString(), d)
	if err != nil {
		s.logger.WithError(err).Info("Rejected communication draft")
		return communication.Entry{}, err
	}

	if err := s.registry.Insert(ctx, e); err != nil {
		return communication.Entry{}, fmt.Errorf("failed to insert communication entry: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"entry_id": e.ID, "channel": e.Channel}).Info("Communication registered")
	return e, nil
}

// Update replaces the entry with the given id wholesale by the parsed draft.
func (s *RegistryService) Update(ctx context.Context, id string, d Draft) (communication.Entry, error) {
	id = strings.TrimSpace(id)
	e, err := parseDraft(id, d)
	if err != nil {
		s.logger.WithError(err).WithField("entry_id", id).Info("Rejected communication update")
		return communication.Entry{}, err
	}

	if err := s.registry.Replace(ctx, e); err != nil {
		return communication.Entry{}, fmt.Errorf("failed to replace communication entry %s: %w", id, err)
	}
	s.logger.WithField("entry_id", id).Info("Communication updated")
	return e, nil
}

func (s *RegistryService) Get(ctx context.Context, id string) (communication.Entry, error) {
	e, err := s.registry.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		return communication.Entry{}, fmt.Errorf("failed to get communication entry %s: %w", id, err)
	}
	return e, nil
}

func (s *RegistryService) Entries(ctx context.Context) ([]communication.Entry, error) {
	entries, err := s.registry.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}
	return entries, nil
}

func (s *RegistryService) List(ctx context.Context, p communication.Predicate) (QueryResult, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return QueryResult{}, err
	}
	matched := communication.Filter(entries, p)
	return QueryResult{Entries: matched, Filtered: p.Active(), Count: len(matched)}, nil
}

func (s *RegistryService) Stats(ctx context.Context) (communication.Stats, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return communication.Stats{}, err
	}
	return communication.Aggregate(entries), nil
}

func (s *RegistryService) Calendar(ctx context.Context, year int, month time.Month) (calendar.Month, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return calendar.Month{}, err
	}
	return calendar.Bind(entries, s.holidays, year, month)
}

// Agenda returns the calendar cell for a single day.
func (s *RegistryService) Agenda(ctx context.Context, date time.Time) (calendar.DayBucket, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return calendar.DayBucket{}, err
	}
	return calendar.Day(entries, s.holidays, date), nil
}

// parseDraft turns raw user input into an entry. Every offending field is reported
// at once. Comprehension defaults to Yes and status to Planned.
func parseDraft(id string, d Draft) (communication.Entry, error) {
	verr := &communication.ValidationError{}

	e := communication.Entry{
		ID:              id,
		Title:           strings.TrimSpace(d.Title),
		Date:            strings.TrimSpace(d.Date),
		Responsible:     strings.TrimSpace(d.Responsible),
		EvidenceLink:    strings.TrimSpace(d.EvidenceLink),
		ReturnIndicator: strings.TrimSpace(d.ReturnIndicator),
		Observations:    strings.TrimSpace(d.Observations),
		IsComprehended:  communication.ComprehensionYes,
		Status:          communication.StatusPlanned,
	}

	var err error
	if strings.TrimSpace(d.Channel) != "" {
		if e.Channel, err = communication.ParseChannel(d.Channel); err != nil {
			verr.Add("channel", "oneof")
		}
	}
	if strings.TrimSpace(d.Audience) != "" {
		if e.Audience, err = communication.ParseAudience(d.Audience); err != nil {
			verr.Add("audience", "oneof")
		}
	}
	if e.Objective, err = communication.ParseObjective(d.Objective); err != nil {
		verr.Add("objective", "oneof")
	}
	if e.Type, err = communication.ParseCommunicationType(d.Type); err != nil {
		verr.Add("type", "oneof")
	}
	if strings.TrimSpace(d.IsComprehended) != "" {
		if e.IsComprehended, err = communication.ParseComprehension(d.IsComprehended); err != nil {
			verr.Add("isComprehended", "oneof")
		}
	}
	if strings.TrimSpace(d.Status) != "" {
		if e.Status, err = communication.ParseStatus(d.Status); err != nil {
			verr.Add("status", "oneof")
		}
	}
	if e.BudgetedValue, err = communication.ParseAmount(d.BudgetedValue); err != nil {
		verr.Add("budgetedValue", amountProblem(err))
	}
	if e.SpentValue, err = communication.ParseAmount(d.SpentValue); err != nil {
		verr.Add("spentValue", amountProblem(err))
	}

	if err := e.Validate(); err != nil {
		var fieldErr *communication.ValidationError
		if !errors.As(err, &fieldErr) {
			return communication.Entry{}, err
		}
		for field, problem := range fieldErr.Fields {
			verr.Add(field, problem)
		}
	}

	if err := verr.OrNil(); err != nil {
		return communication.Entry{}, err
	}
	return e, nil
}

func amountProblem(err error) string {
	if errors.Is(err, communication.ErrAmountOutOfRange) {
		return "max"
	}
	return "min"
}
