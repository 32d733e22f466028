package communication

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DateLayout is the ISO calendar date form used by Entry.Date.
const DateLayout = "2006-01-02"

// Entry is one recorded communication event.
type Entry struct {
	ID              string            `json:"id" validate:"required"`
	Title           string            `json:"title" validate:"required"`
	Date            string            `json:"date" validate:"required,datetime=2006-01-02"`
	Responsible     string            `json:"responsible"`
	Channel         Channel           `json:"channel" validate:"required"`
	Audience        Audience          `json:"audience" validate:"required"`
	Objective       Objective         `json:"objective"`
	Type            CommunicationType `json:"type"`
	EvidenceLink    string            `json:"evidenceLink"`
	IsComprehended  Comprehension     `json:"isComprehended" validate:"required"`
	ReturnIndicator string            `json:"returnIndicator"`
	Observations    string            `json:"observations"`
	Status          Status            `json:"status" validate:"required"`
	BudgetedValue   decimal.Decimal   `json:"budgetedValue"`
	SpentValue      decimal.Decimal   `json:"spentValue"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields under their JSON names so callers can map errors back to inputs.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the acceptance rules for the registry: required fields, closed
// value domains, evidence format and non-negative amounts.
func (e Entry) Validate() error {
	verr := &ValidationError{}

	if err := validate.Struct(e); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validating communication entry: %w", err)
		}
		for _, fe := range fieldErrs {
			verr.Add(fe.Field(), fe.Tag())
		}
	}

	if strings.TrimSpace(e.Title) == "" {
		verr.Add("title", "required")
	}
	if e.Channel != "" && !e.Channel.Valid() {
		verr.Add("channel", "oneof")
	}
	if e.Audience != "" && !e.Audience.Valid() {
		verr.Add("audience", "oneof")
	}
	if !e.Objective.Valid() {
		verr.Add("objective", "oneof")
	}
	if !e.Type.Valid() {
		verr.Add("type", "oneof")
	}
	if e.IsComprehended != "" && !e.IsComprehended.Valid() {
		verr.Add("isComprehended", "oneof")
	}
	if e.Status != "" && !e.Status.Valid() {
		verr.Add("status", "oneof")
	}
	if e.EvidenceKind() == EvidenceInvalid {
		verr.Add("evidenceLink", "url")
	}
	if e.BudgetedValue.IsNegative() {
		verr.Add("budgetedValue", "min")
	} else if !AmountInRange(e.BudgetedValue) {
		verr.Add("budgetedValue", "max")
	}
	if e.SpentValue.IsNegative() {
		verr.Add("spentValue", "min")
	} else if !AmountInRange(e.SpentValue) {
		verr.Add("spentValue", "max")
	}

	return verr.OrNil()
}

// EvidenceKind classifies how the proof artifact of an entry is stored.
type EvidenceKind string

const (
	EvidenceNone    EvidenceKind = "none"
	EvidenceURL     EvidenceKind = "url"
	EvidenceData    EvidenceKind = "data"
	EvidenceInvalid EvidenceKind = "invalid"
)

func (e Entry) EvidenceKind() EvidenceKind {
	link := strings.TrimSpace(e.EvidenceLink)
	switch {
	case link == "":
		return EvidenceNone
	case strings.HasPrefix(link, "data:"):
		return EvidenceData
	}
	u, err := url.Parse(link)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return EvidenceInvalid
	}
	return EvidenceURL
}

// IsImageEvidence reports whether the evidence is an embedded image, which the
// dashboard previews inline instead of showing a generic attachment icon.
func (e Entry) IsImageEvidence() bool {
	return strings.HasPrefix(e.EvidenceLink, "data:image")
}
