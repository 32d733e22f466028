package communication

import (
	"fmt"
	"strings"
)

// Channel is the medium a communication was delivered through.
type Channel string

const (
	ChannelWhatsApp      Channel = "WhatsApp"
	ChannelEmail         Channel = "E-mail"
	ChannelMeeting       Channel = "Meeting"
	ChannelTV            Channel = "TV"
	ChannelBulletinBoard Channel = "Bulletin Board"
	ChannelTeamsMeet     Channel = "Teams / Meet"
	ChannelInternalApp   Channel = "Internal App"
	ChannelOther         Channel = "Other"
)

var Channels = []Channel{
	ChannelWhatsApp, ChannelEmail, ChannelMeeting, ChannelTV,
	ChannelBulletinBoard, ChannelTeamsMeet, ChannelInternalApp, ChannelOther,
}

// Audience is the group of employees a communication targets.
type Audience string

const (
	AudienceOperational    Audience = "Operational"
	AudienceAdministrative Audience = "Administrative"
	AudienceLeadership     Audience = "Leadership"
	AudienceLogistics      Audience = "Logistics / Distribution"
	AudienceCommercial     Audience = "Commercial"
	AudienceEveryone       Audience = "Everyone"
	AudienceCustom         Audience = "Custom"
)

var Audiences = []Audience{
	AudienceOperational, AudienceAdministrative, AudienceLeadership,
	AudienceLogistics, AudienceCommercial, AudienceEveryone, AudienceCustom,
}

// Objective is what the communication intends to achieve.
type Objective string

const (
	ObjectiveInform     Objective = "Inform"
	ObjectiveEngage     Objective = "Engage"
	ObjectiveRecognize  Objective = "Recognize"
	ObjectiveAlign      Objective = "Align Process"
	ObjectiveCompliance Objective = "Compliance / Audit"
	ObjectiveListening  Objective = "Survey / Listening"
	ObjectiveCulture    Objective = "Culture and Values"
)

var Objectives = []Objective{
	ObjectiveInform, ObjectiveEngage, ObjectiveRecognize, ObjectiveAlign,
	ObjectiveCompliance, ObjectiveListening, ObjectiveCulture,
}

// CommunicationType is the subject category of a communication.
type CommunicationType string

const (
	TypeCommemorativeDates CommunicationType = "Commemorative Dates"
	TypeTimeOff            CommunicationType = "Time Off / Vacation"
	TypeCompensation       CommunicationType = "Compensation"
	TypeTimeTracking       CommunicationType = "Time Tracking"
	TypeHealthSafety       CommunicationType = "Health and Safety"
	TypeClimateSurvey      CommunicationType = "Climate Survey / NPS"
	TypeProjects           CommunicationType = "Projects / Actions"
	TypeRecognition        CommunicationType = "Recognition"
	TypeManagementPanel    CommunicationType = "Management Panel"
	TypeAudit              CommunicationType = "Audit"
)

var CommunicationTypes = []CommunicationType{
	TypeCommemorativeDates, TypeTimeOff, TypeCompensation, TypeTimeTracking,
	TypeHealthSafety, TypeClimateSurvey, TypeProjects, TypeRecognition,
	TypeManagementPanel, TypeAudit,
}

// Comprehension is the tri-state effectiveness signal of a communication.
type Comprehension string

const (
	ComprehensionYes       Comprehension = "Yes"
	ComprehensionPartially Comprehension = "Partially"
	ComprehensionNo        Comprehension = "No"
)

// ComprehensionLevels is in declaration order; aggregation output follows it.
var ComprehensionLevels = []Comprehension{ComprehensionYes, ComprehensionPartially, ComprehensionNo}

// Status is the lifecycle state of a communication.
type Status string

const (
	StatusPlanned         Status = "Planned"
	StatusExecuted        Status = "Executed"
	StatusReinforced      Status = "Reinforced"
	StatusUnderEvaluation Status = "Under Evaluation"
	StatusCancelled       Status = "Cancelled"
)

var Statuses = []Status{
	StatusPlanned, StatusExecuted, StatusReinforced, StatusUnderEvaluation, StatusCancelled,
}

// parseEnum matches raw against domain ignoring case and surrounding blanks and
// returns the canonical spelling.
func parseEnum[T ~string](raw string, domain []T) (T, error) {
	trimmed := strings.TrimSpace(raw)
	for _, v := range domain {
		if strings.EqualFold(trimmed, string(v)) {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %q", ErrUnknownValue, raw)
}

func contains[T comparable](domain []T, v T) bool {
	for _, d := range domain {
		if d == v {
			return true
		}
	}
	return false
}

func ParseChannel(raw string) (Channel, error) { return parseEnum(raw, Channels) }

func ParseAudience(raw string) (Audience, error) { return parseEnum(raw, Audiences) }

func ParseStatus(raw string) (Status, error) { return parseEnum(raw, Statuses) }

func ParseComprehension(raw string) (Comprehension, error) {
	return parseEnum(raw, ComprehensionLevels)
}

// ParseObjective accepts an empty value since the objective is optional.
func ParseObjective(raw string) (Objective, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return parseEnum(raw, Objectives)
}

// ParseCommunicationType accepts an empty value since the type is optional.
func ParseCommunicationType(raw string) (CommunicationType, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return parseEnum(raw, CommunicationTypes)
}

func (c Channel) Valid() bool       { return contains(Channels, c) }
func (a Audience) Valid() bool      { return contains(Audiences, a) }
func (s Status) Valid() bool        { return contains(Statuses, s) }
func (c Comprehension) Valid() bool { return contains(ComprehensionLevels, c) }

func (o Objective) Valid() bool { return o == "" || contains(Objectives, o) }

func (t CommunicationType) Valid() bool { return t == "" || contains(CommunicationTypes, t) }
