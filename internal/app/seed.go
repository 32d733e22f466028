package app

import (
	"github.com/shopspring/decimal"

	"comms_governance/internal/domain/communication"
)

// SampleEntries returns the two demonstration entries loaded when SEED_SAMPLE_DATA is on.
func SampleEntries() []communication.Entry {
	return []communication.Entry{
		{
			ID:              "sample-1",
			Title:           "Workplace Safety Campaign",
			Date:            "2024-03-10",
			Responsible:     "João Silva (HR)",
			Channel:         communication.ChannelTV,
			Audience:        communication.AudienceOperational,
			Objective:       communication.ObjectiveCompliance,
			Type:            communication.TypeHealthSafety,
			EvidenceLink:    "https://picsum.photos/200/300",
			IsComprehended:  communication.ComprehensionYes,
			ReturnIndicator: "95% viewing",
			Observations:    "Operational audience showed strong interest.",
			Status:          communication.StatusExecuted,
			BudgetedValue:   decimal.NewFromInt(1500),
			SpentValue:      decimal.NewFromInt(1250),
		},
		{
			ID:              "sample-2",
			Title:           "New Vacation Policy Notice",
			Date:            "2024-03-12",
			Responsible:     "Maria Costa (Payroll)",
			Channel:         communication.ChannelEmail,
			Audience:        communication.AudienceAdministrative,
			Objective:       communication.ObjectiveInform,
			Type:            communication.TypeTimeOff,
			EvidenceLink:    "https://picsum.photos/200/301",
			IsComprehended:  communication.ComprehensionYes,
			ReturnIndicator: "10 questions received",
			Observations:    "E-mail sent on schedule.",
			Status:          communication.StatusExecuted,
			BudgetedValue:   decimal.Zero,
			SpentValue:      decimal.Zero,
		},
	}
}
