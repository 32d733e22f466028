package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"gopkg.in/telebot.v3"

	"comms_governance/internal/domain/calendar"
	"comms_governance/internal/domain/communication"
	domainTelegram "comms_governance/internal/domain/telegram"
)

// DigestService pushes scheduled summaries of the registry to a Telegram chat.
type DigestService struct {
	registry       *RegistryService
	telegramClient domainTelegram.Client
	chatID         int64
	printer        *message.Printer
	currency       currency.Unit
	groupSep       string
	decimalSep     string
	logger         *logrus.Entry
}

func NewDigestService(
	registry *RegistryService,
	tc domainTelegram.Client,
	chatID int64,
	locale language.Tag,
	logger *logrus.Entry,
) *DigestService {
	log := logger.WithField("component", "digest_service")
	unit, conf := currency.FromTag(locale)
	if conf == language.No {
		log.WithField("locale", locale.String()).Warn("No currency for locale, amounts will show XXX")
	}
	printer := message.NewPrinter(locale)
	groupSep, decimalSep := separators(printer)
	return &DigestService{
		registry:       registry,
		telegramClient: tc,
		chatID:         chatID,
		printer:        printer,
		currency:       unit,
		groupSep:       groupSep,
		decimalSep:     decimalSep,
		logger:         log,
	}
}

// SendDailyAgenda sends the entries and holiday scheduled for the day of now.
// Nothing is sent when the day is empty.
func (s *DigestService) SendDailyAgenda(ctx context.Context, now time.Time) error {
	day, err := s.registry.Agenda(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to build daily agenda: %w", err)
	}
	log := s.logger.WithField("date", day.Date)
	if len(day.Entries) == 0 && day.Holiday == nil {
		log.Debug("Nothing scheduled today, skipping daily agenda")
		return nil
	}

	text := s.FormatAgenda(day, now.Weekday())
	if err := s.telegramClient.SendMessage(s.chatID, text, &telebot.SendOptions{ParseMode: telebot.ModeDefault}); err != nil {
		log.WithError(err).Error("Failed to send daily agenda")
		return fmt.Errorf("failed to send daily agenda: %w", err)
	}
	log.WithField("entries", len(day.Entries)).Info("Daily agenda sent")
	return nil
}

// SendMonthlyDigest sends counts and money totals for the month before now.
func (s *DigestService) SendMonthlyDigest(ctx context.Context, now time.Time) error {
	ym := calendar.Of(now).Prev()
	entries, err := s.registry.Entries(ctx)
	if err != nil {
		return fmt.Errorf("failed to build monthly digest: %w", err)
	}
	stats := communication.Aggregate(communication.InMonth(entries, ym.Year, ym.Month))

	text := s.FormatDigest(ym, stats)
	log := s.logger.WithField("month", ym.String())
	if err := s.telegramClient.SendMessage(s.chatID, text, &telebot.SendOptions{ParseMode: telebot.ModeDefault}); err != nil {
		log.WithError(err).Error("Failed to send monthly digest")
		return fmt.Errorf("failed to send monthly digest: %w", err)
	}
	log.WithField("entries", stats.Total).Info("Monthly digest sent")
	return nil
}

func (s *DigestService) FormatAgenda(day calendar.DayBucket, weekday time.Weekday) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Agenda for %s (%s)\n", day.Date, weekday)
	if day.Holiday != nil {
		fmt.Fprintf(&b, "Holiday: %s\n", day.Holiday.Name)
	}
	for _, e := range day.Entries {
		fmt.Fprintf(&b, "• %s - %s, %s [%s]\n", e.Title, e.Channel, e.Audience, e.Status)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *DigestService) FormatDigest(ym calendar.YearMonth, stats communication.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Communication digest for %s %d\n", ym.Month, ym.Year)
	b.WriteString(s.printer.Sprintf("Communications: %d\n", stats.Total))
	if stats.Total > 0 {
		fmt.Fprintf(&b, "By channel: %s\n", s.formatCounts(stats.ChannelCounts))
		fmt.Fprintf(&b, "By status: %s\n", s.formatCounts(stats.StatusCounts))
	}
	fmt.Fprintf(&b, "Effectiveness: %s\n", s.formatCounts(stats.EffectivenessCounts))
	fmt.Fprintf(&b, "Budgeted: %s\n", s.FormatMoney(stats.TotalBudgeted))
	fmt.Fprintf(&b, "Spent: %s\n", s.FormatMoney(stats.TotalSpent))
	fmt.Fprintf(&b, "Balance: %s", s.FormatMoney(stats.Balance))
	return b.String()
}

// FormatMoney renders an amount with the configured locale's separators and ISO code.
// Digits come from the decimal itself, rounded to cents.
func (s *DigestService) FormatMoney(amount decimal.Decimal) string {
	intPart, frac, _ := strings.Cut(amount.Abs().StringFixed(2), ".")

	var b strings.Builder
	if amount.Round(2).IsNegative() {
		b.WriteString("-")
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(s.groupSep)
		}
		b.WriteRune(r)
	}
	b.WriteString(s.decimalSep)
	b.WriteString(frac)
	return fmt.Sprintf("%s %s", s.currency, b.String())
}

// separators reads the locale's grouping and decimal marks off a formatted sample,
// which prints as 1<group>234<group>567<decimal>50 for Latin digits.
func separators(p *message.Printer) (group, decimalMark string) {
	sample := p.Sprintf("%v", number.Decimal(1234567.5, number.Scale(2)))
	one := strings.Index(sample, "1")
	thousands := strings.Index(sample, "234")
	millions := strings.Index(sample, "567")
	cents := strings.LastIndex(sample, "50")
	if one < 0 || thousands <= one || millions <= thousands || cents < millions+3 {
		return ",", "."
	}
	return sample[one+1 : thousands], sample[millions+3 : cents]
}

func (s *DigestService) formatCounts(counts communication.Counts) string {
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		parts = append(parts, s.printer.Sprintf("%s %d", c.Name, c.Value))
	}
	return strings.Join(parts, ", ")
}
