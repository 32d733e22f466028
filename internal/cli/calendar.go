package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"comms_governance/internal/domain/calendar"
)

var (
	calendarMonth string
	calendarFile  string
)

const cellWidth = 5

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#101F38")).MarginBottom(1)
	headerStyle  = lipgloss.NewStyle().Width(cellWidth).Bold(true).Foreground(lipgloss.Color("#6b7280"))
	dayStyle     = lipgloss.NewStyle().Width(cellWidth)
	busyStyle    = dayStyle.Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	holidayStyle = dayStyle.Foreground(lipgloss.Color("#e53935"))
	legendStyle  = lipgloss.NewStyle().MarginTop(1)
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Render a month of scheduled communications",
	Long: `Render the calendar page of a month: one cell per day, days carrying
communications in green with a dot, holidays in red. A legend lists what falls
on each marked day.

Entries are read from --file (a JSON array of entries) or taken from the
sample data.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ym := calendar.Of(time.Now())
		if calendarMonth != "" {
			parsed, err := calendar.ParseYearMonth(calendarMonth)
			if err != nil {
				return err
			}
			ym = parsed
		}

		entries, err := loadEntries(calendarFile)
		if err != nil {
			return err
		}
		page, err := calendar.Bind(entries, calendar.DefaultHolidays, ym.Year, ym.Month)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderMonth(page))
		return nil
	},
}

func init() {
	calendarCmd.Flags().StringVar(&calendarMonth, "month", "", "month to render as YYYY-MM (default: current month)")
	calendarCmd.Flags().StringVar(&calendarFile, "file", "", "JSON file with entries (default: sample data)")
	rootCmd.AddCommand(calendarCmd)
}

// renderMonth draws a seven-column grid starting on Sunday followed by a legend.
func renderMonth(m calendar.Month) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s %d", m.Month, m.Year)))
	sb.WriteString("\n")

	headers := make([]string, 0, 7)
	for _, d := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		headers = append(headers, headerStyle.Render(d))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, headers...))

	cells := make([]string, 0, m.LeadingBlanks+len(m.Days))
	for i := 0; i < m.LeadingBlanks; i++ {
		cells = append(cells, dayStyle.Render(""))
	}
	var legend []string
	for _, d := range m.Days {
		label := fmt.Sprintf("%2d", d.Day)
		style := dayStyle
		switch {
		case len(d.Entries) > 0:
			label += "•"
			style = busyStyle
		case d.Holiday != nil:
			style = holidayStyle
		}
		cells = append(cells, style.Render(label))

		if d.Holiday != nil {
			legend = append(legend, fmt.Sprintf("%s  holiday: %s", d.Date, d.Holiday.Name))
		}
		for _, e := range d.Entries {
			legend = append(legend, fmt.Sprintf("%s  %s (%s, %s)", d.Date, e.Title, e.Channel, e.Status))
		}
	}

	for start := 0; start < len(cells); start += 7 {
		end := start + 7
		if end > len(cells) {
			end = len(cells)
		}
		sb.WriteString("\n")
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells[start:end]...))
	}

	if len(legend) > 0 {
		sb.WriteString("\n")
		sb.WriteString(legendStyle.Render(strings.Join(legend, "\n")))
	}
	return sb.String()
}
