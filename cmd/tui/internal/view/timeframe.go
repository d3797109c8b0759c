package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/gigledger/internal/report"
)

// Timeframe is a predefined or custom payment date window.
type Timeframe int

const (
	TimeframeThisWeek Timeframe = iota
	TimeframeLastWeek
	TimeframeThisMonth
	TimeframeLastMonth
	TimeframeThisYear
	TimeframeCustom
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeThisWeek:
		return "This Week"
	case TimeframeLastWeek:
		return "Last Week"
	case TimeframeThisMonth:
		return "This Month"
	case TimeframeLastMonth:
		return "Last Month"
	case TimeframeThisYear:
		return "This Year"
	case TimeframeCustom:
		return "Custom Range"
	}

	return "Unknown"
}

// Range resolves a predefined timeframe against now. Weeks start on Monday.
// Both ends cover whole days.
func (t Timeframe) Range(now time.Time) report.Range {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	offset := int(day.Weekday())
	if offset == 0 {
		offset = 7
	}

	monday := day.AddDate(0, 0, 1-offset)

	var start, end time.Time

	switch t {
	case TimeframeThisWeek:
		start, end = monday, day
	case TimeframeLastWeek:
		start, end = monday.AddDate(0, 0, -7), monday.AddDate(0, 0, -1)
	case TimeframeThisMonth:
		start, end = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC), day
	case TimeframeLastMonth:
		start = time.Date(day.Year(), day.Month()-1, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
	case TimeframeThisYear:
		start, end = time.Date(day.Year(), 1, 1, 0, 0, 0, 0, time.UTC), day
	default:
		start, end = day, day
	}

	return report.Range{Start: start, End: end.AddDate(0, 0, 1).Add(-time.Nanosecond)}
}

// TimeframeSelectedMsg is emitted once the user settles on a range.
type TimeframeSelectedMsg struct {
	Label string
	Range report.Range
}

// TimeframePicker lets the user choose a predefined window or type one.
type TimeframePicker struct {
	custom   bool
	selected Timeframe

	startInput textinput.Model
	endInput   textinput.Model
	focusIndex int

	now func() time.Time
	err error
}

func NewTimeframePicker() TimeframePicker {
	si := textinput.New()
	si.Placeholder = "YYYY-MM-DD"
	si.CharLimit = 25
	si.Width = 12
	si.Prompt = "Start: "

	ei := textinput.New()
	ei.Placeholder = "YYYY-MM-DD"
	ei.CharLimit = 25
	ei.Width = 12
	ei.Prompt = "End:   "

	return TimeframePicker{
		selected:   TimeframeThisMonth,
		startInput: si,
		endInput:   ei,
		now:        time.Now,
	}
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.custom {
			return m.updateInputs(msg)
		}

		return m, nil
	}

	if m.custom {
		return m.updateCustom(keyMsg)
	}

	switch keyMsg.Type {
	case tea.KeyUp:
		if m.selected > TimeframeThisWeek {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < TimeframeCustom {
			m.selected++
		}
	case tea.KeyEnter:
		if m.selected == TimeframeCustom {
			m.custom = true
			m.focusIndex = 0
			m.startInput.Focus()

			return m, textinput.Blink
		}

		sel := TimeframeSelectedMsg{Label: m.selected.String(), Range: m.selected.Range(m.now())}

		return m, func() tea.Msg { return sel }
	}

	return m, nil
}

func (m TimeframePicker) updateCustom(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusIndex = (m.focusIndex + 1) % 2
		m.startInput.Blur()
		m.endInput.Blur()

		if m.focusIndex == 0 {
			m.startInput.Focus()
		} else {
			m.endInput.Focus()
		}

		return m, textinput.Blink

	case "enter":
		rng, err := report.ParseRange(m.startInput.Value(), m.endInput.Value())
		if err != nil {
			m.err = err
			return m, nil
		}

		m.err = nil
		sel := TimeframeSelectedMsg{
			Label: fmt.Sprintf("%s to %s", FormatDate(rng.Start), FormatDate(rng.End)),
			Range: rng,
		}

		return m, func() tea.Msg { return sel }

	case "esc":
		m.custom = false
		m.err = nil

		return m, nil
	}

	return m.updateInputs(msg)
}

func (m TimeframePicker) updateInputs(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	var c1, c2 tea.Cmd

	m.startInput, c1 = m.startInput.Update(msg)
	m.endInput, c2 = m.endInput.Update(msg)

	return m, tea.Batch(c1, c2)
}

// Selecting reports whether the picker is on the preset list.
func (m TimeframePicker) Selecting() bool {
	return !m.custom
}

func (m TimeframePicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = errorStyle.Render(fmt.Sprintf("\n\nError: %v", m.err))
	}

	if m.custom {
		return fmt.Sprintf(
			"Enter Custom Range:\n\n%s\n%s\n\n(Enter to confirm, Tab to switch, Esc to back)%s",
			m.startInput.View(),
			m.endInput.View(),
			errStr,
		)
	}

	s := "Select Timeframe:\n\n"
	for tf := TimeframeThisWeek; tf <= TimeframeCustom; tf++ {
		cursor := " "
		if m.selected == tf {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, tf)
	}

	return s + "\n(Enter to select, Esc to back)" + errStr
}
