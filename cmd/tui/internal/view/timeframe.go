package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type monthChoice int

const (
	monthThis monthChoice = iota
	monthLast
	monthCustom
)

func (c monthChoice) String() string {
	switch c {
	case monthThis:
		return "This Month"
	case monthLast:
		return "Last Month"
	case monthCustom:
		return "Other Month"
	}

	return "Unknown"
}

// PeriodSelectedMsg is emitted when the user has picked a month.
type PeriodSelectedMsg struct {
	Period Period
}

type pickerState int

const (
	pickerStateSelect pickerState = iota
	pickerStateCustom
)

// MonthPicker is a reusable component for selecting a calendar month.
type MonthPicker struct {
	state    pickerState
	selected monthChoice
	input    textinput.Model
	now      func() time.Time

	err error
}

func NewMonthPicker() MonthPicker {
	in := textinput.New()
	in.Placeholder = "YYYY-MM"
	in.CharLimit = 7
	in.Width = 10
	in.Prompt = "Month: "

	return MonthPicker{
		state:    pickerStateSelect,
		selected: monthThis,
		input:    in,
		now:      time.Now,
	}
}

func (m MonthPicker) Update(msg tea.Msg) (MonthPicker, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case pickerStateSelect:
			return m.updateSelect(key)
		case pickerStateCustom:
			return m.updateCustom(key)
		}
	}

	if m.state == pickerStateCustom {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m MonthPicker) updateSelect(msg tea.KeyMsg) (MonthPicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > monthThis {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < monthCustom {
			m.selected++
		}
	case tea.KeyEnter:
		current := PeriodOf(m.now())

		switch m.selected {
		case monthCustom:
			m.state = pickerStateCustom
			m.input.Focus()

			return m, textinput.Blink
		case monthLast:
			return m, selectPeriod(current.Prev())
		default:
			return m, selectPeriod(current)
		}
	}

	return m, nil
}

func (m MonthPicker) updateCustom(msg tea.KeyMsg) (MonthPicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		p, err := ParsePeriod(strings.TrimSpace(m.input.Value()))
		if err != nil {
			m.err = err
			return m, nil
		}

		m.err = nil

		return m, selectPeriod(p)
	case tea.KeyEsc:
		m.state = pickerStateSelect
		m.err = nil
		m.input.Blur()

		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func selectPeriod(p Period) tea.Cmd {
	return func() tea.Msg {
		return PeriodSelectedMsg{Period: p}
	}
}

func (m MonthPicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = errorStyle.Render(fmt.Sprintf("\n\nError: %v", m.err))
	}

	if m.state == pickerStateCustom {
		return fmt.Sprintf("Enter a month:\n\n%s\n\n(Enter to confirm, Esc to go back)%s", m.input.View(), errStr)
	}

	var sb strings.Builder

	sb.WriteString("Select Month:\n\n")

	for c := monthThis; c <= monthCustom; c++ {
		cursor := " "
		if m.selected == c {
			cursor = ">"
		}

		fmt.Fprintf(&sb, "%s %s\n", cursor, c)
	}

	sb.WriteString("\n(Enter to select, Esc to back)")

	return sb.String() + errStr
}

// IsSelecting reports whether the picker is on the list rather than the custom input.
func (m MonthPicker) IsSelecting() bool {
	return m.state == pickerStateSelect
}

func (m *MonthPicker) Reset() {
	m.state = pickerStateSelect
	m.selected = monthThis
	m.err = nil
	m.input.SetValue("")
	m.input.Blur()
}
