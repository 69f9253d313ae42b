package view

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pickerAt(now time.Time) MonthPicker {
	p := NewMonthPicker()
	p.now = func() time.Time { return now }

	return p
}

func selected(t *testing.T, cmd tea.Cmd) Period {
	t.Helper()
	require.NotNil(t, cmd)

	msg, ok := cmd().(PeriodSelectedMsg)
	require.True(t, ok)

	return msg.Period
}

func TestMonthPicker(t *testing.T) {
	now := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

	t.Run("ThisMonth", func(t *testing.T) {
		_, cmd := pickerAt(now).Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.Equal(t, Period{Month: 1, Year: 2024}, selected(t, cmd))
	})

	t.Run("LastMonthCrossesYear", func(t *testing.T) {
		p, _ := pickerAt(now).Update(tea.KeyMsg{Type: tea.KeyDown})
		_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.Equal(t, Period{Month: 12, Year: 2023}, selected(t, cmd))
	})

	t.Run("Custom", func(t *testing.T) {
		p := pickerAt(now)
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.False(t, p.IsSelecting())

		p.input.SetValue("2023-07")
		_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.Equal(t, Period{Month: 7, Year: 2023}, selected(t, cmd))
	})

	t.Run("CustomInvalid", func(t *testing.T) {
		p := pickerAt(now)
		p.state = pickerStateCustom
		p.input.SetValue("July")

		p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.Nil(t, cmd)
		assert.Error(t, p.err)
	})
}
