package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/dompet-app/dompet/internal/budget"
	"github.com/dompet-app/dompet/internal/money"
	"github.com/dompet-app/dompet/internal/transaction"
)

type dashboardState int

const (
	dashboardStateBrowse dashboardState = iota
	dashboardStateCreate
)

// DashboardModel shows the month's budgets with how much of each is spent.
// Totals come from the session cache; while the dashboard is open its keys
// are observed so mutations elsewhere refresh them.
type DashboardModel struct {
	CommonModel
	deps Deps

	state   dashboardState
	period  Period
	views   []budget.View
	cursor  int
	bar     progress.Model
	release []func()

	form   *huh.Form
	fields *budgetFields

	loading bool
	status  string
	err     error
}

func NewDashboardModel(deps Deps) DashboardModel {
	return DashboardModel{
		deps:    deps,
		period:  PeriodOf(time.Now()),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage()),
		loading: true,
	}
}

func (m DashboardModel) Title() string { return "Budgets" }

func (m DashboardModel) ShortHelp() string {
	if m.state == dashboardStateCreate {
		return "Esc: cancel"
	}

	return "Esc: back | ←/→: month | a: add budget | x: delete | r: refresh"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case overviewMsg:
		m.loading = false
		if msg.period != m.period {
			return m, nil
		}

		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.views = msg.views
		m.cursor = min(m.cursor, max(len(m.views)-1, 0))
		m.observe()

		return m, nil

	case budgetFormOptionsMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading categories: %v", msg.err)
			return m, nil
		}

		return m.enterCreate(msg.options)

	case budgetSavedMsg:
		m.state = dashboardStateBrowse
		m.form = nil

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = msg.status

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.bar.Width = max(min(msg.Width-60, 40), 10)

		return m, nil
	}

	if m.state == dashboardStateCreate {
		return m.updateCreate(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "esc":
		m.Close()
		return m, Back
	case "left", "h":
		m.period = m.period.Prev()
		return m.reload()
	case "right", "l":
		m.period = m.period.Next()
		return m.reload()
	case "r":
		return m.reload()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.views)-1 {
			m.cursor++
		}
	case "a":
		return m, m.loadFormOptionsCmd()
	case "x":
		if m.cursor < len(m.views) {
			return m, m.deleteCmd(m.views[m.cursor].Budget)
		}
	}

	return m, nil
}

func (m DashboardModel) reload() (tea.Model, tea.Cmd) {
	m.loading = true
	m.status = ""

	return m, m.loadCmd()
}

// observe swaps the registered observers for the keys of the current views.
func (m *DashboardModel) observe() {
	m.Close()

	cache := m.deps.Cache()
	for _, v := range m.views {
		m.release = append(m.release, cache.Observe(budget.Key(v.Budget)))
	}
}

// Close releases the dashboard's observers.
func (m *DashboardModel) Close() {
	for _, release := range m.release {
		release()
	}

	m.release = nil
}

func (m DashboardModel) enterCreate(options []huh.Option[uuid.UUID]) (tea.Model, tea.Cmd) {
	if len(options) == 0 {
		m.status = "No expense categories yet"
		return m, nil
	}

	m.fields = &budgetFields{category: options[0].Value}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[uuid.UUID]().
				Title("Category").
				Options(options...).
				Value(&m.fields.category),
			huh.NewInput().
				Title("Monthly limit").
				Placeholder("500000").
				Value(&m.fields.limit).
				Validate(validateAmount),
			huh.NewInput().
				Title("Note").
				Value(&m.fields.note),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = dashboardStateCreate

	return m, m.form.Init()
}

func (m DashboardModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		m.state = dashboardStateBrowse
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.createCmd()
}

func (m DashboardModel) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("Budgets · %s", activeStyle(m.period.String()))))
	sb.WriteString("\n")

	switch {
	case m.loading && len(m.views) == 0:
		sb.WriteString("Loading budgets...")
	case m.err != nil:
		sb.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case len(m.views) == 0:
		sb.WriteString(faintStyle.Render("No budgets for this month. Press a to add one."))
	default:
		for i, v := range m.views {
			sb.WriteString(m.renderView(v, i == m.cursor))
			sb.WriteString("\n")
		}
	}

	content := sb.String()

	if m.state == dashboardStateCreate && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panelStyle.Width(48).Render("New Budget\n\n"+m.form.View()))
	}

	if m.status != "" {
		content += "\n" + faintStyle.Render(m.status)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m DashboardModel) renderView(v budget.View, selected bool) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}

	name := v.Budget.CategoryName
	if v.Budget.CategoryIcon != "" {
		name = v.Budget.CategoryIcon + " " + name
	}

	style := statusStyle(v.Status)
	line := fmt.Sprintf("%s%-22s %s %s",
		cursor,
		name,
		m.bar.ViewAs(v.Percentage.InexactFloat64()/100),
		style.Render(fmt.Sprintf("%4s %s", money.Percent(v.Percentage), v.Status)),
	)

	detail := fmt.Sprintf("    %s of %s · remaining %s",
		FormatAmount(v.Spent), FormatAmount(v.Limit), FormatAmount(v.Remaining))

	return line + "\n" + faintStyle.Render(detail)
}

type budgetFields struct {
	category uuid.UUID
	limit    string
	note     string
}

// Messages

type overviewMsg struct {
	period Period
	views  []budget.View
	err    error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	period := m.period

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		views, err := m.deps.Budgets.Overview(ctx, m.deps.Cache(), m.deps.UserID, period.Month, period.Year)

		return overviewMsg{period: period, views: views, err: err}
	}
}

type budgetFormOptionsMsg struct {
	options []huh.Option[uuid.UUID]
	err     error
}

func (m DashboardModel) loadFormOptionsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		options, err := categoryOptions(ctx, m.deps, transaction.TypeExpense)

		return budgetFormOptionsMsg{options: options, err: err}
	}
}

type budgetSavedMsg struct {
	status string
	err    error
}

func (m DashboardModel) createCmd() tea.Cmd {
	params := budget.CreateParams{
		UserID:     m.deps.UserID,
		CategoryID: m.fields.category,
		Month:      m.period.Month,
		Year:       m.period.Year,
	}

	limit, err := parseAmount(m.fields.limit)
	if err != nil {
		return func() tea.Msg { return budgetSavedMsg{err: err} }
	}

	params.Limit = limit

	if note := strings.TrimSpace(m.fields.note); note != "" {
		params.Description = &note
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.deps.Budgets.Create(ctx, params); err != nil {
			return budgetSavedMsg{err: err}
		}

		return budgetSavedMsg{status: "Budget created"}
	}
}

func (m DashboardModel) deleteCmd(b *budget.Budget) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.deps.Budgets.Delete(ctx, b.UserID, b.ID); err != nil {
			return budgetSavedMsg{err: err}
		}

		return budgetSavedMsg{status: fmt.Sprintf("Deleted budget for %s", b.CategoryName)}
	}
}
