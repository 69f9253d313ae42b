package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/dompet-app/dompet/internal/spending"
	"github.com/dompet-app/dompet/internal/transaction"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateEdit
	listStateConfirmDelete
)

// ListModel browses one month of transactions. Edits and deletes go through
// the session coordinator.
type ListModel struct {
	CommonModel
	deps Deps

	state  listState
	period Period
	table  table.Model
	txs    []*transaction.Transaction
	form   *huh.Form
	fields *listFields

	loading bool
	err     error
	status  string
}

type listFields struct {
	amount      string
	description string
	confirm     bool
}

func NewListModel(deps Deps) ListModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 8},
		{Title: "Amount", Width: 16},
		{Title: "Category", Width: 18},
		{Title: "Wallet", Width: 14},
		{Title: "Description", Width: 36},
	}

	return ListModel{
		deps:    deps,
		period:  PeriodOf(time.Now()),
		table:   newTable(columns, 15),
		loading: true,
	}
}

func (m ListModel) Title() string { return "Transactions" }

func (m ListModel) ShortHelp() string {
	switch m.state {
	case listStateEdit:
		return "Navigate form | Esc: cancel"
	case listStateConfirmDelete:
		return "Confirm delete | Esc: cancel"
	}

	return "Esc: back | ←/→: month | e: edit | d: delete | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadTxsCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		if msg.period != m.period {
			return m, nil
		}

		m.loading = false
		m.err = msg.err
		m.txs = msg.txs
		m.refreshTable()

		return m, nil

	case listSaveMsg:
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}

		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil
	}

	switch m.state {
	case listStateEdit, listStateConfirmDelete:
		return m.updateForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, Back
		case "left", "h":
			m.period = m.period.Prev()
			return m.reload()
		case "right", "l":
			m.period = m.period.Next()
			return m.reload()
		case "r":
			return m.reload()
		case "e":
			return m.enterEdit()
		case "d":
			return m.enterDelete()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) reload() (tea.Model, tea.Cmd) {
	m.loading = true
	m.status = ""

	return m, m.loadTxsCmd()
}

func (m ListModel) selected() *transaction.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	return m.txs[idx]
}

func (m ListModel) enterEdit() (tea.Model, tea.Cmd) {
	tx := m.selected()
	if tx == nil {
		return m, nil
	}

	m.fields = &listFields{amount: tx.Amount.String()}
	if tx.Description != nil {
		m.fields.description = *tx.Description
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount").
				Value(&m.fields.amount).
				Validate(validateAmount),
			huh.NewInput().
				Title("Description").
				Value(&m.fields.description),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ListModel) enterDelete() (tea.Model, tea.Cmd) {
	tx := m.selected()
	if tx == nil {
		return m, nil
	}

	m.fields = &listFields{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s on %s?", FormatAmount(tx.Amount), FormatDate(tx.Date))).
				Affirmative("Delete").
				Negative("Keep").
				Value(&m.fields.confirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStateConfirmDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m ListModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == listStateConfirmDelete {
		if !m.fields.confirm {
			m.state = listStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}

		return m, m.deleteCmd(m.selected())
	}

	return m, m.updateCmd(m.selected())
}

func (m ListModel) View() string {
	if m.loading && len(m.txs) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	income, expense := sumByType(m.txs)

	header := fmt.Sprintf("%s | income %s | expense %s",
		activeStyle(m.period.String()), FormatAmount(income), FormatAmount(expense))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxed(m.table.View()),
	)

	if m.form != nil && m.state != listStateBrowse {
		title := "Edit Transaction"
		if m.state == listStateConfirmDelete {
			title = "Delete Transaction"
		}

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panelStyle.Width(48).Render(title+"\n\n"+m.form.View()))
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		desc := ""
		if tx.Description != nil {
			desc = *tx.Description
		}

		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			string(tx.Type),
			FormatAmount(tx.Amount),
			strings.TrimSpace(tx.CategoryIcon + " " + tx.CategoryName),
			tx.WalletName,
			desc,
		})
	}

	m.table.SetRows(rows)
}

func sumByType(txs []*transaction.Transaction) (income, expense decimal.Decimal) {
	for _, tx := range txs {
		if tx.IsExpense() {
			expense = expense.Add(tx.Amount)
		} else {
			income = income.Add(tx.Amount)
		}
	}

	return income, expense
}

// Messages

type loadListMsg struct {
	period Period
	txs    []*transaction.Transaction
	err    error
}

func (m ListModel) loadTxsCmd() tea.Cmd {
	period := m.period

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		filter, err := spending.MonthFilter(m.deps.UserID, period.Month, period.Year)
		if err != nil {
			return loadListMsg{period: period, err: err}
		}

		txs, err := m.deps.Transactions.List(ctx, filter)

		return loadListMsg{period: period, txs: txs, err: err}
	}
}

type listSaveMsg struct {
	status string
	err    error
}

func (m ListModel) updateCmd(prior *transaction.Transaction) tea.Cmd {
	if prior == nil {
		return nil
	}

	amount, err := parseAmount(m.fields.amount)
	if err != nil {
		return func() tea.Msg { return listSaveMsg{err: err} }
	}

	desc := strings.TrimSpace(m.fields.description)
	patch := transaction.Patch{Amount: &amount, Description: &desc}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.deps.Coordinator().Update(ctx, prior.UserID, prior.ID, prior, patch); err != nil {
			return listSaveMsg{err: err}
		}

		return listSaveMsg{status: "Transaction updated"}
	}
}

func (m ListModel) deleteCmd(prior *transaction.Transaction) tea.Cmd {
	if prior == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.deps.Coordinator().Delete(ctx, prior); err != nil {
			return listSaveMsg{err: err}
		}

		return listSaveMsg{status: fmt.Sprintf("Deleted %s", FormatAmount(prior.Amount))}
	}
}
