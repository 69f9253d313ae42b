package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/dompet-app/dompet/internal/transaction"
)

type expenseState int

const (
	expenseStateLoading expenseState = iota
	expenseStateForm
	expenseStateSaving
	expenseStateResult
)

// AddExpenseModel records an expense through the session coordinator, so the
// dashboard total for its category is current once the save returns.
type AddExpenseModel struct {
	CommonModel
	deps Deps

	state expenseState
	form  *huh.Form

	fields *expenseFields

	saved *transaction.Transaction
	err   error
}

func NewAddExpenseModel(deps Deps) AddExpenseModel {
	return AddExpenseModel{deps: deps, state: expenseStateLoading}
}

func (m AddExpenseModel) Title() string { return "Add Expense" }

func (m AddExpenseModel) ShortHelp() string {
	if m.state == expenseStateResult {
		return "Enter: add another | Esc: back"
	}

	return "Esc: back | Enter/Tab: navigate form"
}

func (m AddExpenseModel) Init() tea.Cmd {
	return m.loadOptionsCmd()
}

func (m AddExpenseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case expenseOptionsMsg:
		if msg.err != nil {
			m.state = expenseStateResult
			m.err = msg.err

			return m, nil
		}

		return m.buildForm(msg.wallets, msg.categories)

	case expenseSavedMsg:
		m.state = expenseStateResult
		m.saved = msg.tx
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		if m.state == expenseStateResult && msg.Type == tea.KeyEnter {
			m.state = expenseStateLoading
			m.err = nil
			m.saved = nil

			return m, m.loadOptionsCmd()
		}
	}

	if m.state != expenseStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = expenseStateSaving

	return m, m.saveCmd()
}

func (m AddExpenseModel) buildForm(wallets, categories []huh.Option[uuid.UUID]) (tea.Model, tea.Cmd) {
	if len(wallets) == 0 || len(categories) == 0 {
		m.state = expenseStateResult
		m.err = fmt.Errorf("a wallet and an expense category are needed first")

		return m, nil
	}

	m.fields = &expenseFields{
		wallet:   wallets[0].Value,
		category: categories[0].Value,
		date:     FormatDate(time.Now()),
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[uuid.UUID]().
				Title("Wallet").
				Options(wallets...).
				Value(&m.fields.wallet),
			huh.NewSelect[uuid.UUID]().
				Title("Category").
				Options(categories...).
				Value(&m.fields.category),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Amount").
				Placeholder("45000").
				Value(&m.fields.amount).
				Validate(validateAmount),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fields.date).
				Validate(validateDate),
			huh.NewInput().
				Title("Description").
				Value(&m.fields.description),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = expenseStateForm

	return m, m.form.Init()
}

func (m AddExpenseModel) View() string {
	var body string

	switch m.state {
	case expenseStateLoading:
		body = "Loading wallets and categories..."
	case expenseStateForm:
		body = m.form.View()
	case expenseStateSaving:
		body = "Saving..."
	case expenseStateResult:
		if m.err != nil {
			body = errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
		} else {
			body = fmt.Sprintf("Saved %s on %s", activeStyle(FormatAmount(m.saved.Amount)), FormatDate(m.saved.Date))
		}
	}

	return lipgloss.NewStyle().Padding(1).Render(titleStyle.Render("Add Expense") + "\n" + body)
}

// expenseFields are bound to the form. They live behind a pointer so every
// copy of the model sees what was typed.
type expenseFields struct {
	wallet      uuid.UUID
	category    uuid.UUID
	amount      string
	date        string
	description string
}

// Messages

type expenseOptionsMsg struct {
	wallets    []huh.Option[uuid.UUID]
	categories []huh.Option[uuid.UUID]
	err        error
}

func (m AddExpenseModel) loadOptionsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		wallets, err := walletOptions(ctx, m.deps)
		if err != nil {
			return expenseOptionsMsg{err: err}
		}

		categories, err := categoryOptions(ctx, m.deps, transaction.TypeExpense)

		return expenseOptionsMsg{wallets: wallets, categories: categories, err: err}
	}
}

type expenseSavedMsg struct {
	tx  *transaction.Transaction
	err error
}

func (m AddExpenseModel) saveCmd() tea.Cmd {
	params, err := m.params()
	if err != nil {
		return func() tea.Msg { return expenseSavedMsg{err: err} }
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		tx, err := m.deps.Coordinator().Create(ctx, params)

		return expenseSavedMsg{tx: tx, err: err}
	}
}

func (m AddExpenseModel) params() (transaction.CreateParams, error) {
	amount, err := parseAmount(m.fields.amount)
	if err != nil {
		return transaction.CreateParams{}, err
	}

	date, err := time.Parse(time.DateOnly, strings.TrimSpace(m.fields.date))
	if err != nil {
		return transaction.CreateParams{}, fmt.Errorf("parsing date: %w", err)
	}

	params := transaction.CreateParams{
		UserID:     m.deps.UserID,
		WalletID:   m.fields.wallet,
		CategoryID: m.fields.category,
		Amount:     amount,
		Type:       transaction.TypeExpense,
		Date:       date,
	}

	if desc := strings.TrimSpace(m.fields.description); desc != "" {
		params.Description = &desc
	}

	return params, nil
}

