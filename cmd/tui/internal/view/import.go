package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/dompet-app/dompet/internal/importer"
	"github.com/dompet-app/dompet/internal/transaction"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateLoading importState = iota
	importStateSetup
	importStateFilePick
	importStatePreviewing
	importStateReview
	importStateImporting
	importStateResult
)

// ImportModel reads a bank statement, shows the categorised rows and records
// the selected ones through the session coordinator.
type ImportModel struct {
	CommonModel
	deps Deps

	state      importState
	form       *huh.Form
	fields     *importFields
	filePicker filepicker.Model

	preview  *importer.Preview
	entries  list.Model
	excluded map[int]bool

	status string
	err    error
}

type importFields struct {
	wallet  uuid.UUID
	expense uuid.UUID
	income  uuid.UUID
}

func NewImportModel(deps Deps) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".CSV", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		deps:       deps,
		filePicker: fp,
		excluded:   make(map[int]bool),
	}
}

func (m ImportModel) Title() string { return "Import Statement" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateReview {
		return "Space: toggle | a: all | n: none | Enter: import | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.loadOptionsCmd()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateReview {
			return m.updateReview(msg)
		}

	case importOptionsMsg:
		if msg.err != nil {
			return m.fail(msg.err)
		}

		return m.buildSetupForm(msg)

	case previewResultMsg:
		if msg.err != nil {
			return m.fail(msg.err)
		}

		return m.enterReview(msg.preview)

	case importDoneMsg:
		if msg.err != nil {
			return m.fail(msg.err)
		}

		m.state = importStateResult
		m.status = fmt.Sprintf("Imported %d transactions.", msg.count)

		return m, nil
	}

	switch m.state {
	case importStateSetup:
		return m.updateSetup(msg)
	case importStateFilePick:
		return m.updateFilePick(msg)
	}

	return m, nil
}

func (m ImportModel) fail(err error) (tea.Model, tea.Cmd) {
	m.state = importStateResult
	m.err = err
	m.status = fmt.Sprintf("Error: %v", err)

	return m, nil
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick, importStateReview, importStateResult:
		m.state = importStateLoading
		m.err = nil
		m.status = ""
		m.preview = nil
		m.excluded = make(map[int]bool)

		return m, m.loadOptionsCmd()
	}

	return m, Back
}

func (m ImportModel) buildSetupForm(opts importOptionsMsg) (tea.Model, tea.Cmd) {
	if len(opts.wallets) == 0 || len(opts.expense) == 0 || len(opts.income) == 0 {
		return m.fail(fmt.Errorf("a wallet plus an income and an expense category are needed first"))
	}

	m.fields = &importFields{
		wallet:  opts.wallets[0].Value,
		expense: opts.expense[0].Value,
		income:  opts.income[0].Value,
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[uuid.UUID]().
				Title("Wallet").
				Options(opts.wallets...).
				Value(&m.fields.wallet),
			huh.NewSelect[uuid.UUID]().
				Title("Default expense category").
				Description("Used when no rule matches").
				Options(opts.expense...).
				Value(&m.fields.expense),
			huh.NewSelect[uuid.UUID]().
				Title("Default income category").
				Options(opts.income...).
				Value(&m.fields.income),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = importStateSetup

	return m, m.form.Init()
}

func (m ImportModel) updateSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = importStateFilePick

	return m, m.filePicker.Init()
}

func (m ImportModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStatePreviewing
		m.status = fmt.Sprintf("Reading %s...", path)

		return m, m.previewCmd(path)
	}

	return m, cmd
}

func (m ImportModel) enterReview(preview *importer.Preview) (tea.Model, tea.Cmd) {
	m.preview = preview
	m.excluded = make(map[int]bool)
	m.state = importStateReview

	items := make([]list.Item, len(preview.Entries))
	for i, e := range preview.Entries {
		items[i] = entryItem{entry: e, index: i}
	}

	m.entries = list.New(items, entryDelegate{excluded: m.excluded}, 90, 20)
	m.entries.Title = fmt.Sprintf("%d rows · %s · %s · %d matched by rules",
		len(preview.Entries), preview.Profile, preview.Charset, preview.Matched)
	m.entries.SetShowStatusBar(false)
	m.entries.SetFilteringEnabled(false)
	m.entries.SetShowHelp(false)

	return m, nil
}

func (m ImportModel) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		idx := m.entries.Index()
		m.excluded[idx] = !m.excluded[idx]

		return m, nil
	case "a":
		clear(m.excluded)
		return m, nil
	case "n":
		for i := range m.preview.Entries {
			m.excluded[i] = true
		}

		return m, nil
	case "enter":
		m.state = importStateImporting
		m.status = "Importing..."

		return m, m.importCmd()
	}

	var cmd tea.Cmd
	m.entries, cmd = m.entries.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateLoading:
		return lipgloss.NewStyle().Padding(2).Render("Loading wallets and categories...")
	case importStateSetup:
		return lipgloss.NewStyle().Padding(1).Render(titleStyle.Render("Import Statement") + "\n" + m.form.View())
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render("Select statement file:\n\n" + m.filePicker.View())
	case importStatePreviewing, importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateReview:
		return lipgloss.NewStyle().Padding(1).Render(m.entries.View())
	case importStateResult:
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
		if m.err != nil {
			style = errorStyle
		}

		return lipgloss.NewStyle().Padding(2).Render(style.Render(m.status) + "\n\n(Esc to go back)")
	}

	return ""
}

func (m ImportModel) service() *importer.Service {
	return importer.NewService(m.deps.Parser, m.deps.Matching, m.deps.Coordinator())
}

func (m ImportModel) params() importer.Params {
	return importer.Params{
		UserID:            m.deps.UserID,
		WalletID:          m.fields.wallet,
		ExpenseCategoryID: m.fields.expense,
		IncomeCategoryID:  m.fields.income,
	}
}

// Messages

type importOptionsMsg struct {
	wallets []huh.Option[uuid.UUID]
	expense []huh.Option[uuid.UUID]
	income  []huh.Option[uuid.UUID]
	err     error
}

func (m ImportModel) loadOptionsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var (
			msg importOptionsMsg
			err error
		)

		if msg.wallets, err = walletOptions(ctx, m.deps); err != nil {
			return importOptionsMsg{err: err}
		}

		if msg.expense, err = categoryOptions(ctx, m.deps, transaction.TypeExpense); err != nil {
			return importOptionsMsg{err: err}
		}

		if msg.income, err = categoryOptions(ctx, m.deps, transaction.TypeIncome); err != nil {
			return importOptionsMsg{err: err}
		}

		return msg
	}
}

type previewResultMsg struct {
	preview *importer.Preview
	err     error
}

func (m ImportModel) previewCmd(path string) tea.Cmd {
	params := m.params()

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return previewResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		preview, err := m.service().Preview(ctx, params, f)
		if err != nil {
			return previewResultMsg{err: err}
		}

		if len(preview.Entries) == 0 {
			return previewResultMsg{err: importer.ErrNoRows}
		}

		return previewResultMsg{preview: preview}
	}
}

type importDoneMsg struct {
	count int
	err   error
}

func (m ImportModel) importCmd() tea.Cmd {
	var selected []transaction.CreateParams

	for i, e := range m.preview.Entries {
		if !m.excluded[i] {
			selected = append(selected, e)
		}
	}

	return func() tea.Msg {
		if len(selected) == 0 {
			return importDoneMsg{}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		txs, err := m.deps.Coordinator().CreateBatch(ctx, selected)
		if err != nil {
			return importDoneMsg{err: err}
		}

		return importDoneMsg{count: len(txs)}
	}
}

// Entry list item

type entryItem struct {
	entry transaction.CreateParams
	index int
}

func (i entryItem) Title() string       { return "" }
func (i entryItem) Description() string { return "" }
func (i entryItem) FilterValue() string { return "" }

type entryDelegate struct {
	excluded map[int]bool
}

func (d entryDelegate) Height() int                             { return 1 }
func (d entryDelegate) Spacing() int                            { return 0 }
func (d entryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d entryDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(entryItem)
	if !ok {
		return
	}

	checkbox := "[x]"
	if d.excluded[item.index] {
		checkbox = "[ ]"
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	desc := ""
	if item.entry.Description != nil {
		desc = *item.entry.Description
	}

	sign := "-"
	if item.entry.Type == transaction.TypeIncome {
		sign = "+"
	}

	fmt.Fprintf(w, "%s%s %s  %s%s  %s", cursor, checkbox, FormatDate(item.entry.Date), sign, FormatAmount(item.entry.Amount), desc)
}
