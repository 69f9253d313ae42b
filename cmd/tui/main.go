package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/dompet-app/dompet/cmd/tui/internal/view"
	"github.com/dompet-app/dompet/internal/budget"
	budgetStore "github.com/dompet-app/dompet/internal/budget/store"
	"github.com/dompet-app/dompet/internal/category"
	categoryStore "github.com/dompet-app/dompet/internal/category/store"
	"github.com/dompet-app/dompet/internal/config"
	"github.com/dompet-app/dompet/internal/database"
	"github.com/dompet-app/dompet/internal/export"
	"github.com/dompet-app/dompet/internal/goal"
	goalStore "github.com/dompet-app/dompet/internal/goal/store"
	"github.com/dompet-app/dompet/internal/importer/statement"
	"github.com/dompet-app/dompet/internal/logging"
	"github.com/dompet-app/dompet/internal/matching"
	matchingStore "github.com/dompet-app/dompet/internal/matching/store"
	"github.com/dompet-app/dompet/internal/querycache"
	"github.com/dompet-app/dompet/internal/spending"
	"github.com/dompet-app/dompet/internal/transaction"
	txStore "github.com/dompet-app/dompet/internal/transaction/store"
	"github.com/dompet-app/dompet/internal/wallet"
	walletStore "github.com/dompet-app/dompet/internal/wallet/store"
)

type model struct {
	deps    view.Deps
	current view.View
}

var menu = []struct {
	key   string
	label string
	open  func(view.Deps) view.View
}{
	{"1", "Budgets", func(d view.Deps) view.View { return view.NewDashboardModel(d) }},
	{"2", "Add Expense", func(d view.Deps) view.View { return view.NewAddExpenseModel(d) }},
	{"3", "Transactions", func(d view.Deps) view.View { return view.NewListModel(d) }},
	{"4", "Import Statement", func(d view.Deps) view.View { return view.NewImportModel(d) }},
	{"5", "Export Transactions", func(d view.Deps) view.View { return view.NewExportModel(d) }},
	{"6", "Matching Rules", func(d view.Deps) view.View { return view.NewRulesModel(d) }},
	{"7", "Savings Goals", func(d view.Deps) view.View { return view.NewGoalsModel(d) }},
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.current == nil {
			if msg.String() == "q" {
				return m, tea.Quit
			}

			for _, item := range menu {
				if msg.String() == item.key {
					m.current = item.open(m.deps)
					return m, m.current.Init()
				}
			}

			return m, nil
		}
	case view.BackMsg:
		m.current = nil
		return m, nil
	}

	if m.current == nil {
		return m, nil
	}

	next, cmd := m.current.Update(msg)
	if v, ok := next.(view.View); ok {
		m.current = v
	}

	return m, cmd
}

func (m model) View() string {
	if m.current != nil {
		return m.current.View() + "\n" + lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(m.current.ShortHelp())
	}

	s := "Dompet\n\n"
	for _, item := range menu {
		s += fmt.Sprintf("%s. %s\n", item.key, item.label)
	}

	return lipgloss.NewStyle().Padding(2).Render(s + "\nq. Quit")
}

func main() {
	if err := run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logFile, err := os.OpenFile("dompet-tui.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	logger := logging.NewTo(logFile, cfg.Log.Level, cfg.Log.Format)

	userID, err := cfg.TUIUser()
	if err != nil {
		return err
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	transactionService := transaction.NewService(txStore.New(db))

	sessions := spending.NewSessions(transactionService, querycache.Options{
		Name:        "spending",
		MaxAge:      cfg.Spending.MaxAge,
		Concurrency: cfg.Spending.RefetchConcurrency,
	}, spending.CoordinatorOptions{
		Logger:           logger,
		SafetyNetRefetch: cfg.Spending.SafetyNetRefetch,
	})
	defer sessions.Close()

	deps := view.Deps{
		UserID:       userID,
		Transactions: transactionService,
		Budgets:      budget.NewService(budgetStore.New(db)),
		Wallets:      wallet.NewService(walletStore.New(db)),
		Categories:   category.NewService(categoryStore.New(db)),
		Goals:        goal.NewService(goalStore.New(db)),
		Matching:     matching.NewService(matchingStore.New(db)),
		Export:       export.NewService(transactionService),
		Parser:       statement.NewParser(),
		Sessions:     sessions,
	}

	logger.Info("starting TUI", "user_id", userID)

	if _, err := tea.NewProgram(model{deps: deps}).Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
