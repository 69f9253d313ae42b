package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/dompet-app/dompet/internal/budget"
	"github.com/dompet-app/dompet/internal/category"
	"github.com/dompet-app/dompet/internal/export"
	"github.com/dompet-app/dompet/internal/goal"
	"github.com/dompet-app/dompet/internal/importer"
	"github.com/dompet-app/dompet/internal/matching"
	"github.com/dompet-app/dompet/internal/spending"
	"github.com/dompet-app/dompet/internal/transaction"
	"github.com/dompet-app/dompet/internal/wallet"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// Deps are the services shared by every screen. The TUI runs a single
// session, so every screen reads and writes through the same cache.
type Deps struct {
	UserID       uuid.UUID
	Transactions *transaction.Service
	Budgets      *budget.Service
	Wallets      *wallet.Service
	Categories   *category.Service
	Goals        *goal.Service
	Matching     *matching.Service
	Export       *export.Service
	Parser       importer.Parser
	Sessions     *spending.Sessions
}

func (d Deps) Cache() *spending.Cache {
	return d.Sessions.Cache(d.UserID)
}

func (d Deps) Coordinator() *spending.Coordinator {
	return d.Sessions.Coordinator(d.UserID)
}
