package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompet-app/dompet/internal/transaction"
)

type transactionResponse struct {
	ID           uuid.UUID        `json:"id"`
	WalletID     uuid.UUID        `json:"wallet_id"`
	CategoryID   uuid.UUID        `json:"category_id"`
	Amount       decimal.Decimal  `json:"amount"`
	Type         transaction.Type `json:"type"`
	Date         string           `json:"date"`
	Description  *string          `json:"description,omitempty"`
	WalletName   string           `json:"wallet_name,omitempty"`
	CategoryName string           `json:"category_name,omitempty"`
	CategoryIcon string           `json:"category_icon,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:           tx.ID,
		WalletID:     tx.WalletID,
		CategoryID:   tx.CategoryID,
		Amount:       tx.Amount,
		Type:         tx.Type,
		Date:         tx.Date.Format(time.DateOnly),
		Description:  tx.Description,
		WalletName:   tx.WalletName,
		CategoryName: tx.CategoryName,
		CategoryIcon: tx.CategoryIcon,
		CreatedAt:    tx.CreatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
