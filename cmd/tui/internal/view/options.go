package view

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/dompet-app/dompet/internal/transaction"
)

func categoryOptions(ctx context.Context, deps Deps, txType transaction.Type) ([]huh.Option[uuid.UUID], error) {
	categories, err := deps.Categories.List(ctx, deps.UserID, &txType)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	options := make([]huh.Option[uuid.UUID], len(categories))
	for i, c := range categories {
		label := c.Name
		if c.Icon != "" {
			label = c.Icon + " " + c.Name
		}

		options[i] = huh.NewOption(label, c.ID)
	}

	return options, nil
}

func walletOptions(ctx context.Context, deps Deps) ([]huh.Option[uuid.UUID], error) {
	wallets, err := deps.Wallets.List(ctx, deps.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing wallets: %w", err)
	}

	options := make([]huh.Option[uuid.UUID], len(wallets))
	for i, w := range wallets {
		options[i] = huh.NewOption(fmt.Sprintf("%s (%s)", w.Name, FormatAmount(w.Balance)), w.ID)
	}

	return options, nil
}
