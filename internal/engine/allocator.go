package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ehtishamkhalid92/flowledger/internal/model"
	"github.com/ehtishamkhalid92/flowledger/internal/service"
)

// Allocator splits a salary amount across a plan's allocation items and
// materializes the splits as transactions from the plan's source account.
type Allocator struct {
	storage service.Storage
}

// NewAllocator creates an allocator backed by the given storage.
func NewAllocator(storage service.Storage) *Allocator {
	return &Allocator{storage: storage}
}

// Allocate computes every item's portion of salaryCents and persists one
// transaction per item, in plan order. It returns the number created.
//
// Percentages that sum past 100 are scaled down proportionally; fixed
// amounts are applied at face value. Each percent portion is rounded
// independently, half away from zero, so the sum of portions may drift from
// the salary by a few minor units. Unresolvable names are lenient: an
// unknown source account allocates nothing, an unknown target account or
// category skips that single item.
func (a *Allocator) Allocate(ctx context.Context, salaryCents int64, plan *model.SalaryPlan, date time.Time) (int, error) {
	if salaryCents < 0 {
		return 0, fmt.Errorf("salary must be non-negative, got %d", salaryCents)
	}
	if plan == nil || len(plan.Items) == 0 {
		return 0, nil
	}

	accounts, err := a.storage.ListAccounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list accounts: %w", err)
	}
	accountByName := make(map[string]string, len(accounts))
	for _, acc := range accounts {
		accountByName[acc.Name] = acc.ID
	}

	categories, err := a.storage.ListCategories(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to list categories: %w", err)
	}
	categoryByName := make(map[string]string, len(categories))
	for _, cat := range categories {
		categoryByName[cat.Name] = cat.ID
	}

	sourceID, ok := accountByName[plan.SourceAccountName]
	if !ok {
		// Nothing to allocate from; a no-op rather than an error.
		slog.Warn("salary plan source account not found", "name", plan.SourceAccountName)
		return 0, nil
	}

	// Sum percents once so every item scales against the same total.
	percentTotal := 0.0
	for _, item := range plan.Items {
		if item.Amount.Type == model.AmountPercent {
			percentTotal += item.Amount.Percent
		}
	}
	percentScale := math.Min(percentTotal, 100.0)

	created := 0
	for _, item := range plan.Items {
		portion := portionCents(salaryCents, item.Amount, percentScale)
		if portion <= 0 {
			continue
		}

		var txn model.Transaction
		switch item.Action.Type {
		case model.ActionTransferToAccount:
			targetID, ok := accountByName[item.Action.TargetAccountName]
			if !ok {
				slog.Warn("skipping allocation item: target account not found",
					"item", item.Name, "account", item.Action.TargetAccountName)
				continue
			}
			txn = model.Transaction{
				ID:                    uuid.NewString(),
				Kind:                  model.KindTransfer,
				Amount:                model.NewMoney(portion, model.DefaultCurrency),
				AccountID:             sourceID,
				CounterpartyAccountID: targetID,
				Note:                  item.Name,
				Date:                  date,
				IsCleared:             true,
			}
		case model.ActionExpenseToCategory:
			categoryID, ok := categoryByName[item.Action.CategoryName]
			if !ok {
				slog.Warn("skipping allocation item: category not found",
					"item", item.Name, "category", item.Action.CategoryName)
				continue
			}
			txn = model.Transaction{
				ID:         uuid.NewString(),
				Kind:       model.KindExpense,
				Amount:     model.NewMoney(portion, model.DefaultCurrency),
				AccountID:  sourceID,
				CategoryID: categoryID,
				Note:       item.Name,
				Date:       date,
				IsCleared:  true,
			}
		default:
			slog.Warn("skipping allocation item: unknown action", "item", item.Name, "action", item.Action.Type)
			continue
		}

		if err := a.storage.SaveTransaction(ctx, &txn); err != nil {
			return created, fmt.Errorf("failed to save allocation %q: %w", item.Name, err)
		}
		created++
	}

	slog.Info("salary allocation complete",
		"salary", model.NewMoney(salaryCents, model.DefaultCurrency).String(),
		"items", len(plan.Items),
		"created", created)
	return created, nil
}

// portionCents computes one item's share of the salary in minor units.
// percentScale is min(sum of all percent items, 100); when it is zero every
// percent item is zero as well, so the divide-by-zero guard of 1 changes
// nothing.
func portionCents(salaryCents int64, amount model.AllocationAmount, percentScale float64) int64 {
	switch amount.Type {
	case model.AmountFixedCents:
		if amount.FixedCents < 0 {
			return 0
		}
		return amount.FixedCents
	case model.AmountPercent:
		capped := math.Max(0, math.Min(100, amount.Percent))
		scale := percentScale
		if scale == 0 {
			scale = 1
		}
		used := capped / scale
		return int64(math.Round(float64(salaryCents) * used))
	}
	return 0
}
