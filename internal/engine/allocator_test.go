package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehtishamkhalid92/flowledger/internal/model"
	"github.com/ehtishamkhalid92/flowledger/internal/service"
)

func seedAccount(t *testing.T, store service.Storage, id, name string) {
	t.Helper()
	require.NoError(t, store.SaveAccount(context.Background(), &model.Account{
		ID:      id,
		Name:    name,
		Kind:    model.AccountCurrent,
		Balance: model.Zero(),
	}))
}

func seedCategory(t *testing.T, store service.Storage, id, name string) {
	t.Helper()
	require.NoError(t, store.SaveCategory(context.Background(), &model.Category{
		ID:   id,
		Name: name,
		Kind: model.CategoryExpense,
	}))
}

func listAll(t *testing.T, store service.Storage) []model.Transaction {
	t.Helper()
	transactions, err := store.ListTransactions(context.Background(), service.TransactionQuery{})
	require.NoError(t, err)
	return transactions
}

// Two percent(60) items against salary 10000: the percent sum of 120 is
// scaled to 100, each item uses 0.6, so each portion is 6000 and the total
// allocated (12000) exceeds the salary. The scaling caps the percent sum,
// not the allocated total.
func TestAllocator_PercentScalingOver100(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)
	seedAccount(t, store, "acc-current", "Current")
	seedAccount(t, store, "acc-savings", "Savings")
	seedAccount(t, store, "acc-fund", "Fund")

	plan := &model.SalaryPlan{
		SourceAccountName: "Current",
		Items: []model.SalaryAllocationItem{
			{ID: "1", Name: "Savings", Action: model.TransferToAccount("Savings"), Amount: model.Percent(60)},
			{ID: "2", Name: "Fund", Action: model.TransferToAccount("Fund"), Amount: model.Percent(60)},
		},
	}

	count, err := NewAllocator(store).Allocate(ctx, 10000, plan, date(2024, time.June, 25))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	transactions := listAll(t, store)
	require.Len(t, transactions, 2)
	for _, txn := range transactions {
		assert.Equal(t, model.KindTransfer, txn.Kind)
		assert.Equal(t, int64(6000), txn.Amount.Cents)
		assert.Equal(t, "acc-current", txn.AccountID)
		assert.True(t, txn.IsCleared)
	}
}

// percentScale = min(50, 100) = 50, so the single percent(50) item uses
// 50/50 = 1.0 of the salary; the fixed item applies at face value.
func TestAllocator_FixedPlusPercent(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)
	seedAccount(t, store, "acc-current", "Current")
	seedAccount(t, store, "acc-savings", "Savings")
	seedCategory(t, store, "cat-rent", "Rent")

	plan := &model.SalaryPlan{
		SourceAccountName: "Current",
		Items: []model.SalaryAllocationItem{
			{ID: "1", Name: "Rent", Action: model.ExpenseToCategory("Rent"), Amount: model.FixedCents(50000)},
			{ID: "2", Name: "Savings", Action: model.TransferToAccount("Savings"), Amount: model.Percent(50)},
		},
	}

	count, err := NewAllocator(store).Allocate(ctx, 200000, plan, date(2024, time.June, 25))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	transactions := listAll(t, store)
	require.Len(t, transactions, 2)

	byNote := map[string]model.Transaction{}
	for _, txn := range transactions {
		byNote[txn.Note] = txn
	}

	rent := byNote["Rent"]
	assert.Equal(t, model.KindExpense, rent.Kind)
	assert.Equal(t, int64(50000), rent.Amount.Cents)
	assert.Equal(t, "cat-rent", rent.CategoryID)
	assert.Empty(t, rent.CounterpartyAccountID)

	savings := byNote["Savings"]
	assert.Equal(t, model.KindTransfer, savings.Kind)
	assert.Equal(t, int64(200000), savings.Amount.Cents)
	assert.Equal(t, "acc-savings", savings.CounterpartyAccountID)
	assert.Empty(t, savings.CategoryID)
}

func TestAllocator_UnresolvableSourceIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)
	seedAccount(t, store, "acc-savings", "Savings")

	plan := &model.SalaryPlan{
		SourceAccountName: "Nonexistent",
		Items: []model.SalaryAllocationItem{
			{ID: "1", Name: "Savings", Action: model.TransferToAccount("Savings"), Amount: model.Percent(100)},
		},
	}

	count, err := NewAllocator(store).Allocate(ctx, 10000, plan, date(2024, time.June, 25))
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, listAll(t, store))
}

// One unresolvable item is skipped; the rest of the plan still applies.
func TestAllocator_UnresolvableItemSkipped(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)
	seedAccount(t, store, "acc-current", "Current")
	seedAccount(t, store, "acc-savings", "Savings")

	plan := &model.SalaryPlan{
		SourceAccountName: "Current",
		Items: []model.SalaryAllocationItem{
			{ID: "1", Name: "Ghost", Action: model.TransferToAccount("NoSuchAccount"), Amount: model.Percent(50)},
			{ID: "2", Name: "Missing", Action: model.ExpenseToCategory("NoSuchCategory"), Amount: model.FixedCents(10_00)},
			{ID: "3", Name: "Savings", Action: model.TransferToAccount("Savings"), Amount: model.Percent(50)},
		},
	}

	count, err := NewAllocator(store).Allocate(ctx, 10000, plan, date(2024, time.June, 25))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	transactions := listAll(t, store)
	require.Len(t, transactions, 1)
	assert.Equal(t, "Savings", transactions[0].Note)
	// 50 of a percent total of 100, so half the salary.
	assert.Equal(t, int64(5000), transactions[0].Amount.Cents)
}

func TestAllocator_ZeroPortionSkipped(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)
	seedAccount(t, store, "acc-current", "Current")
	seedAccount(t, store, "acc-savings", "Savings")

	plan := &model.SalaryPlan{
		SourceAccountName: "Current",
		Items: []model.SalaryAllocationItem{
			{ID: "1", Name: "Nothing", Action: model.TransferToAccount("Savings"), Amount: model.Percent(0)},
			{ID: "2", Name: "ZeroFixed", Action: model.TransferToAccount("Savings"), Amount: model.FixedCents(0)},
			{ID: "3", Name: "Rest", Action: model.TransferToAccount("Savings"), Amount: model.Percent(40)},
		},
	}

	count, err := NewAllocator(store).Allocate(ctx, 10000, plan, date(2024, time.June, 25))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	transactions := listAll(t, store)
	require.Len(t, transactions, 1)
	// percentTotal = 40, scale = 40, so the 40% item takes the whole salary.
	assert.Equal(t, int64(10000), transactions[0].Amount.Cents)
}

func TestAllocator_NegativeSalaryRejected(t *testing.T) {
	store := newTestStorage(t)

	_, err := NewAllocator(store).Allocate(context.Background(), -1, &model.SalaryPlan{}, date(2024, time.June, 25))
	assert.Error(t, err)
}

func TestAllocator_EmptyPlan(t *testing.T) {
	store := newTestStorage(t)

	count, err := NewAllocator(store).Allocate(context.Background(), 10000, &model.SalaryPlan{SourceAccountName: "Current"}, date(2024, time.June, 25))
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPortionCents_Rounding(t *testing.T) {
	tests := []struct {
		name         string
		salary       int64
		amount       model.AllocationAmount
		percentScale float64
		want         int64
	}{
		{"half rounds away from zero", 1001, model.Percent(50), 100, 501},
		{"exact split", 1000, model.Percent(50), 100, 500},
		{"third rounds down", 100, model.Percent(33), 100, 33},
		{"negative fixed clamps to zero", 1000, model.FixedCents(-5), 100, 0},
		{"percent above 100 capped", 1000, model.Percent(150), 100, 1000},
		{"zero scale guarded", 1000, model.Percent(0), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := portionCents(tt.salary, tt.amount, tt.percentScale); got != tt.want {
				t.Errorf("portionCents(%d, %+v, %v) = %d, want %d", tt.salary, tt.amount, tt.percentScale, got, tt.want)
			}
		})
	}
}
