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

func seedDailyRule(t *testing.T, store service.Storage, day int) {
	t.Helper()
	saveRule(t, store, model.RecurringRule{
		ID:   "netflix",
		Name: "Netflix",
		Template: model.TransactionTemplate{
			Kind:       model.KindExpense,
			Amount:     model.NewMoney(19_90, "CHF"),
			AccountID:  "acc-current",
			CategoryID: "cat-media",
		},
		Recurrence: model.Monthly(day),
		StartDate:  date(2024, time.January, 1),
	})
}

func TestTrigger_EnabledDefaultsToTrue(t *testing.T) {
	store := newTestStorage(t)
	trigger := NewTrigger(store, NewRunner(store))

	enabled, err := trigger.Enabled(context.Background())
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestTrigger_RunIfDueOncePerDay(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)
	trigger := NewTrigger(store, NewRunner(store))
	seedDailyRule(t, store, 5)

	today := date(2024, time.June, 5)

	count, ran, err := trigger.RunIfDue(ctx, today)
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, 1, count)

	// Same day again: the stamp gates the run.
	count, ran, err = trigger.RunIfDue(ctx, today)
	require.NoError(t, err)
	assert.False(t, ran)
	assert.Zero(t, count)

	transactions := listAll(t, store)
	assert.Len(t, transactions, 1)

	lastRun, found, err := trigger.LastRun(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "20240605", lastRun.Format("20060102"))
}

func TestTrigger_RunIfDueNextDayRunsAgain(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)
	trigger := NewTrigger(store, NewRunner(store))

	// Weekly rule on Wednesday (weekday 4); 2024-06-05 and 06-12 both match.
	saveRule(t, store, model.RecurringRule{
		ID:   "cleaning",
		Name: "Cleaning",
		Template: model.TransactionTemplate{
			Kind:       model.KindExpense,
			Amount:     model.NewMoney(60_00, "CHF"),
			AccountID:  "acc-current",
			CategoryID: "cat-home",
		},
		Recurrence: model.Weekly(4),
		StartDate:  date(2024, time.January, 1),
	})

	_, ran, err := trigger.RunIfDue(ctx, date(2024, time.June, 5))
	require.NoError(t, err)
	assert.True(t, ran)

	_, ran, err = trigger.RunIfDue(ctx, date(2024, time.June, 12))
	require.NoError(t, err)
	assert.True(t, ran)

	assert.Len(t, listAll(t, store), 2)
}

func TestTrigger_DisabledIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)
	trigger := NewTrigger(store, NewRunner(store))
	seedDailyRule(t, store, 5)

	require.NoError(t, trigger.SetEnabled(ctx, false))

	count, ran, err := trigger.RunIfDue(ctx, date(2024, time.June, 5))
	require.NoError(t, err)
	assert.False(t, ran)
	assert.Zero(t, count)
	assert.Empty(t, listAll(t, store))
}

// ForceRun ignores both the enabled flag and the last-run stamp; repeated
// manual runs on the same day duplicate on purpose.
func TestTrigger_ForceRunBypassesGate(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)
	trigger := NewTrigger(store, NewRunner(store))
	seedDailyRule(t, store, 5)

	require.NoError(t, trigger.SetEnabled(ctx, false))

	today := date(2024, time.June, 5)

	count, err := trigger.ForceRun(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = trigger.ForceRun(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.Len(t, listAll(t, store), 2)
}

// A forced run still stamps the day, so the automatic path will not run a
// third copy afterwards.
func TestTrigger_ForceRunStampsDay(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)
	trigger := NewTrigger(store, NewRunner(store))
	seedDailyRule(t, store, 5)

	today := date(2024, time.June, 5)

	_, err := trigger.ForceRun(ctx, today)
	require.NoError(t, err)

	_, ran, err := trigger.RunIfDue(ctx, today)
	require.NoError(t, err)
	assert.False(t, ran)
	assert.Len(t, listAll(t, store), 1)
}
