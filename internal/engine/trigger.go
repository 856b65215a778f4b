package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/ehtishamkhalid92/flowledger/internal/service"
)

// Settings keys owned by the automation trigger.
const (
	settingAutoRunEnabled = "automation.recurring.enabled"
	settingLastRunStamp   = "automation.recurring.last_run"
)

// stampLayout is the compact YYYYMMDD date stamp persisted after a run.
const stampLayout = "20060102"

// Trigger is the once-per-day gate in front of the Runner. It is the sole
// guard against the runner's duplicate generation on the automatic path;
// forced runs bypass it and may duplicate.
type Trigger struct {
	storage service.Storage
	runner  *Runner
}

// NewTrigger creates a trigger for the given runner, persisting its state
// through storage's key-value settings.
func NewTrigger(storage service.Storage, runner *Runner) *Trigger {
	return &Trigger{storage: storage, runner: runner}
}

// Enabled reports whether automatic runs are on. Defaults to true when the
// setting has never been written.
func (t *Trigger) Enabled(ctx context.Context) (bool, error) {
	raw, found, err := t.storage.GetSetting(ctx, settingAutoRunEnabled)
	if err != nil {
		return false, fmt.Errorf("failed to read automation setting: %w", err)
	}
	if !found {
		return true, nil
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("malformed automation setting %q: %w", raw, err)
	}
	return enabled, nil
}

// SetEnabled turns automatic runs on or off.
func (t *Trigger) SetEnabled(ctx context.Context, enabled bool) error {
	if err := t.storage.SetSetting(ctx, settingAutoRunEnabled, strconv.FormatBool(enabled)); err != nil {
		return fmt.Errorf("failed to write automation setting: %w", err)
	}
	return nil
}

// LastRun returns the stamp of the last completed run, if any.
func (t *Trigger) LastRun(ctx context.Context) (time.Time, bool, error) {
	raw, found, err := t.storage.GetSetting(ctx, settingLastRunStamp)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to read last-run stamp: %w", err)
	}
	if !found {
		return time.Time{}, false, nil
	}
	stamp, err := time.Parse(stampLayout, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("malformed last-run stamp %q: %w", raw, err)
	}
	return stamp, true, nil
}

// RunIfDue invokes the runner for today unless automation is disabled or a
// run already completed on today's date. It returns the number of
// transactions created and whether a run happened. The stamp is written
// only after a successful run, so a crash mid-run leaves it unset and the
// next invocation retries the full run.
func (t *Trigger) RunIfDue(ctx context.Context, today time.Time) (int, bool, error) {
	enabled, err := t.Enabled(ctx)
	if err != nil {
		return 0, false, err
	}
	if !enabled {
		slog.Debug("recurring auto-run disabled")
		return 0, false, nil
	}

	stamp := today.Format(stampLayout)
	last, found, err := t.storage.GetSetting(ctx, settingLastRunStamp)
	if err != nil {
		return 0, false, fmt.Errorf("failed to read last-run stamp: %w", err)
	}
	if found && last == stamp {
		slog.Debug("recurring auto-run already completed today", "stamp", stamp)
		return 0, false, nil
	}

	count, err := t.runner.RunForDate(ctx, today)
	if err != nil {
		return count, false, err
	}
	if err := t.storage.SetSetting(ctx, settingLastRunStamp, stamp); err != nil {
		return count, true, fmt.Errorf("run succeeded but failed to persist last-run stamp: %w", err)
	}
	return count, true, nil
}

// ForceRun invokes the runner for today unconditionally, ignoring both the
// enabled flag and the last-run stamp, then persists today's stamp.
func (t *Trigger) ForceRun(ctx context.Context, today time.Time) (int, error) {
	count, err := t.runner.RunForDate(ctx, today)
	if err != nil {
		return count, err
	}
	if err := t.storage.SetSetting(ctx, settingLastRunStamp, today.Format(stampLayout)); err != nil {
		return count, fmt.Errorf("run succeeded but failed to persist last-run stamp: %w", err)
	}
	return count, nil
}
