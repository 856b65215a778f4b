package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ehtishamkhalid92/flowledger/internal/cli"
	"github.com/ehtishamkhalid92/flowledger/internal/engine"
	"github.com/ehtishamkhalid92/flowledger/internal/model"
)

func recurringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Manage recurring rules",
		Long: `Manage recurring transaction rules and generate the transactions due on a
given date. Rules fire monthly on a day of month (clamped to short months)
or weekly on a weekday.`,
	}

	cmd.AddCommand(listRecurringCmd())
	cmd.AddCommand(addRecurringCmd())
	cmd.AddCommand(deleteRecurringCmd())
	cmd.AddCommand(runRecurringCmd())
	cmd.AddCommand(autoRecurringCmd())

	return cmd
}

func listRecurringCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active recurring rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rules, err := store.ListActiveRecurringRules(ctx)
			if err != nil {
				return fmt.Errorf("failed to list recurring rules: %w", err)
			}

			if len(rules) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No recurring rules. Use 'flowledger recurring add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Recurrence"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Kind"))
			for _, rule := range rules {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					rule.ID, rule.Name, rule.Recurrence.String(),
					rule.Template.Amount.String(), rule.Template.Kind)
			}

			return nil
		},
	}
}

func addRecurringCmd() *cobra.Command {
	var (
		kind         string
		amount       string
		accountID    string
		counterparty string
		categoryID   string
		note         string
		monthDay     int
		weekday      int
		startFlag    string
		endFlag      string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a recurring rule",
		Long: `Create a recurring rule. Give exactly one of --month-day (1..31) or
--weekday (1=Sunday..7=Saturday).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if (monthDay == 0) == (weekday == 0) {
				return fmt.Errorf("give exactly one of --month-day or --weekday")
			}

			cents, err := parseAmountCents(amount)
			if err != nil {
				return err
			}

			start, err := parseDateFlag(startFlag)
			if err != nil {
				return err
			}
			var end *time.Time
			if endFlag != "" {
				e, err := parseDateFlag(endFlag)
				if err != nil {
					return err
				}
				end = &e
			}

			recurrence := model.Monthly(monthDay)
			if weekday != 0 {
				recurrence = model.Weekly(weekday)
			}

			rule := model.RecurringRule{
				ID:   uuid.NewString(),
				Name: args[0],
				Template: model.TransactionTemplate{
					Kind:                  model.TransactionKind(kind),
					Amount:                model.NewMoney(cents, model.DefaultCurrency),
					AccountID:             accountID,
					CounterpartyAccountID: counterparty,
					CategoryID:            categoryID,
					Note:                  note,
				},
				Recurrence: recurrence,
				StartDate:  start,
				EndDate:    end,
			}
			if err := rule.Validate(); err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveRecurringRule(ctx, &rule); err != nil {
				return fmt.Errorf("failed to save recurring rule: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created rule %q, %s", rule.Name, rule.Recurrence.String())))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "expense", "template kind (expense, income, transfer)")
	cmd.Flags().StringVar(&amount, "amount", "", "template amount, e.g. 120.00")
	cmd.Flags().StringVar(&accountID, "account", "", "template account id")
	cmd.Flags().StringVar(&counterparty, "to", "", "template destination account id (transfers only)")
	cmd.Flags().StringVar(&categoryID, "category", "", "template category id (expense/income only)")
	cmd.Flags().StringVar(&note, "note", "", "template note (defaults to the rule name when generating)")
	cmd.Flags().IntVar(&monthDay, "month-day", 0, "fire monthly on this day of month (1..31)")
	cmd.Flags().IntVar(&weekday, "weekday", 0, "fire weekly on this weekday (1=Sunday..7=Saturday)")
	cmd.Flags().StringVar(&startFlag, "start", "", "start date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&endFlag, "end", "", "end date (YYYY-MM-DD, inclusive)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func deleteRecurringCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recurring rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteRecurringRule(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Recurring rule deleted"))
			return nil
		},
	}
}

func runRecurringCmd() *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run recurring rules now",
		Long: `Generate the transactions due on the given date, bypassing the once-per-day
gate. Running twice for the same date generates duplicates.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			date, err := parseDateFlag(dateFlag)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			trigger := engine.NewTrigger(store, engine.NewRunner(store))
			count, err := trigger.ForceRun(ctx, date)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created %d transaction(s) for %s", count, date.Format("2006-01-02"))))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "run date (YYYY-MM-DD, default today)")

	return cmd
}

func autoRecurringCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auto",
		Short: "Run recurring rules if due today",
		Long: `Invoke the once-per-day automatic run: a no-op when automation is disabled
or a run already completed today.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			trigger := engine.NewTrigger(store, engine.NewRunner(store))
			count, ran, err := trigger.RunIfDue(ctx, time.Now())
			if err != nil {
				return err
			}

			if !ran {
				fmt.Println(cli.SubtleStyle.Render("Nothing to do (disabled or already ran today)."))
				return nil
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Auto-run created %d transaction(s)", count)))
			return nil
		},
	}
}
