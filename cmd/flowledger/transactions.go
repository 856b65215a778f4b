package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ehtishamkhalid92/flowledger/internal/cli"
	"github.com/ehtishamkhalid92/flowledger/internal/model"
	"github.com/ehtishamkhalid92/flowledger/internal/service"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage transactions",
		Long:  `Add and list ledger transactions directly.`,
	}

	cmd.AddCommand(addTxCmd())
	cmd.AddCommand(listTxCmd())

	return cmd
}

func addTxCmd() *cobra.Command {
	var (
		kind         string
		accountID    string
		counterparty string
		categoryID   string
		note         string
		dateFlag     string
		cleared      bool
	)

	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Add a transaction",
		Long: `Record an expense, income, or transfer. The amount is always positive;
the kind determines its direction. Transfers need --to, expense/income
need --category.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cents, err := parseAmountCents(args[0])
			if err != nil {
				return err
			}
			if cents < 0 {
				return fmt.Errorf("amount must be non-negative; the kind carries the sign")
			}

			date, err := parseDateFlag(dateFlag)
			if err != nil {
				return err
			}

			txn := model.Transaction{
				ID:                    uuid.NewString(),
				Kind:                  model.TransactionKind(kind),
				Amount:                model.NewMoney(cents, model.DefaultCurrency),
				AccountID:             accountID,
				CounterpartyAccountID: counterparty,
				CategoryID:            categoryID,
				Note:                  note,
				Date:                  date,
				IsCleared:             cleared,
			}
			if err := txn.Validate(); err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveTransaction(ctx, &txn); err != nil {
				return fmt.Errorf("failed to save transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s of %s", txn.Kind, txn.Amount.String())))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "expense", "transaction kind (expense, income, transfer)")
	cmd.Flags().StringVar(&accountID, "account", "", "source account id (target for income)")
	cmd.Flags().StringVar(&counterparty, "to", "", "destination account id (transfers only)")
	cmd.Flags().StringVar(&categoryID, "category", "", "category id (expense/income only)")
	cmd.Flags().StringVar(&note, "note", "", "free-form note")
	cmd.Flags().StringVar(&dateFlag, "date", "", "date (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&cleared, "cleared", false, "mark the transaction cleared")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func listTxCmd() *cobra.Command {
	var (
		monthFlag   string
		accountID   string
		categoryID  string
		search      string
		clearedOnly bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			query := service.TransactionQuery{
				AccountID:   accountID,
				CategoryID:  categoryID,
				Search:      search,
				ClearedOnly: clearedOnly,
			}
			if monthFlag != "" {
				month, err := parseMonthFlag(monthFlag)
				if err != nil {
					return err
				}
				query.Month = &month
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			transactions, err := store.ListTransactions(ctx, query)
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			if len(transactions) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No transactions match."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Date"),
				cli.HeaderStyle.Render("Kind"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Note"),
				cli.HeaderStyle.Render("Cleared"))
			for _, txn := range transactions {
				clearedMark := ""
				if txn.IsCleared {
					clearedMark = cli.SuccessIcon
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					txn.Date.Format("2006-01-02"), txn.Kind, txn.Amount.String(), txn.Note, clearedMark)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&monthFlag, "month", "", "filter by month (YYYY-MM)")
	cmd.Flags().StringVar(&accountID, "account", "", "filter by account id")
	cmd.Flags().StringVar(&categoryID, "category", "", "filter by category id")
	cmd.Flags().StringVar(&search, "search", "", "search notes")
	cmd.Flags().BoolVar(&clearedOnly, "cleared", false, "cleared transactions only")

	return cmd
}
