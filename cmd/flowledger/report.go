package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ehtishamkhalid92/flowledger/internal/cli"
)

func reportCmd() *cobra.Command {
	var monthFlag string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show a month summary",
		Long:  `Aggregate a calendar month's income, expenses, and net. Transfers count toward neither side.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			month, err := parseMonthFlag(monthFlag)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			summary, err := store.MonthSummary(ctx, month)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle(summary.Month.Format("January 2006")))
			fmt.Printf("  Income:       %s\n", cli.SuccessStyle.Render(summary.Income.String()))
			fmt.Printf("  Expenses:     %s\n", cli.ErrorStyle.Render(summary.Expense.String()))
			fmt.Printf("  Net:          %s\n", summary.Net.String())
			fmt.Printf("  Transactions: %d\n", summary.Transactions)
			return nil
		},
	}

	cmd.Flags().StringVar(&monthFlag, "month", "", "month to summarize (YYYY-MM, default current)")

	return cmd
}
