package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ehtishamkhalid92/flowledger/internal/cli"
	"github.com/ehtishamkhalid92/flowledger/internal/engine"
)

func allocateCmd() *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "allocate <salary>",
		Short: "Split a salary per the stored plan",
		Long: `Split a salary amount among the stored salary plan's allocation items and
record the resulting transfers and expenses. Percent items are scaled down
proportionally when their declared percentages sum past 100; fixed items
apply at face value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			salaryCents, err := parseAmountCents(args[0])
			if err != nil {
				return err
			}
			if salaryCents < 0 {
				return fmt.Errorf("salary must be non-negative")
			}

			date, err := parseDateFlag(dateFlag)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			plan, err := store.LoadSalaryPlan(ctx)
			if err != nil {
				return err
			}
			if plan == nil {
				return fmt.Errorf("no salary plan stored; run 'flowledger plan init' first")
			}

			count, err := engine.NewAllocator(store).Allocate(ctx, salaryCents, plan, date)
			if err != nil {
				return err
			}

			if count == 0 {
				fmt.Println(cli.FormatWarning("No transactions created (check the plan's account and category names)"))
				return nil
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created %d transaction(s)", count)))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "allocation date (YYYY-MM-DD, default today)")

	return cmd
}
