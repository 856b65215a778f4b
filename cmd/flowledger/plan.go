package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ehtishamkhalid92/flowledger/internal/cli"
	"github.com/ehtishamkhalid92/flowledger/internal/model"
)

func planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage the salary allocation plan",
		Long: `Inspect and edit the salary allocation plan: a source account plus a list
of percentage or fixed-amount items, each targeting an account (transfer)
or a category (expense). The plan is stored as a JSON document and keyed
by account/category display names.`,
	}

	cmd.AddCommand(showPlanCmd())
	cmd.AddCommand(initPlanCmd())
	cmd.AddCommand(exportPlanCmd())
	cmd.AddCommand(importPlanCmd())

	return cmd
}

func showPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

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
				fmt.Println(cli.SubtleStyle.Render("No salary plan stored. Use 'flowledger plan init' to create one."))
				return nil
			}

			fmt.Println(cli.FormatTitle("Salary plan"))
			fmt.Printf("Source account: %s\n\n", plan.SourceAccountName)
			for _, item := range plan.Items {
				var amount string
				switch item.Amount.Type {
				case model.AmountPercent:
					amount = fmt.Sprintf("%.1f%%", item.Amount.Percent)
				case model.AmountFixedCents:
					amount = model.NewMoney(item.Amount.FixedCents, model.DefaultCurrency).String()
				}
				var target string
				switch item.Action.Type {
				case model.ActionTransferToAccount:
					target = "→ account " + item.Action.TargetAccountName
				case model.ActionExpenseToCategory:
					target = "→ category " + item.Action.CategoryName
				}
				fmt.Printf("  %-30s %10s %s\n", item.Name, amount, target)
			}
			return nil
		},
	}
}

func initPlanCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Store a starter plan",
		Long:  `Write a default starter plan to edit from: 60% to savings plus two fixed items.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			plan := model.SalaryPlan{
				SourceAccountName: source,
				Items: []model.SalaryAllocationItem{
					{
						ID:     uuid.NewString(),
						Name:   "Savings (Emergency Fund)",
						Action: model.TransferToAccount("Savings"),
						Amount: model.Percent(60),
					},
					{
						ID:     uuid.NewString(),
						Name:   "Credit-card payoff",
						Action: model.ExpenseToCategory("Credit Card"),
						Amount: model.FixedCents(300_00),
					},
					{
						ID:     uuid.NewString(),
						Name:   "Children's Fund",
						Action: model.TransferToAccount("Savings"),
						Amount: model.FixedCents(120_00),
					},
				},
			}
			if err := store.SaveSalaryPlan(ctx, &plan); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Stored starter plan; edit it via 'flowledger plan export/import'"))
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "Current", "source account name")

	return cmd
}

func exportPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the plan as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

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
				return fmt.Errorf("no salary plan stored")
			}

			out, err := json.MarshalIndent(plan, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode plan: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func importPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the plan from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read plan file: %w", err)
			}

			var plan model.SalaryPlan
			if err := json.Unmarshal(raw, &plan); err != nil {
				return fmt.Errorf("malformed plan file: %w", err)
			}
			for i := range plan.Items {
				if plan.Items[i].ID == "" {
					plan.Items[i].ID = uuid.NewString()
				}
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveSalaryPlan(ctx, &plan); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Stored plan with %d item(s)", len(plan.Items))))
			return nil
		},
	}
}
