package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ehtishamkhalid92/flowledger/internal/cli"
	"github.com/ehtishamkhalid92/flowledger/internal/model"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
		Long:  `List, add, and delete money accounts.`,
	}

	cmd.AddCommand(listAccountsCmd())
	cmd.AddCommand(addAccountCmd())
	cmd.AddCommand(deleteAccountCmd())

	return cmd
}

func listAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			accounts, err := store.ListAccounts(ctx)
			if err != nil {
				return fmt.Errorf("failed to list accounts: %w", err)
			}

			if len(accounts) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No accounts found. Use 'flowledger accounts add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Kind"),
				cli.HeaderStyle.Render("Balance"))
			for _, account := range accounts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					account.ID, account.Name, account.Kind, account.Balance.String())
			}

			return nil
		},
	}
}

func addAccountCmd() *cobra.Command {
	var (
		kind    string
		balance string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			accountKind := model.AccountKind(kind)
			if !model.ValidAccountKind(accountKind) {
				return fmt.Errorf("invalid account kind %q (current, savings, creditCard, cash)", kind)
			}

			cents, err := parseAmountCents(balance)
			if err != nil {
				return fmt.Errorf("invalid opening balance: %w", err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			account := model.Account{
				ID:      uuid.NewString(),
				Name:    name,
				Kind:    accountKind,
				Balance: model.NewMoney(cents, model.DefaultCurrency),
			}
			if err := store.SaveAccount(ctx, &account); err != nil {
				return fmt.Errorf("failed to save account: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created account %q (%s)", name, account.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "current", "account kind (current, savings, creditCard, cash)")
	cmd.Flags().StringVar(&balance, "balance", "0", "opening balance, e.g. 1500.00")

	return cmd
}

func deleteAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteAccount(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Account deleted"))
			return nil
		},
	}
}
