package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ehtishamkhalid92/flowledger/internal/cli"
	"github.com/ehtishamkhalid92/flowledger/internal/engine"
)

func automationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "automation",
		Short: "Control the recurring auto-run gate",
		Long:  `Enable, disable, or inspect the once-per-day automatic recurring run.`,
	}

	cmd.AddCommand(automationSetCmd("enable", true))
	cmd.AddCommand(automationSetCmd("disable", false))
	cmd.AddCommand(automationStatusCmd())

	return cmd
}

func automationSetCmd(use string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("%s automatic recurring runs", use),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			trigger := engine.NewTrigger(store, engine.NewRunner(store))
			if err := trigger.SetEnabled(ctx, enabled); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Automatic recurring runs %sd", use)))
			return nil
		},
	}
}

func automationStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the automation state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			trigger := engine.NewTrigger(store, engine.NewRunner(store))
			enabled, err := trigger.Enabled(ctx)
			if err != nil {
				return err
			}
			lastRun, found, err := trigger.LastRun(ctx)
			if err != nil {
				return err
			}

			state := "disabled"
			if enabled {
				state = "enabled"
			}
			fmt.Printf("Automatic runs: %s\n", state)
			if found {
				fmt.Printf("Last run: %s\n", lastRun.Format("2006-01-02"))
			} else {
				fmt.Println("Last run: never")
			}
			return nil
		},
	}
}
