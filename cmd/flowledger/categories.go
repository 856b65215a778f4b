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

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
		Long:  `List and add the categories used to classify expense and income transactions.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var kindFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var kind *model.CategoryKind
			if kindFilter != "" {
				k := model.CategoryKind(kindFilter)
				if !model.ValidCategoryKind(k) {
					return fmt.Errorf("invalid category kind %q (expense, income)", kindFilter)
				}
				kind = &k
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categories, err := store.ListCategories(ctx, kind)
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}

			if len(categories) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No categories found. Use 'flowledger categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Kind"),
				cli.HeaderStyle.Render("Icon"))
			for _, cat := range categories {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", cat.ID, cat.Name, cat.Kind, cat.Icon)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&kindFilter, "kind", "", "filter by kind (expense, income)")

	return cmd
}

func addCategoryCmd() *cobra.Command {
	var (
		kind string
		icon string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			categoryKind := model.CategoryKind(kind)
			if !model.ValidCategoryKind(categoryKind) {
				return fmt.Errorf("invalid category kind %q (expense, income)", kind)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			category := model.Category{
				ID:   uuid.NewString(),
				Name: args[0],
				Kind: categoryKind,
				Icon: icon,
			}
			if err := store.SaveCategory(ctx, &category); err != nil {
				return fmt.Errorf("failed to save category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created category %q (%s)", category.Name, category.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "expense", "category kind (expense, income)")
	cmd.Flags().StringVar(&icon, "icon", "", "icon name")

	return cmd
}
