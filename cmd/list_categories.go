package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"portfolio-gallery/pkg/gallery"
	"portfolio-gallery/pkg/services"
)

// newListCategoriesCmd creates a new command for listing the tabs of a page
func newListCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-categories [page]",
		Short: "List the category tabs of a page",
		Long:  `List the category tabs of a service page with the number of entries in each. Defaults to the portfolio page.`,
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			mustInit()

			name := "portfolio"
			if len(args) > 0 {
				name = args[0]
			}
			listCategories(name)
		},
	}
}

// listCategories displays every tab of a page and its entry count
func listCategories(name string) {
	page, catalog, err := services.GetPage(name)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s Categories:\n", page.Title)
	fmt.Println("================")

	categories := page.Categories()
	for _, category := range categories {
		fmt.Printf("%s (%s)\n", category.Label, category.Key)
		if category.Description != "" {
			fmt.Printf("  %s\n", category.Description)
		}
		fmt.Printf("  Entries: %d\n", len(gallery.Filter(catalog, categories, category.Key)))
		fmt.Println()
	}

	fmt.Printf("Total: %d categories, %d entries in scope\n", len(categories), len(catalog))
}
