package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"portfolio-gallery/pkg/models"
	"portfolio-gallery/pkg/services"
)

// newListEntriesCmd creates a new command for listing catalog entries
func newListEntriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-entries",
		Short: "List all catalog entries",
		Long:  `List all catalog entries organized by category with their media kind and section.`,
		Run: func(cmd *cobra.Command, args []string) {
			mustInit()
			listEntries()
		},
	}
}

// listEntries displays all entries grouped by category
func listEntries() {
	catalog := services.GetCatalog()
	byCategory := make(map[models.Category][]models.Entry)
	for _, e := range catalog {
		byCategory[e.Category] = append(byCategory[e.Category], e)
	}

	fmt.Println("Catalog Entries:")
	fmt.Println("===============")

	for _, category := range models.Categories {
		entries := byCategory[category]
		if len(entries) == 0 {
			continue
		}
		fmt.Printf("Category: %s\n", category.Label())

		for _, e := range entries {
			fmt.Printf("  - [%d] %s (%s)\n", e.ID, e.Title, e.MediaKind)
			fmt.Printf("    Section: %s\n", e.Section.Label())
		}

		fmt.Println()
	}

	fmt.Printf("Total: %d entries\n", len(catalog))
}
