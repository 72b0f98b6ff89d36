package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"portfolio-gallery/pkg/config"
	"portfolio-gallery/pkg/gallery"
	"portfolio-gallery/pkg/services"
)

// newGridCmd creates a new command that previews a page grid
func newGridCmd() *cobra.Command {
	var (
		width    int
		category string
		more     int
	)

	cmd := &cobra.Command{
		Use:   "grid [page]",
		Short: "Preview the grid of a page",
		Long: `Preview the grid a visitor sees on a service page at a given viewport width,
optionally after switching category and pressing "view more" a number of times.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := mustInit()

			name := "portfolio"
			if len(args) > 0 {
				name = args[0]
			}
			printGrid(cfg, name, width, category, more)
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 1280, "Viewport width in CSS pixels")
	cmd.Flags().StringVar(&category, "category", "", "Category key to switch to")
	cmd.Flags().IntVarP(&more, "more", "m", 0, "Number of view more presses")

	return cmd
}

// printGrid lays a page out and prints it row by row
func printGrid(cfg *config.Config, name string, width int, category string, more int) {
	page, catalog, err := services.GetPage(name)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	bp := cfg.Thresholds().Classify(width)
	engine := gallery.NewEngine(catalog, page.Categories(),
		gallery.WithBreakpoint(bp),
		gallery.WithRows(cfg.Rows()),
	)
	if category != "" {
		engine.SetCategory(category)
	}
	for i := 0; i < more; i++ {
		engine.LoadMore()
	}

	view := engine.View()
	fmt.Printf("Page: %s\n", page.Title)
	fmt.Printf("Category: %s\n", view.Category)
	fmt.Printf("Breakpoint: %s (%d columns, page size %d)\n", view.Breakpoint, view.Columns, view.PageSize)
	fmt.Printf("Showing: %d of %d\n", view.Shown(), view.Total)
	fmt.Println("================")

	if view.Empty {
		fmt.Println("No projects found in this category.")
		return
	}

	for start := 0; start < len(view.Cells); start += view.Columns {
		end := min(start+view.Columns, len(view.Cells))
		labels := make([]string, 0, view.Columns)
		for _, cell := range view.Cells[start:end] {
			labels = append(labels, cellLabel(cell))
		}
		fmt.Println(strings.Join(labels, " | "))
	}
}

func cellLabel(cell gallery.GridCell) string {
	if cell.IsViewMore() {
		return "[view more]"
	}
	label := fmt.Sprintf("#%d %s", cell.Entry.ID, cell.Entry.Title)
	if cell.Fresh {
		label += " *"
	}
	return label
}
