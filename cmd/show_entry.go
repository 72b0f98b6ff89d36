package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"portfolio-gallery/pkg/media"
	"portfolio-gallery/pkg/services"
)

// newShowEntryCmd creates a new command for showing entry details
func newShowEntryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-entry [id]",
		Short: "Show the media of a specific entry",
		Long:  `Show detailed information about an entry and the playlist the lightbox builds for it.`,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Printf("Error: invalid entry id %q\n", args[0])
				os.Exit(1)
			}
			mustInit()
			showEntry(id)
		},
	}
}

// showEntry displays details about a specific entry
func showEntry(id int) {
	entry, err := services.GetEntry(id)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	items := media.Build(entry)

	fmt.Printf("Entry: %s\n", entry.Title)
	fmt.Printf("Category: %s\n", entry.Category.Label())
	fmt.Printf("Section: %s\n", entry.Section.Label())
	fmt.Printf("Media: %s, %d items\n", entry.MediaKind, len(items))
	fmt.Println("================")

	for i, item := range items {
		fmt.Printf("%d. %s\n", i+1, item.Type)
		fmt.Printf("   URL: %s\n", item.URL)
		if item.EmbedID != "" {
			fmt.Printf("   Embed: %s\n", item.EmbedID)
		}
		fmt.Println()
	}

	if err := entry.Validate(); err != nil {
		fmt.Printf("Warning: %v\n", err)
	}
}
