package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"portfolio-gallery/pkg/services"
)

// newValidateCmd creates a new command for checking catalog entries
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check catalog entries for media problems",
		Long:  `Check every catalog entry against the media rules and report duplicate ids. Exits non-zero when a problem is found.`,
		Run: func(cmd *cobra.Command, args []string) {
			mustInit()
			if !validateCatalog() {
				os.Exit(1)
			}
		},
	}
}

// validateCatalog prints every problem and reports whether the catalog is clean
func validateCatalog() bool {
	catalog := services.GetCatalog()
	seen := make(map[int]bool, len(catalog))
	var problems []error

	for _, e := range catalog {
		if seen[e.ID] {
			problems = append(problems, fmt.Errorf("duplicate entry id %d", e.ID))
		}
		seen[e.ID] = true
		if err := e.Validate(); err != nil {
			problems = append(problems, err)
		}
	}

	if len(problems) == 0 {
		fmt.Printf("OK: %d entries\n", len(catalog))
		return true
	}

	fmt.Println(errors.Join(problems...))
	fmt.Printf("Found problems in a catalog of %d entries\n", len(catalog))
	return false
}
