package main

import (
	"fmt"

	"github.com/comexweb/internal/service"
	"github.com/spf13/cobra"
)

var (
	checkPageID uint
	checkFix    bool
)

var checkSectionsCmd = &cobra.Command{
	Use:   "check-sections",
	Short: "Report sections that share page, type and order",
	Long: `Report groups of sections on the same page with the same type and order,
usually left behind by repeated seeding. With --fix, keep the oldest
section of each group and delete the rest.`,
	RunE: runCheckSections,
}

func init() {
	checkSectionsCmd.Flags().UintVar(&checkPageID, "page", 0, "only check this page id")
	checkSectionsCmd.Flags().BoolVar(&checkFix, "fix", false, "delete duplicates")
}

func runCheckSections(cmd *cobra.Command, args []string) error {
	gdb, err := openDB()
	if err != nil {
		return err
	}
	sections := service.NewSectionService(gdb)
	out := cmd.OutOrStdout()

	groups, err := sections.Duplicates(cmd.Context(), checkPageID)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		fmt.Fprintln(out, "sin secciones duplicadas")
		return nil
	}
	for _, g := range groups {
		fmt.Fprintf(out, "%s: %s (orden %d) x%d ids=%v\n", g.PageSlug, g.Type, g.Order, len(g.SectionIDs), g.SectionIDs)
	}
	if !checkFix {
		return nil
	}

	removed, err := sections.RemoveDuplicates(cmd.Context(), checkPageID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "eliminadas: %d\n", removed)
	return nil
}
