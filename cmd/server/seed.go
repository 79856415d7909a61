package main

import (
	"fmt"
	"os"

	"github.com/comexweb/internal/seed"
	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo content (pages, sections, catalog, news)",
	Long: `Load demo content into an empty or partially filled store.

Records whose slug already exists are skipped, so the command can be run
repeatedly. Without --file the built-in demo content is used.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML seed file")
}

func runSeed(cmd *cobra.Command, args []string) error {
	gdb, err := openDB()
	if err != nil {
		return err
	}

	data, err := loadSeed()
	if err != nil {
		return err
	}

	report, err := seed.New(gdb, zl).Apply(cmd.Context(), data)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "páginas: %d, secciones: %d, categorías: %d, productos: %d, noticias: %d\n",
		report.Pages, report.Sections, report.Categories, report.Products, report.Posts)
	return nil
}

func loadSeed() (*seed.Data, error) {
	if seedFile == "" {
		return seed.Default()
	}
	f, err := os.Open(seedFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return seed.Read(f)
}
