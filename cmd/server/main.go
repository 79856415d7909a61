package main

import (
	"fmt"
	"os"

	"github.com/comexweb/internal/config"
	"github.com/comexweb/internal/db"
	"github.com/comexweb/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	cfg config.AppConfig
	zl  zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "comex",
	Short: "Sitio institucional, catálogo y back office de comercio exterior",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		zl = logger.New(logger.Config{Env: cfg.Env, Level: cfg.LogLevel})
	},
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, seedCmd, createUserCmd, checkSectionsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDB 初始化数据库并执行迁移。
func openDB() (*gorm.DB, error) {
	err := db.Init(db.Options{
		Driver: cfg.DatabaseDriver,
		Path:   cfg.DatabasePath,
		URL:    cfg.DatabaseURL,
		Debug:  cfg.LogLevel == "debug",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db.DB, nil
}
