package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/comexweb/internal/db"
	"github.com/comexweb/internal/handler"
	"github.com/comexweb/internal/router"
	"github.com/comexweb/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := openDB()
	if err != nil {
		return err
	}

	// 首次启动时按配置创建管理员账号
	if err := service.NewUserService(gdb).EnsureUser(cmd.Context(), cfg.AdminEmail, cfg.AdminPassword, db.RoleAdmin); err != nil {
		return err
	}

	api, err := handler.NewAPI(gdb, handler.Options{
		UploadDir:      cfg.UploadDir,
		UploadURL:      cfg.UploadURLPath,
		MaxUploadBytes: cfg.MaxUploadBytes,
		SiteBaseURL:    cfg.SiteBaseURL,
		Logger:         zl,
	})
	if err != nil {
		return err
	}

	r, err := router.SetupRouter(api, router.Options{
		SessionSecret: cfg.SessionSecret,
		SecureCookies: cfg.Env == "production",
		UploadDir:     cfg.UploadDir,
		UploadURLPath: cfg.UploadURLPath,
		Logger:        zl,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zl.Info().Str("addr", cfg.ListenAddr).Str("driver", cfg.DatabaseDriver).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
