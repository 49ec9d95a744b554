package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"campus/config"
	"campus/controllers"
	"campus/middleware"
	"campus/repository"
	"campus/routes"
	"campus/storage"
)

func newServeCommand() *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:         "serve",
		Short:       "Run the reference campus API server",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationServer: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, seed)
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", true, "load demo accounts and sample data")
	return cmd
}

func newFileStore(ctx context.Context) (storage.Store, error) {
	if config.AWSBucketName == "" {
		return storage.NewLocalStore(config.UploadDir)
	}
	cfg, err := config.LoadAWSConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return storage.NewS3Store(cfg, config.AWSBucketName), nil
}

func serve(ctx context.Context, seed bool) error {
	log := config.Log
	if config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	store := repository.New()
	if seed {
		if err := store.Seed(); err != nil {
			return err
		}
		log.WithField("accounts", []string{"admin", "faculty", "student", "staff"}).Info("seeded demo data")
	}
	files, err := newFileStore(ctx)
	if err != nil {
		return err
	}
	issuer := middleware.NewIssuer(config.JWTSecret, config.TokenTTL)
	ctl := controllers.New(store, issuer, files, log)

	r := routes.NewRouter(ctl, issuer, log, config.CORSOrigins)
	if err := r.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
		return fmt.Errorf("set trusted proxies: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("server starting")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
