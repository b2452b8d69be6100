package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/weftlabs/blockloom/internal/server"
	"github.com/weftlabs/blockloom/pkg/cache"
	"github.com/weftlabs/blockloom/pkg/store"
	"github.com/weftlabs/blockloom/pkg/store/mongostore"
)

// serveCommand runs the workspace HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, redisAddr, mongoURI, storeDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the workspace HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			artifacts, err := newArtifactCache(ctx, redisAddr)
			if err != nil {
				return err
			}
			defer artifacts.Close()

			st, err := newStore(ctx, mongoURI, storeDir)
			if err != nil {
				return err
			}
			if st != nil {
				defer st.Close(context.Background())
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(logger, artifacts, st).Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			logger.Info("serving", "addr", addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for the artifact cache (in-memory when empty)")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "mongodb URI for workspace persistence")
	cmd.Flags().StringVar(&storeDir, "store-dir", "", "directory for file-based workspace persistence")
	return cmd
}

// newArtifactCache picks the artifact cache backend: redis when an
// address is given, otherwise in-memory.
func newArtifactCache(ctx context.Context, redisAddr string) (cache.Cache, error) {
	if redisAddr == "" {
		return cache.NewMemoryCache(), nil
	}
	return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
}

// newStore picks the persistence backend: mongo when a URI is given,
// the file store when a directory is given, otherwise none.
func newStore(ctx context.Context, mongoURI, storeDir string) (store.Store, error) {
	switch {
	case mongoURI != "":
		return mongostore.New(ctx, mongostore.Config{URI: mongoURI})
	case storeDir != "":
		return store.NewFileStore(storeDir)
	default:
		return nil, nil
	}
}
