// Package cli implements mhimmoctl, the operator tool for the durable backend.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mhimmo/internal/app"
	"mhimmo/internal/core/config"
	"mhimmo/internal/core/logger"
	"mhimmo/internal/persistence"
)

// Opener connects the configured backend; app.OpenKV in production.
type Opener func(ctx context.Context, cfg *config.Config, l *zap.Logger) (persistence.KV, []io.Closer, error)

type env struct {
	open       Opener
	configPath string
	verbose    bool
}

// conn is one command's view of the backend.
type conn struct {
	cfg     *config.Config
	log     *zap.Logger
	kv      persistence.KV
	adapter *persistence.Adapter
	closers []io.Closer
	flush   func()
}

func (e *env) connect(ctx context.Context) (*conn, error) {
	path := e.configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.Parse(path)
	if err != nil {
		return nil, err
	}
	level := "warn"
	if e.verbose {
		level = "debug"
	}
	l, flush := logger.Build(logger.Options{Level: level})
	kv, closers, err := e.open(ctx, cfg, l)
	if err != nil {
		flush()
		return nil, err
	}
	return &conn{
		cfg:     cfg,
		log:     l,
		kv:      kv,
		adapter: persistence.NewAdapter(kv, persistence.Keys{Prefix: cfg.Store.KeyPrefix}, l),
		closers: closers,
		flush:   flush,
	}, nil
}

func (s *conn) assemble(ctx context.Context) (*app.App, error) {
	return app.Assemble(ctx, s.cfg, s.log, s.kv, app.Options{})
}

func (s *conn) close() {
	for _, c := range s.closers {
		_ = c.Close()
	}
	s.flush()
}

// NewRootCmd builds the command tree. A nil open uses app.OpenKV.
func NewRootCmd(open Opener) *cobra.Command {
	if open == nil {
		open = app.OpenKV
	}
	e := &env{open: open}
	root := &cobra.Command{
		Use:           "mhimmoctl",
		Short:         "Inspect and maintain the MH Immo durable store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&e.configPath, "config", "", "config file (default $CONFIG_PATH or ./configs/config.local.yaml)")
	root.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		seedCmd(e),
		dumpCmd(e),
		resetCmd(e),
		checkCmd(e),
		slotsCmd(e),
		loginCmd(e),
		logoutCmd(e),
		whoamiCmd(e),
		usersCmd(e),
		darkModeCmd(e),
	)
	return root
}
