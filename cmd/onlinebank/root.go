package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/onlinebank/internal/adapter/console"
	httpAdapter "github.com/iho/onlinebank/internal/adapter/http"
	"github.com/iho/onlinebank/internal/adapter/http/handler"
	"github.com/iho/onlinebank/internal/infrastructure/config"
	"github.com/iho/onlinebank/internal/infrastructure/logger"
	"github.com/iho/onlinebank/internal/infrastructure/metrics"
	"github.com/iho/onlinebank/internal/usecase"
)

const usageText = `Usage: onlinebank [acct_file_name]
If acct_file_name is omitted, then data will be saved in the present working directory in file 'accts.txt'.
`

// app is what every subcommand shares once configuration is resolved.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

// execute runs the command line in args. A first argument containing "-h"
// prints the short usage text before cobra sees any flags, so "-h", "-help"
// and "notes-h.txt" all behave alike.
func execute(args []string, in io.Reader, out, errOut io.Writer) error {
	if wantsUsage(args) {
		_, err := fmt.Fprint(out, usageText)
		return err
	}

	if args == nil {
		args = []string{}
	}
	cmd := newRootCmd(in, out, errOut)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func wantsUsage(args []string) bool {
	return len(args) > 0 && strings.Contains(args[0], "-h")
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	rt := &app{}

	rootCmd := &cobra.Command{
		Use:   "onlinebank [acct_file_name]",
		Short: "Online bank simulator",
		Long: `An interactive console bank. Accounts are loaded at startup and
saved back when the session ends.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}
			rt.init(cfg, cmd.ErrOrStderr())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				rt.cfg.AccountsFile = args[0]
			}
			return rt.runSession(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.AddCommand(newAccountsCmd(rt))
	rootCmd.AddCommand(newMigrateCmd(rt))

	return rootCmd
}

func (rt *app) init(cfg *config.Config, errOut io.Writer) {
	rt.cfg = cfg
	rt.logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: errOut,
	})

	rt.registry = prometheus.NewRegistry()
	rt.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	rt.metrics = metrics.New(rt.registry)
}

func (rt *app) openBank(ctx context.Context) (*usecase.Bank, *storeHandle, error) {
	handle, err := openStore(ctx, rt.cfg, rt.logger)
	if err != nil {
		return nil, nil, err
	}

	opts := []usecase.Option{
		usecase.WithLogger(rt.logger),
		usecase.WithMetrics(rt.metrics),
	}
	if seed, ok, _ := rt.cfg.Seed(); ok {
		opts = append(opts, usecase.WithSeed(seed))
	}

	bank, err := usecase.NewBank(ctx, handle.store, opts...)
	if err != nil {
		handle.Close()
		return nil, nil, err
	}
	return bank, handle, nil
}

func (rt *app) runSession(ctx context.Context, in io.Reader, out, errOut io.Writer) error {
	bank, handle, err := rt.openBank(ctx)
	if err != nil {
		return err
	}
	defer handle.Close()

	if rt.cfg.MetricsAddr != "" {
		router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
			Logger:        rt.logger,
			Gatherer:      rt.registry,
			HealthHandler: handler.NewHealthHandler(handle.checks),
		})
		srv := httpAdapter.Start(rt.cfg.MetricsAddr, router, rt.logger)
		defer func() {
			if err := srv.Shutdown(rt.cfg.HTTPShutdownTimeout); err != nil {
				rt.logger.Warn().Err(err).Msg("metrics server shutdown")
			}
		}()
	}

	console.New(bank, console.NewUI(in, out, errOut),
		console.WithLogger(rt.logger),
		console.WithRecorder(rt.metrics),
	).Run()

	return bank.Save(ctx)
}
