// Copyright 2026 The ies Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Command ies inspects IES tables and converts them to xlsx, JSON lines,
// or postgres.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding"

	"github.com/bpowers/ies"
	"github.com/bpowers/ies/internal/config"
	"github.com/bpowers/ies/internal/xorstr"
)

type app struct {
	envFile  string
	workers  int
	encoding string
	logLevel string
	failFast bool

	cfg    *config.Config
	logger *slog.Logger
	enc    encoding.Encoding
}

// setup loads configuration; flags given on the command line override the
// environment.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("workers") {
		if a.workers < 1 {
			return fmt.Errorf("--workers must be at least 1, got %d", a.workers)
		}
		cfg.Workers = a.workers
	}
	if flags.Changed("encoding") {
		cfg.Encoding = a.encoding
	}
	if flags.Changed("log-level") {
		if err := cfg.LogLevel.UnmarshalText([]byte(a.logLevel)); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
	}

	enc, err := xorstr.Lookup(cfg.Encoding)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.enc = enc
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel}))
	return nil
}

func (a *app) open(path string) (*ies.Table, error) {
	return ies.Open(path, ies.WithLogger(a.logger.With("file", path)), ies.WithEncoding(a.enc))
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "ies",
		Short:         "Inspect and convert IES data tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.envFile, "env", ".env", "optional file of IES_* settings")
	pf.IntVarP(&a.workers, "workers", "j", 0, "files to convert in parallel (default: "+config.EnvWorkers+" or GOMAXPROCS)")
	pf.StringVar(&a.encoding, "encoding", "", "text encoding of strings (default: "+config.EnvEncoding+" or utf-8)")
	pf.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")
	pf.BoolVar(&a.failFast, "fail-fast", false, "stop at the first file that fails")

	root.AddCommand(
		newInfoCmd(a),
		newXLSXCmd(a),
		newJSONCmd(a),
		newDescribeCmd(a),
		newLoadCmd(a),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
