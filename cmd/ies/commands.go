// Copyright 2026 The ies Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/bpowers/ies"
	"github.com/bpowers/ies/internal/export"
)

func newInfoCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "info FILE...",
		Short: "Print the header and columns of IES files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, path := range args {
				t, err := a.open(path)
				if err != nil {
					return err
				}
				if asJSON {
					err = export.WriteInfoJSON(out, t)
				} else {
					err = writeInfoText(out, path, t)
				}
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func writeInfoText(w io.Writer, path string, t *ies.Table) error {
	h := t.Header()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %q\n", path, h.Name)
	fmt.Fprintf(&sb, "  fingerprint %016x\n", t.Fingerprint())
	fmt.Fprintf(&sb, "  %d rows, %d columns (%d numeric, %d string)\n",
		h.RowCount, h.ColumnCount, h.NumberColumnCount, h.StringColumnCount)
	for _, col := range t.Columns() {
		fmt.Fprintf(&sb, "  %5d  %-8s %s\n", col.Position, col.Type, col.Name)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// newExportCmd builds a command converting each argument to a file with
// the given extension.
func newExportCmd(a *app, use, short, ext string, write func(w io.Writer, path string, t *ies.Table) error) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("output") {
				outDir = a.cfg.OutputDir
			}
			if outDir != "" {
				if err := os.MkdirAll(outDir, 0755); err != nil {
					return fmt.Errorf("os.MkdirAll: %w", err)
				}
			}
			return forEachFile(cmd.Context(), args, a.cfg.Workers, a.failFast, a.logger, func(_ context.Context, path string) error {
				t, err := a.open(path)
				if err != nil {
					return err
				}
				dst := outputPath(path, outDir, ext)
				if err := writeFileAtomic(dst, func(w io.Writer) error { return write(w, path, t) }); err != nil {
					return fmt.Errorf("write %s: %w", dst, err)
				}
				a.logger.Info("converted", "file", path, "output", dst, "rows", t.Len())
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "output directory (default: IES_OUTPUT_DIR or next to each input)")
	return cmd
}

func newXLSXCmd(a *app) *cobra.Command {
	return newExportCmd(a, "xlsx FILE...", "Convert IES files to Excel workbooks", ".xlsx",
		func(w io.Writer, path string, t *ies.Table) error {
			name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			return export.WriteXLSX(w, t, name)
		})
}

func newJSONCmd(a *app) *cobra.Command {
	return newExportCmd(a, "json FILE...", "Convert IES files to JSON lines", ".jsonl",
		func(w io.Writer, _ string, t *ies.Table) error {
			return export.WriteJSONL(w, t)
		})
}

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe FILE",
		Short: "Summarize the numeric columns of an IES file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.open(args[0])
			if err != nil {
				return err
			}
			summaries, err := export.Describe(t)
			if err != nil {
				return err
			}
			return export.WriteSummaries(cmd.OutOrStdout(), summaries)
		},
	}
}

func newLoadCmd(a *app) *cobra.Command {
	var dsn, prefix string
	cmd := &cobra.Command{
		Use:   "load FILE...",
		Short: "Load IES files into postgres, one table per file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("dsn") {
				dsn = a.cfg.DSN
			}
			if dsn == "" {
				return fmt.Errorf("no database: pass --dsn or set IES_DSN")
			}
			db, err := sqlx.Connect("postgres", dsn)
			if err != nil {
				return fmt.Errorf("sqlx.Connect: %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			// two files mapping to the same table would race on CREATE TABLE
			var mu sync.Mutex
			seen := make(map[string]string)
			return forEachFile(cmd.Context(), args, a.cfg.Workers, a.failFast, a.logger, func(ctx context.Context, path string) error {
				table := prefix + tableName(path)
				mu.Lock()
				if other, ok := seen[table]; ok {
					mu.Unlock()
					return fmt.Errorf("%s and %s both load into table %q", other, path, table)
				}
				seen[table] = path
				mu.Unlock()

				t, err := a.open(path)
				if err != nil {
					return err
				}
				if err := export.LoadPostgres(ctx, db, table, t); err != nil {
					return fmt.Errorf("load %s: %w", path, err)
				}
				a.logger.Info("loaded", "file", path, "table", table, "rows", t.Len())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", "", "postgres connection string (default: IES_DSN)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "prefix for table names")
	return cmd
}

// tableName derives a table name from a file name: lower case, with
// anything but letters, digits and underscores replaced.
func tableName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return '_'
	}, base)
}
