// Copyright 2026 The ies Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/bpowers/ies"
)

// CreateTableSQL returns a CREATE TABLE statement with one column per
// table column.  Numeric columns become double precision, which holds
// every uint32 and float32 exactly.
func CreateTableSQL(table string, t *ies.Table) string {
	var sb strings.Builder
	sb.WriteString("CREATE TABLE IF NOT EXISTS ")
	sb.WriteString(pq.QuoteIdentifier(table))
	sb.WriteString(" (")
	for i, col := range t.Columns() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(pq.QuoteIdentifier(col.Name))
		if col.IsNumeric() {
			sb.WriteString(" double precision")
		} else {
			sb.WriteString(" text")
		}
	}
	sb.WriteString(")")
	return sb.String()
}

// copyValues is rowValues with numbers widened for the driver.
func copyValues(cols []ies.Column, row ies.Row) []any {
	vals := rowValues(cols, row)
	for i, v := range vals {
		switch x := v.(type) {
		case uint32:
			vals[i] = float64(x)
		case float32:
			vals[i] = float64(x)
		}
	}
	return vals
}

// LoadPostgres creates table if needed and bulk loads every row of t with
// COPY, all inside one transaction.
func LoadPostgres(ctx context.Context, db *sqlx.DB, table string, t *ies.Table) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("BeginTxx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, CreateTableSQL(table, t)); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}

	cols := t.Columns()
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.Name
	}
	stmt, err := tx.PreparexContext(ctx, pq.CopyIn(table, names...))
	if err != nil {
		return fmt.Errorf("prepare copy: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for i, row := range t.Rows() {
		if _, err = stmt.ExecContext(ctx, copyValues(cols, row)...); err != nil {
			return fmt.Errorf("copy row %d: %w", i, err)
		}
	}
	if _, err = stmt.ExecContext(ctx); err != nil {
		return fmt.Errorf("copy flush: %w", err)
	}
	if err = stmt.Close(); err != nil {
		return fmt.Errorf("close copy: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
