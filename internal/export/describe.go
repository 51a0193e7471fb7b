// Copyright 2026 The ies Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package export

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/montanaflynn/stats"

	"github.com/bpowers/ies"
)

// ColumnSummary describes the finite values of one numeric column.  NaN
// and infinite values are counted in Missing and otherwise ignored.
type ColumnSummary struct {
	Name    string
	Count   int
	Missing int
	Min     float64
	Max     float64
	Mean    float64
	Median  float64
	StdDev  float64
}

// Describe summarizes every numeric column of t, in column order.
func Describe(t *ies.Table) ([]ColumnSummary, error) {
	rows := t.Rows()
	var summaries []ColumnSummary
	for _, col := range t.Columns() {
		if !col.IsNumeric() {
			continue
		}
		s := ColumnSummary{Name: col.Name}
		data := make(stats.Float64Data, 0, len(rows))
		for _, row := range rows {
			v, ok := row.Get(col.Name)
			if !ok {
				continue
			}
			switch x := cellValue(v).(type) {
			case uint32:
				data = append(data, float64(x))
			case float32:
				data = append(data, float64(x))
			default:
				s.Missing++
			}
		}
		s.Count = len(data)
		if s.Count > 0 {
			if err := summarize(&s, data); err != nil {
				return nil, fmt.Errorf("column %q: %w", col.Name, err)
			}
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

func summarize(s *ColumnSummary, data stats.Float64Data) (err error) {
	if s.Min, err = data.Min(); err != nil {
		return err
	}
	if s.Max, err = data.Max(); err != nil {
		return err
	}
	if s.Mean, err = data.Mean(); err != nil {
		return err
	}
	if s.Median, err = data.Median(); err != nil {
		return err
	}
	if s.StdDev, err = data.StandardDeviation(); err != nil {
		return err
	}
	return nil
}

// WriteSummaries prints summaries as an aligned text table.
func WriteSummaries(w io.Writer, summaries []ColumnSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "column\tcount\tmissing\tmin\tmax\tmean\tmedian\tstddev")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%g\t%g\t%g\t%g\t%g\n",
			s.Name, s.Count, s.Missing, s.Min, s.Max, s.Mean, s.Median, s.StdDev)
	}
	return tw.Flush()
}
