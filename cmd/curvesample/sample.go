package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/sgostarter/i/l"
	"golang.org/x/sync/errgroup"

	"honnef.co/go/motion"
	"honnef.co/go/motion/internal/config"
	"honnef.co/go/motion/trajectory"
)

// table holds sampled values, one row per sample time.
type table struct {
	header []string
	rows   [][]float64
}

// sample evaluates every configured curve and path at every sample time.
// Each curve is sampled by its own goroutine on its own [motion.Curve].
func sample(ctx context.Context, cfg *config.Config, logger l.Wrapper) (*table, error) {
	times := cfg.Sample.Times()

	header := []string{"time"}
	for _, cc := range cfg.Curves {
		header = append(header, cc.Name)
	}
	if cfg.Path != nil {
		header = append(header, "x", "y", "left", "right")
	}

	columns := make([][]float64, len(header))
	columns[0] = times

	g, gCtx := errgroup.WithContext(ctx)
	for i := range cfg.Curves {
		cc := &cfg.Curves[i]
		col := i + 1
		g.Go(func() error {
			c := motion.NewCurve(motion.WithLogger(logger.WithFields(l.StringField("curve", cc.Name))))
			c.Restore(cc.State())
			out := make([]float64, len(times))
			for j, t := range times {
				if j%1024 == 0 {
					if err := gCtx.Err(); err != nil {
						return err
					}
				}
				out[j] = c.Value(t)
			}
			columns[col] = out
			return nil
		})
	}
	if cfg.Path != nil {
		col := len(cfg.Curves) + 1
		g.Go(func() error {
			p := cfg.Path.Build(trajectory.WithLogger(logger))
			xs := make([]float64, len(times))
			ys := make([]float64, len(times))
			lefts := make([]float64, len(times))
			rights := make([]float64, len(times))
			for j, t := range times {
				if err := gCtx.Err(); err != nil {
					return err
				}
				pos := p.Position(t)
				xs[j], ys[j] = pos.X, pos.Y
				lefts[j] = p.LeftDistance(t)
				rights[j] = p.RightDistance(t)
			}
			columns[col], columns[col+1], columns[col+2], columns[col+3] = xs, ys, lefts, rights
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("sampling failed: %w", err)
	}

	rows := make([][]float64, len(times))
	for j := range rows {
		row := make([]float64, len(columns))
		for i, col := range columns {
			row[i] = col[j]
		}
		rows[j] = row
	}
	return &table{header: header, rows: rows}, nil
}

func (t *table) writeCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.header); err != nil {
		return err
	}
	record := make([]string, len(t.header))
	for _, row := range t.rows {
		for i, v := range row {
			record[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
