// Package scoregen writes synthetic scores logs for manual testing of the
// plotter: decaying loss curves, rising rewards, shuffled rows and gaps.
package scoregen

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/okian/scoreplot/internal/adapters/scorefile"
	"github.com/okian/scoreplot/internal/domain/model"
	"github.com/okian/scoreplot/pkg/logger"
)

// Generate builds a table with every reserved column plus cfg.Metrics.
// The result only depends on cfg.
func Generate(cfg *Config) (*model.Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	columns := append(append([]string(nil), model.Reserved...), cfg.Metrics...)
	missingCol := -1
	if cfg.MissingMetric != "" {
		for i, name := range columns {
			if name == cfg.MissingMetric {
				missingCol = i
			}
		}
	}

	total := float64(cfg.Rows-1) * cfg.StepInterval
	tau := math.Max(total*decayFraction, cfg.StepInterval)

	rows := make([][]float64, cfg.Rows)
	for i := range rows {
		step := float64(i) * cfg.StepInterval
		progress := 1 - math.Exp(-step/tau)
		noise := func(scale float64) float64 { return rng.NormFloat64() * cfg.Noise * scale }

		mean := rewardCeiling*progress + noise(rewardCeiling)
		stdev := math.Abs(mean*stdevFraction) + math.Abs(noise(rewardCeiling))
		row := []float64{
			step,
			math.Floor(step / episodesPer),
			step * cfg.SecondsPerStep,
			mean,
			mean + noise(stdev),
			stdev,
			mean + 2*stdev,
			mean - 2*stdev,
		}
		for _, name := range cfg.Metrics {
			var v float64
			if strings.Contains(strings.ToLower(name), "loss") {
				v = lossFloor + (lossStart-lossFloor)*(1-progress)
				v += noise(v)
			} else {
				v = progress + noise(1)
			}
			row = append(row, v)
		}
		if missingCol >= 0 && i >= cfg.MissingFrom {
			row[missingCol] = model.Missing
		}
		rows[i] = row
	}

	if cfg.Shuffle {
		rng.Shuffle(len(rows), func(a, b int) { rows[a], rows[b] = rows[b], rows[a] })
	}
	return model.NewTable(columns, rows), nil
}

// Run generates a log for cfg and writes it to cfg.OutputFile.
func Run(ctx context.Context, cfg *Config) error {
	t, err := Generate(cfg)
	if err != nil {
		return err
	}
	if err := scorefile.Write(cfg.OutputFile, t); err != nil {
		return fmt.Errorf("write scores: %w", err)
	}
	logger.Get().Info(ctx, "scores log generated",
		logger.String("path", cfg.OutputFile),
		logger.Int("rows", t.Len()),
		logger.Int("metrics", len(cfg.Metrics)),
		logger.Bool("shuffled", cfg.Shuffle))
	return nil
}
