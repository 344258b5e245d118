package scoregen

import "os"

// ShowHelp prints usage information for the generator.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Scores Log Generator
====================

Writes a synthetic tab-separated scores log for trying out scoreplot.

Usage:
  go run cmd/gen-scores/main.go [options]

Options:
  -output string
        Output file (default "scores.txt")
  -rows int
        Number of samples (default 200)
  -metrics string
        Comma-separated metric names; names containing "loss" decay (default "loss,reward")
  -interval float
        Steps between samples (default 1000)
  -seconds-per-step float
        Wall-clock seconds per step (default 0.05)
  -noise float
        Relative noise amplitude (default 0.05)
  -seed uint
        Random seed (default 1)
  -shuffle
        Write rows out of step order
  -missing string
        Metric whose tail is written as None
  -missing-from int
        First row of the None tail
  -help
        Show this help message

Examples:
  # Two metrics, 200 rows
  go run cmd/gen-scores/main.go -output runs/a/scores.txt

  # Shuffled rows with a gap in reward from row 150
  go run cmd/gen-scores/main.go -shuffle -missing reward -missing-from 150
`)
}
