package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dennisdiepolder/monti/dashboard/internal/simulate"
)

func main() {
	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().
		Str("service", "exportgen").
		Logger()

	if err := newRootCmd(logger).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(logger zerolog.Logger) *cobra.Command {
	var (
		agentCount int
		days       int
		seed       int64
		start      string
		out        string
	)

	cmd := &cobra.Command{
		Use:          "exportgen",
		Short:        "Write a synthetic agent time-on-status export",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if agentCount <= 0 {
				return fmt.Errorf("--agents must be positive (got: %d)", agentCount)
			}
			if days <= 0 {
				return fmt.Errorf("--days must be positive (got: %d)", days)
			}
			startDate, err := civil.ParseDate(start)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}

			agents := simulate.NewGenerator(seed).GenerateAgents(agentCount)
			records := simulate.NewSimulator(agents, seed, logger).Run(startDate, days)

			var w io.Writer = cmd.OutOrStdout()
			var bw *bufio.Writer
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				bw = bufio.NewWriter(f)
				w = bw
			}

			if err := simulate.WriteCSV(w, records); err != nil {
				return err
			}
			if bw != nil {
				if err := bw.Flush(); err != nil {
					return fmt.Errorf("failed to write output file: %w", err)
				}
			}

			logger.Info().
				Int("agents", len(agents)).
				Int("days", days).
				Int("records", len(records)).
				Int64("seed", seed).
				Str("out", out).
				Msg("export written")
			return nil
		},
	}

	cmd.Flags().IntVar(&agentCount, "agents", 12, "Number of agents to generate")
	cmd.Flags().IntVar(&days, "days", 5, "Number of days to simulate")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed")
	cmd.Flags().StringVar(&start, "start", "2025-06-30", "First simulated date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default stdout)")

	return cmd
}
