package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dennisdiepolder/monti/dashboard/internal/alerts"
	"github.com/dennisdiepolder/monti/dashboard/internal/config"
	"github.com/dennisdiepolder/monti/dashboard/internal/dashboard"
	"github.com/dennisdiepolder/monti/dashboard/internal/loader"
	"github.com/dennisdiepolder/monti/dashboard/internal/metrics"
	"github.com/dennisdiepolder/monti/dashboard/internal/report"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		source string
		format string
	)

	cmd := &cobra.Command{
		Use:          "report",
		Short:        "Print per-agent productivity from a time-on-status export",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
				zerolog.SetGlobalLevel(level)
			}
			if source == "" {
				source = cfg.SourcePath
			}

			service := dashboard.NewService(
				loader.Options{SourcePath: source},
				alerts.Rules{LowProductivityPct: cfg.LowProductivityPct, HighBreakPct: cfg.HighBreakPct},
				metrics.New(),
				log.Logger,
			)

			d, err := service.Render(cmd.Context())
			if err != nil {
				return err
			}

			out, err := f.Format(d)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Path to the export CSV (default $SOURCE_PATH)")
	cmd.Flags().StringVar(&format, "format", string(report.FormatText), "Output format: text|json|csv")

	return cmd
}
