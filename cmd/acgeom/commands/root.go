package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/soypat/acgeom"
	"github.com/soypat/acgeom/engine"
	"github.com/soypat/acgeom/importer"
	"github.com/soypat/acgeom/internal/logging"
	"github.com/soypat/acgeom/internal/observability"
	"github.com/soypat/acgeom/nacelle"
)

// cliConfig holds the flag values shared by every command.
type cliConfig struct {
	samples     int
	logLevel    string
	logFormat   string
	metricsFile string

	log     *zap.Logger
	metrics *observability.GeometryCollector
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cfg := &cliConfig{}
	root := &cobra.Command{
		Use:          "acgeom",
		Short:        "Parametric aircraft component geometry",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.samples < 2 {
				return fmt.Errorf("--samples must be at least 2, got %d", cfg.samples)
			}
			log, err := logging.New(logging.Config{Level: cfg.logLevel, Format: cfg.logFormat})
			if err != nil {
				return err
			}
			cfg.log = log
			if cfg.metricsFile != "" {
				cfg.metrics, err = observability.NewGeometryCollector(prometheus.NewRegistry())
				if err != nil {
					return err
				}
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			defer cfg.log.Sync()
			if cfg.metrics == nil {
				return nil
			}
			if err := cfg.metrics.WriteTextfile(cfg.metricsFile); err != nil {
				return err
			}
			cfg.log.Debug("metrics written", zap.String("path", cfg.metricsFile))
			return nil
		},
	}

	root.PersistentFlags().IntVarP(&cfg.samples, "samples", "n", nacelle.DefaultSamples, "outline points per projection")
	root.PersistentFlags().StringVar(&cfg.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&cfg.logFormat, "log-format", "console", "log format (console or json)")
	root.PersistentFlags().StringVar(&cfg.metricsFile, "metrics-file", "", "write prometheus metrics to this file after the run")

	root.AddCommand(reportCmd(cfg), plotCmd(cfg), outlineCmd(cfg))
	return root
}

// load reads the aircraft file at path and computes every nacelle at the
// configured sample count. Constraint violations are logged once, by
// ComputeAll, and not returned.
func load(ctx context.Context, cfg *cliConfig, path string) (*importer.Aircraft, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	// Violations found on load are found again by ComputeAll.
	ac, err := importer.Load(f, engine.Statistical{})
	if err := hardError(err); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.log.Info("aircraft loaded", zap.String("name", ac.Name),
		zap.Int("engines", len(ac.Engines)), zap.Int("nacelles", ac.Nacelles.Len()))
	err = ac.Nacelles.ComputeAll(ctx, nacelle.ComputeOptions{
		Samples: cfg.samples,
		Logger:  cfg.log,
		Metrics: cfg.metrics,
	})
	if err := hardError(err); err != nil {
		return nil, err
	}
	return ac, nil
}

// hardError returns err unless it only carries constraint warnings.
func hardError(err error) error {
	var warns *nacelle.ConstraintWarnings
	if errors.As(err, &warns) {
		return nil
	}
	return err
}

func outliners(c *nacelle.Collection) []acgeom.Outliner {
	out := make([]acgeom.Outliner, c.Len())
	for i := range out {
		out[i] = c.At(i)
	}
	return out
}
