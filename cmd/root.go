package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/hysteresis-sim/sim"
	"github.com/inference-sim/hysteresis-sim/sim/trace"
)

var (
	// Shared flags
	seed            int64  // Seed for the run-scoped random stream
	logLevel        string // Log verbosity level
	modelConfigPath string // Optional YAML file with model parameters

	// run / sweep flags
	activateAt     int    // x: WS1 queue length that enables WS2
	deactivateAt   int    // y: WS1 queue length below which WS2 is disabled
	simulationTime int    // Post-warmup duration in minutes
	drainInFlight  bool   // Let admitted entities finish after the horizon
	traceLevel     string // Decision trace level
	outputFormat   string // "text" or "json"
	xValues        []int  // sweep: candidate x thresholds
	yValues        []int  // sweep: candidate y thresholds
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "hysteresis-sim",
	Short: "Discrete-event simulator for a two-server system with hysteresis-controlled capacity",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runOptions carries everything runSimulation needs, so it can be driven
// from tests without going through flag parsing.
type runOptions struct {
	X, Y, SimulationTime int
	Seed                 int64
	SeedFromFlag         bool
	ModelConfigPath      string
	Drain                bool
	TraceLevel           string
	Output               string
}

// runCmd executes one simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulation and print its statistics",
	Run: func(cmd *cobra.Command, args []string) {
		opts := runOptions{
			X:               activateAt,
			Y:               deactivateAt,
			SimulationTime:  simulationTime,
			Seed:            seed,
			SeedFromFlag:    cmd.Flags().Changed("seed"),
			ModelConfigPath: modelConfigPath,
			Drain:           drainInFlight,
			TraceLevel:      traceLevel,
			Output:          outputFormat,
		}
		if err := runSimulation(cmd.Context(), os.Stdout, opts); err != nil {
			if errors.Is(err, sim.ErrNoEntities) {
				logrus.Fatalf("No entities processed. Try increasing simulation time.")
			}
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// buildConfig turns validated request values into a kernel Config.
func buildConfig(opts runOptions, x, y int) (sim.Config, error) {
	cfg := sim.DefaultConfig(x, y, float64(opts.SimulationTime))
	cfg.Seed = opts.Seed
	cfg.Horizon.DrainInFlight = opts.Drain
	cfg.TraceLevel = trace.TraceLevel(opts.TraceLevel)
	if opts.ModelConfigPath != "" {
		mc, err := loadModelConfig(opts.ModelConfigPath)
		if err != nil {
			return sim.Config{}, err
		}
		mc.apply(&cfg, opts.SeedFromFlag)
	}
	return cfg, cfg.Validate()
}

func runSimulation(ctx context.Context, w io.Writer, opts runOptions) error {
	if err := validateRequest(opts.X, opts.Y, opts.SimulationTime); err != nil {
		return err
	}
	if opts.Output != "text" && opts.Output != "json" {
		return fmt.Errorf("unknown output format %q (want text or json)", opts.Output)
	}
	cfg, err := buildConfig(opts, opts.X, opts.Y)
	if err != nil {
		return err
	}

	runID := xid.New().String()
	logger := logrus.WithFields(logrus.Fields{"run_id": runID, "x": opts.X, "y": opts.Y, "seed": cfg.Seed})
	logger.Infof("Starting run: simulation_time=%d, warmup=%.2f", opts.SimulationTime, cfg.Horizon.Warmup)

	res, err := sim.Run(ctx, cfg)
	if err != nil {
		logger.Warnf("Run ended without statistics: %v", err)
		return err
	}

	if opts.Output == "json" {
		p := Parameters{X: opts.X, Y: opts.Y, SimulationTime: opts.SimulationTime}
		return newReport(runID, cfg, p, res).writeJSON(w)
	}
	res.Summary.Print(w, opts.X, opts.Y, cfg.Horizon.SimulationTime)
	if res.Trace != nil {
		ts := trace.Summarize(res.Trace)
		fmt.Fprintf(w, "WS2 activations: %d, deactivations: %d, routed to WS1/WS2: %d/%d\n",
			ts.Activations, ts.Deactivations, ts.TargetDistribution[sim.PrimaryName], ts.TargetDistribution[sim.SecondaryName])
	}
	return nil
}

// sweepCmd runs one simulation per (x, y) pair
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Compare threshold pairs under the same seed",
	Run: func(cmd *cobra.Command, args []string) {
		opts := runOptions{
			SimulationTime:  simulationTime,
			Seed:            seed,
			SeedFromFlag:    cmd.Flags().Changed("seed"),
			ModelConfigPath: modelConfigPath,
			Drain:           drainInFlight,
		}
		if err := runSweep(cmd.Context(), os.Stdout, xValues, yValues, opts); err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
	},
}

func runSweep(ctx context.Context, w io.Writer, xs, ys []int, opts runOptions) error {
	ran := 0
	fmt.Fprintf(w, "%4s %4s %10s %10s %10s %8s %12s\n", "x", "y", "mean_tis", "max_tis", "mean_wait", "count", "per_hour")
	for _, x := range xs {
		for _, y := range ys {
			if err := validateRequest(x, y, opts.SimulationTime); err != nil {
				logrus.Warnf("Skipping pair: %v", err)
				continue
			}
			cfg, err := buildConfig(opts, x, y)
			if err != nil {
				return err
			}
			res, err := sim.Run(ctx, cfg)
			if errors.Is(err, sim.ErrNoEntities) {
				fmt.Fprintf(w, "%4d %4d %10s %10s %10s %8d %12s\n", x, y, "-", "-", "-", 0, "-")
				ran++
				continue
			}
			if err != nil {
				return err
			}
			s := res.Summary
			fmt.Fprintf(w, "%4d %4d %10.2f %10.2f %10.2f %8d %12.2f\n",
				x, y, s.MeanTimeInSystem, s.MaxTimeInSystem, s.MeanQueueWait, s.Count, s.ThroughputPerHour)
			ran++
		}
	}
	if ran == 0 {
		return errors.New("no valid (x, y) pair: every pair needs x > y > 0")
	}
	return nil
}

// Execute runs the CLI root command. An interrupt cancels the running simulation.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "Seed for the simulation random stream")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&modelConfigPath, "model-config", "", "YAML file overriding arrival/service means and warmup")
	rootCmd.PersistentFlags().IntVar(&simulationTime, "time", 1000, "Simulation time in minutes, after the warm-up")
	rootCmd.PersistentFlags().BoolVar(&drainInFlight, "drain", false, "Let admitted entities finish after the horizon")

	runCmd.Flags().IntVar(&activateAt, "x", 5, "WS1 queue length at which WS2 is activated")
	runCmd.Flags().IntVar(&deactivateAt, "y", 3, "WS1 queue length below which WS2 is deactivated")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Decision trace level (none, decisions)")
	runCmd.Flags().StringVar(&outputFormat, "output", "text", "Output format (text, json)")

	sweepCmd.Flags().IntSliceVar(&xValues, "x-values", []int{3, 5, 7}, "Comma-separated x thresholds")
	sweepCmd.Flags().IntSliceVar(&yValues, "y-values", []int{1, 2, 3}, "Comma-separated y thresholds")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
}
