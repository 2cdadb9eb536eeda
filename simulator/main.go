package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/itohio/trainspeed/pkg/config"
	"github.com/itohio/trainspeed/pkg/detector"
	"github.com/itohio/trainspeed/pkg/display"
	"github.com/itohio/trainspeed/pkg/hal"
	"github.com/itohio/trainspeed/pkg/history"
	"github.com/itohio/trainspeed/pkg/link"
)

var (
	flagConfig    string
	flagPasses    int
	flagSpeed     float64
	flagSpread    float64
	flagPeriod    time.Duration
	flagThreshold uint16
	flagAveraging int
	flagQuiet     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "simulator",
		Short: "Run the train speed detector against a simulated track",
		Long: `Simulator runs the same detector as the firmware on a virtual clock.
Trains pass the two sensors at a configurable speed, alternating direction,
and the LED matrix is drawn in the terminal.

Calibration is simulated with one train pass followed by a button press,
unless --threshold sets a fixed threshold.`,
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "config.yaml", "Configuration file")
	rootCmd.Flags().IntVarP(&flagPasses, "passes", "n", 5, "Number of trains to simulate, 0 runs until interrupted")
	rootCmd.Flags().Float64Var(&flagSpeed, "speed", 0, "Mean scaled speed in km/h (overrides mock.speed_kmh)")
	rootCmd.Flags().Float64Var(&flagSpread, "spread", 0, "Relative speed variation between trains (overrides mock.spread)")
	rootCmd.Flags().DurationVar(&flagPeriod, "period", 0, "Time between trains (overrides mock.period)")
	rootCmd.Flags().Uint16Var(&flagThreshold, "threshold", 0, "Fixed dark threshold, skips calibration")
	rootCmd.Flags().IntVar(&flagAveraging, "averaging", 0, "Reads averaged per sample (overrides sensors.averaging)")
	rootCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Do not draw the matrix, print readings only")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	hist := simulate(ctx, cfg, flagPasses, out, flagQuiet)
	fmt.Fprintln(out, renderSummary(cfg, hist.Stats()))
	return nil
}

// applyFlags overrides configuration values with flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("speed") {
		cfg.Mock.SpeedKMH = flagSpeed
	}
	if flags.Changed("spread") {
		cfg.Mock.Spread = flagSpread
	}
	if flags.Changed("period") {
		cfg.Mock.Period = flagPeriod
	}
	if flags.Changed("threshold") {
		cfg.Sensors.FixedThreshold = flagThreshold
	}
	if flags.Changed("averaging") {
		cfg.Sensors.Averaging = flagAveraging
	}
}

// simulate runs passes trains and returns the readings. Board time is mapped
// onto a fixed epoch so the history window applies to simulated time.
func simulate(ctx context.Context, cfg *config.Config, passes int, out io.Writer, quiet bool) *history.History {
	clock := hal.NewVirtualClock(0)
	var disp display.Display = display.NewTerminal(out, clock)
	if quiet {
		disp = display.NewRecorder(clock)
	}

	sim := link.NewSimulation(cfg, clock, disp)
	hist := history.New(0)
	epoch := time.Now()
	sim.Detector().OnReading(func(r detector.Reading) {
		fmt.Fprintln(out, renderReading(r))
		hist.Add(history.Entry{
			Timestamp: epoch.Add(time.Duration(r.At) * time.Millisecond),
			Reading:   r,
		})
	})

	sim.Calibrate()
	sim.Start()

	sim.Limit(passes)
	for !sim.Done() {
		select {
		case <-ctx.Done():
			return hist
		default:
		}
		sim.Step()
	}
	return hist
}
