package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lbm-sim/lbm-info/sim/export"
	"github.com/lbm-sim/lbm-info/sim/monitor"
	"github.com/lbm-sim/lbm-info/sim/render"
	"github.com/lbm-sim/lbm-info/sim/stepper"
)

var (
	runFlags    descriptorFlags
	stepTime    time.Duration // Mean synthetic step time
	jitter      float64       // Relative step time jitter
	seed        int64         // Seed for step time jitter
	segments    int           // Number of chained run segments
	refresh     time.Duration // Status line refresh interval
	metricsAddr string        // Prometheus listen address, empty = disabled
	noColor     bool
)

// runCmd drives a synthetic step loop and displays live progress
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Drive a synthetic step loop and display live progress",
	Run: func(cmd *cobra.Command, args []string) {
		d, err := runFlags.resolve(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if refresh <= 0 {
			logrus.Fatalf("--refresh must be > 0, got %v", refresh)
		}
		if segments < 1 {
			logrus.Fatalf("--segments must be >= 1, got %d", segments)
		}
		s, err := stepper.New(stepper.Config{StepTime: stepTime, Jitter: jitter, Seed: seed})
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		r := render.New(render.Options{Writer: cmd.OutOrStdout(), NoColor: noColor, Status: true})
		m := monitor.New(d, r)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if metricsAddr != "" {
			srv := &http.Server{Addr: metricsAddr, Handler: export.Handler(m), ReadHeaderTimeout: 5 * time.Second}
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logrus.Errorf("metrics server: %v", err)
				}
			}()
			defer func() { _ = srv.Close() }()
			logrus.Infof("Serving metrics on %s/metrics", metricsAddr)
		}

		err = runSegments(ctx, m, s, d.TargetSteps(), segments, refresh)
		if err != nil && !errors.Is(err, context.Canceled) {
			logrus.Fatalf("run: %v", err)
		}
		logrus.Info("Run complete.")
	},
}

// runSegments chains segments runs of target steps, refreshing the status line while each runs.
// The global step counter carries over between segments.
func runSegments(ctx context.Context, m *monitor.Monitor, s *stepper.Stepper, target uint64, segments int, refresh time.Duration) error {
	for i := 0; i < segments; i++ {
		m.Begin(target, s.Step())

		refreshCtx, cancel := context.WithCancel(ctx)
		done := make(chan error, 1)
		go func() { done <- m.Run(refreshCtx, refresh) }()

		err := s.Run(ctx, target, m.Step)
		cancel()
		if refreshErr := <-done; refreshErr != nil && err == nil {
			err = refreshErr
		}
		m.End()
		if err != nil {
			return err
		}
	}
	return nil
}

func init() {
	addDescriptorFlags(runCmd, &runFlags)
	runCmd.Flags().DurationVar(&stepTime, "step-time", 10*time.Millisecond, "Mean synthetic step time")
	runCmd.Flags().Float64Var(&jitter, "jitter", 0.1, "Relative step time jitter in [0, 1)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for step time jitter")
	runCmd.Flags().IntVar(&segments, "segments", 1, "Number of chained run segments")
	runCmd.Flags().DurationVar(&refresh, "refresh", 100*time.Millisecond, "Status line refresh interval")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9100)")
	runCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}
