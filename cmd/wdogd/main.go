// Command wdogd is a standalone daemon wiring configuration, logging,
// metrics, and the watchdog core into a runnable process. The core
// package carries no socket, CLI, or config parsing of its own; this is
// that outer shell.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cuemby/wdog/pkg/backend"
	"github.com/cuemby/wdog/pkg/config"
	"github.com/cuemby/wdog/pkg/log"
	"github.com/cuemby/wdog/pkg/metrics"
	"github.com/cuemby/wdog/wdog"
)

var (
	logLevel    string
	logJSON     bool
	configPath  string
	metricsAddr string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "wdogd",
		Short: "health watchdog daemon for a TCP load balancer",
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit JSON-formatted logs")

	cobra.OnInitialize(initLogging)

	root.AddCommand(runCmd())
	return root
}

func initLogging() {
	log.Init(log.Config{
		Level:      log.Level(logLevel),
		JSONOutput: logJSON,
		Output:     os.Stdout,
	})
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "start the watchdog",
		RunE:  runWatchdog,
	}
	cmd.Flags().StringVar(&configPath, "config", "wdog.yaml", "path to the watchdog configuration file")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "address the Prometheus metrics endpoint listens on")
	return cmd
}

func runWatchdog(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cnf, err := config.Load(configPath)
	if err != nil {
		return err
	}

	interval := time.Duration(cnf.Interval)
	be, err := backend.New(cnf.Watchdog, interval)
	if err != nil {
		return err
	}
	defer be.Close()

	router := newStdoutRouter()

	initial := make([]wdog.InitialDestination, 0, len(cnf.Destinations))
	for _, d := range cnf.Destinations {
		initial = append(initial, wdog.InitialDestination{Address: d.Address, Weight: d.Weight})
	}

	watchdog, err := wdog.Create(ctx, be, router, interval, initial)
	if err != nil {
		return err
	}

	metricsServer := &http.Server{Addr: metricsAddr, Handler: metrics.Handler()}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("metrics server stopped", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	watchdog.Destroy(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return metricsServer.Shutdown(shutdownCtx)
}
