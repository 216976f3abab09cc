package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-assistant/internal/interpreter"
	"github.com/BruksfildServices01/booking-assistant/internal/logger"
)

type setup interface {
	Discover(ctx context.Context) (string, error)
	Install(ctx context.Context, exe, manifest string) error
}

func main() {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("SETUP_MANIFEST", "requirements.txt")
	v.SetDefault("LOG_LEVEL", "warn")

	zlog, err := logger.New("development", v.GetString("LOG_LEVEL"))
	if err != nil {
		zlog = zap.NewNop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	d := interpreter.NewDiscoverer(interpreter.LinePrompter{In: os.Stdin, Out: os.Stdout}, zlog)
	code := run(ctx, os.Stdout, d, v.GetString("SETUP_MANIFEST"), zlog)

	stop()
	_ = zlog.Sync()
	os.Exit(code)
}

// run returns the process exit code: 0 on success, 1 when no interpreter is
// found or the install fails.
func run(ctx context.Context, out io.Writer, d setup, manifest string, zlog *zap.Logger) int {
	fmt.Fprintln(out, "Searching for a Python interpreter...")
	exe, err := d.Discover(ctx)
	if err != nil {
		fmt.Fprintln(out, "ERROR: Python could not be found. Install Python 3 and try again.")
		zlog.Debug("discovery failed", zap.Error(err))
		return 1
	}
	fmt.Fprintf(out, "Using Python at: %s\n", exe)

	fmt.Fprintf(out, "Installing dependencies from %s...\n", manifest)
	if err := d.Install(ctx, exe, manifest); err != nil {
		fmt.Fprintf(out, "ERROR: installation failed: %v\n", err)
		return 1
	}

	fmt.Fprintln(out, "Setup complete.")
	return 0
}
