package interpreter

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Install upgrades pip and installs the manifest with exe. The manifest is
// checked before anything runs.
func (d *Discoverer) Install(ctx context.Context, exe, manifest string) error {
	f, err := os.Open(manifest)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	f.Close()

	steps := [][]string{
		{"-m", "pip", "install", "--upgrade", "pip"},
		{"-m", "pip", "install", "-r", manifest},
	}

	for _, args := range steps {
		out, err := d.Runner.Run(ctx, exe, args...)
		if err != nil {
			return fmt.Errorf("%s %s: %w\n%s", exe, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
		}
	}

	return nil
}
