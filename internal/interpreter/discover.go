package interpreter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

var ErrInterpreterNotFound = errors.New("python interpreter not found")

// Output fragments printed by launchers that exist but cannot run anything,
// e.g. the Windows Store alias.
var failureMarkers = []string{
	"was not found",
	"is not recognized",
}

const pathFallback = "python"

type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type Prompter interface {
	Prompt(question string) (string, error)
}

// ExecRunner runs real processes and returns their combined output.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// LinePrompter asks on Out and reads a single line from In.
type LinePrompter struct {
	In  io.Reader
	Out io.Writer
}

func (p LinePrompter) Prompt(question string) (string, error) {
	fmt.Fprint(p.Out, question)
	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

type Discoverer struct {
	Candidates []string
	Runner     Runner
	Prompter   Prompter
	Stat       func(name string) (os.FileInfo, error)
	Glob       func(pattern string) ([]string, error)
	Log        *zap.Logger
}

func NewDiscoverer(prompter Prompter, log *zap.Logger) *Discoverer {
	return &Discoverer{
		Candidates: DefaultCandidates(os.Getenv),
		Runner:     ExecRunner{},
		Prompter:   prompter,
		Stat:       os.Stat,
		Glob:       filepath.Glob,
		Log:        log,
	}
}

// DefaultCandidates lists install locations in search order. Variables that
// are unset are skipped.
func DefaultCandidates(getenv func(string) string) []string {
	return candidatesFor(runtime.GOOS, getenv)
}

func candidatesFor(goos string, getenv func(string) string) []string {
	var out []string

	add := func(env string, parts ...string) {
		base := getenv(env)
		if base == "" {
			return
		}
		out = append(out, strings.Join(append([]string{base}, parts...), `\`))
	}

	add("LOCALAPPDATA", "Programs", "Python", "Python3*", "python.exe")
	add("APPDATA", "Python", "Python3*", "python.exe")
	add("ProgramFiles", "Python3*", "python.exe")
	add("ProgramFiles(x86)", "Python3*", "python.exe")
	add("USERPROFILE", "AppData", "Local", "Programs", "Python", "Python3*", "python.exe")
	add("LOCALAPPDATA", "Microsoft", "WindowsApps", "python.exe")

	if goos != "windows" {
		out = append(out, "/usr/local/bin/python3*", "/usr/bin/python3*")
	}

	return out
}

func (d *Discoverer) logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

// Runs reports whether exe runs "--version" cleanly.
func (d *Discoverer) Runs(ctx context.Context, exe string) bool {
	out, err := d.Runner.Run(ctx, exe, "--version")
	if err != nil {
		d.logger().Debug("interpreter check failed", zap.String("exe", exe), zap.Error(err))
		return false
	}

	lower := strings.ToLower(string(out))
	for _, m := range failureMarkers {
		if strings.Contains(lower, m) {
			d.logger().Debug("interpreter rejected", zap.String("exe", exe), zap.String("output", strings.TrimSpace(string(out))))
			return false
		}
	}
	return true
}

// Discover tries the candidate globs, then "python" on PATH, then asks the
// operator. A prompted path only has to exist.
func (d *Discoverer) Discover(ctx context.Context) (string, error) {
	for _, pattern := range d.Candidates {
		matches, err := d.Glob(pattern)
		if err != nil {
			continue
		}
		for _, m := range matches {
			if d.Runs(ctx, m) {
				d.logger().Info("interpreter found", zap.String("path", m))
				return m, nil
			}
		}
	}

	if d.Runs(ctx, pathFallback) {
		d.logger().Info("interpreter found on PATH")
		return pathFallback, nil
	}

	if d.Prompter == nil {
		return "", ErrInterpreterNotFound
	}

	answer, err := d.Prompter.Prompt("Python not found automatically. Enter the full path to python.exe: ")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInterpreterNotFound, err)
	}

	answer = strings.Trim(strings.TrimSpace(answer), `"'`)
	if answer == "" {
		return "", ErrInterpreterNotFound
	}
	if _, err := d.Stat(answer); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInterpreterNotFound, answer)
	}

	return answer, nil
}
