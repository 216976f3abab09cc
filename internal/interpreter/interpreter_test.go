package interpreter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	out string
	err error
}

type fakeRunner struct {
	results map[string]result
	calls   []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	call := strings.TrimSpace(name + " " + strings.Join(args, " "))
	f.calls = append(f.calls, call)
	r, ok := f.results[call]
	if !ok {
		return nil, errors.New("executable file not found")
	}
	return []byte(r.out), r.err
}

type fakePrompter struct {
	answer string
	asked  bool
}

func (p *fakePrompter) Prompt(string) (string, error) {
	p.asked = true
	return p.answer, nil
}

func globFrom(m map[string][]string) func(string) ([]string, error) {
	return func(p string) ([]string, error) { return m[p], nil }
}

func statOnly(paths ...string) func(string) (os.FileInfo, error) {
	return func(name string) (os.FileInfo, error) {
		for _, p := range paths {
			if p == name {
				return nil, nil
			}
		}
		return nil, os.ErrNotExist
	}
}

func TestCandidatesFor(t *testing.T) {
	env := map[string]string{
		"LOCALAPPDATA": `C:\Users\frodo\AppData\Local`,
		"ProgramFiles": `C:\Program Files`,
	}
	getenv := func(k string) string { return env[k] }

	win := candidatesFor("windows", getenv)
	assert.Equal(t, []string{
		`C:\Users\frodo\AppData\Local\Programs\Python\Python3*\python.exe`,
		`C:\Program Files\Python3*\python.exe`,
		`C:\Users\frodo\AppData\Local\Microsoft\WindowsApps\python.exe`,
	}, win)

	linux := candidatesFor("linux", func(string) string { return "" })
	assert.Equal(t, []string{"/usr/local/bin/python3*", "/usr/bin/python3*"}, linux)
}

func TestDiscover_FirstWorkingMatchWins(t *testing.T) {
	runner := &fakeRunner{results: map[string]result{
		"/opt/py/broken --version": {out: "Python was not found; run without arguments to install from the Microsoft Store"},
		"/opt/py/good --version":   {out: "Python 3.12.1"},
		"/opt/py/later --version":  {out: "Python 3.13.0"},
	}}

	d := &Discoverer{
		Candidates: []string{"/opt/py/*", "/other/*"},
		Runner:     runner,
		Glob: globFrom(map[string][]string{
			"/opt/py/*": {"/opt/py/broken", "/opt/py/good"},
			"/other/*":  {"/opt/py/later"},
		}),
		Stat: statOnly(),
	}

	exe, err := d.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/opt/py/good", exe)
	assert.NotContains(t, runner.calls, "/opt/py/later --version")
}

func TestDiscover_FallsBackToPath(t *testing.T) {
	runner := &fakeRunner{results: map[string]result{
		"python --version": {out: "Python 3.11.4"},
	}}

	d := &Discoverer{
		Candidates: []string{"/nothing/*"},
		Runner:     runner,
		Glob:       globFrom(nil),
		Stat:       statOnly(),
	}

	exe, err := d.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "python", exe)
}

func TestDiscover_FailingExitCodeIsRejected(t *testing.T) {
	runner := &fakeRunner{results: map[string]result{
		"/opt/py/bad --version": {out: "Python 3.12.1", err: errors.New("exit status 1")},
	}}
	prompter := &fakePrompter{}

	d := &Discoverer{
		Candidates: []string{"/opt/py/*"},
		Runner:     runner,
		Prompter:   prompter,
		Glob:       globFrom(map[string][]string{"/opt/py/*": {"/opt/py/bad"}}),
		Stat:       statOnly(),
	}

	_, err := d.Discover(context.Background())
	assert.ErrorIs(t, err, ErrInterpreterNotFound)
	assert.True(t, prompter.asked)
}

func TestDiscover_Prompt(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		exists  []string
		want    string
		wantErr bool
	}{
		{"existing_path", `"D:\Tools\python.exe"`, []string{`D:\Tools\python.exe`}, `D:\Tools\python.exe`, false},
		{"missing_path", `D:\nope\python.exe`, nil, "", true},
		{"empty_answer", "  ", nil, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Discoverer{
				Runner:   &fakeRunner{},
				Prompter: &fakePrompter{answer: tt.answer},
				Glob:     globFrom(nil),
				Stat:     statOnly(tt.exists...),
			}

			exe, err := d.Discover(context.Background())
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInterpreterNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, exe)
		})
	}
}

func TestDiscover_NoPrompter(t *testing.T) {
	d := &Discoverer{Runner: &fakeRunner{}, Glob: globFrom(nil), Stat: statOnly()}

	_, err := d.Discover(context.Background())
	assert.ErrorIs(t, err, ErrInterpreterNotFound)
}

func TestInstall(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), "requirements.txt")
	require.NoError(t, os.WriteFile(manifest, []byte("requests\n"), 0o644))

	t.Run("success", func(t *testing.T) {
		runner := &fakeRunner{results: map[string]result{
			"py -m pip install --upgrade pip":  {out: "ok"},
			"py -m pip install -r " + manifest: {out: "ok"},
		}}
		d := &Discoverer{Runner: runner}

		require.NoError(t, d.Install(context.Background(), "py", manifest))
		assert.Equal(t, []string{
			"py -m pip install --upgrade pip",
			"py -m pip install -r " + manifest,
		}, runner.calls)
	})

	t.Run("missing_manifest_runs_nothing", func(t *testing.T) {
		runner := &fakeRunner{}
		d := &Discoverer{Runner: runner}

		err := d.Install(context.Background(), "py", filepath.Join(t.TempDir(), "absent.txt"))
		assert.Error(t, err)
		assert.Empty(t, runner.calls)
	})

	t.Run("pip_failure", func(t *testing.T) {
		runner := &fakeRunner{results: map[string]result{
			"py -m pip install --upgrade pip":  {out: "ok"},
			"py -m pip install -r " + manifest: {out: "No matching distribution", err: errors.New("exit status 1")},
		}}
		d := &Discoverer{Runner: runner}

		err := d.Install(context.Background(), "py", manifest)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "No matching distribution")
	})
}

func TestLinePrompter(t *testing.T) {
	var out strings.Builder
	p := LinePrompter{In: strings.NewReader("C:\\py\\python.exe\r\n"), Out: &out}

	got, err := p.Prompt("path? ")
	require.NoError(t, err)
	assert.Equal(t, `C:\py\python.exe`, got)
	assert.Equal(t, "path? ", out.String())
}
