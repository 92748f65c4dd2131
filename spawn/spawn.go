// Package spawn implements the process-launch contract used by key
// bindings and startup commands: resolve argv[0] against $PATH, reject
// if missing or not executable, launch with env overrides and a
// working-directory policy, and redirect stdout/stderr to the null
// device. Launching goes through os/exec.Cmd rather than raw
// fork/execv.
package spawn

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// ErrNoCommand is returned when argv is empty.
var ErrNoCommand = errors.New("spawn: empty argv")

// EnvOp sets Name to Value, or unsets Name if Value is nil.
type EnvOp struct {
	Name  string
	Value *string
}

// Options configures a Spawn call. Zero value uses $HOME as the working
// directory and the caller's environment with no overrides.
type Options struct {
	Env []EnvOp
	Dir string // default: $HOME
}

// resolveOnPath searches $PATH for name: split on ':', join with name,
// first existing match wins.
func resolveOnPath(name string) (string, error) {
	if strings.Contains(name, "/") {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
		return "", fmt.Errorf("spawn: %q not found", name)
	}
	path := os.Getenv("PATH")
	for _, dir := range strings.Split(path, ":") {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("spawn: %q not found on PATH", name)
}

func defaultDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if u, err := user.Current(); err == nil {
		return u.HomeDir
	}
	return "/"
}

// Spawn resolves argv[0], verifies it is executable, forks it with the
// given env overrides and working directory, redirects stdout/stderr to
// /dev/null, and returns the child's pid. Exec failure is reported here,
// at resolve time; no child is forked.
func Spawn(argv []string, opts Options) (int, error) {
	if len(argv) == 0 {
		return 0, ErrNoCommand
	}

	path, err := resolveOnPath(argv[0])
	if err != nil {
		return 0, err
	}
	if err := unix.Access(path, unix.X_OK); err != nil {
		return 0, fmt.Errorf("spawn: %q is not executable: %w", path, err)
	}

	dir := opts.Dir
	if dir == "" {
		dir = defaultDir()
	}

	null, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return 0, fmt.Errorf("spawn: opening null device: %w", err)
	}
	defer null.Close()

	cmd := exec.Command(path, argv[1:]...)
	cmd.Dir = dir
	cmd.Env = applyEnv(os.Environ(), opts.Env)
	cmd.Stdout = null
	cmd.Stderr = null
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("spawn: starting %q: %w", path, err)
	}
	go cmd.Wait() // reap the child without blocking the caller

	return cmd.Process.Pid, nil
}

// applyEnv applies a sequence of set/unset EnvOps over base, in order.
func applyEnv(base []string, ops []EnvOp) []string {
	env := append([]string(nil), base...)
	for _, op := range ops {
		env = removeEnv(env, op.Name)
		if op.Value != nil {
			env = append(env, op.Name+"="+*op.Value)
		}
	}
	return env
}

func removeEnv(env []string, name string) []string {
	prefix := name + "="
	out := env[:0]
	for _, kv := range env {
		if !strings.HasPrefix(kv, prefix) {
			out = append(out, kv)
		}
	}
	return out
}

// EnvSet updates the process environment for name, then — unless nested
// is true — forwards the change to systemd's user environment so spawned
// descendants (and already-running session services) inherit it.
func EnvSet(name string, value *string, nested bool) error {
	if value != nil {
		if err := os.Setenv(name, *value); err != nil {
			return err
		}
	} else {
		if err := os.Unsetenv(name); err != nil {
			return err
		}
	}

	if nested {
		return nil
	}
	_, err := Spawn([]string{"systemctl", "--user", "import-environment", name}, Options{})
	return err
}
