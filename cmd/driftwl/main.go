// Command driftwl is the compositor host binary: it parses the CLI
// surface (log file, xwayland/output counts, gesture modifier override,
// an initial shell command), wires a compositor.Server, and spawns the
// initial command before handing control to the external event loop.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"driftwl/compositor"
	"driftwl/internal/config"
	"driftwl/internal/logx"
	"driftwl/spawn"
	"driftwl/surface"
)

// headlessToolkit is the placeholder compositor.Toolkit used until a
// real Wayland backend drives Server: configure and close requests are
// logged, the other side effects are dropped, and nothing is dispatched
// to a client.
type headlessToolkit struct{}

func (headlessToolkit) SendConfigure(t *surface.Toplevel, width, height int, serial uint32) {
	logx.Debug("configure", "width", width, "height", height, "serial", serial)
}
func (headlessToolkit) SendClose(t *surface.Toplevel) { logx.Debug("close requested") }
func (headlessToolkit) SendKeyboardEnter(t *surface.Toplevel) {}
func (headlessToolkit) HasCursorBuffer(s any) bool { return false }
func (headlessToolkit) SetCursorVisible(visible bool) {}

type rootFlags struct {
	logFile  string
	xwayland bool
	outputs  int
	ctrlMod  bool
	shell    string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "driftwl [-- initial-command...]",
		Short: "driftwl is a Wayland compositor core",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompositor(flags, args)
		},
	}

	cmd.Flags().StringVar(&flags.logFile, "log-file", "", "write logs to this path instead of stderr")
	cmd.Flags().BoolVar(&flags.xwayland, "xwayland", false, "enable the Xwayland compatibility layer")
	cmd.Flags().IntVar(&flags.outputs, "outputs", 0, "number of headless outputs to create (0: use the real backend)")
	cmd.Flags().BoolVar(&flags.ctrlMod, "ctrl-mod", false, "use Ctrl instead of Super as the gesture modifier")
	cmd.Flags().StringVarP(&flags.shell, "shell", "s", "", "shell used to run bound commands")

	cmd.AddCommand(newMsgCmd())

	return cmd
}

func runCompositor(flags rootFlags, initialCommand []string) error {
	if err := logx.Configure(flags.logFile, false); err != nil {
		return fmt.Errorf("driftwl: configuring log output: %w", err)
	}

	cfg, err := config.Load(os.Getenv("DRIFTWL_CONFIG"))
	if err != nil {
		return fmt.Errorf("driftwl: loading config: %w", err)
	}
	if flags.ctrlMod {
		cfg.GestureMod = "Ctrl"
	}

	logx.Info("starting driftwl",
		"xwayland", flags.xwayland,
		"outputs", flags.outputs,
		"gesture_mod", cfg.GestureMod,
		"shell", flags.shell,
	)

	// The event loop itself (backend enumeration, buffer upload, protocol
	// dispatch) is an external collaborator; compositor.New wires the
	// core this binary hosts regardless of which loop drives it.
	_ = compositor.New(cfg, map[string]surface.Quirks{}, headlessToolkit{})

	if len(initialCommand) > 0 {
		opts := spawn.Options{}
		if flags.shell != "" {
			opts.Env = []spawn.EnvOp{{Name: "SHELL", Value: &flags.shell}}
		}
		if _, err := spawn.Spawn(initialCommand, opts); err != nil {
			logx.Error("spawning initial command", "argv", initialCommand, "err", err)
		}
	}

	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
