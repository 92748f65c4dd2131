package main

import (
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"

	"driftwl/ipc"
)

// socketEnvVar is the environment variable the running instance exports
// its IPC socket name under.
const socketEnvVar = "DRIFTWL_PROCESS"

func newMsgCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "msg [words...]",
		Short: "forward a command to the running driftwl instance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMsg(args)
		},
	}
}

func runMsg(argv []string) error {
	name := os.Getenv(socketEnvVar)
	if name == "" {
		return fmt.Errorf("msg: %s is not set; is driftwl running?", socketEnvVar)
	}

	socketPath := fmt.Sprintf("%s/driftwl/%s", os.Getenv("XDG_RUNTIME_DIR"), name)
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return fmt.Errorf("msg: connecting to %s: %w", socketPath, err)
	}
	defer conn.Close()

	stdout, stderr, err := ipc.Dial(conn, argv)
	if err != nil {
		return fmt.Errorf("msg: %w", err)
	}
	if stdout != "" {
		fmt.Fprint(os.Stdout, stdout)
	}
	if stderr != "" {
		fmt.Fprint(os.Stderr, stderr)
	}
	return nil
}
