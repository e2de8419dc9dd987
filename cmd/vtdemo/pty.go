package main

import "os/exec"

// childCommand builds the shell command vtdemo spawns inside the PTY.
func childCommand(shell string, args []string) *exec.Cmd {
	return exec.Command(shell, args...)
}
