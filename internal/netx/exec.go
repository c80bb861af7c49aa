package netx

import (
	"fmt"
	"io"
	"os/exec"
)

// CommandRunner runs name with args and waits for it to exit
type CommandRunner func(name string, args ...string) error

// Exec publishes by running `<command> -name <text>`, for setups where
// xsetroot is preferred over a direct display connection
type Exec struct {
	Command string
	Run     CommandRunner
}

func NewExec(command string) *Exec {
	return &Exec{Command: command, Run: runCommand}
}

func runCommand(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (self *Exec) Publish(text string) error {
	if err := self.Run(self.Command, "-name", text); err != nil {
		return fmt.Errorf("failed to run %s: %w", self.Command, err)
	}
	return nil
}

func (self *Exec) Close() error { return nil }

// Writer prints each status line on its own line, for bars that read a pipe
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (self *Writer) Publish(text string) error {
	if _, err := io.WriteString(self.w, text+"\n"); err != nil {
		return fmt.Errorf("failed to write status: %w", err)
	}
	return nil
}

func (self *Writer) Close() error { return nil }
