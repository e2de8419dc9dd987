// Command vtdemo hosts a real shell inside a PTY, feeding its output through
// the VT-100 output parser into an OffscreenBuffer while the controlling
// terminal's raw keystrokes pass through the VT-100 input parser, purely to
// exercise both parsers against a live shell session. The child's actual
// display is still the user's real terminal (vtdemo forwards PTY bytes
// unmodified), so the offscreen buffer is this program's own private view
// of the conversation; its contents are not written to the log or anywhere
// else.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/creack/pty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/go-vt100/termcore"
	"github.com/go-vt100/termcore/vtinput"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var flagShell string
	var flagRows, flagCols int
	var flagDebug bool
	var flagLogFile string

	cmd := &cobra.Command{
		Use:   "vtdemo [-- args...]",
		Short: "Run a shell inside the termcore VT-100 emulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("shell") {
				cfg.Shell = flagShell
			}
			if cmd.Flags().Changed("rows") {
				cfg.Rows = flagRows
			}
			if cmd.Flags().Changed("cols") {
				cfg.Cols = flagCols
			}
			if cmd.Flags().Changed("debug") {
				cfg.Debug = flagDebug
			}
			if cmd.Flags().Changed("log-file") {
				cfg.LogFile = flagLogFile
			}
			return runSession(cfg, args)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a PTYSessionConfig YAML file")
	cmd.Flags().StringVar(&flagShell, "shell", "", "child command to spawn (default $SHELL)")
	cmd.Flags().IntVar(&flagRows, "rows", 0, "PTY row count (default: detect from controlling terminal)")
	cmd.Flags().IntVar(&flagCols, "cols", 0, "PTY column count (default: detect from controlling terminal)")
	cmd.Flags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	cmd.Flags().StringVar(&flagLogFile, "log-file", "", "file to receive structured logs")

	return cmd
}

func runSession(cfg PTYSessionConfig, args []string) error {
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	logger, err := newFileLogger(cfg.Debug, logFile)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	rows, cols := cfg.Rows, cfg.Cols
	if rows == 0 || cols == 0 {
		if w, h, err := term.GetSize(int(os.Stdin.Fd())); err == nil {
			if cols == 0 {
				cols = w
			}
			if rows == 0 {
				rows = h
			}
		}
	}
	if rows == 0 {
		rows = termcore.DefaultRows
	}
	if cols == 0 {
		cols = termcore.DefaultCols
	}

	shellArgs := cfg.Args
	if len(args) > 0 {
		shellArgs = args
	}
	c := childCommand(cfg.Shell, shellArgs)

	ptmx, err := pty.StartWithSize(c, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return fmt.Errorf("start pty: %w", err)
	}
	defer ptmx.Close()

	logger.Info("session started", zap.String("shell", cfg.Shell), zap.Int("rows", rows), zap.Int("cols", cols))

	stdinFd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(stdinFd)
	if err != nil {
		logger.Warn("stdin is not a terminal, running without raw mode", zap.Error(err))
	} else {
		defer term.Restore(stdinFd, oldState)
	}

	vt := termcore.New(rows, cols)

	sigwinch := make(chan os.Signal, 1)
	signal.Notify(sigwinch, syscall.SIGWINCH)
	defer signal.Stop(sigwinch)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		watchResize(sigwinch, ptmx, vt, logger)
	}()

	go func() {
		defer wg.Done()
		pipeOutput(ptmx, os.Stdout, vt, logger)
	}()

	// pipeInput is not part of wg: it blocks on stdin reads that may well
	// never return (the user hasn't typed anything since the child exited),
	// and the process tearing down at the end of runSession reclaims it.
	go pipeInput(os.Stdin, ptmx, logger)

	c.Wait()
	signal.Stop(sigwinch)
	close(sigwinch)
	ptmx.Close()
	wg.Wait()

	logger.Info("session ended")
	return nil
}

// pipeOutput forwards child PTY output to the real terminal unmodified
// while also feeding it through the VT-100 output parser, so the offscreen
// buffer mirrors exactly what the user sees. Any DSR replies the parser
// queued are written back to the child, since the parser never writes to
// its own input stream.
func pipeOutput(ptmx *os.File, out io.Writer, t *termcore.Terminal, logger *zap.Logger) {
	buf := make([]byte, 4096)
	for {
		n, err := ptmx.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if _, werr := out.Write(chunk); werr != nil {
				logger.Warn("write to stdout failed", zap.Error(werr))
			}
			if _, perr := t.Write(chunk); perr != nil {
				logger.Warn("vt100 parse failed", zap.Error(perr))
			}
			for _, resp := range t.Buffer().AnsiState().DrainDsrResponses() {
				if _, werr := ptmx.Write(resp.Bytes); werr != nil {
					logger.Warn("write dsr response failed", zap.Error(werr))
				}
			}
		}
		if err != nil {
			return
		}
	}
}

// pipeInput forwards raw stdin bytes to the child PTY unmodified (so the
// shell sees exact wire bytes) while separately decoding the same bytes
// through the VT-100 input parser to log the structured events a real input
// handler would have received.
func pipeInput(in *os.File, ptmx *os.File, logger *zap.Logger) {
	parser := vtinput.NewParser()
	buf := make([]byte, 4096)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if _, werr := ptmx.Write(chunk); werr != nil {
				return
			}
			for _, ev := range parser.Feed(chunk) {
				logger.Debug("input event", zap.Any("event", ev))
			}
		}
		if err != nil {
			return
		}
	}
}

func watchResize(sigwinch <-chan os.Signal, ptmx *os.File, t *termcore.Terminal, logger *zap.Logger) {
	for range sigwinch {
		w, h, err := term.GetSize(int(os.Stdin.Fd()))
		if err != nil {
			continue
		}
		if err := pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(h), Cols: uint16(w)}); err != nil {
			logger.Warn("resize pty failed", zap.Error(err))
			continue
		}
		t.Resize(h, w)
		logger.Debug("resized", zap.Int("rows", h), zap.Int("cols", w))
	}
}
