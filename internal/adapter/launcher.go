package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// Launcher opens trailer and artwork URLs in a browser
type Launcher struct {
	command string   // configured browser command, empty for system default
	args    []string // additional arguments placed before the URL
	goos    string
	start   func(name string, args ...string) error
	logger  *slog.Logger
}

// NewLauncher creates a Launcher. An empty command uses the system default handler.
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: command,
		args:    args,
		goos:    runtime.GOOS,
		start:   startDetached,
		logger:  logger,
	}
}

func startDetached(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Launch opens url in the configured browser or the system default
func (l *Launcher) Launch(url string) error {
	if url == "" {
		return fmt.Errorf("nothing to open")
	}

	name, args := l.commandFor(url)
	l.logger.Info("opening url", "command", name, "url", url)
	if err := l.start(name, args...); err != nil {
		l.logger.Error("failed to open url", "command", name, "error", err)
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

// commandFor resolves the program and arguments used to open url
func (l *Launcher) commandFor(url string) (string, []string) {
	if l.command != "" {
		args := append([]string{}, l.args...)
		return l.command, append(args, url)
	}

	switch l.goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "cmd", []string{"/c", "start", "", url}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", []string{url}
	}
}
