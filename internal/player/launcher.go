package player

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// candidatePlayers is the preferred player order per platform when no
// command is configured
var candidatePlayers = map[string][]string{
	"darwin":  {"iina", "mpv", "vlc"},
	"linux":   {"mpv", "vlc"},
	"windows": {"mpv", "vlc"},
}

// Launcher opens media URLs in an external player. The carousel never
// renders media itself; viewing is delegated to whatever the host system
// can play.
type Launcher struct {
	command string   // configured player command, empty for auto-detect
	args    []string // additional player arguments
	logger  *slog.Logger
}

// NewLauncher creates a launcher for the configured player command
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{command: command, args: args, logger: logger}
}

// Launch opens the URL in the configured player, a detected candidate, or
// the system default handler. The player is started asynchronously; playback
// errors after startup are the player's problem.
func (l *Launcher) Launch(url string) error {
	if l.command != "" {
		l.logger.Info("launching configured player", "command", l.command, "url", url)
		return l.start(l.command, url)
	}

	for _, name := range candidates() {
		if _, err := exec.LookPath(name); err != nil {
			continue
		}
		l.logger.Info("launching detected player", "player", name, "url", url)
		return l.start(name, url)
	}

	l.logger.Info("no candidate players found, using system default", "url", url)
	return l.launchDefault(url)
}

func candidates() []string {
	if c, ok := candidatePlayers[runtime.GOOS]; ok {
		return c
	}
	return candidatePlayers["linux"]
}

func (l *Launcher) start(command, url string) error {
	args := append(append([]string{}, l.args...), url)
	cmd := exec.Command(command, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", command, err)
	}
	return nil
}

// launchDefault opens the URL using the system default handler
func (l *Launcher) launchDefault(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
