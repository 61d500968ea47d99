//go:build !windows

package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/term"

	"github.com/andyrewlee/conscroll/internal/config"
	"github.com/andyrewlee/conscroll/internal/logging"
	"github.com/andyrewlee/conscroll/internal/messages"
	"github.com/andyrewlee/conscroll/internal/safego"
	"github.com/andyrewlee/conscroll/internal/ui"
)

// Version info set by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("conscroll %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	if !term.IsTerminal(os.Stdin.Fd()) || !term.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "conscroll requires a terminal")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Paths.EnsureDirectories(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating state directories: %v\n", err)
		os.Exit(1)
	}

	if err := logging.Initialize(cfg.Paths.LogsRoot, logging.ParseLevel(cfg.LogLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logging: %v\n", err)
	}
	defer logging.Close()

	logging.Info("Starting conscroll")
	startPprof()

	m := ui.New(cfg)
	p := tea.NewProgram(
		m,
		tea.WithFilter(mouseEventFilter),
	)

	watcher, err := config.NewWatcher(cfg.Paths.ConfigPath, func() {
		p.Send(messages.ConfigReloaded{})
	})
	if err != nil {
		logging.Warn("config watcher unavailable: %v", err)
	} else {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		defer watcher.Close()
		safego.Go("config-watcher", func() {
			if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
				logging.Warn("config watcher stopped: %v", err)
			}
		})
	}

	if _, err := p.Run(); err != nil {
		logging.Error("App exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		m.Shutdown()
		os.Exit(1)
	}
	m.Shutdown()

	logging.Info("conscroll shutdown complete")
}

var (
	lastMouseMotionEvent   time.Time
	lastMouseWheelEvent    time.Time
	lastMouseX, lastMouseY int
)

// mouseEventFilter throttles repeated motion and wheel events so a busy
// child process cannot starve the render loop.
func mouseEventFilter(m tea.Model, msg tea.Msg) tea.Msg {
	switch msg := msg.(type) {
	case tea.MouseMotionMsg:
		if msg.X != lastMouseX || msg.Y != lastMouseY {
			lastMouseX = msg.X
			lastMouseY = msg.Y
			lastMouseMotionEvent = time.Now()
			return msg
		}
		now := time.Now()
		if now.Sub(lastMouseMotionEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseMotionEvent = now
	case tea.MouseWheelMsg:
		now := time.Now()
		if now.Sub(lastMouseWheelEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseWheelEvent = now
	}
	return msg
}

func startPprof() {
	raw := strings.TrimSpace(os.Getenv("CONSCROLL_PPROF"))
	if raw == "" {
		return
	}
	switch strings.ToLower(raw) {
	case "0", "false", "no":
		return
	}

	addr := raw
	if raw == "1" || strings.ToLower(raw) == "true" {
		addr = "127.0.0.1:6060"
	} else if _, err := strconv.Atoi(raw); err == nil {
		addr = "127.0.0.1:" + raw
	}

	safego.Go("pprof", func() {
		logging.Info("pprof listening on %s", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			logging.Warn("pprof server stopped: %v", err)
		}
	})
}
