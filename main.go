// twitchat - Twitch chat in your terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/twitchat-tui/internal/cli"
	"github.com/jeranaias/twitchat-tui/internal/config"
	"github.com/jeranaias/twitchat-tui/internal/conn"
	"github.com/jeranaias/twitchat-tui/internal/logger"
	"github.com/jeranaias/twitchat-tui/internal/ui/chat"
	"github.com/jeranaias/twitchat-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Program reference for goroutines that deliver events into the update
// loop: the connection manager's notify callback and the config watcher.
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func sendToProgram(msg tea.Msg) {
	programMu.Lock()
	p := programRef
	programMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func main() {
	args, err := cli.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		fmt.Fprint(os.Stderr, cli.Usage())
		os.Exit(2)
	}
	if args.ShowHelp {
		fmt.Print(cli.Usage())
		return
	}
	if args.ShowVersion {
		fmt.Printf("twitchat %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args cli.Args) error {
	cfg, cfgPath, err := loadConfig(args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w\n\nRun twitchat --help for how to supply credentials", err)
	}

	configDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	if err := logger.Init(logger.Config{
		Enabled: cfg.Logging.Enabled,
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
	}, configDir); err != nil {
		return err
	}
	logger.Info("starting twitchat", "version", Version, "channel", cfg.Connection.Channel)

	dialer, err := conn.NewDialer(cfg.Connection.Transport)
	if err != nil {
		return err
	}
	mgr := conn.NewManager(connConfig(cfg), dialer, func(ev conn.Event) {
		sendToProgram(chat.ConnEventMsg{Event: ev})
	})

	theme := styles.NewTheme()
	m := chat.New(theme, cfg, mgr)

	p := tea.NewProgram(m, tea.WithAltScreen())
	programMu.Lock()
	programRef = p
	programMu.Unlock()

	// Live-reload UI options when the config file is edited while running.
	// Connection settings need a restart; only display toggles are applied.
	if watcher, werr := config.NewWatcher(cfgPath); werr == nil {
		defer watcher.Close()
		go func() {
			for range watcher.Changes() {
				reloaded, lerr := config.LoadFromPath(cfgPath)
				if lerr != nil {
					logger.Warn("config reload failed", "error", lerr)
					continue
				}
				sendToProgram(chat.ConfigReloadedMsg{Config: reloaded})
			}
		}()
	} else {
		logger.Warn("config watch unavailable", "error", werr)
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	return nil
}

// loadConfig resolves the config file, then layers command line overrides on
// top. The returned path is watched for live reload.
func loadConfig(args cli.Args) (*config.Config, string, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if args.ConfigPath != "" {
		path = args.ConfigPath
		cfg, err = config.LoadFromPath(path)
	} else {
		path, err = config.ConfigPath()
		if err != nil {
			return nil, "", err
		}
		// First run: write a template config so the user has a file to put
		// credentials in and the watcher has a path to watch.
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			if saveErr := config.Save(config.Default()); saveErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not write template config to %s: %v\n", path, saveErr)
			}
		}
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, "", err
	}

	if args.Channel != "" {
		cfg.Connection.Channel = args.Channel
	}
	if args.Nickname != "" {
		cfg.Connection.Nickname = args.Nickname
	}
	if args.Token != "" {
		cfg.Connection.Token = args.Token
	}
	if args.Transport != "" {
		cfg.Connection.Transport = args.Transport
	}
	return cfg, path, nil
}

// connConfig maps the file-level settings onto the connection manager's
// config, filling in the default endpoint for the chosen transport.
func connConfig(cfg *config.Config) conn.Config {
	c := cfg.Connection
	addr := c.ServerAddr
	if addr == "" {
		switch c.Transport {
		case "tls", "irc":
			addr = conn.DefaultTLSAddr
		default:
			addr = conn.DefaultWebsocketAddr
		}
	}
	return conn.Config{
		ServerAddr:  addr,
		Nickname:    c.Nickname,
		Token:       c.Token,
		Channel:     c.Channel,
		BackoffBase: time.Duration(c.ReconnectBaseSecs) * time.Second,
		BackoffMax:  time.Duration(c.ReconnectMaxSecs) * time.Second,
		MaxAttempts: c.ReconnectMaxAttempts,
		IdleTimeout: time.Duration(c.IdleTimeoutSecs) * time.Second,
	}
}
