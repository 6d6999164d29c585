// args.go - Command line parsing for twitchat.
//
// twitchat is a single-command program: everything on the command line is
// either the channel to join or an override for a config value. Flags are
// accepted as --flag value, --flag=value or bare booleans.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"
)

// =============================================================================
// ARGS
// =============================================================================

// Args is the parsed command line. Zero values mean "not given"; the caller
// layers non-empty fields over the loaded config.
type Args struct {
	Channel    string // positional: channel to join, leading # optional
	ConfigPath string // --config: alternate config file
	Transport  string // --transport: websocket or tls
	Nickname   string // --nick
	Token      string // --token (prefer the env var or config file)

	ShowVersion bool // --version
	ShowHelp    bool // --help / -h
}

// Parse reads raw arguments (without the program name). Unknown flags and a
// second positional argument are errors so typos fail loudly instead of
// silently connecting somewhere unintended.
func Parse(raw []string) (Args, error) {
	var args Args

	i := 0
	for i < len(raw) {
		arg := raw[i]

		if !strings.HasPrefix(arg, "-") {
			if args.Channel != "" {
				return Args{}, fmt.Errorf("unexpected argument %q (channel already given as %q)", arg, args.Channel)
			}
			args.Channel = strings.TrimPrefix(arg, "#")
			i++
			continue
		}

		name := strings.TrimLeft(arg, "-")
		value := ""
		hasValue := false
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			value = name[eq+1:]
			name = name[:eq]
			hasValue = true
		}

		switch name {
		case "help", "h":
			args.ShowHelp = true
			i++
		case "version", "v":
			args.ShowVersion = true
			i++
		case "config", "transport", "nick", "token":
			if !hasValue {
				if i+1 >= len(raw) || strings.HasPrefix(raw[i+1], "-") {
					return Args{}, fmt.Errorf("flag --%s needs a value", name)
				}
				value = raw[i+1]
				i++
			}
			i++
			switch name {
			case "config":
				args.ConfigPath = value
			case "transport":
				args.Transport = value
			case "nick":
				args.Nickname = value
			case "token":
				args.Token = value
			}
		default:
			return Args{}, fmt.Errorf("unknown flag --%s (see --help)", name)
		}
	}

	return args, nil
}

// Usage returns the help text printed for --help and for parse errors.
func Usage() string {
	return `twitchat - Twitch chat in your terminal

Usage:
  twitchat [channel] [flags]

The channel may also come from the config file or TWITCHAT_CHANNEL.

Flags:
  --config <path>      config file (default ~/.twitchat/config.toml)
  --transport <kind>   websocket (default) or tls
  --nick <name>        Twitch login name
  --token <oauth>      OAuth token; prefer TWITCHAT_TOKEN or the config file
  --version            print version and exit
  --help               this text

Keys (in the client, press ? for the full list):
  i      compose a message       ?   help overlay
  j/k    scroll                  q   quit
`
}
