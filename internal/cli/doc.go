// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses the twitchat command line.
//
// twitchat has no subcommands: the only positional argument is the channel
// to join, and flags override individual config values for one run.
//
// # Usage
//
//	args, err := cli.Parse(os.Args[1:])
//	if err != nil {
//	    fmt.Fprintln(os.Stderr, err)
//	    fmt.Fprint(os.Stderr, cli.Usage())
//	    os.Exit(2)
//	}
//
// Precedence for any setting is flags > environment > config file > defaults.
package cli
