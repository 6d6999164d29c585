// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package irc implements the Twitch IRC wire protocol: parsing incoming
// lines into typed chat events and serializing outgoing messages.
//
// Decoding is pure and stateless so the full grammar is testable with
// literal wire strings.
package irc

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// EVENT TYPES
// =============================================================================

// Event is a single decoded wire record. Concrete types are Message, Join,
// Part, ClearChat, SystemNotice (displayable history) plus Ping, Welcome and
// AuthFailure (protocol bookkeeping consumed by the connection layer).
type Event interface {
	// When returns the arrival timestamp of the event.
	When() time.Time
	// EventID returns a unique identifier for the event.
	EventID() string
}

// Badge is a single chat badge attached to a message (e.g. broadcaster/1).
type Badge struct {
	Name    string
	Version string
}

// Message is a user chat message (PRIVMSG).
type Message struct {
	ID        string
	User      string // display name when tagged, login name otherwise
	Login     string // login name from the prefix
	Color     string // hex color from tags, may be empty
	Badges    []Badge
	Body      string
	Action    bool // true for /me messages
	Timestamp time.Time
}

// Join is a user joining the channel.
type Join struct {
	ID        string
	User      string
	Channel   string
	Timestamp time.Time
}

// Part is a user leaving the channel.
type Part struct {
	ID        string
	User      string
	Channel   string
	Timestamp time.Time
}

// ClearChat is a moderation clear. Target is empty when the whole chat was
// cleared, otherwise the name of the timed-out or banned user.
type ClearChat struct {
	ID        string
	Target    string
	Timestamp time.Time
}

// SystemNotice is server chatter that is shown verbatim: NOTICE lines,
// unrecognized commands, and client-side status text injected by the
// connection layer.
type SystemNotice struct {
	ID        string
	Text      string
	Fatal     bool // the connection is dead for good, no retry follows
	Timestamp time.Time
}

// Ping is a server keepalive probe. It is answered, never displayed.
type Ping struct {
	ID        string
	Payload   string
	Timestamp time.Time
}

// Welcome is the post-authentication acknowledgment (numeric 001).
type Welcome struct {
	ID        string
	Timestamp time.Time
}

// AuthFailure is the server rejecting the supplied token or nickname.
type AuthFailure struct {
	ID        string
	Reason    string
	Timestamp time.Time
}

func (e Message) When() time.Time      { return e.Timestamp }
func (e Join) When() time.Time         { return e.Timestamp }
func (e Part) When() time.Time         { return e.Timestamp }
func (e ClearChat) When() time.Time    { return e.Timestamp }
func (e SystemNotice) When() time.Time { return e.Timestamp }
func (e Ping) When() time.Time         { return e.Timestamp }
func (e Welcome) When() time.Time      { return e.Timestamp }
func (e AuthFailure) When() time.Time  { return e.Timestamp }

func (e Message) EventID() string      { return e.ID }
func (e Join) EventID() string         { return e.ID }
func (e Part) EventID() string         { return e.ID }
func (e ClearChat) EventID() string    { return e.ID }
func (e SystemNotice) EventID() string { return e.ID }
func (e Ping) EventID() string         { return e.ID }
func (e Welcome) EventID() string      { return e.ID }
func (e AuthFailure) EventID() string  { return e.ID }

// NewSystemNotice creates a displayable notice with a fresh ID and timestamp.
// The connection layer uses this for status text (reconnect attempts, fatal
// errors) that should land in the scrollback like any other event.
func NewSystemNotice(text string) SystemNotice {
	return SystemNotice{
		ID:        newEventID(),
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewFatalNotice creates a notice flagged as terminal: authentication was
// rejected or the reconnect budget ran out. The renderer styles these
// differently and the manager never dials again after emitting one.
func NewFatalNotice(text string) SystemNotice {
	n := NewSystemNotice(text)
	n.Fatal = true
	return n
}

// NewLocalMessage creates a Message for local echo of the user's own sends.
// Twitch does not reflect PRIVMSG back to the sender, so the client records
// the line itself at the moment it was handed to the transport.
func NewLocalMessage(nick, body string) Message {
	m := Message{
		ID:        newEventID(),
		User:      nick,
		Login:     nick,
		Body:      body,
		Timestamp: time.Now(),
	}
	if rest, ok := strings.CutPrefix(body, "/me "); ok {
		m.Action = true
		m.Body = rest
	}
	return m
}

// newEventID generates a unique event ID.
func newEventID() string {
	return uuid.NewString()
}
