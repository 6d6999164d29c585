// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package irc implements the Twitch IRC wire protocol.
//
// This file contains the line codec: Decode turns one newline-terminated
// wire record into an Event, Encode* produce outgoing wire lines.
package irc

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// LIMITS AND ERRORS
// =============================================================================

// MaxMessageBytes is the Twitch PRIVMSG body limit in bytes.
const MaxMessageBytes = 500

var (
	// ErrEmptyLine is returned when decoding a blank wire record.
	ErrEmptyLine = errors.New("irc: empty line")
	// ErrMalformedLine is returned when a record has no command.
	ErrMalformedLine = errors.New("irc: malformed line")
	// ErrMessageTooLong is returned by EncodePrivmsg for oversized bodies.
	// The message is rejected outright, never truncated.
	ErrMessageTooLong = fmt.Errorf("irc: message exceeds %d bytes", MaxMessageBytes)
	// ErrInvalidChars is returned when an outgoing body embeds CR or LF,
	// which would smuggle extra wire records.
	ErrInvalidChars = errors.New("irc: message contains line breaks")
)

// =============================================================================
// RAW LINE STRUCTURE
// =============================================================================

// rawLine is one parsed wire record before event mapping.
type rawLine struct {
	tags     map[string]string
	prefix   string
	command  string
	params   []string
	trailing string
}

// nick extracts the nickname from a prefix of the form nick!user@host.
func (l rawLine) nick() string {
	if i := strings.IndexByte(l.prefix, '!'); i >= 0 {
		return l.prefix[:i]
	}
	return l.prefix
}

// parseLine splits a wire record into tags, prefix, command and params.
// Grammar: ['@' tags SP] [':' prefix SP] command {SP param} [SP ':' trailing]
func parseLine(raw string) (rawLine, error) {
	line := rawLine{}
	rest := strings.TrimRight(raw, "\r\n")
	if rest == "" {
		return line, ErrEmptyLine
	}

	if strings.HasPrefix(rest, "@") {
		cut := strings.IndexByte(rest, ' ')
		if cut < 0 {
			return line, ErrMalformedLine
		}
		line.tags = parseTags(rest[1:cut])
		rest = rest[cut+1:]
	}

	if strings.HasPrefix(rest, ":") {
		cut := strings.IndexByte(rest, ' ')
		if cut < 0 {
			return line, ErrMalformedLine
		}
		line.prefix = rest[1:cut]
		rest = rest[cut+1:]
	}

	if trail := strings.Index(rest, " :"); trail >= 0 {
		line.trailing = rest[trail+2:]
		rest = rest[:trail]
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return line, ErrMalformedLine
	}
	line.command = fields[0]
	line.params = fields[1:]
	return line, nil
}

// parseTags parses the IRCv3 tag section ("k=v;k2=v2").
// Tag values escape space, semicolon and backslash per the IRCv3 spec.
func parseTags(section string) map[string]string {
	tags := make(map[string]string)
	for _, pair := range strings.Split(section, ";") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		tags[key] = unescapeTag(value)
	}
	return tags
}

// unescapeTag reverses IRCv3 tag value escaping.
func unescapeTag(v string) string {
	if !strings.ContainsRune(v, '\\') {
		return v
	}
	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		if v[i] != '\\' || i == len(v)-1 {
			b.WriteByte(v[i])
			continue
		}
		i++
		switch v[i] {
		case ':':
			b.WriteByte(';')
		case 's':
			b.WriteByte(' ')
		case 'r':
			b.WriteByte('\r')
		case 'n':
			b.WriteByte('\n')
		default:
			b.WriteByte(v[i])
		}
	}
	return b.String()
}

// =============================================================================
// DECODE
// =============================================================================

// actionPrefix/actionSuffix wrap CTCP ACTION (/me) message bodies.
const (
	actionPrefix = "\x01ACTION "
	actionSuffix = "\x01"
)

// Decode parses one wire record into an Event.
//
// Unrecognized commands decode to SystemNotice carrying the raw text, so
// unknown-but-harmless server chatter never stops the pipeline. Only lines
// that cannot be parsed at all produce an error.
func Decode(raw string) (Event, error) {
	line, err := parseLine(raw)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	switch line.command {
	case "PING":
		return Ping{ID: newEventID(), Payload: line.trailing, Timestamp: now}, nil

	case "PRIVMSG":
		return decodePrivmsg(line, now), nil

	case "JOIN":
		return Join{ID: newEventID(), User: line.nick(), Channel: channelParam(line), Timestamp: now}, nil

	case "PART":
		return Part{ID: newEventID(), User: line.nick(), Channel: channelParam(line), Timestamp: now}, nil

	case "CLEARCHAT":
		return ClearChat{ID: newEventID(), Target: line.trailing, Timestamp: now}, nil

	case "NOTICE":
		if isAuthFailure(line.trailing) {
			return AuthFailure{ID: newEventID(), Reason: line.trailing, Timestamp: now}, nil
		}
		return SystemNotice{ID: newEventID(), Text: line.trailing, Timestamp: now}, nil

	case "001":
		return Welcome{ID: newEventID(), Timestamp: now}, nil

	default:
		return SystemNotice{ID: newEventID(), Text: strings.TrimRight(raw, "\r\n"), Timestamp: now}, nil
	}
}

// decodePrivmsg maps a PRIVMSG line to a Message, pulling display metadata
// out of the IRCv3 tags when present.
func decodePrivmsg(line rawLine, now time.Time) Message {
	msg := Message{
		ID:        newEventID(),
		Login:     line.nick(),
		User:      line.nick(),
		Body:      norm.NFC.String(line.trailing),
		Timestamp: now,
	}

	if strings.HasPrefix(msg.Body, actionPrefix) && strings.HasSuffix(msg.Body, actionSuffix) {
		msg.Action = true
		msg.Body = strings.TrimSuffix(strings.TrimPrefix(msg.Body, actionPrefix), actionSuffix)
	}

	if line.tags != nil {
		if id := line.tags["id"]; id != "" {
			msg.ID = id
		}
		if name := line.tags["display-name"]; name != "" {
			msg.User = name
		}
		msg.Color = line.tags["color"]
		msg.Badges = parseBadges(line.tags["badges"])
	}
	return msg
}

// parseBadges parses the badges tag ("broadcaster/1,subscriber/12").
func parseBadges(tag string) []Badge {
	if tag == "" {
		return nil
	}
	var badges []Badge
	for _, entry := range strings.Split(tag, ",") {
		name, version, _ := strings.Cut(entry, "/")
		if name == "" {
			continue
		}
		badges = append(badges, Badge{Name: name, Version: version})
	}
	return badges
}

// channelParam returns the first #channel parameter without the hash.
func channelParam(line rawLine) string {
	if len(line.params) > 0 {
		return strings.TrimPrefix(line.params[0], "#")
	}
	return ""
}

// isAuthFailure recognizes the login rejection notices Twitch sends before
// closing the connection. These are fatal: retrying with the same token
// would fail identically.
func isAuthFailure(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "login authentication failed") ||
		strings.Contains(lower, "login unsuccessful") ||
		strings.Contains(lower, "improperly formatted auth")
}

// =============================================================================
// ENCODE
// =============================================================================

// EncodePrivmsg serializes a user-composed message for the given channel.
// Bodies starting with "/me " go out as CTCP ACTION, mirroring how incoming
// actions are decoded. Oversized bodies are rejected with ErrMessageTooLong,
// bodies embedding line breaks with ErrInvalidChars.
func EncodePrivmsg(channel, body string) (string, error) {
	if strings.ContainsAny(body, "\r\n") {
		return "", ErrInvalidChars
	}
	if rest, ok := strings.CutPrefix(body, "/me "); ok {
		body = "\x01ACTION " + rest + "\x01"
	}
	if len(body) > MaxMessageBytes {
		return "", ErrMessageTooLong
	}
	return "PRIVMSG #" + strings.TrimPrefix(channel, "#") + " :" + body, nil
}

// EncodePong answers a server PING, echoing its payload.
func EncodePong(payload string) string {
	if payload == "" {
		return "PONG"
	}
	return "PONG :" + payload
}

// EncodePing emits a client-side liveness probe.
func EncodePing(payload string) string {
	return "PING :" + payload
}

// EncodeAuth produces the authentication handshake lines: capability
// request, token and nickname, in send order.
func EncodeAuth(token, nickname string) []string {
	pass := token
	if !strings.HasPrefix(pass, "oauth:") {
		pass = "oauth:" + pass
	}
	return []string{
		"CAP REQ :twitch.tv/tags twitch.tv/commands twitch.tv/membership",
		"PASS " + pass,
		"NICK " + strings.ToLower(nickname),
	}
}

// EncodeJoin produces the channel join line.
func EncodeJoin(channel string) string {
	return "JOIN #" + strings.ToLower(strings.TrimPrefix(channel, "#"))
}
