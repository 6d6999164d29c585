// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package irc implements the Twitch IRC wire protocol.
//
// This file tests the line codec against literal wire strings.
package irc

import (
	"strings"
	"testing"
)

// =============================================================================
// DECODE TESTS
// =============================================================================

func TestDecode_Privmsg(t *testing.T) {
	raw := ":nerdlord!nerdlord@nerdlord.tmi.twitch.tv PRIVMSG #somechannel :hello world"

	ev, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	msg, ok := ev.(Message)
	if !ok {
		t.Fatalf("Expected Message, got %T", ev)
	}
	if msg.User != "nerdlord" {
		t.Errorf("Expected user nerdlord, got %q", msg.User)
	}
	if msg.Body != "hello world" {
		t.Errorf("Expected body %q, got %q", "hello world", msg.Body)
	}
	if msg.Action {
		t.Error("Expected plain message, got action")
	}
}

func TestDecode_PrivmsgWithTags(t *testing.T) {
	raw := "@badges=broadcaster/1,subscriber/12;color=#FF4500;display-name=NerdLord;id=abc-123 " +
		":nerdlord!nerdlord@nerdlord.tmi.twitch.tv PRIVMSG #somechannel :tagged message"

	ev, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	msg, ok := ev.(Message)
	if !ok {
		t.Fatalf("Expected Message, got %T", ev)
	}
	if msg.User != "NerdLord" {
		t.Errorf("Expected display name NerdLord, got %q", msg.User)
	}
	if msg.Login != "nerdlord" {
		t.Errorf("Expected login nerdlord, got %q", msg.Login)
	}
	if msg.Color != "#FF4500" {
		t.Errorf("Expected color #FF4500, got %q", msg.Color)
	}
	if msg.ID != "abc-123" {
		t.Errorf("Expected tag id to win, got %q", msg.ID)
	}

	wantBadges := []Badge{{Name: "broadcaster", Version: "1"}, {Name: "subscriber", Version: "12"}}
	if len(msg.Badges) != len(wantBadges) {
		t.Fatalf("Expected %d badges, got %d", len(wantBadges), len(msg.Badges))
	}
	for i, b := range wantBadges {
		if msg.Badges[i] != b {
			t.Errorf("Badge %d: expected %+v, got %+v", i, b, msg.Badges[i])
		}
	}
}

func TestDecode_Action(t *testing.T) {
	raw := ":u!u@u.tmi.twitch.tv PRIVMSG #c :\x01ACTION waves\x01"

	ev, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	msg := ev.(Message)
	if !msg.Action {
		t.Error("Expected action message")
	}
	if msg.Body != "waves" {
		t.Errorf("Expected body %q, got %q", "waves", msg.Body)
	}
}

func TestDecode_TagUnescaping(t *testing.T) {
	// \s is an escaped space inside tag values
	raw := "@display-name=Some\\sName :u!u@u.tmi.twitch.tv PRIVMSG #c :hi"

	ev, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if msg := ev.(Message); msg.User != "Some Name" {
		t.Errorf("Expected unescaped display name, got %q", msg.User)
	}
}

func TestDecode_PingJoinPartClear(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string // type name
	}{
		{"ping", "PING :tmi.twitch.tv", "Ping"},
		{"join", ":viewer!viewer@viewer.tmi.twitch.tv JOIN #somechannel", "Join"},
		{"part", ":viewer!viewer@viewer.tmi.twitch.tv PART #somechannel", "Part"},
		{"clearchat", "@room-id=1 :tmi.twitch.tv CLEARCHAT #somechannel :viewer", "ClearChat"},
		{"welcome", ":tmi.twitch.tv 001 nick :Welcome, GLHF!", "Welcome"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := Decode(tt.raw)
			if err != nil {
				t.Fatalf("Decode returned error: %v", err)
			}
			switch tt.want {
			case "Ping":
				p, ok := ev.(Ping)
				if !ok {
					t.Fatalf("Expected Ping, got %T", ev)
				}
				if p.Payload != "tmi.twitch.tv" {
					t.Errorf("Expected payload tmi.twitch.tv, got %q", p.Payload)
				}
			case "Join":
				j, ok := ev.(Join)
				if !ok {
					t.Fatalf("Expected Join, got %T", ev)
				}
				if j.User != "viewer" || j.Channel != "somechannel" {
					t.Errorf("Unexpected join: %+v", j)
				}
			case "Part":
				if _, ok := ev.(Part); !ok {
					t.Fatalf("Expected Part, got %T", ev)
				}
			case "ClearChat":
				c, ok := ev.(ClearChat)
				if !ok {
					t.Fatalf("Expected ClearChat, got %T", ev)
				}
				if c.Target != "viewer" {
					t.Errorf("Expected target viewer, got %q", c.Target)
				}
			case "Welcome":
				if _, ok := ev.(Welcome); !ok {
					t.Fatalf("Expected Welcome, got %T", ev)
				}
			}
		})
	}
}

func TestDecode_ClearChatWholeRoom(t *testing.T) {
	ev, err := Decode(":tmi.twitch.tv CLEARCHAT #somechannel")
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if c := ev.(ClearChat); c.Target != "" {
		t.Errorf("Expected empty target for a room clear, got %q", c.Target)
	}
}

func TestDecode_UnknownCommandBecomesNotice(t *testing.T) {
	raw := ":tmi.twitch.tv ROOMSTATE #somechannel"

	ev, err := Decode(raw)
	if err != nil {
		t.Fatalf("Unknown command should not fail, got %v", err)
	}
	notice, ok := ev.(SystemNotice)
	if !ok {
		t.Fatalf("Expected SystemNotice, got %T", ev)
	}
	if notice.Text != raw {
		t.Errorf("Expected raw text carried through, got %q", notice.Text)
	}
}

func TestDecode_AuthFailure(t *testing.T) {
	ev, err := Decode(":tmi.twitch.tv NOTICE * :Login authentication failed")
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if _, ok := ev.(AuthFailure); !ok {
		t.Fatalf("Expected AuthFailure, got %T", ev)
	}
}

func TestDecode_PlainNotice(t *testing.T) {
	ev, err := Decode(":tmi.twitch.tv NOTICE #c :Slow mode is on")
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	n, ok := ev.(SystemNotice)
	if !ok {
		t.Fatalf("Expected SystemNotice, got %T", ev)
	}
	if n.Text != "Slow mode is on" {
		t.Errorf("Unexpected notice text %q", n.Text)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"crlf only", "\r\n"},
		{"dangling tags", "@badges=broadcaster/1"},
		{"prefix only", ":tmi.twitch.tv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.raw); err == nil {
				t.Errorf("Expected error for %q", tt.raw)
			}
		})
	}
}

// =============================================================================
// ENCODE TESTS
// =============================================================================

func TestEncodePrivmsg(t *testing.T) {
	line, err := EncodePrivmsg("somechannel", "hello")
	if err != nil {
		t.Fatalf("EncodePrivmsg returned error: %v", err)
	}
	if line != "PRIVMSG #somechannel :hello" {
		t.Errorf("Unexpected wire line %q", line)
	}

	// Hash prefix must not double up
	line, err = EncodePrivmsg("#somechannel", "hello")
	if err != nil {
		t.Fatalf("EncodePrivmsg returned error: %v", err)
	}
	if line != "PRIVMSG #somechannel :hello" {
		t.Errorf("Unexpected wire line %q", line)
	}
}

func TestEncodePrivmsg_MeAction(t *testing.T) {
	line, err := EncodePrivmsg("somechannel", "/me waves")
	if err != nil {
		t.Fatalf("EncodePrivmsg returned error: %v", err)
	}
	if line != "PRIVMSG #somechannel :\x01ACTION waves\x01" {
		t.Errorf("Unexpected wire line %q", line)
	}

	// A bare "/me" without a space is just text
	line, err = EncodePrivmsg("somechannel", "/me")
	if err != nil {
		t.Fatalf("EncodePrivmsg returned error: %v", err)
	}
	if line != "PRIVMSG #somechannel :/me" {
		t.Errorf("Unexpected wire line %q", line)
	}
}

func TestEncodePrivmsg_TooLong(t *testing.T) {
	body := strings.Repeat("a", MaxMessageBytes+1)
	if _, err := EncodePrivmsg("c", body); err != ErrMessageTooLong {
		t.Errorf("Expected ErrMessageTooLong, got %v", err)
	}

	// Exactly at the limit is fine
	if _, err := EncodePrivmsg("c", strings.Repeat("a", MaxMessageBytes)); err != nil {
		t.Errorf("Expected max-length body to encode, got %v", err)
	}
}

func TestEncodePrivmsg_LineBreaks(t *testing.T) {
	if _, err := EncodePrivmsg("c", "a\nb"); err != ErrInvalidChars {
		t.Errorf("Expected ErrInvalidChars for LF, got %v", err)
	}
	if _, err := EncodePrivmsg("c", "a\rb"); err != ErrInvalidChars {
		t.Errorf("Expected ErrInvalidChars for CR, got %v", err)
	}
}

// Round trip: our own encoded line decodes back to the same body.
func TestCodec_RoundTrip(t *testing.T) {
	bodies := []string{
		"hello",
		"body with   spaces",
		"unicode ☃ body",
		"colon : in the middle",
	}

	for _, body := range bodies {
		line, err := EncodePrivmsg("somechannel", body)
		if err != nil {
			t.Fatalf("Encode(%q) returned error: %v", body, err)
		}
		ev, err := Decode(line)
		if err != nil {
			t.Fatalf("Decode(%q) returned error: %v", line, err)
		}
		msg, ok := ev.(Message)
		if !ok {
			t.Fatalf("Expected Message, got %T", ev)
		}
		if msg.Body != body {
			t.Errorf("Round trip mismatch: sent %q, got %q", body, msg.Body)
		}
	}
}

func TestEncodeAuth(t *testing.T) {
	lines := EncodeAuth("abc123", "NerdLord")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 handshake lines, got %d", len(lines))
	}
	if lines[1] != "PASS oauth:abc123" {
		t.Errorf("Expected oauth prefix added, got %q", lines[1])
	}
	if lines[2] != "NICK nerdlord" {
		t.Errorf("Expected lowercased nick, got %q", lines[2])
	}

	// Already-prefixed tokens stay untouched
	lines = EncodeAuth("oauth:abc123", "x")
	if lines[1] != "PASS oauth:abc123" {
		t.Errorf("Expected prefix preserved, got %q", lines[1])
	}
}

func TestEncodePong(t *testing.T) {
	if got := EncodePong("tmi.twitch.tv"); got != "PONG :tmi.twitch.tv" {
		t.Errorf("Unexpected pong %q", got)
	}
	if got := EncodePong(""); got != "PONG" {
		t.Errorf("Unexpected bare pong %q", got)
	}
}

func TestEncodeJoin(t *testing.T) {
	if got := EncodeJoin("SomeChannel"); got != "JOIN #somechannel" {
		t.Errorf("Unexpected join %q", got)
	}
}
