// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conn manages the chat server connection lifecycle.
//
// This file defines the line-oriented transport abstraction and its two
// production implementations: IRC over websocket and IRC over a raw TLS
// socket. The manager is polymorphic over Transport, which is what makes
// the reconnect machinery testable with an in-memory fake.
package conn

import (
	"bufio"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/coder/websocket"
)

// =============================================================================
// TRANSPORT INTERFACE
// =============================================================================

// Transport is a duplex stream of newline-delimited protocol text.
//
// ReadLine blocks until a full line is available and is only ever called
// from the manager's reader goroutine. WriteLine and Close may be called
// from the update loop; Close must unblock a pending ReadLine.
type Transport interface {
	ReadLine() (string, error)
	WriteLine(line string) error
	Close() error
}

// Dialer opens a Transport to the given server address.
type Dialer interface {
	Dial(ctx context.Context, addr string) (Transport, error)
}

// Default server endpoints for the two transport kinds.
const (
	DefaultWebsocketAddr = "wss://irc-ws.chat.twitch.tv"
	DefaultTLSAddr       = "irc.chat.twitch.tv:6697"
)

// writeTimeout bounds a single line write so a dead peer cannot wedge the
// update loop.
const writeTimeout = 10 * time.Second

// NewDialer returns the dialer for a transport kind ("websocket" or "tls").
func NewDialer(kind string) (Dialer, error) {
	switch kind {
	case "", "websocket", "ws":
		return websocketDialer{}, nil
	case "tls", "irc":
		return tlsDialer{}, nil
	default:
		return nil, fmt.Errorf("conn: unknown transport %q", kind)
	}
}

// =============================================================================
// WEBSOCKET TRANSPORT
// =============================================================================

type websocketDialer struct{}

func (websocketDialer) Dial(ctx context.Context, addr string) (Transport, error) {
	c, _, err := websocket.Dial(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("conn: websocket dial %s: %w", addr, err)
	}
	// Chat lines are short; the default limit only needs headroom for
	// heavily tagged messages.
	c.SetReadLimit(64 * 1024)

	tctx, cancel := context.WithCancel(context.Background())
	return &wsTransport{conn: c, ctx: tctx, cancel: cancel}, nil
}

// wsTransport adapts a websocket connection to the line interface. One
// websocket message may carry several CRLF-separated lines, so a small
// pending queue sits between Read calls.
type wsTransport struct {
	conn    *websocket.Conn
	ctx     context.Context
	cancel  context.CancelFunc
	pending []string
}

func (t *wsTransport) ReadLine() (string, error) {
	for len(t.pending) == 0 {
		_, data, err := t.conn.Read(t.ctx)
		if err != nil {
			return "", fmt.Errorf("conn: websocket read: %w", err)
		}
		for _, line := range strings.Split(string(data), "\r\n") {
			if line != "" {
				t.pending = append(t.pending, line)
			}
		}
	}
	line := t.pending[0]
	t.pending = t.pending[1:]
	return line, nil
}

func (t *wsTransport) WriteLine(line string) error {
	ctx, cancel := context.WithTimeout(t.ctx, writeTimeout)
	defer cancel()
	if err := t.conn.Write(ctx, websocket.MessageText, []byte(line+"\r\n")); err != nil {
		return fmt.Errorf("conn: websocket write: %w", err)
	}
	return nil
}

func (t *wsTransport) Close() error {
	t.cancel()
	return t.conn.Close(websocket.StatusNormalClosure, "bye")
}

// =============================================================================
// TLS SOCKET TRANSPORT
// =============================================================================

type tlsDialer struct{}

func (tlsDialer) Dial(ctx context.Context, addr string) (Transport, error) {
	d := tls.Dialer{NetDialer: &net.Dialer{Timeout: 15 * time.Second}}
	c, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("conn: tls dial %s: %w", addr, err)
	}
	return &tlsTransport{conn: c, reader: bufio.NewReader(c)}, nil
}

// tlsTransport is the plain IRC-over-TLS variant (port 6697).
type tlsTransport struct {
	conn   net.Conn
	reader *bufio.Reader
}

func (t *tlsTransport) ReadLine() (string, error) {
	line, err := t.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("conn: tls read: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (t *tlsTransport) WriteLine(line string) error {
	if err := t.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("conn: set deadline: %w", err)
	}
	if _, err := t.conn.Write([]byte(line + "\r\n")); err != nil {
		return fmt.Errorf("conn: tls write: %w", err)
	}
	return nil
}

func (t *tlsTransport) Close() error {
	return t.conn.Close()
}
