// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conn manages the chat server connection lifecycle: dialing,
// authentication, keepalive, and the exponential-backoff reconnect policy.
//
// Threading model: the Manager's state is confined to the update loop.
// HandleEvent, Tick, Send and Close must only be called from there. The
// I/O goroutines (dial, read) never touch state; they hand results to the
// notify sink, which the update loop feeds back into HandleEvent. Timeouts
// and retry scheduling are monotonic-clock comparisons inside Tick, so the
// loop never sleeps.
package conn

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/twitchat-tui/internal/irc"
	"github.com/jeranaias/twitchat-tui/internal/logger"
)

// =============================================================================
// STATE
// =============================================================================

// State is the connection lifecycle phase.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateAuthenticating
	StateJoined
	StateReconnecting
)

// String returns the display string for the state.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnecting:
		return "CONNECTING"
	case StateAuthenticating:
		return "AUTHENTICATING"
	case StateJoined:
		return "LIVE"
	case StateReconnecting:
		return "RECONNECTING"
	default:
		return "UNKNOWN"
	}
}

// Status is a snapshot of the connection for the status bar.
type Status struct {
	State     State
	Attempt   int
	NextRetry time.Time
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotConnected is returned by Send before the channel join completed.
	ErrNotConnected = errors.New("conn: not joined to a channel")
	// ErrRateLimited is returned by Send when the outgoing token bucket is
	// empty. The caller keeps the draft; nothing was written.
	ErrRateLimited = errors.New("conn: send rate limit exceeded")
)

// =============================================================================
// EVENTS
// =============================================================================

// Event is a notification produced by the manager's I/O goroutines and
// consumed by the update loop. Gen ties an event to one connection attempt;
// stale generations are dropped after a reconnect.
type Event interface {
	generation() int
}

// DialedEvent reports a successful transport handshake.
type DialedEvent struct {
	Gen       int
	Transport Transport
}

// DialFailedEvent reports a failed dial.
type DialFailedEvent struct {
	Gen int
	Err error
}

// LineEvent carries one inbound wire line.
type LineEvent struct {
	Gen int
	Raw string
}

// ReadErrorEvent reports a broken read loop (socket closed, TLS error).
type ReadErrorEvent struct {
	Gen int
	Err error
}

func (e DialedEvent) generation() int     { return e.Gen }
func (e DialFailedEvent) generation() int { return e.Gen }
func (e LineEvent) generation() int       { return e.Gen }
func (e ReadErrorEvent) generation() int  { return e.Gen }

// =============================================================================
// CONFIG
// =============================================================================

// Config holds the connection parameters. Zero durations fall back to the
// conservative defaults below.
type Config struct {
	ServerAddr string
	Nickname   string
	Token      string
	Channel    string

	BackoffBase time.Duration // first retry delay
	BackoffMax  time.Duration // delay cap
	MaxAttempts int           // retries before giving up

	IdleTimeout time.Duration // silence before a liveness probe
	PingGrace   time.Duration // probe response window
	StableReset time.Duration // joined time that resets the attempt counter

	SendRate  rate.Limit // outgoing messages per second
	SendBurst int
}

// Defaults for unset config fields.
const (
	DefaultBackoffBase = 1 * time.Second
	DefaultBackoffMax  = 60 * time.Second
	DefaultMaxAttempts = 10
	DefaultIdleTimeout = 30 * time.Second
	DefaultPingGrace   = 10 * time.Second
	DefaultStableReset = 30 * time.Second
)

// Twitch allows roughly 20 messages per 30 seconds for regular users.
const (
	DefaultSendRate  = rate.Limit(20.0 / 30.0)
	DefaultSendBurst = 5
)

func (c *Config) fillDefaults() {
	if c.BackoffBase <= 0 {
		c.BackoffBase = DefaultBackoffBase
	}
	if c.BackoffMax <= 0 {
		c.BackoffMax = DefaultBackoffMax
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = DefaultIdleTimeout
	}
	if c.PingGrace <= 0 {
		c.PingGrace = DefaultPingGrace
	}
	if c.StableReset <= 0 {
		c.StableReset = DefaultStableReset
	}
	if c.SendRate <= 0 {
		c.SendRate = DefaultSendRate
	}
	if c.SendBurst <= 0 {
		c.SendBurst = DefaultSendBurst
	}
}

// =============================================================================
// MANAGER
// =============================================================================

// Manager owns the connection state machine.
type Manager struct {
	cfg     Config
	dialer  Dialer
	notify  func(Event)
	limiter *rate.Limiter
	clock   func() time.Time

	state     State
	attempt   int
	nextRetry time.Time
	joinedAt  time.Time
	lastRead  time.Time
	probeSent time.Time // zero when no liveness probe is outstanding
	transport Transport
	gen       int
	fatal     bool
}

// NewManager creates a manager. notify is invoked from I/O goroutines with
// events the update loop must route back into HandleEvent; it has to be
// safe to call from any goroutine (tea.Program.Send qualifies).
func NewManager(cfg Config, dialer Dialer, notify func(Event)) *Manager {
	cfg.fillDefaults()
	return &Manager{
		cfg:     cfg,
		dialer:  dialer,
		notify:  notify,
		limiter: rate.NewLimiter(cfg.SendRate, cfg.SendBurst),
		clock:   time.Now,
	}
}

// SetClock replaces the time source. Test hook.
func (m *Manager) SetClock(clock func() time.Time) {
	m.clock = clock
}

// Status returns a snapshot for rendering.
func (m *Manager) Status() Status {
	return Status{State: m.state, Attempt: m.attempt, NextRetry: m.nextRetry}
}

// Channel returns the configured channel name.
func (m *Manager) Channel() string {
	return strings.TrimPrefix(m.cfg.Channel, "#")
}

// Nickname returns the configured login name.
func (m *Manager) Nickname() string {
	return strings.ToLower(m.cfg.Nickname)
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Start kicks off the first connection attempt.
func (m *Manager) Start() []irc.Event {
	if m.state != StateDisconnected || m.fatal {
		return nil
	}
	m.startConnect()
	return []irc.Event{irc.NewSystemNotice("Connecting to " + m.cfg.ServerAddr + " ...")}
}

// Close tears the connection down for shutdown. Pending outgoing text is
// deliberately not flushed; the reader goroutine unblocks via the closed
// transport and its final events are discarded as stale.
func (m *Manager) Close() {
	m.gen++
	if m.transport != nil {
		_ = m.transport.Close()
		m.transport = nil
	}
	m.state = StateDisconnected
}

// startConnect begins an async dial for a new generation.
func (m *Manager) startConnect() {
	m.gen++
	m.state = StateConnecting
	gen := m.gen

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		t, err := m.dialer.Dial(ctx, m.cfg.ServerAddr)
		if err != nil {
			m.notify(DialFailedEvent{Gen: gen, Err: err})
			return
		}
		m.notify(DialedEvent{Gen: gen, Transport: t})
	}()
}

// readLoop pumps lines from one transport until it breaks. It holds no
// manager state beyond its generation number.
func (m *Manager) readLoop(gen int, t Transport) {
	for {
		line, err := t.ReadLine()
		if err != nil {
			m.notify(ReadErrorEvent{Gen: gen, Err: err})
			return
		}
		m.notify(LineEvent{Gen: gen, Raw: line})
	}
}

// =============================================================================
// EVENT HANDLING (update loop only)
// =============================================================================

// HandleEvent advances the state machine with one I/O event and returns
// any chat events to append to the scrollback.
func (m *Manager) HandleEvent(ev Event) []irc.Event {
	if ev.generation() != m.gen {
		// A superseded dial may still carry a live socket; release it.
		if d, ok := ev.(DialedEvent); ok && d.Transport != nil {
			_ = d.Transport.Close()
		}
		return nil
	}

	switch ev := ev.(type) {
	case DialedEvent:
		return m.handleDialed(ev)
	case DialFailedEvent:
		logger.Warn("dial failed", "err", ev.Err)
		return m.fail("connect failed: " + ev.Err.Error())
	case LineEvent:
		return m.handleLine(ev.Raw)
	case ReadErrorEvent:
		logger.Warn("read loop ended", "err", ev.Err)
		return m.fail("connection lost")
	default:
		return nil
	}
}

func (m *Manager) handleDialed(ev DialedEvent) []irc.Event {
	m.transport = ev.Transport
	m.state = StateAuthenticating
	m.lastRead = m.clock()
	m.probeSent = time.Time{}

	for _, line := range irc.EncodeAuth(m.cfg.Token, m.cfg.Nickname) {
		if err := m.transport.WriteLine(line); err != nil {
			return m.fail("handshake write failed")
		}
	}
	go m.readLoop(m.gen, m.transport)
	return nil
}

// handleLine decodes one wire line and routes it. Protocol bookkeeping
// (PING, welcome, auth results, the self-join ack) is absorbed here; chat
// events pass through for display.
func (m *Manager) handleLine(raw string) []irc.Event {
	m.lastRead = m.clock()
	m.probeSent = time.Time{}

	ev, err := irc.Decode(raw)
	if err != nil {
		// One bad line never aborts the connection.
		logger.Debug("undecodable line", "raw", raw, "err", err)
		return []irc.Event{irc.NewSystemNotice("Unparsable server line: " + raw)}
	}

	switch ev := ev.(type) {
	case irc.Ping:
		if m.transport != nil {
			_ = m.transport.WriteLine(irc.EncodePong(ev.Payload))
		}
		return nil

	case irc.Welcome:
		if m.state == StateAuthenticating && m.transport != nil {
			_ = m.transport.WriteLine(irc.EncodeJoin(m.cfg.Channel))
		}
		return nil

	case irc.AuthFailure:
		// Retrying with the same token would fail the same way.
		m.fatal = true
		m.gen++
		if m.transport != nil {
			_ = m.transport.Close()
			m.transport = nil
		}
		m.state = StateDisconnected
		logger.Error("authentication rejected", "reason", ev.Reason)
		return []irc.Event{irc.NewFatalNotice("Authentication failed: " + ev.Reason)}

	case irc.Join:
		if m.state != StateJoined && ev.User == m.Nickname() {
			m.state = StateJoined
			m.joinedAt = m.clock()
			logger.Info("joined channel", "channel", m.Channel(), "attempt", m.attempt)
			return []irc.Event{ev, irc.NewSystemNotice("Joined #" + m.Channel())}
		}
		return []irc.Event{ev}

	default:
		return []irc.Event{ev}
	}
}

// fail records a transport-level failure and schedules the next retry with
// exponential backoff, or gives up past the attempt budget.
func (m *Manager) fail(reason string) []irc.Event {
	m.gen++
	if m.transport != nil {
		_ = m.transport.Close()
		m.transport = nil
	}

	m.attempt++
	if m.attempt > m.cfg.MaxAttempts {
		m.state = StateDisconnected
		m.fatal = true
		return []irc.Event{irc.NewFatalNotice(fmt.Sprintf(
			"Giving up after %d reconnect attempts (%s). Restart to try again.",
			m.cfg.MaxAttempts, reason))}
	}

	delay := m.backoffDelay(m.attempt)
	m.nextRetry = m.clock().Add(delay)
	m.state = StateReconnecting
	return []irc.Event{irc.NewSystemNotice(fmt.Sprintf(
		"Disconnected (%s); retrying in %s (attempt %d/%d)",
		reason, delay, m.attempt, m.cfg.MaxAttempts))}
}

// backoffDelay returns the delay before the given attempt: base doubled
// per attempt, capped at the maximum.
func (m *Manager) backoffDelay(attempt int) time.Duration {
	delay := m.cfg.BackoffBase
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= m.cfg.BackoffMax {
			return m.cfg.BackoffMax
		}
	}
	if delay > m.cfg.BackoffMax {
		delay = m.cfg.BackoffMax
	}
	return delay
}

// =============================================================================
// TIMER TICK (update loop only)
// =============================================================================

// Tick performs time-based bookkeeping: firing due retries, probing idle
// connections, and resetting the attempt counter after a stable joined
// period. Called on every timer tick with the current time.
func (m *Manager) Tick(now time.Time) []irc.Event {
	switch m.state {
	case StateReconnecting:
		if !now.Before(m.nextRetry) {
			m.startConnect()
		}

	case StateJoined, StateAuthenticating:
		// A healthy joined stretch clears the backoff history.
		if m.state == StateJoined && m.attempt > 0 && now.Sub(m.joinedAt) >= m.cfg.StableReset {
			m.attempt = 0
		}

		idle := now.Sub(m.lastRead)
		if m.probeSent.IsZero() {
			if idle >= m.cfg.IdleTimeout && m.transport != nil {
				// Quiet channel or dead link? Probe and wait for the echo.
				_ = m.transport.WriteLine(irc.EncodePing("twitchat"))
				m.probeSent = now
			}
		} else if now.Sub(m.probeSent) >= m.cfg.PingGrace {
			return m.fail("ping timeout")
		}
	}
	return nil
}

// =============================================================================
// SENDING
// =============================================================================

// Send encodes and writes one user-composed message. The caller decides
// what to do with the draft: ErrMessageTooLong and ErrRateLimited mean
// nothing was sent and the draft should be kept; a transport write error
// means the message may be lost (best effort, no retry).
func (m *Manager) Send(text string) error {
	if m.state != StateJoined || m.transport == nil {
		return ErrNotConnected
	}
	raw, err := irc.EncodePrivmsg(m.cfg.Channel, text)
	if err != nil {
		return err
	}
	if !m.limiter.Allow() {
		return ErrRateLimited
	}
	if err := m.transport.WriteLine(raw); err != nil {
		logger.Warn("send failed", "err", err)
		return fmt.Errorf("conn: send: %w", err)
	}
	return nil
}
