// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/twitchat-tui/internal/config"
	"github.com/jeranaias/twitchat-tui/internal/conn"
	"github.com/jeranaias/twitchat-tui/internal/editor"
	"github.com/jeranaias/twitchat-tui/internal/irc"
	"github.com/jeranaias/twitchat-tui/internal/scrollback"
	"github.com/jeranaias/twitchat-tui/internal/ui/components"
	"github.com/jeranaias/twitchat-tui/internal/ui/styles"
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the top-level Bubble Tea model. Its Update method is the single
// goroutine that owns every piece of mutable state: the layer stack, the
// scrollback buffer, the draft tabs and the connection manager. Network
// goroutines never touch any of it; they deliver ConnEventMsg values through
// Program.Send and the manager's transitions run here.
type Model struct {
	theme *styles.Theme
	keys  KeyMap

	layers  *LayerStack
	history *scrollback.Buffer
	tabs    *editor.Tabs
	mgr     *conn.Manager

	statusBar *components.StatusBar
	spinner   components.InlineSpinner

	width  int
	height int

	showTimestamps bool
	hideJoinPart   bool

	quitting bool
}

// New builds the model from a resolved config and a connection manager that
// has not been started yet; Init performs the initial dial.
func New(theme *styles.Theme, cfg *config.Config, mgr *conn.Manager) Model {
	return Model{
		theme:          theme,
		keys:           DefaultKeyMap(),
		layers:         NewLayerStack(),
		history:        scrollback.New(cfg.Storage.ScrollbackLines),
		tabs:           editor.NewTabs(cfg.Terminal.InputTabs),
		mgr:            mgr,
		statusBar:      components.NewStatusBar(theme),
		spinner:        components.NewInlineSpinner(),
		width:          80,
		height:         24,
		showTimestamps: cfg.Terminal.Timestamps,
		hideJoinPart:   cfg.Filters.HideJoinPart,
	}
}

// Init kicks off the first dial and the bookkeeping tick.
func (m Model) Init() tea.Cmd {
	m.appendEvents(m.mgr.Start())
	return tickCmd()
}

// appendEvents pushes displayable events into the scrollback. Protocol
// bookkeeping events never reach this point; the manager consumes them.
func (m *Model) appendEvents(events []irc.Event) {
	for _, ev := range events {
		m.history.Append(ev)
	}
}

// keep returns the read-side filter for the current view settings, or nil
// when everything is shown.
func (m Model) keep() func(irc.Event) bool {
	if m.hideJoinPart {
		return scrollback.KeepChat
	}
	return nil
}

// chatHeight is the number of rows available to the message area after the
// status bar and, when composing, the input container are laid out.
func (m Model) chatHeight() int {
	h := m.height - 1 // status bar
	if m.layers.Contains(LayerInput) {
		h -= inputHeight
	}
	if h < 1 {
		h = 1
	}
	return h
}

// Update routes messages by type. Key handling lives in update.go.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.statusBar.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ConnEventMsg:
		return m.handleConnEvent(msg)

	case TickMsg:
		m.appendEvents(m.mgr.Tick(msg.Time))
		cmd := m.syncSpinner()
		return m, tea.Batch(tickCmd(), cmd)

	case ConfigReloadedMsg:
		m.showTimestamps = msg.Config.Terminal.Timestamps
		m.hideJoinPart = msg.Config.Filters.HideJoinPart
		m.history.Append(irc.NewSystemNotice("Configuration reloaded"))
		return m, nil

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

// handleConnEvent runs one network event through the manager state machine
// and stores whatever it produced for display.
func (m Model) handleConnEvent(msg ConnEventMsg) (tea.Model, tea.Cmd) {
	m.appendEvents(m.mgr.HandleEvent(msg.Event))
	return m, m.syncSpinner()
}

// syncSpinner keeps the reconnect spinner running exactly while the
// connection is being (re)established.
func (m *Model) syncSpinner() tea.Cmd {
	switch m.mgr.Status().State {
	case conn.StateConnecting, conn.StateAuthenticating, conn.StateReconnecting:
		if !m.spinner.IsActive() {
			return m.spinner.Start()
		}
	default:
		m.spinner.Stop()
	}
	return nil
}

// submit forwards the active draft to the connection manager. Validation
// failures (oversized, rate limited, not joined) keep the draft so the user
// can fix or retry; once the line is handed to the transport the tab is
// cleared and delivery is best effort.
func (m *Model) submit() {
	text := m.tabs.Active().Text()
	if isBlank(text) {
		return
	}
	switch err := m.mgr.Send(text); err {
	case nil:
		body := m.tabs.Active().Submit()
		m.history.Append(irc.NewLocalMessage(m.mgr.Nickname(), body))
	case irc.ErrMessageTooLong:
		m.history.Append(irc.NewSystemNotice("Message too long (500 byte limit), not sent"))
	case irc.ErrInvalidChars:
		m.history.Append(irc.NewSystemNotice("Message contains line breaks, not sent"))
	case conn.ErrRateLimited:
		m.history.Append(irc.NewSystemNotice("Sending too fast, wait a moment"))
	case conn.ErrNotConnected:
		m.history.Append(irc.NewSystemNotice("Not connected, message not sent"))
	default:
		// Transport write failure: the line may or may not have gone out.
		// The draft is cleared either way and the read loop will surface
		// the reconnect.
		m.tabs.Active().Submit()
		m.history.Append(irc.NewSystemNotice("Send failed: " + err.Error()))
	}
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}
