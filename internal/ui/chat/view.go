// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/twitchat-tui/internal/conn"
	"github.com/jeranaias/twitchat-tui/internal/irc"
	"github.com/jeranaias/twitchat-tui/internal/util"
)

// =============================================================================
// RENDERING
// =============================================================================

// inputHeight is the rows the compose area occupies: the container's top
// border plus one content line.
const inputHeight = 2

// charCountFrom is the draft byte length at which the counter appears.
const charCountFrom = 400

// View renders the full frame: chat area, optional input area, status bar.
// The renderer consumes only the scrollback view, the layer stack and the
// active draft; it holds no state of its own.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.viewChat())
	b.WriteByte('\n')
	if m.layers.Contains(LayerInput) {
		b.WriteString(m.viewInput())
		b.WriteByte('\n')
	}
	b.WriteString(m.viewStatusBar())
	return b.String()
}

// viewChat renders the message area, newest line at the bottom. When the
// Help layer is on top the overlay is placed over the same region.
func (m Model) viewChat() string {
	height := m.chatHeight()
	if m.layers.Top() == LayerHelp {
		return lipgloss.Place(m.width, height,
			lipgloss.Center, lipgloss.Center, m.viewHelp())
	}

	events := m.history.ViewFiltered(m.history.Offset(), height, m.keep())
	lines := make([]string, 0, height)
	for _, ev := range events {
		lines = append(lines, util.TruncateWidth(m.formatEvent(ev), m.width))
	}
	// Pad above so a short history still pins messages to the bottom edge.
	for len(lines) < height {
		lines = append([]string{""}, lines...)
	}
	return strings.Join(lines, "\n")
}

// formatEvent renders one scrollback entry as a single styled line.
func (m Model) formatEvent(ev irc.Event) string {
	ts := ""
	if m.showTimestamps {
		ts = m.theme.Timestamp.Render(ev.When().Format("15:04")) + " "
	}

	switch ev := ev.(type) {
	case irc.Message:
		nick := m.theme.Nick(ev.Login, ev.Color).Render(ev.User)
		if ev.Login == m.mgr.Nickname() {
			nick = m.theme.OwnNick.Render(ev.User)
		}
		badges := ""
		if len(ev.Badges) > 0 {
			badges = m.theme.Badge.Render(badgeGlyphs(ev.Badges)) + " "
		}
		if ev.Action {
			return ts + badges + m.theme.ActionBody.Render("* "+ev.User+" "+ev.Body)
		}
		return ts + badges + nick + m.theme.ChatBody.Render(": "+ev.Body)

	case irc.Join:
		return ts + m.theme.JoinPart.Render(ev.User+" joined")

	case irc.Part:
		return ts + m.theme.JoinPart.Render(ev.User+" left")

	case irc.ClearChat:
		if ev.Target != "" {
			return ts + m.theme.ClearChat.Render("Messages from "+ev.Target+" were removed")
		}
		return ts + m.theme.ClearChat.Render("Chat was cleared by a moderator")

	case irc.SystemNotice:
		if ev.Fatal {
			return ts + m.theme.FatalLine.Render("! " + ev.Text)
		}
		return ts + m.theme.Notice.Render("-- " + ev.Text)

	default:
		return ""
	}
}

// badgeGlyphs collapses the badge list to a compact marker string.
func badgeGlyphs(badges []irc.Badge) string {
	var b strings.Builder
	for _, badge := range badges {
		switch badge.Name {
		case "broadcaster":
			b.WriteString("[B]")
		case "moderator":
			b.WriteString("[M]")
		case "vip":
			b.WriteString("[V]")
		case "subscriber", "founder":
			b.WriteString("[S]")
		default:
			b.WriteString("[+]")
		}
	}
	return b.String()
}

// viewInput renders the compose line: tab markers, prompt, draft with a
// block cursor, and a byte counter once the draft nears the send limit.
func (m Model) viewInput() string {
	ed := m.tabs.Active()

	var b strings.Builder
	if m.tabs.Count() > 1 {
		for i := 0; i < m.tabs.Count(); i++ {
			label := fmt.Sprintf("%d", i+1)
			if i == m.tabs.ActiveIndex() {
				b.WriteString(m.theme.TabActive.Render(label))
			} else {
				b.WriteString(m.theme.TabInactive.Render(label))
			}
		}
		b.WriteByte(' ')
	}
	b.WriteString(m.theme.InputPrompt.Render("> "))

	count := ""
	if n := len(ed.Text()); n >= charCountFrom {
		count = fmt.Sprintf(" %d/%d", n, irc.MaxMessageBytes)
	}

	cols := m.width - m.theme.InputContainer.GetHorizontalFrameSize() -
		lipgloss.Width(b.String()) - len(count)
	runes, cursor := visibleDraft([]rune(ed.Text()), ed.Cursor(), cols)
	before := string(runes[:cursor])
	under := " "
	after := ""
	if cursor < len(runes) {
		under = string(runes[cursor])
		after = string(runes[cursor+1:])
	}
	b.WriteString(m.theme.InputText.Render(before))
	b.WriteString(m.theme.InputCursor.Render(under))
	b.WriteString(m.theme.InputText.Render(after))

	if count != "" {
		n := len(ed.Text())
		style := m.theme.CharCount
		if n > irc.MaxMessageBytes {
			style = m.theme.CharCountDanger
		} else if n >= irc.MaxMessageBytes-20 {
			style = m.theme.CharCountWarning
		}
		b.WriteString(style.Render(count))
	}

	return m.theme.InputContainer.Width(m.width).Render(b.String())
}

// visibleDraft windows the draft runes so the cursor cell stays inside
// cols display columns. The cursor cell is the rune under the cursor, or
// one reserved column when the cursor sits past the last rune. Width math
// is per rune so double-width characters shift the window by whole glyphs.
func visibleDraft(runes []rune, cursor, cols int) ([]rune, int) {
	width := util.StringWidth(string(runes))
	cell := 0
	end := cursor + 1
	if cursor == len(runes) {
		cell = 1
		end = cursor
	}
	if cols <= 1 || width+cell <= cols {
		return runes, cursor
	}

	start := 0
	for start < cursor && util.PrefixWidth(runes[start:], end-start)+cell > cols {
		start++
	}
	for end < len(runes) && util.PrefixWidth(runes[start:], end-start+1)+cell <= cols {
		end++
	}
	return runes[start:end], cursor - start
}

// viewHelp renders the keybinding reference box.
func (m Model) viewHelp() string {
	var b strings.Builder
	b.WriteString(m.theme.HelpTitle.Render("twitchat keys"))
	b.WriteByte('\n')
	for _, section := range GetHelpSections() {
		b.WriteString(m.theme.HelpSection.Render(section.Title))
		b.WriteByte('\n')
		for _, item := range section.Items {
			b.WriteString(m.theme.HelpKey.Render(item.Key))
			b.WriteString(m.theme.HelpDesc.Render(item.Desc))
			b.WriteByte('\n')
		}
	}
	b.WriteString(m.theme.HelpDesc.Render("\nEsc to close"))
	return m.theme.HelpBox.Render(b.String())
}

// viewStatusBar pushes the current model state into the status bar component
// and renders it.
func (m Model) viewStatusBar() string {
	st := m.mgr.Status()
	m.statusBar.ConnStatus = st
	m.statusBar.Channel = m.mgr.Channel()
	m.statusBar.Nickname = m.mgr.Nickname()
	m.statusBar.Mode = m.layers.Top().String()
	m.statusBar.TabIndex = m.tabs.ActiveIndex()
	m.statusBar.TabCount = m.tabs.Count()
	m.statusBar.ScrollOffset = m.history.Offset()
	m.statusBar.FilterActive = m.hideJoinPart
	if st.State == conn.StateReconnecting || st.State == conn.StateConnecting {
		m.statusBar.Spinner = m.spinner.View()
	} else {
		m.statusBar.Spinner = ""
	}
	return m.statusBar.View()
}
