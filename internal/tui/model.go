package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hersh/termtris/internal/netclient"
	"github.com/hersh/termtris/internal/protocol"
)

// Closer is the part of the network client the model needs.
type Closer interface {
	Close()
}

// Model is the bubbletea model of the watch command. It mirrors the board of
// a game streamed by a spectator hub.
type Model struct {
	server    string
	watcherID string
	width     int
	height    int

	client Closer

	snapshot *protocol.BoardSnapshotPayload
	over     *protocol.GameOverPayload

	err          error
	disconnected bool
}

// NewModel creates a spectator model for the hub at server. client may be
// nil in tests.
func NewModel(server string, client Closer) Model {
	return Model{
		server: server,
		client: client,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "Q":
			if m.client != nil {
				m.client.Close()
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case netclient.ConnectedMsg:
		m.watcherID = msg.WatcherID
	case netclient.SnapshotMsg:
		snap := msg.BoardSnapshotPayload
		m.snapshot = &snap
	case netclient.GameOverMsg:
		over := msg.GameOverPayload
		m.over = &over
	case netclient.DisconnectedMsg:
		m.disconnected = true
		m.err = msg.Err
	}
	return m, nil
}

// WatcherID returns the id the hub assigned, or "" before it arrives.
func (m Model) WatcherID() string {
	return m.watcherID
}

func (m Model) View() string {
	if m.snapshot == nil {
		if m.disconnected {
			return m.renderCentered("Disconnected from " + m.server + ".\nPress Q to exit.")
		}
		if m.watcherID == "" {
			return m.renderCentered("Connecting to " + m.server + "...")
		}
		return m.renderCentered("Waiting for the game to start...")
	}

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().Width(24).Render(RenderInfo(*m.snapshot, m.over)),
		lipgloss.NewStyle().Padding(1, 2).Render(RenderRemoteBoard(*m.snapshot)),
	)
	if m.disconnected && m.over == nil {
		content += "\n" + gameOverStyle.Render("Connection lost.")
	}
	return m.renderCentered(content)
}

func (m Model) renderCentered(content string) string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
