package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tailtray/tailtray/internal/applet"
	"github.com/tailtray/tailtray/internal/coordinator"
	"github.com/tailtray/tailtray/internal/launcher"
	"github.com/tailtray/tailtray/internal/models"
	"github.com/tailtray/tailtray/internal/tailscale"
)

// TickInterval is how often the TUI drains coordinator events.
const TickInterval = time.Second

const errorDisplay = 5 * time.Second

// Model is the root Bubbletea model for the TUI.
type Model struct {
	ctrl     Controller
	loader   PrefsLoader
	desktop  Desktop
	settings *models.Settings
	users    *models.SSHUsers
	saveUser func(host, user string) error

	state     *applet.State
	loginName string

	// UI state
	focusedPanel  int
	activeOverlay int
	splitRatio    float64
	width         int
	height        int

	err error

	peerList    *PeerList
	prefsForm   *PrefsForm
	spinner     spinner.Model
	spinning    bool
	userInput   textinput.Model
	editingHost string
}

// NewModel creates the initial TUI model.
func NewModel(opts Options) Model {
	st := opts.State
	if st == nil {
		st = applet.New()
	}
	settings := opts.Settings
	if settings == nil {
		settings = models.NewSettings()
	}
	users := opts.SSHUsers
	if users == nil {
		users = models.NewSSHUsers()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = badgeBusyStyle

	ui := textinput.New()
	ui.CharLimit = 64
	ui.Placeholder = "user name (empty to clear)"

	pl := NewPeerList()
	pl.SetPeers(st.Peers)

	return Model{
		ctrl:       opts.Controller,
		loader:     opts.Prefs,
		desktop:    opts.Desktop,
		settings:   settings,
		users:      users,
		saveUser:   opts.SaveSSHUser,
		state:      st,
		splitRatio: 0.5,
		peerList:   pl,
		prefsForm:  NewPrefsForm(),
		spinner:    sp,
		userInput:  ui,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(TickInterval),
		loadPrefsCmd(m.loader),
	)
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateDimensions()
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd

	// ── Foreground tick ────────────────────────────────────────────
	case TickMsg:
		var events []coordinator.Event
		if m.ctrl != nil {
			events = m.ctrl.Events()
		}
		reload := false
		for _, ev := range events {
			if _, ok := ev.(coordinator.PreferenceApplied); ok {
				reload = true
			}
		}
		m.state.Tick(events)
		m.peerList.SetPeers(m.visiblePeers())
		cmds = append(cmds, tickCmd(TickInterval))
		if reload {
			cmds = append(cmds, loadPrefsCmd(m.loader))
		}
		if !m.state.Toggling {
			m.spinning = false
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if !m.spinning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PrefsLoadedMsg:
		if msg.Err != nil {
			return m, m.showError(fmt.Errorf("failed to load preferences: %w", msg.Err))
		}
		m.loginName = msg.Set.LoginName
		if !m.prefsForm.IsEditing() {
			m.prefsForm.Load(msg.Set)
		}
		return m, nil

	case SSHFinishedMsg:
		if msg.Err != nil {
			return m, m.showError(msg.Err)
		}
		return m, nil

	case SSHUserSavedMsg:
		m.users.Set(msg.Host, msg.User)
		return m, nil

	case ErrorMsg:
		return m, m.showError(msg.Err)

	case ClearErrorMsg:
		m.err = nil
		return m, nil
	}

	// Forward anything else (cursor blink) to the focused input.
	if m.activeOverlay == overlaySSHUser {
		var cmd tea.Cmd
		m.userInput, cmd = m.userInput.Update(msg)
		return m, cmd
	}
	if m.prefsForm.IsEditing() {
		return m, m.prefsForm.UpdateInput(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.activeOverlay {
	case overlaySSHUser:
		return m.handleSSHUserKey(msg)
	case overlayHelp:
		if msg.String() == "esc" || key.Matches(msg, globalKeys.Help) || key.Matches(msg, globalKeys.Quit) {
			m.activeOverlay = overlayNone
		}
		return nil
	}

	if m.prefsForm.IsEditing() {
		return m.handlePrefsEditKey(msg)
	}

	switch {
	case key.Matches(msg, globalKeys.Quit):
		return tea.Quit
	case key.Matches(msg, globalKeys.Help):
		m.activeOverlay = overlayHelp
		return nil
	case key.Matches(msg, globalKeys.Tab):
		m.focusedPanel = 1 - m.focusedPanel
		return nil
	case key.Matches(msg, globalKeys.Toggle):
		return m.toggle()
	}

	if m.focusedPanel == panelPeers {
		return m.handlePeerKey(msg)
	}
	return m.handlePrefsKey(msg)
}

func (m *Model) handlePeerKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, peerKeys.Up):
		m.peerList.MoveUp()
	case key.Matches(msg, peerKeys.Down):
		m.peerList.MoveDown()
	case key.Matches(msg, peerKeys.Copy):
		p, ok := m.peerList.Selected()
		if !ok || m.desktop == nil {
			return nil
		}
		if err := m.desktop.CopyIP(p.PrimaryIP()); err != nil {
			return m.showError(err)
		}
		m.state.MarkCopied(p.PrimaryIP())
	case key.Matches(msg, peerKeys.SSH):
		p, ok := m.peerList.Selected()
		if !ok || p.PrimaryIP() == "" {
			return nil
		}
		return sshCmd(launcher.SSHTarget(m.users.Lookup(p.HostName), p.PrimaryIP()))
	case key.Matches(msg, peerKeys.User):
		p, ok := m.peerList.Selected()
		if !ok {
			return nil
		}
		m.editingHost = p.HostName
		m.userInput.SetValue(m.users.Lookup(p.HostName))
		m.userInput.CursorEnd()
		m.activeOverlay = overlaySSHUser
		return m.userInput.Focus()
	case key.Matches(msg, peerKeys.Admin):
		if m.desktop == nil {
			return nil
		}
		if err := m.desktop.OpenURL(m.settings.AdminConsoleURL); err != nil {
			return m.showError(err)
		}
	}
	return nil
}

func (m *Model) handlePrefsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, prefKeys.Up):
		m.prefsForm.MoveUp()
	case key.Matches(msg, prefKeys.Down):
		m.prefsForm.MoveDown()
	case key.Matches(msg, prefKeys.Toggle):
		if ok, k, v := m.prefsForm.Toggle(); ok {
			return m.submit(coordinator.NewSetPreference(k, v))
		}
	case key.Matches(msg, prefKeys.Edit):
		if m.prefsForm.StartEdit() {
			return textinput.Blink
		}
		if ok, k, v := m.prefsForm.Toggle(); ok {
			return m.submit(coordinator.NewSetPreference(k, v))
		}
	}
	return nil
}

func (m *Model) handlePrefsEditKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, inputKeys.Confirm):
		if changed, k, v := m.prefsForm.FinishEdit(); changed {
			return m.submit(coordinator.NewSetPreference(k, v))
		}
		return nil
	case key.Matches(msg, inputKeys.Cancel):
		m.prefsForm.CancelEdit()
		return nil
	}
	return m.prefsForm.UpdateInput(msg)
}

func (m *Model) handleSSHUserKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, inputKeys.Confirm):
		host := m.editingHost
		user := m.userInput.Value()
		m.closeSSHUser()
		return saveSSHUserCmd(m.saveUser, host, user)
	case key.Matches(msg, inputKeys.Cancel):
		m.closeSSHUser()
		return nil
	}
	var cmd tea.Cmd
	m.userInput, cmd = m.userInput.Update(msg)
	return cmd
}

func (m *Model) closeSSHUser() {
	m.activeOverlay = overlayNone
	m.editingHost = ""
	m.userInput.Blur()
}

func (m *Model) toggle() tea.Cmd {
	cmd := m.submit(coordinator.NewToggle())
	if cmd != nil {
		return cmd
	}
	if !m.state.Toggling {
		// Rejected; submit already reported why.
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// submit hands cmd to the coordinator. A toggle that is accepted moves the
// display into its pending state.
func (m *Model) submit(cmd coordinator.Command) tea.Cmd {
	if m.ctrl == nil {
		return nil
	}
	if err := m.ctrl.Submit(cmd); err != nil {
		if errors.Is(err, coordinator.ErrCommandPending) {
			return m.showError(errors.New("busy: another change is still being applied"))
		}
		return m.showError(err)
	}
	if _, ok := cmd.(coordinator.Toggle); ok {
		m.state.BeginToggle()
	}
	return nil
}

func (m *Model) showError(err error) tea.Cmd {
	m.err = err
	return clearErrorAfter(errorDisplay)
}

func (m *Model) visiblePeers() []tailscale.Peer {
	if !m.state.Connected {
		return nil
	}
	return m.state.Peers
}

func (m *Model) updateDimensions() {
	layout := computeLayout(m.width, m.height, m.splitRatio)
	m.peerList.SetHeight(layout.innerHeight())
	m.prefsForm.SetSize(max(layout.rightWidth-2, 1), layout.innerHeight())
}

// View renders the TUI.
func (m Model) View() string {
	if m.width < 60 || m.height < 12 {
		sizeStr := fmt.Sprintf("%dx%d", m.width, m.height)
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(colorYellow).
			Render(lipgloss.JoinVertical(lipgloss.Center,
				"Terminal too small",
				lipgloss.NewStyle().Foreground(colorDim).Render(
					"Need 60x12, have "+lipgloss.NewStyle().Bold(true).Render(sizeStr),
				),
			))
	}

	layout := computeLayout(m.width, m.height, m.splitRatio)

	header := renderHeader(m.state, m.loginName, m.spinner.View(), m.width)

	peersTitle := "Peers"
	if m.state.Connected && m.state.SelfIP() != "" {
		self := m.state.SelfIP()
		if self == m.state.CopiedIP {
			self = "Copied!"
		}
		peersTitle = fmt.Sprintf("Peers · this device %s (%s)", m.state.Self.DisplayName(), self)
	}
	leftContent := m.peerList.View(layout.leftWidth-2, m.state.CopiedIP, m.users)
	rightContent := m.prefsForm.View()

	panels := renderPanels(peersTitle, leftContent, "Preferences", rightContent, layout, m.focusedPanel)

	statusBar := renderStatusBar(&m, m.width)

	view := lipgloss.JoinVertical(lipgloss.Left, header, panels, statusBar)

	var overlayContent string
	switch m.activeOverlay {
	case overlayHelp:
		overlayContent = renderHelp(m.width)
	case overlaySSHUser:
		overlayContent = m.renderSSHUserOverlay()
	}
	if overlayContent != "" {
		view = renderOverlay(view, overlayContent, m.width, m.height)
	}

	return view
}

func (m Model) renderSSHUserOverlay() string {
	title := overlayTitleStyle.Render("SSH user for " + m.editingHost)
	body := m.userInput.View()
	hint := overlayDimStyle.Render("Enter to save · Esc to cancel")
	return overlayStyle.Width(48).Render(lipgloss.JoinVertical(lipgloss.Left, title, body, "", hint))
}
