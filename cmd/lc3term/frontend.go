package main

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gosuda/lc3term/config"
	"github.com/gosuda/lc3term/console"
)

var (
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("22")).Padding(0, 1)
	haltedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("88")).Padding(0, 1)
	noteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")).Padding(0, 1)
)

type model struct {
	cfg    config.Config
	logger *slog.Logger

	con    *console.Console
	screen *screen
	host   *frameHost

	viewport  viewport.Model
	pathInput textinput.Model
	prompting bool
	ready     bool
	width     int
	height    int

	// tickPending dedupes reschedule requests so only one tick stream
	// exists no matter how many console calls asked for a frame.
	tickPending bool
	note        string
}

func newModel(cfg config.Config, logger *slog.Logger) (model, error) {
	scr := &screen{}
	host := &frameHost{}
	_, con, err := bootSession(cfg, logger, scr, host)
	if err != nil {
		return model{}, err
	}

	vp := viewport.New(80, 24)
	ti := textinput.New()
	ti.Prompt = "load> "
	ti.Placeholder = "path to .obj image"
	ti.CharLimit = 512

	return model{
		cfg:       cfg,
		logger:    logger,
		con:       con,
		screen:    scr,
		host:      host,
		viewport:  vp,
		pathInput: ti,
		// Init schedules the first frame below.
		tickPending: true,
	}, nil
}

func (m model) Init() tea.Cmd {
	// The installed image starts running on the first frame.
	return tea.Tick(m.cfg.FrameInterval(), frameTick)
}

func frameTick(time.Time) tea.Msg {
	return tickMsg{}
}

// layout sizes the viewport to the terminal minus the footer, which
// grows by one line while the load prompt is open.
func (m *model) layout() {
	footerLines := 1
	if m.prompting {
		footerLines++
	}
	vh := m.height - footerLines
	if vh < 1 {
		vh = 1
	}
	m.viewport.Width = m.width
	m.viewport.Height = vh
}

// drainHost converts requests recorded during a console call into
// commands. Flushes become immediate messages; ticks wait for the next
// frame boundary.
func (m *model) drainHost() tea.Cmd {
	var cmds []tea.Cmd
	if m.host.flush {
		m.host.flush = false
		cmds = append(cmds, func() tea.Msg { return flushMsg{} })
	}
	if m.host.tick {
		m.host.tick = false
		if !m.tickPending {
			m.tickPending = true
			cmds = append(cmds, tea.Tick(m.cfg.FrameInterval(), frameTick))
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		m.refresh()
		return m, nil

	case tickMsg:
		m.tickPending = false
		m.con.Tick()
		cmd := m.drainHost()
		m.refresh()
		return m, cmd

	case flushMsg:
		m.con.Flush()
		m.refresh()
		return m, nil

	case fileReadMsg:
		if msg.err != nil {
			m.logger.Warn("read program image", "path", msg.path, "error", msg.err)
			m.note = "read failed: " + msg.path
			return m, nil
		}
		if m.con.Load(msg.data) {
			m.note = "loaded " + msg.path
		} else {
			m.note = "image rejected: " + msg.path
		}
		cmd := m.drainHost()
		m.refresh()
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.prompting {
		switch msg.Type {
		case tea.KeyEnter:
			path := strings.TrimSpace(m.pathInput.Value())
			m.prompting = false
			m.pathInput.Blur()
			m.pathInput.SetValue("")
			m.layout()
			m.refresh()
			if path == "" {
				return m, nil
			}
			return m, loadFileCmd(path)
		case tea.KeyEsc:
			m.prompting = false
			m.pathInput.Blur()
			m.pathInput.SetValue("")
			m.layout()
			m.refresh()
			return m, nil
		}
		var cmd tea.Cmd
		m.pathInput, cmd = m.pathInput.Update(msg)
		return m, cmd
	}

	if msg.Type == tea.KeyCtrlL {
		m.prompting = true
		m.layout()
		m.refresh()
		return m, m.pathInput.Focus()
	}

	if b, ok := keyByte(msg); ok {
		m.con.Key(b)
		return m, m.drainHost()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// keyByte maps a key press to the single byte the simulator sees. Enter
// arrives as a carriage return and is normalized to newline before it is
// queued.
func keyByte(msg tea.KeyMsg) (byte, bool) {
	switch msg.Type {
	case tea.KeyEnter:
		return '\n', true
	case tea.KeySpace:
		return ' ', true
	case tea.KeyTab:
		return '\t', true
	case tea.KeyBackspace:
		return 0x08, true
	case tea.KeyEsc:
		return 0x1B, true
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && msg.Runes[0] < 128 && !msg.Alt {
			return byte(msg.Runes[0]), true
		}
	}
	return 0, false
}

func (m *model) refresh() {
	content := strings.ReplaceAll(string(m.screen.text), "\r\n", "\n")
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

func (m model) View() string {
	if !m.ready {
		return "initializing..."
	}
	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteByte('\n')
	if m.screen.halted {
		b.WriteString(haltedStyle.Render("HALTED"))
	} else {
		b.WriteString(runningStyle.Render(m.con.State().String()))
	}
	note := m.note
	if note == "" {
		note = "ctrl+l load image · ctrl+c quit"
	}
	b.WriteString(" ")
	b.WriteString(noteStyle.Render(note))
	if m.prompting {
		b.WriteByte('\n')
		b.WriteString(promptStyle.Render(m.pathInput.View()))
	}
	return b.String()
}
