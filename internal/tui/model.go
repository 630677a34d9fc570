// Package tui provides the BubbleTea-based toast demo host.
package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/toastui/internal/audio"
	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/toast"
)

// Timings of the trigger button and the animation loop.
const (
	pressFlash    = 200 * time.Millisecond
	frameInterval = time.Second / 30
	statusTimeout = 3 * time.Second
)

// Options configures a Model.
type Options struct {
	Config *config.Config
	Audio  *audio.Manager
	Logger *slog.Logger

	// Scheduler drives toast timers. When nil a LoopScheduler is created
	// and its events are delivered through the program loop.
	Scheduler toast.Scheduler
	Events    <-chan func()

	Now func() time.Time
}

// Model is the TUI host view.
type Model struct {
	cfg    *config.Config
	audio  *audio.Manager
	logger *slog.Logger
	now    func() time.Time

	host   *toast.Host
	events <-chan func()

	keys     KeyMap
	help     help.Model
	spinner  spinner.Model
	showHelp bool

	view         *toastView
	pressedUntil time.Time
	framing      bool

	width  int
	height int
	ready  bool

	statusMsg string
	statusErr bool
}

// toastView tracks what has been drawn for the mounted toast so the
// renderer can animate between poses.
type toastView struct {
	id        string
	message   string
	state     toast.State
	from      toast.Pose
	changedAt time.Time
	successAt time.Time
}

// New creates a new TUI model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	sched, events := opts.Scheduler, opts.Events
	if sched == nil {
		ls := toast.NewLoopScheduler(8)
		sched, events = ls, ls.Events()
	}

	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"◐", "◓", "◑", "◒"},
		FPS:    toast.Spin.Duration / 4,
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		cfg:    cfg,
		audio:  opts.Audio,
		logger: logger,
		now:    now,
		host: toast.NewHost(sched, toast.HostOptions{
			Message:  cfg.Toast.Message,
			Duration: cfg.ToastDuration(),
			Logger:   logger,
			Now:      now,
		}),
		events:   events,
		keys:     DefaultKeyMap(),
		help:     h,
		spinner:  s,
		showHelp: cfg.TUI.ShowHelp,
	}
}

// Host returns the toast host backing the model.
func (m Model) Host() *toast.Host {
	return m.host
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return m.waitForTimer
}

type timerFiredMsg struct {
	run func()
}

type frameMsg time.Time

type releaseButtonMsg struct{}

type configReloadedMsg struct {
	cfg *config.Config
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

// waitForTimer blocks until the scheduler hands a fired timer to the loop.
func (m Model) waitForTimer() tea.Msg {
	if m.events == nil {
		return nil
	}
	run, ok := <-m.events
	if !ok {
		return nil
	}
	return timerFiredMsg{run: run}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case timerFiredMsg:
		msg.run()
		cmd := m.sync()
		return m, tea.Batch(m.waitForTimer, cmd)

	case frameMsg:
		m.framing = false
		return m, m.sync()

	case spinner.TickMsg:
		if m.view == nil || !m.view.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case releaseButtonMsg:
		return m, nil

	case configReloadedMsg:
		m.applyConfig(msg.cfg)
		return m, func() tea.Msg {
			return statusMsg{text: "Configuration reloaded"}
		}

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(statusTimeout, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	return m, nil
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.host.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Trigger):
		return m.trigger()

	case key.Matches(msg, m.keys.Dismiss):
		if m.host.Active() == nil {
			return m, nil
		}
		m.host.Close()
		return m, m.sync()
	}
	return m, nil
}

// trigger presses the button.
func (m Model) trigger() (tea.Model, tea.Cmd) {
	m.pressedUntil = m.now().Add(pressFlash)
	release := tea.Tick(pressFlash, func(time.Time) tea.Msg {
		return releaseButtonMsg{}
	})

	if _, err := m.host.Trigger(); err != nil {
		return m, tea.Batch(release, func() tea.Msg {
			return statusMsg{text: "A toast is already showing"}
		})
	}
	return m, tea.Batch(release, m.sync(), m.spinner.Tick)
}

// applyConfig picks up a reloaded configuration. The mounted toast keeps
// its message and duration.
func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.cfg = cfg
	m.showHelp = cfg.TUI.ShowHelp
	m.host.SetDefaults(cfg.Toast.Message, cfg.ToastDuration())
	if m.audio != nil {
		m.audio.UpdateConfig(cfg)
	}
}

// sync compares the mounted toast with what was last drawn and records
// the start of any pose or icon animation.
func (m *Model) sync() tea.Cmd {
	now := m.now()
	t := m.host.Active()
	if t == nil {
		m.view = nil
		return nil
	}

	st := t.State()
	var cmds []tea.Cmd

	switch {
	case m.view == nil || m.view.id != t.ID():
		m.view = &toastView{
			id:        t.ID(),
			message:   t.Message(),
			state:     st,
			from:      toast.HiddenPose,
			changedAt: now,
		}
		if st.Success {
			m.view.successAt = now
		}

	default:
		v := *m.view
		if st.Visible != v.state.Visible {
			v.from = m.poseAt(now)
			v.changedAt = now
		}
		if st.Success && !v.state.Success {
			v.successAt = now
			cmds = append(cmds, m.playSuccess())
		}
		v.state = st
		m.view = &v
	}

	if !m.framing && m.animating(now) {
		m.framing = true
		cmds = append(cmds, tea.Tick(frameInterval, func(t time.Time) tea.Msg {
			return frameMsg(t)
		}))
	}
	return tea.Batch(cmds...)
}

// animating reports whether a slide, fade or pop is still in progress.
func (m Model) animating(now time.Time) bool {
	if m.view == nil {
		return false
	}
	if now.Sub(m.view.changedAt) < toast.TransitionDuration {
		return true
	}
	return !m.view.successAt.IsZero() && now.Sub(m.view.successAt) < toast.CheckmarkPop.Duration
}

// poseAt returns the interpolated pose of the drawn toast.
func (m Model) poseAt(now time.Time) toast.Pose {
	if m.view == nil {
		return toast.HiddenPose
	}
	target := toast.StyleFor(m.view.state, m.view.message).Pose
	f := float64(now.Sub(m.view.changedAt)) / float64(toast.TransitionDuration)
	if f >= 1 {
		return target
	}
	if f < 0 {
		f = 0
	}
	return m.view.from.Lerp(target, f)
}

func (m Model) playSuccess() tea.Cmd {
	if m.audio == nil || !m.audio.Enabled() {
		return nil
	}
	am := m.audio
	return func() tea.Msg {
		if err := am.PlaySuccess(); err != nil {
			return statusMsg{text: "Sound failed: " + err.Error(), isErr: true}
		}
		return nil
	}
}
