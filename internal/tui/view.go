package tui

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/toast"
)

// Terminal geometry of the toast strip. A toast box is three rows high
// and sliding by the full hidden offset moves it out of the strip.
const (
	toastRows     = 4
	pixelsPerCell = 10
	buttonColor   = "#4361ee"
	buttonPressed = "#3a56d4"
	title         = "Toast Notification Demo"
	buttonLabel   = "Show Toast Notification"
)

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	now := m.now()

	var helpView string
	if m.showHelp {
		helpView = m.help.View(m.keys)
	}
	strip := m.renderStrip(now)

	bodyHeight := m.height - toastRows - lipgloss.Height(helpView)
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.renderBody(now))

	pos := config.Position(m.cfg.Display.Position)
	sections := []string{body, strip}
	if !pos.IsBottom() {
		sections = []string{strip, body}
	}
	if helpView != "" {
		sections = append(sections, helpView)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderBody draws the heading, the trigger button and the status line.
func (m Model) renderBody(now time.Time) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)

	bg := buttonColor
	if now.Before(m.pressedUntil) {
		bg = buttonPressed
	}
	button := lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color("#FFFFFF")).
		Padding(0, 2).
		Render(buttonLabel)

	status := " "
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		status = statusStyle.Render(m.statusMsg)
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(title),
		button,
		"",
		status,
	)
}

// renderStrip draws the toast area, always toastRows high.
func (m Model) renderStrip(now time.Time) string {
	pos := config.Position(m.cfg.Display.Position)
	if m.view == nil {
		return strings.Repeat("\n", toastRows-1)
	}

	pose := m.poseAt(now)
	block := m.renderToast(now, pose)

	align := lipgloss.Right
	margin := lipgloss.NewStyle()
	switch pos {
	case config.PositionTopLeft, config.PositionBottomLeft:
		align = lipgloss.Left
		margin = margin.MarginLeft(m.cfg.Display.OffsetX / pixelsPerCell)
	case config.PositionTopCenter, config.PositionBottomCenter:
		align = lipgloss.Center
	default:
		margin = margin.MarginRight(m.cfg.Display.OffsetX / pixelsPerCell)
	}
	block = lipgloss.PlaceHorizontal(m.width, align, margin.Render(block))

	return slide(block, shiftRows(pose.OffsetY), pos.IsBottom())
}

// renderToast draws the toast box for the given pose.
func (m Model) renderToast(now time.Time, pose toast.Pose) string {
	v := m.view
	style := toast.StyleFor(v.state, v.message)

	bg := mustHex(toast.ColorNeutral)
	if v.state.Success {
		f := float64(now.Sub(v.successAt)) / float64(toast.TransitionDuration)
		bg = bg.BlendRgb(mustHex(toast.ColorSuccess), clamp(f))
	}
	fg := mustHex(style.Foreground)

	backdrop := mustHex(m.cfg.TUI.Backdrop)
	fade := 1 - pose.Opacity
	bg = bg.BlendRgb(backdrop, fade)
	fg = fg.BlendRgb(backdrop, fade)

	var icon string
	switch style.Icon {
	case toast.IconSpinner:
		icon = m.spinner.View()
	case toast.IconCheckmark:
		icon = checkmarkGlyph(toast.CheckmarkPop.ValueAt(now.Sub(v.successAt)))
	}

	width := m.cfg.Display.Width / pixelsPerCell
	box := lipgloss.NewStyle().
		Background(lipgloss.Color(bg.Hex())).
		Foreground(lipgloss.Color(fg.Hex())).
		Padding(1, 2).
		Width(width)

	return box.Render(icon + "  " + style.Text)
}

// checkmarkGlyph approximates the checkmark's scale with glyph weight.
func checkmarkGlyph(scale float64) string {
	switch {
	case scale < 0.4:
		return " "
	case scale <= 1.05:
		return "✓"
	default:
		return lipgloss.NewStyle().Bold(true).Render("✔")
	}
}

// shiftRows maps a pixel offset onto strip rows.
func shiftRows(offsetY int) int {
	rows := int(math.Round(float64(offsetY) / float64(toast.HiddenPose.OffsetY) * toastRows))
	return max(0, min(rows, toastRows))
}

// slide pads block into a toastRows high strip with one row of margin on
// the anchored edge, then pushes it k rows toward that edge. Rows pushed
// past the edge are dropped.
func slide(block string, k int, bottom bool) string {
	lines := strings.Split(block, "\n")
	if len(lines) > toastRows-1 {
		lines = lines[:toastRows-1]
	}
	for len(lines) < toastRows-1 {
		lines = append(lines, "")
	}

	blank := make([]string, k)
	if bottom {
		rows := append([]string{}, lines...)
		rows = append(rows, "")
		rows = append(blank, rows...)
		return strings.Join(rows[:toastRows], "\n")
	}
	rows := append([]string{""}, lines...)
	rows = append(rows[k:], blank...)
	return strings.Join(rows, "\n")
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

func clamp(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}
