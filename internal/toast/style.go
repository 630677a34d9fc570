package toast

import (
	"math"
	"time"
)

// Colors used by every surface.
const (
	ColorSuccess    = "#4CAF50"
	ColorNeutral    = "#333333"
	ColorForeground = "#FFFFFF"
)

// LoadingText is shown next to the spinner.
const LoadingText = "Loading..."

// TransitionDuration is the length of the pose and background transitions.
const TransitionDuration = 300 * time.Millisecond

// Icon is the glyph drawn at the start of the toast.
type Icon int

const (
	IconSpinner Icon = iota
	IconCheckmark
)

func (i Icon) String() string {
	if i == IconCheckmark {
		return "checkmark"
	}
	return "spinner"
}

// Pose is the toast's placement relative to its resting position.
type Pose struct {
	OffsetY int     // Pixels pushed away from the anchored edge
	Opacity float64 // 0.0-1.0
}

var (
	// ShownPose is the resting pose while visible.
	ShownPose = Pose{OffsetY: 0, Opacity: 1}
	// HiddenPose is offscreen and transparent.
	HiddenPose = Pose{OffsetY: 100, Opacity: 0}
)

// Lerp interpolates between two poses. f is clamped to [0,1].
func (p Pose) Lerp(to Pose, f float64) Pose {
	f = clamp01(f)
	return Pose{
		OffsetY: p.OffsetY + int(math.Round(float64(to.OffsetY-p.OffsetY)*f)),
		Opacity: p.Opacity + (to.Opacity-p.Opacity)*f,
	}
}

// Style is the full rendering of a toast for one state.
type Style struct {
	Background string
	Foreground string
	Pose       Pose
	Icon       Icon
	Text       string
	Classes    []string // CSS classes for the GTK surface
}

// StyleFor derives the rendering from the flags and the toast message.
func StyleFor(s State, message string) Style {
	style := Style{
		Background: ColorNeutral,
		Foreground: ColorForeground,
		Pose:       HiddenPose,
		Icon:       IconSpinner,
		Text:       LoadingText,
		Classes:    []string{"toast"},
	}
	if s.Success {
		style.Background = ColorSuccess
		style.Classes = append(style.Classes, "success")
	}
	if s.Loading {
		style.Classes = append(style.Classes, "loading")
	} else if s.Success {
		style.Icon = IconCheckmark
		style.Text = message
	}
	if s.Visible {
		style.Pose = ShownPose
		style.Classes = append(style.Classes, "shown")
	} else {
		style.Classes = append(style.Classes, "hidden")
	}
	return style
}

// Keyframe is one stop of an animation.
type Keyframe struct {
	Offset float64 // 0.0-1.0 of the animation duration
	Value  float64
}

// Animation is a piecewise-linear keyframe animation.
type Animation struct {
	Name     string
	Duration time.Duration
	Infinite bool
	Frames   []Keyframe
}

// Animations shared by every surface. The GTK stylesheet declares the same
// keyframes under the same names.
var (
	// Spin rotates the spinner in degrees, once per second, forever.
	Spin = Animation{
		Name:     "spin",
		Duration: time.Second,
		Infinite: true,
		Frames:   []Keyframe{{0, 0}, {1, 360}},
	}
	// CheckmarkPop scales the checkmark in with an overshoot.
	CheckmarkPop = Animation{
		Name:     "checkmark",
		Duration: 300 * time.Millisecond,
		Frames:   []Keyframe{{0, 0}, {0.5, 1.2}, {1, 1}},
	}
)

// ValueAt returns the animated value after elapsed time. Finite animations
// hold their last value.
func (a Animation) ValueAt(elapsed time.Duration) float64 {
	if len(a.Frames) == 0 {
		return 0
	}
	if elapsed < 0 {
		elapsed = 0
	}
	var pos float64
	if a.Duration > 0 {
		if a.Infinite {
			elapsed %= a.Duration
		}
		pos = clamp01(float64(elapsed) / float64(a.Duration))
	} else {
		pos = 1
	}

	prev := a.Frames[0]
	if pos <= prev.Offset {
		return prev.Value
	}
	for _, kf := range a.Frames[1:] {
		if pos <= kf.Offset {
			span := kf.Offset - prev.Offset
			if span <= 0 {
				return kf.Value
			}
			return prev.Value + (kf.Value-prev.Value)*(pos-prev.Offset)/span
		}
		prev = kf
	}
	return prev.Value
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
