package toast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStyleFor(t *testing.T) {
	tests := []struct {
		name       string
		state      State
		background string
		pose       Pose
		icon       Icon
		text       string
		classes    []string
	}{
		{
			name:       "initial",
			state:      State{Loading: true},
			background: ColorNeutral,
			pose:       HiddenPose,
			icon:       IconSpinner,
			text:       LoadingText,
			classes:    []string{"toast", "loading", "hidden"},
		},
		{
			name:       "loading",
			state:      State{Visible: true, Loading: true},
			background: ColorNeutral,
			pose:       ShownPose,
			icon:       IconSpinner,
			text:       LoadingText,
			classes:    []string{"toast", "loading", "shown"},
		},
		{
			name:       "success",
			state:      State{Visible: true, Success: true},
			background: ColorSuccess,
			pose:       ShownPose,
			icon:       IconCheckmark,
			text:       "Saved",
			classes:    []string{"toast", "success", "shown"},
		},
		{
			name:       "exiting",
			state:      State{Success: true},
			background: ColorSuccess,
			pose:       HiddenPose,
			icon:       IconCheckmark,
			text:       "Saved",
			classes:    []string{"toast", "success", "hidden"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := StyleFor(tt.state, "Saved")
			assert.Equal(t, tt.background, style.Background)
			assert.Equal(t, ColorForeground, style.Foreground)
			assert.Equal(t, tt.pose, style.Pose)
			assert.Equal(t, tt.icon, style.Icon)
			assert.Equal(t, tt.text, style.Text)
			assert.Equal(t, tt.classes, style.Classes)
		})
	}
}

func TestPose_Lerp(t *testing.T) {
	assert.Equal(t, HiddenPose, HiddenPose.Lerp(ShownPose, 0))
	assert.Equal(t, ShownPose, HiddenPose.Lerp(ShownPose, 1))
	assert.Equal(t, ShownPose, HiddenPose.Lerp(ShownPose, 7))

	mid := HiddenPose.Lerp(ShownPose, 0.5)
	assert.Equal(t, 50, mid.OffsetY)
	assert.InDelta(t, 0.5, mid.Opacity, 1e-9)
}

func TestAnimation_CheckmarkPop(t *testing.T) {
	assert.InDelta(t, 0.0, CheckmarkPop.ValueAt(0), 1e-9)
	assert.InDelta(t, 0.6, CheckmarkPop.ValueAt(75*time.Millisecond), 1e-9)
	assert.InDelta(t, 1.2, CheckmarkPop.ValueAt(150*time.Millisecond), 1e-9)
	assert.InDelta(t, 1.0, CheckmarkPop.ValueAt(300*time.Millisecond), 1e-9)
	assert.InDelta(t, 1.0, CheckmarkPop.ValueAt(time.Minute), 1e-9, "finite animations hold")
	assert.InDelta(t, 0.0, CheckmarkPop.ValueAt(-time.Second), 1e-9)
}

func TestAnimation_SpinRepeats(t *testing.T) {
	assert.InDelta(t, 90.0, Spin.ValueAt(250*time.Millisecond), 1e-9)
	assert.InDelta(t, 90.0, Spin.ValueAt(1250*time.Millisecond), 1e-9)
	assert.InDelta(t, 0.0, Spin.ValueAt(2*time.Second), 1e-9)
}

func TestIcon_String(t *testing.T) {
	assert.Equal(t, "spinner", IconSpinner.String())
	assert.Equal(t, "checkmark", IconCheckmark.String())
}
