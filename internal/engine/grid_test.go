package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/logical-psycho/internal/core"
)

func TestDecisionInterval(t *testing.T) {
	tests := []struct {
		name      string
		frequency float64
		scale     float64
		expected  int
	}{
		{"three per second", 3, 1, 20},
		{"four per second", 4, 1, 15},
		{"five per second", 5, 1, 12},
		{"half rounds to even (7.5)", 8, 1, 8},
		{"half rounds to even (2.5)", 24, 1, 2},
		{"easy preset slows down", 3, 0.75, 27},
		{"hard preset speeds up", 3, 1.25, 16},
		{"never below one tick", 1000, 1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := DefaultOptions()
			o.FrequencyScale = tc.scale
			got, err := o.DecisionInterval(tc.frequency)
			if err != nil {
				t.Fatalf("DecisionInterval(%g) error: %v", tc.frequency, err)
			}
			if got != tc.expected {
				t.Errorf("DecisionInterval(%g) = %d, expected %d", tc.frequency, got, tc.expected)
			}
		})
	}

	if _, err := DefaultOptions().DecisionInterval(0); !errors.Is(err, ErrInvalidEnemy) {
		t.Errorf("zero frequency: expected ErrInvalidEnemy, got %v", err)
	}
	if _, err := DefaultOptions().DecisionInterval(-2); !errors.Is(err, ErrInvalidEnemy) {
		t.Errorf("negative frequency: expected ErrInvalidEnemy, got %v", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	if err := DefaultOptions().Validate(); err != nil {
		t.Fatalf("default options invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"zero tile", func(o *Options) { o.TileLength = 0 }},
		{"zero frames", func(o *Options) { o.TargetFrames = 0 }},
		{"fractional step", func(o *Options) { o.TargetFrames = 7 }},
		{"zero tick rate", func(o *Options) { o.TickRate = 0 }},
		{"zero goal frames", func(o *Options) { o.GoalFrames = 0 }},
		{"zero loss rate", func(o *Options) { o.LossAnimRate = 0 }},
		{"empty burst", func(o *Options) { o.BurstLength = 0 }},
		{"negative rest", func(o *Options) { o.BurstRest = -1 }},
		{"zero scale", func(o *Options) { o.FrequencyScale = 0 }},
		{"nan scale", func(o *Options) { o.FrequencyScale = math.NaN() }},
		{"nan idle rate", func(o *Options) { o.IdleAnimRate = math.NaN() }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := DefaultOptions()
			tc.mutate(&o)
			if err := o.Validate(); !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("Validate() = %v, expected ErrInvalidOptions", err)
			}
		})
	}
}

func TestTileConversion(t *testing.T) {
	o := DefaultOptions()

	if got := o.Pixel(T(5, 4)); got != core.Pt(400, 320) {
		t.Errorf("Pixel(5,4) = %v, expected (400, 320)", got)
	}
	if got := o.TileOf(core.Pt(400, 320)); got != T(5, 4) {
		t.Errorf("TileOf(400,320) = %v, expected (5, 4)", got)
	}
	if got := o.TileOf(core.Pt(-8, 0)); got != T(-1, 0) {
		t.Errorf("TileOf(-8,0) = %v, expected (-1, 0)", got)
	}
	if o.Step() != 8 {
		t.Errorf("Step() = %d, expected 8", o.Step())
	}

	aligned := []core.Point{core.Pt(0, 0), core.Pt(80, 640), core.Pt(-80, 160)}
	for _, p := range aligned {
		if !o.Aligned(p) {
			t.Errorf("Aligned(%v) = false", p)
		}
	}
	unaligned := []core.Point{core.Pt(8, 0), core.Pt(80, 648), core.Pt(-40, 0)}
	for _, p := range unaligned {
		if o.Aligned(p) {
			t.Errorf("Aligned(%v) = true", p)
		}
	}
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    Style
		wantErr bool
	}{
		{"seek", StyleSeek, false},
		{"", StyleSeek, false},
		{"Randomised", StyleRandomised, false},
		{"randomized", StyleRandomised, false},
		{" BURST ", StyleBurst, false},
		{"axisbound", StyleAxisbound, false},
		{"teleport", StyleSeek, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseStyle(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseStyle(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("ParseStyle(%q) = %v, expected %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseAxis(t *testing.T) {
	for in, want := range map[string]Axis{"": AxisAny, "horizontal": AxisHorizontal, "Y": AxisVertical} {
		got, err := ParseAxis(in)
		if err != nil || got != want {
			t.Errorf("ParseAxis(%q) = %v, %v; expected %v", in, got, err, want)
		}
	}
	if _, err := ParseAxis("diagonal"); err == nil {
		t.Error("ParseAxis(diagonal) should fail")
	}
}

func TestDirectionHelpers(t *testing.T) {
	for _, d := range Directions() {
		if d.Reverse().Reverse() != d {
			t.Errorf("%v reversed twice is %v", d, d.Reverse().Reverse())
		}
		vx, vy := d.Vector()
		rx, ry := d.Reverse().Vector()
		if vx != -rx || vy != -ry {
			t.Errorf("%v and its reverse are not opposite", d)
		}
	}
	if got := Directions(); got[0] != DirLeft || got[1] != DirRight || got[2] != DirUp || got[3] != DirDown {
		t.Errorf("candidate order = %v, expected L R U D", got)
	}
}
