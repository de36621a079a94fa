package nvg

import (
	"github.com/gogpu/nvg/font"
)

// MaxStates is the maximum number of saved render states.
const MaxStates = 32

// FontID identifies a font created by a Context.
type FontID = font.ID

// InvalidFont is the FontID returned when a font cannot be created or
// found.
const InvalidFont = font.InvalidID

// Align specifies text alignment. Combine one horizontal and one vertical
// value.
type Align = font.Align

const (
	AlignLeft     = font.AlignLeft
	AlignCenter   = font.AlignCenter
	AlignRight    = font.AlignRight
	AlignTop      = font.AlignTop
	AlignMiddle   = font.AlignMiddle
	AlignBottom   = font.AlignBottom
	AlignBaseline = font.AlignBaseline
)

// Scissor is a clip rectangle of half-size Extent centered at the origin
// of the space given by Xform. A negative Extent means no scissor.
type Scissor struct {
	Xform  Transform
	Extent [2]float64
}

// NoScissor returns the unset scissor.
func NoScissor() Scissor {
	return Scissor{Xform: Identity(), Extent: [2]float64{-1, -1}}
}

// Enabled reports whether s clips.
func (s Scissor) Enabled() bool {
	return s.Extent[0] >= 0 && s.Extent[1] >= 0
}

// RenderState is the style bundle that Save and Restore push and pop.
type RenderState struct {
	Transform Transform
	Scissor   Scissor

	Fill   Paint
	Stroke Paint

	StrokeWidth    float64
	MiterLimit     float64
	LineCap        LineCap
	LineJoin       LineJoin
	Alpha          float64
	ShapeAntiAlias bool
	Composite      CompositeState

	Font          FontID
	FontSize      float64
	FontBlur      float64
	LetterSpacing float64
	LineHeight    float64
	TextAlign     Align
}

// DefaultRenderState returns the state a frame starts with: identity
// transform, no scissor, white fill, black 1-unit stroke with miter joins
// and butt caps, opaque, source-over, 16-unit left-baseline text.
func DefaultRenderState() RenderState {
	return RenderState{
		Transform:      Identity(),
		Scissor:        NoScissor(),
		Fill:           SolidPaint(White),
		Stroke:         SolidPaint(Black),
		StrokeWidth:    1,
		MiterLimit:     10,
		LineCap:        CapButt,
		LineJoin:       JoinMiter,
		Alpha:          1,
		ShapeAntiAlias: true,
		Composite:      CompositeOperationState(SourceOver),
		FontSize:       16,
		LineHeight:     1,
		TextAlign:      font.DefaultAlign,
	}
}

// stateStack is the active state plus the saved states beneath it.
type stateStack struct {
	states []RenderState
}

func newStateStack() stateStack {
	s := stateStack{states: make([]RenderState, 1, MaxStates+1)}
	s.states[0] = DefaultRenderState()
	return s
}

func (s *stateStack) top() *RenderState {
	return &s.states[len(s.states)-1]
}

// depth returns the number of saved states.
func (s *stateStack) depth() int {
	return len(s.states) - 1
}

func (s *stateStack) save() error {
	if s.depth() >= MaxStates {
		return errStackOverflow
	}
	s.states = append(s.states, *s.top())
	return nil
}

func (s *stateStack) restore() error {
	if s.depth() == 0 {
		return errStackUnderflow
	}
	s.states = s.states[:len(s.states)-1]
	return nil
}

func (s *stateStack) reset() {
	*s.top() = DefaultRenderState()
}

func (s *stateStack) clear() {
	s.states = s.states[:1]
	s.states[0] = DefaultRenderState()
}
