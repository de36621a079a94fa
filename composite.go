package nvg

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/nvg/backend"
)

// CompositeOperation is a Porter-Duff composite operation.
type CompositeOperation int

const (
	SourceOver CompositeOperation = iota
	SourceIn
	SourceOut
	Atop
	DestinationOver
	DestinationIn
	DestinationOut
	DestinationAtop
	Lighter
	Copy
	Xor
)

var compositeNames = [...]string{
	SourceOver:      "SourceOver",
	SourceIn:        "SourceIn",
	SourceOut:       "SourceOut",
	Atop:            "Atop",
	DestinationOver: "DestinationOver",
	DestinationIn:   "DestinationIn",
	DestinationOut:  "DestinationOut",
	DestinationAtop: "DestinationAtop",
	Lighter:         "Lighter",
	Copy:            "Copy",
	Xor:             "Xor",
}

func (op CompositeOperation) String() string {
	if op < 0 || int(op) >= len(compositeNames) {
		return "Unknown"
	}
	return compositeNames[op]
}

// BlendFactor is a blend factor applied to premultiplied colors.
type BlendFactor = gputypes.BlendFactor

// CompositeState holds separate color and alpha blend factors.
type CompositeState struct {
	SrcRGB   BlendFactor
	DstRGB   BlendFactor
	SrcAlpha BlendFactor
	DstAlpha BlendFactor
}

// CompositeOperationState returns the blend factors of op. Unknown
// operations map to SourceOver.
func CompositeOperationState(op CompositeOperation) CompositeState {
	var src, dst BlendFactor
	switch op {
	case SourceIn:
		src, dst = gputypes.BlendFactorDstAlpha, gputypes.BlendFactorZero
	case SourceOut:
		src, dst = gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorZero
	case Atop:
		src, dst = gputypes.BlendFactorDstAlpha, gputypes.BlendFactorOneMinusSrcAlpha
	case DestinationOver:
		src, dst = gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorOne
	case DestinationIn:
		src, dst = gputypes.BlendFactorZero, gputypes.BlendFactorSrcAlpha
	case DestinationOut:
		src, dst = gputypes.BlendFactorZero, gputypes.BlendFactorOneMinusSrcAlpha
	case DestinationAtop:
		src, dst = gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorSrcAlpha
	case Lighter:
		src, dst = gputypes.BlendFactorOne, gputypes.BlendFactorOne
	case Copy:
		src, dst = gputypes.BlendFactorOne, gputypes.BlendFactorZero
	case Xor:
		src, dst = gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorOneMinusSrcAlpha
	default:
		src, dst = gputypes.BlendFactorOne, gputypes.BlendFactorOneMinusSrcAlpha
	}
	return CompositeState{SrcRGB: src, DstRGB: dst, SrcAlpha: src, DstAlpha: dst}
}

// validBlendFactor reports whether f is one of the factors a composite
// state may use.
func validBlendFactor(f BlendFactor) bool {
	return f >= gputypes.BlendFactorZero && f <= gputypes.BlendFactorSrcAlphaSaturated
}

func (cs CompositeState) blend() backend.Blend {
	return backend.Blend{
		SrcRGB:   cs.SrcRGB,
		DstRGB:   cs.DstRGB,
		SrcAlpha: cs.SrcAlpha,
		DstAlpha: cs.DstAlpha,
	}
}
