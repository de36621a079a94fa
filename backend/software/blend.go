package software

import (
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/nvg/backend"
)

// factor returns the blend factor f for channel ch (3 is alpha).
func factor(f gputypes.BlendFactor, src, dst rgba, ch int) float64 {
	switch f {
	case gputypes.BlendFactorZero:
		return 0
	case gputypes.BlendFactorOne:
		return 1
	case gputypes.BlendFactorSrc:
		return src[ch]
	case gputypes.BlendFactorOneMinusSrc:
		return 1 - src[ch]
	case gputypes.BlendFactorSrcAlpha:
		return src[3]
	case gputypes.BlendFactorOneMinusSrcAlpha:
		return 1 - src[3]
	case gputypes.BlendFactorDst:
		return dst[ch]
	case gputypes.BlendFactorOneMinusDst:
		return 1 - dst[ch]
	case gputypes.BlendFactorDstAlpha:
		return dst[3]
	case gputypes.BlendFactorOneMinusDstAlpha:
		return 1 - dst[3]
	case gputypes.BlendFactorSrcAlphaSaturated:
		if ch == 3 {
			return 1
		}
		return min(src[3], 1-dst[3])
	default:
		return 0
	}
}

// blend combines premultiplied src and dst with additive blending.
func blend(b backend.Blend, src, dst rgba) rgba {
	var out rgba
	for ch := 0; ch < 3; ch++ {
		out[ch] = clamp01(src[ch]*factor(b.SrcRGB, src, dst, ch) + dst[ch]*factor(b.DstRGB, src, dst, ch))
	}
	out[3] = clamp01(src[3]*factor(b.SrcAlpha, src, dst, 3) + dst[3]*factor(b.DstAlpha, src, dst, 3))
	return out
}

// blendPixel blends src into the pixel (x, y) of dst.
func blendPixel(dst *image.RGBA, x, y int, b backend.Blend, src rgba) {
	i := dst.PixOffset(x, y)
	p := dst.Pix[i : i+4 : i+4]
	d := rgba{
		float64(p[0]) / 255,
		float64(p[1]) / 255,
		float64(p[2]) / 255,
		float64(p[3]) / 255,
	}
	out := blend(b, src, d)
	for ch := range out {
		p[ch] = uint8(out[ch]*255 + 0.5)
	}
}
