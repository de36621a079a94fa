package backend

import "github.com/gogpu/gputypes"

// Point is a vertex position in logical screen units.
type Point struct {
	X, Y float64
}

// Vertex is a textured triangle vertex. U and V are normalized texture
// coordinates.
type Vertex struct {
	X, Y, U, V float64
}

// Affine is a 2x3 matrix (a, b, c, d, e, f) mapping
// x' = a*x + c*y + e, y' = b*x + d*y + f.
type Affine [6]float64

// IdentityAffine returns the identity matrix.
func IdentityAffine() Affine {
	return Affine{1, 0, 0, 1, 0, 0}
}

// Apply transforms (x, y).
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Invert returns the inverse matrix, or false when m is singular.
func (m Affine) Invert() (Affine, bool) {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-6 && det < 1e-6 {
		return Affine{}, false
	}
	inv := 1 / det
	return Affine{
		m[3] * inv,
		-m[1] * inv,
		-m[2] * inv,
		m[0] * inv,
		(m[2]*m[5] - m[3]*m[4]) * inv,
		(m[1]*m[4] - m[0]*m[5]) * inv,
	}, true
}

// Color is a premultiplied RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Paint holds resolved paint uniforms.
//
// Xform maps paint space to screen space. A fragment at screen position p
// is evaluated at q = Xform⁻¹(p): the distance d from the rounded
// rectangle of half-size Extent and corner Radius is computed and the
// color is Inner mixed into Outer over clamp(d/Feather + 0.5), or by the
// sign of d when Feather is 0. Image paints sample Image at q / Extent
// and modulate by Inner.
type Paint struct {
	Xform   Affine
	Extent  [2]float64
	Radius  float64
	Feather float64
	Inner   Color
	Outer   Color
	Image   TextureID
}

// Scissor is a transformed clip rectangle. Xform maps scissor space to
// screen space; the clip covers |q| <= Extent in scissor space. A negative
// Extent[0] means no scissor.
type Scissor struct {
	Xform  Affine
	Extent [2]float64
}

// NoScissor returns an unset scissor.
func NoScissor() Scissor {
	return Scissor{Xform: IdentityAffine(), Extent: [2]float64{-1, -1}}
}

// Enabled reports whether the scissor clips.
func (s Scissor) Enabled() bool {
	return s.Extent[0] >= 0
}

// Blend holds separate color and alpha blend factors.
type Blend struct {
	SrcRGB   gputypes.BlendFactor
	DstRGB   gputypes.BlendFactor
	SrcAlpha gputypes.BlendFactor
	DstAlpha gputypes.BlendFactor
}

// State converts b into a gputypes.BlendState with additive operations.
func (b Blend) State() gputypes.BlendState {
	return gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: b.SrcRGB,
			DstFactor: b.DstRGB,
			Operation: gputypes.BlendOperationAdd,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: b.SrcAlpha,
			DstFactor: b.DstAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
	}
}

// LineCap specifies the shape of open stroke endpoints.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// LineJoin specifies the shape of stroke corners.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// Path is one flattened subpath in screen units. Fill paths have their
// orientation normalized: solid subpaths are counter-clockwise and holes
// clockwise, so the nonzero rule yields the intended holes.
type Path struct {
	Points []Point
	Closed bool
	Convex bool
	Hole   bool
}

// FillCall fills the union of Paths with the nonzero rule.
type FillCall struct {
	Paint     Paint
	Blend     Blend
	Scissor   Scissor
	Fringe    float64
	Antialias bool
	Paths     []Path
}

// StrokeCall strokes every path of Paths.
type StrokeCall struct {
	Paint      Paint
	Blend      Blend
	Scissor    Scissor
	Fringe     float64
	Antialias  bool
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	Paths      []Path
}

// GlyphMode tells the backend how to interpret atlas texels.
type GlyphMode int

const (
	// GlyphNone marks plain textured triangles.
	GlyphNone GlyphMode = iota
	// GlyphBitmap samples coverage from the red channel.
	GlyphBitmap
	// GlyphSDF samples a single-channel distance field.
	GlyphSDF
	// GlyphMSDF samples a multi-channel distance field (median of RGB).
	GlyphMSDF
	// GlyphColor samples premultiplied color texels.
	GlyphColor
)

func (m GlyphMode) String() string {
	switch m {
	case GlyphNone:
		return "None"
	case GlyphBitmap:
		return "Bitmap"
	case GlyphSDF:
		return "SDF"
	case GlyphMSDF:
		return "MSDF"
	case GlyphColor:
		return "Color"
	default:
		return "Unknown"
	}
}

// TrianglesCall draws a triangle list, three vertices per triangle. When
// Mode is not GlyphNone, the paint color is modulated by Texture sampled
// at the vertex texture coordinates.
type TrianglesCall struct {
	Paint   Paint
	Blend   Blend
	Scissor Scissor
	Mode    GlyphMode
	Texture TextureID
	Verts   []Vertex
}
