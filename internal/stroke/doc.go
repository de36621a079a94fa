// Package stroke expands stroked polylines into fillable polygons.
//
// A stroke is emitted as a set of positively oriented pieces: one quad per
// segment, plus join and cap geometry. Filled together with the nonzero
// rule the pieces form the stroke outline, so no boolean union is needed.
//
// # Line Caps
//
//   - CapButt: flat cap ending exactly at the endpoint
//   - CapRound: semicircular cap with radius = width/2
//   - CapSquare: square cap extending width/2 beyond the endpoint
//
// # Line Joins
//
//   - JoinMiter: sharp corner, falls back to bevel past the miter limit
//   - JoinRound: circular arc at corners
//   - JoinBevel: straight line across the corner
//
// # Usage
//
//	style := stroke.Style{Width: 2, Cap: stroke.CapRound, Join: stroke.JoinMiter, MiterLimit: 10}
//	polys := stroke.Expand(nil, pts, false, style, 0.25)
package stroke
