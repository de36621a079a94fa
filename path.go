package nvg

import (
	"math"

	"github.com/gogpu/nvg/internal/path"
)

// Winding is the orientation of a subpath. Solid subpaths are filled,
// holes are cut out of the solids they overlap.
type Winding int

const (
	// CCW is counter-clockwise winding, used for solid shapes.
	CCW Winding = 1
	// CW is clockwise winding, used for holes.
	CW Winding = 2

	Solid = CCW
	Hole  = CW
)

func (w Winding) String() string {
	switch w {
	case CCW:
		return "Solid"
	case CW:
		return "Hole"
	default:
		return "Unknown"
	}
}

type pathCmdKind uint8

const (
	cmdMoveTo pathCmdKind = iota
	cmdLineTo
	cmdBezierTo
	cmdClose
	cmdWinding
)

// pathCmd is one recorded path command. Points are in screen space.
type pathCmd struct {
	kind    pathCmdKind
	pts     [3]path.Point
	winding Winding
}

// subpath is a flattened subpath in screen space.
type subpath struct {
	points  []path.Point
	closed  bool
	convex  bool
	winding Winding
}

// pathBuilder records path commands. Points are transformed when they are
// recorded, so a transform change mid-path affects only later commands.
type pathBuilder struct {
	cmds []pathCmd

	// Current point and start of the current subpath in user space.
	curX, curY     float64
	startX, startY float64
	open           bool
	subpaths       int

	cache         []subpath
	cacheValid    bool
	cacheTess     float64
	cacheDist     float64
	pointsScratch []path.Point
}

func (pb *pathBuilder) reset() {
	pb.cmds = pb.cmds[:0]
	pb.curX, pb.curY = 0, 0
	pb.startX, pb.startY = 0, 0
	pb.open = false
	pb.subpaths = 0
	pb.cacheValid = false
}

func (pb *pathBuilder) push(c pathCmd) {
	pb.cmds = append(pb.cmds, c)
	pb.cacheValid = false
}

func xformPoint(xf Transform, x, y float64) path.Point {
	px, py := xf.Apply(x, y)
	return path.Point{X: px, Y: py}
}

func (pb *pathBuilder) moveTo(xf Transform, x, y float64) {
	pb.push(pathCmd{kind: cmdMoveTo, pts: [3]path.Point{xformPoint(xf, x, y)}})
	pb.curX, pb.curY = x, y
	pb.startX, pb.startY = x, y
	pb.open = true
	pb.subpaths++
}

// ensureOpen starts an implicit subpath: at the origin after BeginPath,
// or at the first point of the last closed subpath.
func (pb *pathBuilder) ensureOpen(xf Transform) {
	if !pb.open {
		pb.moveTo(xf, pb.startX, pb.startY)
	}
}

func (pb *pathBuilder) lineTo(xf Transform, x, y float64) {
	pb.ensureOpen(xf)
	pb.push(pathCmd{kind: cmdLineTo, pts: [3]path.Point{xformPoint(xf, x, y)}})
	pb.curX, pb.curY = x, y
}

func (pb *pathBuilder) bezierTo(xf Transform, c1x, c1y, c2x, c2y, x, y float64) {
	pb.ensureOpen(xf)
	pb.push(pathCmd{kind: cmdBezierTo, pts: [3]path.Point{
		xformPoint(xf, c1x, c1y),
		xformPoint(xf, c2x, c2y),
		xformPoint(xf, x, y),
	}})
	pb.curX, pb.curY = x, y
}

func (pb *pathBuilder) quadTo(xf Transform, cx, cy, x, y float64) {
	pb.ensureOpen(xf)
	x0, y0 := pb.curX, pb.curY
	pb.bezierTo(xf,
		x0+2.0/3.0*(cx-x0), y0+2.0/3.0*(cy-y0),
		x+2.0/3.0*(cx-x), y+2.0/3.0*(cy-y),
		x, y)
}

func (pb *pathBuilder) closePath() {
	if !pb.open {
		return
	}
	pb.push(pathCmd{kind: cmdClose})
	pb.open = false
	pb.curX, pb.curY = pb.startX, pb.startY
}

func (pb *pathBuilder) setWinding(w Winding) {
	if pb.subpaths == 0 {
		return
	}
	pb.push(pathCmd{kind: cmdWinding, winding: w})
}

// arc appends a circular arc centered at (cx, cy). The first point joins
// the open subpath with a line, or starts a new subpath.
func (pb *pathBuilder) arc(xf Transform, cx, cy, r, a0, a1 float64, dir Winding) {
	da := a1 - a0
	if dir == CW {
		if math.Abs(da) >= 2*math.Pi {
			da = 2 * math.Pi
		} else {
			for da < 0 {
				da += 2 * math.Pi
			}
		}
	} else {
		if math.Abs(da) >= 2*math.Pi {
			da = -2 * math.Pi
		} else {
			for da > 0 {
				da -= 2 * math.Pi
			}
		}
	}

	ndivs := max(1, min(int(math.Abs(da)/(math.Pi*0.5)+0.5), 5))
	hda := (da / float64(ndivs)) / 2
	kappa := math.Abs(4.0 / 3.0 * (1 - math.Cos(hda)) / math.Sin(hda))
	if dir == CCW {
		kappa = -kappa
	}

	var px, py, ptanx, ptany float64
	for i := 0; i <= ndivs; i++ {
		a := a0 + da*(float64(i)/float64(ndivs))
		dy, dx := math.Sincos(a)
		x := cx + dx*r
		y := cy + dy*r
		tanx := -dy * r * kappa
		tany := dx * r * kappa
		switch {
		case i > 0:
			pb.bezierTo(xf, px+ptanx, py+ptany, x-tanx, y-tany, x, y)
		case pb.open:
			pb.lineTo(xf, x, y)
		default:
			pb.moveTo(xf, x, y)
		}
		px, py, ptanx, ptany = x, y, tanx, tany
	}
}

// arcTo fillets the corner at (x1, y1) between the current point and
// (x2, y2). A radius too large for the corner is reduced until the arc's
// tangent points lie on both segments.
func (pb *pathBuilder) arcTo(xf Transform, x1, y1, x2, y2, radius, distTol float64) {
	pb.ensureOpen(xf)
	p0 := path.Point{X: pb.curX, Y: pb.curY}
	p1 := path.Point{X: x1, Y: y1}
	p2 := path.Point{X: x2, Y: y2}

	if p0.Equal(p1, distTol) || p1.Equal(p2, distTol) ||
		distPtSeg(p1, p0, p2) < distTol*distTol || radius < distTol {
		pb.lineTo(xf, x1, y1)
		return
	}

	d0 := p0.Sub(p1)
	d1 := p2.Sub(p1)
	len0, len1 := d0.Length(), d1.Length()
	d0 = d0.Mul(1 / len0)
	d1 = d1.Mul(1 / len1)
	a := math.Acos(math.Max(-1, math.Min(1, d0.Dot(d1))))
	tanHalf := math.Tan(a / 2)
	d := radius / tanHalf
	if limit := math.Min(len0, len1); d > limit {
		d = limit
		radius = d * tanHalf
	}
	if d > 10000 {
		pb.lineTo(xf, x1, y1)
		return
	}

	var cx, cy, a0, a1 float64
	var dir Winding
	if d1.X*d0.Y-d0.X*d1.Y > 0 {
		cx = x1 + d0.X*d + d0.Y*radius
		cy = y1 + d0.Y*d - d0.X*radius
		a0 = math.Atan2(d0.X, -d0.Y)
		a1 = math.Atan2(-d1.X, d1.Y)
		dir = CW
	} else {
		cx = x1 + d0.X*d - d0.Y*radius
		cy = y1 + d0.Y*d + d0.X*radius
		a0 = math.Atan2(-d0.X, d0.Y)
		a1 = math.Atan2(d1.X, -d1.Y)
		dir = CCW
	}
	pb.arc(xf, cx, cy, radius, a0, a1, dir)
}

// distPtSeg returns the squared distance from p to segment pq.
func distPtSeg(p, a, b path.Point) float64 {
	d := b.Sub(a)
	t := d.Dot(p.Sub(a))
	if l := d.Dot(d); l > 0 {
		t /= l
	}
	t = math.Max(0, math.Min(1, t))
	q := a.Add(d.Mul(t)).Sub(p)
	return q.Dot(q)
}

// flatten converts the recorded commands into polylines. Closing points
// that repeat the first point are dropped, and subpath orientation is
// normalized: solid subpaths have positive area, holes negative.
func (pb *pathBuilder) flatten(tessTol, distTol float64) []subpath {
	if pb.cacheValid && pb.cacheTess == tessTol && pb.cacheDist == distTol {
		return pb.cache
	}
	pb.cache = pb.cache[:0]
	add := func(p path.Point) {
		sp := &pb.cache[len(pb.cache)-1]
		if n := len(sp.points); n > 0 && sp.points[n-1].Equal(p, distTol) {
			return
		}
		sp.points = append(sp.points, p)
	}
	for _, c := range pb.cmds {
		switch c.kind {
		case cmdMoveTo:
			pb.cache = append(pb.cache, subpath{winding: Solid})
			add(c.pts[0])
		case cmdLineTo:
			add(c.pts[0])
		case cmdBezierTo:
			sp := &pb.cache[len(pb.cache)-1]
			last := sp.points[len(sp.points)-1]
			pb.pointsScratch = path.AppendCubic(pb.pointsScratch[:0], last, c.pts[0], c.pts[1], c.pts[2], tessTol)
			for _, p := range pb.pointsScratch {
				add(p)
			}
		case cmdClose:
			pb.cache[len(pb.cache)-1].closed = true
		case cmdWinding:
			pb.cache[len(pb.cache)-1].winding = c.winding
		}
	}

	for i := range pb.cache {
		sp := &pb.cache[i]
		if n := len(sp.points); n > 1 && sp.points[0].Equal(sp.points[n-1], distTol) {
			sp.points = sp.points[:n-1]
			sp.closed = true
		}
		if len(sp.points) > 2 {
			area := path.Area(sp.points)
			if (sp.winding == Solid && area < 0) || (sp.winding == Hole && area > 0) {
				path.Reverse(sp.points)
			}
		}
		sp.convex = path.Convex(sp.points)
	}
	pb.cacheValid = true
	pb.cacheTess, pb.cacheDist = tessTol, distTol
	return pb.cache
}

// contains reports whether p is inside the filled path under the nonzero
// rule.
func (pb *pathBuilder) contains(p path.Point, tessTol, distTol float64) bool {
	w := 0
	for _, sp := range pb.flatten(tessTol, distTol) {
		w += path.Winding(sp.points, p)
	}
	return w != 0
}
