package font

import (
	"math"
	"slices"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"golang.org/x/text/unicode/bidi"
)

// textRun is a maximal range of items with one bidi level and script.
// start and end index the items; end is exclusive.
type textRun struct {
	start, end int
	level      int
	script     language.Script
}

func (r textRun) rtl() bool {
	return r.level%2 == 1
}

func (r textRun) direction() di.Direction {
	if r.rtl() {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// segment splits items into runs in logical order.
func segment(items []runeItem) []textRun {
	if len(items) == 0 {
		return nil
	}
	runes := make([]rune, len(items))
	for i, it := range items {
		runes[i] = it.r
	}
	levels := bidiLevels(runes)
	scripts := resolveScripts(runes)

	runs := make([]textRun, 0, 4)
	start := 0
	for i := 1; i <= len(runes); i++ {
		if i < len(runes) && levels[i] == levels[start] && scripts[i] == scripts[start] {
			continue
		}
		runs = append(runs, textRun{start: start, end: i, level: levels[start], script: scripts[start]})
		start = i
	}
	return runs
}

// paragraphLevel is 1 when the first strong character is right-to-left.
func paragraphLevel(runes []rune) int {
	for _, r := range runes {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.L:
			return 0
		case bidi.R, bidi.AL:
			return 1
		}
	}
	return 0
}

// bidiLevels returns the embedding level of every rune. Left-to-right
// text inside a right-to-left paragraph gets level 2.
func bidiLevels(runes []rune) []int {
	base := paragraphLevel(runes)
	levels := make([]int, len(runes))
	for i := range levels {
		levels[i] = base
	}
	dir := bidi.LeftToRight
	if base == 1 {
		dir = bidi.RightToLeft
	}
	var p bidi.Paragraph
	if _, err := p.SetString(string(runes), bidi.DefaultDirection(dir)); err != nil {
		return levels
	}
	o, err := p.Order()
	if err != nil {
		logger().Debug("font: bidi ordering failed", "err", err)
		return levels
	}
	// Run positions are rune indices, end inclusive.
	for i := 0; i < o.NumRuns(); i++ {
		run := o.Run(i)
		lvl := base
		switch {
		case run.Direction() == bidi.RightToLeft && base == 0:
			lvl = 1
		case run.Direction() == bidi.LeftToRight && base == 1:
			lvl = 2
		}
		start, end := run.Pos()
		for j := start; j <= end && j < len(levels); j++ {
			levels[j] = lvl
		}
	}
	return levels
}

// resolveScripts assigns every rune a script. Inherited runes take the
// script before them; common runes join the surrounding script.
func resolveScripts(runes []rune) []language.Script {
	scripts := make([]language.Script, len(runes))
	last := language.Common
	for i, r := range runes {
		s := language.LookupScript(r)
		switch s {
		case language.Inherited:
			s = last
		case language.Common:
		default:
			last = s
		}
		scripts[i] = s
	}

	last = language.Common
	for i := range scripts {
		if scripts[i] != language.Common {
			last = scripts[i]
			continue
		}
		next := language.Common
		for _, s := range scripts[i+1:] {
			if s != language.Common {
				next = s
				break
			}
		}
		switch {
		case last != language.Common:
			scripts[i] = last
		case next != language.Common:
			scripts[i] = next
		}
	}
	return scripts
}

// visualOrder returns the indexes of runs from left to right. Every
// maximal sequence at or above each odd-or-higher level is reversed,
// from the highest level down to the lowest odd one.
func visualOrder(runs []textRun) []int {
	order := make([]int, len(runs))
	maxLevel, minOdd := 0, math.MaxInt
	for i, r := range runs {
		order[i] = i
		maxLevel = max(maxLevel, r.level)
		if r.rtl() {
			minOdd = min(minOdd, r.level)
		}
	}
	for lvl := maxLevel; lvl >= minOdd && lvl > 0; lvl-- {
		for i := 0; i < len(order); {
			if runs[order[i]].level < lvl {
				i++
				continue
			}
			j := i
			for j < len(order) && runs[order[j]].level >= lvl {
				j++
			}
			slices.Reverse(order[i:j])
			i = j
		}
	}
	return order
}
