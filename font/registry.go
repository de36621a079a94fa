package font

import (
	"errors"
	"fmt"
	"os"

	"github.com/gogpu/nvg/internal/handle"
)

// ID identifies a font. The zero ID is never a valid font.
type ID uint64

// InvalidID is returned when a font cannot be created or found.
const InvalidID ID = 0

// Valid reports whether id is structurally valid.
func (id ID) Valid() bool { return id != InvalidID }

// MaxFallbacks bounds the fallback chain of a single font.
const MaxFallbacks = 20

// Mode selects how a font's glyphs are rendered into the atlas.
type Mode int

const (
	// ModeBitmap stores antialiased coverage.
	ModeBitmap Mode = iota
	// ModeSDF stores a signed distance field.
	ModeSDF
	// ModeMSDF stores a multi-channel signed distance field.
	ModeMSDF
)

func (m Mode) String() string {
	switch m {
	case ModeBitmap:
		return "Bitmap"
	case ModeSDF:
		return "SDF"
	case ModeMSDF:
		return "MSDF"
	default:
		return "Unknown"
	}
}

// entry is a loaded font.
type entry struct {
	name      string
	data      []byte
	owned     bool
	faceIndex int
	face      Face
	mode      Mode
	fallbacks []ID
}

// Info describes a loaded font.
type Info struct {
	Name      string
	FaceIndex int
	Mode      Mode
	Owned     bool
	Fallbacks []ID
}

// Registry owns the fonts of one rendering context. It is not safe for
// concurrent use.
type Registry struct {
	parser   Parser
	fonts    handle.Arena[*entry]
	names    map[string]ID
	emoji    ID
	sdf      bool
	msdf     bool
	color    bool
	shaping  bool
	shaper   *shaper
	fields   FieldGenerator
	atlas    *Atlas
	maxAtlas int
	glyphs   map[glyphKey]atlasGlyph
}

// Option configures a Registry.
type Option func(*Registry)

// WithParser replaces the default sfnt parser.
func WithParser(p Parser) Option {
	return func(r *Registry) { r.parser = p }
}

// WithSDF enables ModeSDF.
func WithSDF(enabled bool) Option {
	return func(r *Registry) { r.sdf = enabled }
}

// WithMSDF enables ModeMSDF.
func WithMSDF(enabled bool) Option {
	return func(r *Registry) { r.msdf = enabled }
}

// WithColorGlyphs enables color bitmap glyphs from fonts that carry them.
func WithColorGlyphs(enabled bool) Option {
	return func(r *Registry) { r.color = enabled }
}

// WithShaping enables HarfBuzz shaping of same-font runs.
func WithShaping(enabled bool) Option {
	return func(r *Registry) { r.shaping = enabled }
}

// WithFieldGenerator sets the generator used for SDF and MSDF glyphs.
// Without one, distance-field fonts fall back to coverage bitmaps.
func WithFieldGenerator(g FieldGenerator) Option {
	return func(r *Registry) { r.fields = g }
}

// WithAtlasSize sets the initial and maximum atlas page size.
func WithAtlasSize(initial, maximum int) Option {
	return func(r *Registry) {
		if initial > 0 {
			r.atlas = newAtlas(initial, initial)
		}
		if maximum > 0 {
			r.maxAtlas = maximum
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		parser:   SFNTParser{},
		names:    make(map[string]ID),
		maxAtlas: DefaultMaxAtlasSize,
		glyphs:   make(map[glyphKey]atlasGlyph),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.atlas == nil {
		r.atlas = newAtlas(DefaultAtlasSize, DefaultAtlasSize)
	}
	if r.shaping {
		r.shaper = newShaper()
	}
	return r
}

// Create loads the font file at path.
func (r *Registry) Create(name, path string, faceIndex int) (ID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return InvalidID, &LoadError{Name: name, Index: faceIndex, Err: err}
	}
	return r.CreateMem(name, data, true, faceIndex)
}

// CreateMem loads a font from data. When owned is true the registry takes
// ownership of data; otherwise the caller must keep data unchanged until
// the font is deleted.
func (r *Registry) CreateMem(name string, data []byte, owned bool, faceIndex int) (ID, error) {
	face, err := r.parser.Parse(data, faceIndex)
	if err != nil {
		return InvalidID, &LoadError{Name: name, Index: faceIndex, Err: err}
	}
	return r.add(name, face, data, owned, faceIndex), nil
}

// AddFace registers an already parsed face.
func (r *Registry) AddFace(name string, face Face) ID {
	return r.add(name, face, nil, false, 0)
}

func (r *Registry) add(name string, face Face, data []byte, owned bool, faceIndex int) ID {
	id := ID(r.fonts.Insert(&entry{
		name:      name,
		data:      data,
		owned:     owned,
		faceIndex: faceIndex,
		face:      face,
	}))
	if _, exists := r.names[name]; !exists {
		r.names[name] = id
	}
	logger().Debug("font: created", "name", name, "id", id, "face", faceIndex)
	return id
}

// Find returns the font registered under name, or InvalidID. Find never
// creates a font.
func (r *Registry) Find(name string) ID {
	id, ok := r.names[name]
	if !ok {
		return InvalidID
	}
	return id
}

func (r *Registry) get(id ID) *entry {
	e, ok := r.fonts.Get(handle.ID(id))
	if !ok {
		return nil
	}
	return e
}

// Contains reports whether id is a live font.
func (r *Registry) Contains(id ID) bool {
	return r.get(id) != nil
}

// Info returns a description of id.
func (r *Registry) Info(id ID) (Info, error) {
	e := r.get(id)
	if e == nil {
		return Info{}, ErrInvalidHandle
	}
	return Info{
		Name:      e.name,
		FaceIndex: e.faceIndex,
		Mode:      e.mode,
		Owned:     e.owned,
		Fallbacks: append([]ID(nil), e.fallbacks...),
	}, nil
}

// Face returns the parsed face of id.
func (r *Registry) Face(id ID) (Face, error) {
	e := r.get(id)
	if e == nil {
		return nil, ErrInvalidHandle
	}
	return e.face, nil
}

// Delete removes id from the registry and from every fallback chain.
func (r *Registry) Delete(id ID) error {
	e, ok := r.fonts.Remove(handle.ID(id))
	if !ok {
		return ErrInvalidHandle
	}
	if r.names[e.name] == id {
		delete(r.names, e.name)
		for other, oe := range r.fonts.All() {
			if oe.name == e.name {
				r.names[e.name] = ID(other)
				break
			}
		}
	}
	for _, oe := range r.fonts.All() {
		oe.fallbacks = removeID(oe.fallbacks, id)
	}
	if r.emoji == id {
		r.emoji = InvalidID
	}
	for k := range r.glyphs {
		if k.font == id {
			delete(r.glyphs, k)
		}
	}
	if e.owned {
		e.data = nil
	}
	logger().Debug("font: deleted", "name", e.name, "id", id)
	return nil
}

func removeID(ids []ID, id ID) []ID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// AddFallback appends fallback to the chain of base. Adding a font that
// is already in the chain is a no-op.
func (r *Registry) AddFallback(base, fallback ID) error {
	be := r.get(base)
	if be == nil || r.get(fallback) == nil {
		return ErrInvalidHandle
	}
	if base == fallback || r.reaches(fallback, base) {
		return fmt.Errorf("%w: %s -> %s", ErrFallbackCycle, be.name, r.get(fallback).name)
	}
	for _, f := range be.fallbacks {
		if f == fallback {
			return nil
		}
	}
	if len(be.fallbacks) >= MaxFallbacks {
		return ErrTooManyFallbacks
	}
	be.fallbacks = append(be.fallbacks, fallback)
	return nil
}

// AddFallbackByName resolves both names and calls AddFallback.
func (r *Registry) AddFallbackByName(base, fallback string) error {
	b, f := r.Find(base), r.Find(fallback)
	if !b.Valid() || !f.Valid() {
		return fmt.Errorf("%w: %q -> %q", ErrInvalidHandle, base, fallback)
	}
	return r.AddFallback(b, f)
}

// reaches reports whether target is reachable from start through
// fallback chains.
func (r *Registry) reaches(start, target ID) bool {
	seen := map[ID]bool{}
	stack := []ID{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == target {
			return true
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		if e := r.get(id); e != nil {
			stack = append(stack, e.fallbacks...)
		}
	}
	return false
}

// ResetFallbacks clears the fallback chain of id.
func (r *Registry) ResetFallbacks(id ID) error {
	e := r.get(id)
	if e == nil {
		return ErrInvalidHandle
	}
	e.fallbacks = nil
	return nil
}

// SetMode changes the rendering mode of id. Distance-field modes must
// have been enabled with WithSDF or WithMSDF.
func (r *Registry) SetMode(id ID, mode Mode) error {
	e := r.get(id)
	if e == nil {
		return ErrInvalidHandle
	}
	switch mode {
	case ModeBitmap:
	case ModeSDF:
		if !r.sdf {
			return fmt.Errorf("%w: %s", ErrModeUnavailable, mode)
		}
	case ModeMSDF:
		if !r.msdf {
			return fmt.Errorf("%w: %s", ErrModeUnavailable, mode)
		}
	default:
		return fmt.Errorf("%w: %d", ErrModeUnavailable, int(mode))
	}
	if e.mode != mode {
		e.mode = mode
		for k := range r.glyphs {
			if k.font == id {
				delete(r.glyphs, k)
			}
		}
	}
	return nil
}

// Mode returns the rendering mode of id.
func (r *Registry) Mode(id ID) (Mode, error) {
	e := r.get(id)
	if e == nil {
		return ModeBitmap, ErrInvalidHandle
	}
	return e.mode, nil
}

// SetEmoji sets the font consulted after every fallback chain. Pass
// InvalidID to clear it.
func (r *Registry) SetEmoji(id ID) error {
	if id.Valid() && r.get(id) == nil {
		return ErrInvalidHandle
	}
	r.emoji = id
	return nil
}

// Emoji returns the emoji font, or InvalidID.
func (r *Registry) Emoji() ID {
	return r.emoji
}

// Len returns the number of loaded fonts.
func (r *Registry) Len() int {
	return r.fonts.Len()
}

// Resolve finds the font that maps ru, starting at base. It returns base
// and the missing glyph when no font in the chain covers ru.
func (r *Registry) Resolve(base ID, ru rune) (ID, GlyphID, error) {
	e := r.get(base)
	if e == nil {
		return InvalidID, 0, ErrInvalidHandle
	}
	if g, ok := e.face.Glyph(ru); ok {
		return base, g, nil
	}
	seen := map[ID]bool{base: true}
	if id, g, ok := r.resolveFallbacks(e, ru, seen); ok {
		return id, g, nil
	}
	if r.emoji.Valid() && !seen[r.emoji] {
		if ee := r.get(r.emoji); ee != nil {
			if g, ok := ee.face.Glyph(ru); ok {
				return r.emoji, g, nil
			}
		}
	}
	return base, 0, nil
}

func (r *Registry) resolveFallbacks(e *entry, ru rune, seen map[ID]bool) (ID, GlyphID, bool) {
	for _, fid := range e.fallbacks {
		if seen[fid] {
			continue
		}
		seen[fid] = true
		fe := r.get(fid)
		if fe == nil {
			continue
		}
		if g, ok := fe.face.Glyph(ru); ok {
			return fid, g, true
		}
		if id, g, ok := r.resolveFallbacks(fe, ru, seen); ok {
			return id, g, true
		}
	}
	return InvalidID, 0, false
}

// Close deletes every font.
func (r *Registry) Close() error {
	var errs []error
	for id := range r.fonts.All() {
		if err := r.Delete(ID(id)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
