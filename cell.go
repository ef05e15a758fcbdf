package main

// === GLYPH ===

// Glyph is the symbolic content of a cell.
type Glyph uint8

const (
	GlyphEmpty Glyph = iota
	GlyphZero
	GlyphOne
)

// String returns the text painted for the glyph.
func (g Glyph) String() string {
	switch g {
	case GlyphZero:
		return "0"
	case GlyphOne:
		return "1"
	default:
		return " "
	}
}

// randomGlyph returns GlyphZero or GlyphOne with equal probability.
func randomGlyph(random Source) Glyph {
	if random.IntN(2) == 0 {
		return GlyphZero
	}
	return GlyphOne
}

// === COLOR ===

// Color is a palette entry, ordered by decreasing intensity.
type Color uint8

const (
	ColorBrightGreen Color = iota
	ColorDarkGreen
	ColorDarkGrey
	ColorBlack
)

// paletteIndex maps palette entries to ANSI 256 color indices.
var paletteIndex = [...]int{
	ColorBrightGreen: 10,
	ColorDarkGreen:   2,
	ColorDarkGrey:    8,
	ColorBlack:       0,
}

// Index returns the ANSI 256 color index of c.
func (c Color) Index() int {
	if int(c) >= len(paletteIndex) {
		return paletteIndex[ColorBlack]
	}
	return paletteIndex[c]
}

func (c Color) String() string {
	switch c {
	case ColorBrightGreen:
		return "bright-green"
	case ColorDarkGreen:
		return "dark-green"
	case ColorDarkGrey:
		return "dark-grey"
	default:
		return "black"
	}
}

// Emphasis is a display attribute layered on top of the color.
type Emphasis uint8

const (
	EmphasisNormal Emphasis = iota
	EmphasisDim
)

// === CELL ===

// Point identifies one terminal cell.
type Point struct {
	Col, Row int
}

// Cell is the rain state of one screen position.
type Cell struct {
	Glyph    Glyph
	Color    Color
	Emphasis Emphasis
	Age      uint8 // 0 blank, 1 head, >1 trailing body
	Lifetime uint8 // ticks the occupancy persists, only meaningful while Age > 0
}

// blankCell is the state every cell starts in and returns to.
var blankCell = Cell{Glyph: GlyphEmpty, Color: ColorBlack, Emphasis: EmphasisNormal}

// Activate lights the cell up as a stream head.
func (c *Cell) Activate(lifetime uint8, glyph Glyph) {
	c.Age = 1
	c.Lifetime = lifetime
	c.Glyph = glyph
	c.Color, c.Emphasis = Shade(c.Age, c.Lifetime)
}

// Advance ages an occupied cell by one tick, resetting it once its lifetime is exceeded.
func (c *Cell) Advance() {
	if c.Age == 0 {
		return
	}
	if c.Age >= c.Lifetime {
		c.Reset()
		return
	}
	c.Age++
	c.Color, c.Emphasis = Shade(c.Age, c.Lifetime)
}

// Reset forces the cell back to the blank state.
func (c *Cell) Reset() {
	*c = blankCell
}

// Occupied reports whether the cell is part of an active stream.
func (c Cell) Occupied() bool {
	return c.Age > 0
}

// Blank reports whether the cell displays as blank.
func (c Cell) Blank() bool {
	return c.Glyph == GlyphEmpty && c.Color == ColorBlack && c.Emphasis == EmphasisNormal
}

// Shade returns the color and emphasis of an occupied cell.
// Both cut points scale with the cell's own lifetime, so streams of
// different lengths fade over the same fraction of their length.
func Shade(age, lifetime uint8) (Color, Emphasis) {
	if age == 0 {
		return ColorBlack, EmphasisNormal
	}
	greenCut := int(lifetime) * 6 / 10 // floor(0.6 * lifetime)
	greyCut := int(lifetime) * 4 / 10  // floor(0.4 * lifetime)

	var color Color
	switch {
	case age == 1:
		color = ColorBrightGreen
	case int(age) <= greenCut:
		color = ColorDarkGreen
	case int(age) <= greyCut:
		color = ColorDarkGrey
	default:
		color = ColorBlack
	}

	emphasis := EmphasisNormal
	if age > 1 && age <= lifetime {
		emphasis = EmphasisDim
	}
	return color, emphasis
}
