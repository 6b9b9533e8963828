// Package svg builds the small SVG documents GNS3 uses for scene drawings.
package svg

import (
	"fmt"
	"strconv"
)

// Rectangle options. Zero values take the defaults from DefaultRectangle.
type Rectangle struct {
	Height      int
	Width       int
	Fill        string
	FillOpacity float64
	Stroke      string
	StrokeWidth int
}

// DefaultRectangle is a 200x100 white box with a black border.
func DefaultRectangle() Rectangle {
	return Rectangle{
		Height:      100,
		Width:       200,
		Fill:        "#ffffff",
		FillOpacity: 1.0,
		Stroke:      "#000000",
		StrokeWidth: 2,
	}
}

// String renders the rectangle.
func (r Rectangle) String() string {
	return fmt.Sprintf(
		`<svg height="%d" width="%d"><rect fill="%s" fill-opacity="%s" height="%d" stroke="%s" stroke-width="%d" width="%d" /></svg>`,
		r.Height, r.Width, r.Fill, num(r.FillOpacity), r.Height, r.Stroke, r.StrokeWidth, r.Width,
	)
}

// Ellipse options.
type Ellipse struct {
	Height      float64
	Width       float64
	CX, CY      int
	Fill        string
	FillOpacity float64
	RX, RY      int
	Stroke      string
	StrokeWidth int
}

// DefaultEllipse is a 200x200 white circle with a black border.
func DefaultEllipse() Ellipse {
	return Ellipse{
		Height:      200,
		Width:       200,
		CX:          100,
		CY:          100,
		Fill:        "#ffffff",
		FillOpacity: 1.0,
		RX:          100,
		RY:          100,
		Stroke:      "#000000",
		StrokeWidth: 2,
	}
}

// String renders the ellipse.
func (e Ellipse) String() string {
	return fmt.Sprintf(
		`<svg height="%s" width="%s"><ellipse cx="%d" cy="%d" fill="%s" fill-opacity="%s" rx="%d" ry="%d" stroke="%s" stroke-width="%d" /></svg>`,
		num(e.Height), num(e.Width), e.CX, e.CY, e.Fill, num(e.FillOpacity), e.RX, e.RY, e.Stroke, e.StrokeWidth,
	)
}

// Line options.
type Line struct {
	Height      int
	Width       int
	X1, X2      int
	Y1, Y2      int
	Stroke      string
	StrokeWidth int
}

// DefaultLine is a horizontal 200 unit black line.
func DefaultLine() Line {
	return Line{
		Width:       200,
		X2:          200,
		Stroke:      "#000000",
		StrokeWidth: 2,
	}
}

// String renders the line.
func (l Line) String() string {
	return fmt.Sprintf(
		`<svg height="%d" width="%d"><line stroke="%s" stroke-width="%d" x1="%d" x2="%d" y1="%d" y2="%d" /></svg>`,
		l.Height, l.Width, l.Stroke, l.StrokeWidth, l.X1, l.X2, l.Y1, l.Y2,
	)
}

// num formats floats the way the GNS3 GUI writes them: 1.0, 0.5, 200.0.
func num(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	for _, c := range s {
		if c == '.' {
			return s
		}
	}
	return s + ".0"
}

// ParsedX converts a grid column to scene X for objects objWidth wide.
func ParsedX(x, objWidth int) int {
	return x * objWidth
}

// ParsedY converts a grid row to scene Y for objects objHeight tall. Rows
// grow upwards while the scene's Y axis points down.
func ParsedY(y, objHeight int) int {
	return (y * objHeight) * -1
}
