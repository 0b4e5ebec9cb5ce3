package painter

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/gogpu/gg"
)

// Kind identifies one of the fixed shape variants.
type Kind int

const (
	KindLine Kind = iota
	KindCircle
	KindRect
)

// String returns the command keyword of the kind.
func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindCircle:
		return "circle"
	case KindRect:
		return "rect"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// MaxCoord bounds the magnitude of every shape parameter, in screen units.
// Larger values make the stroker's work grow without limit.
const MaxCoord = 1e6

// ErrInvalidGeometry is returned by the shape constructors when a parameter
// is not finite, exceeds MaxCoord, or a size is negative.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Shape is a validated, immutable description of one drawable figure.
// The only implementations are Line, Circle and Rect; all of them are
// comparable values, so two shapes built from the same parameters are ==.
type Shape interface {
	Kind() Kind
	// Draw appends the shape outline to the current path of dc and strokes it.
	Draw(dc *gg.Context) error
	// String returns the command text that produces the shape.
	String() string

	shape()
}

// Line is a straight segment between two points.
type Line struct {
	x1, y1, x2, y2 float64
}

// NewLine validates the endpoints and returns a Line.
func NewLine(x1, y1, x2, y2 float64) (Line, error) {
	if err := bounded(x1, y1, x2, y2); err != nil {
		return Line{}, err
	}
	return Line{x1: x1, y1: y1, x2: x2, y2: y2}, nil
}

// Kind returns KindLine.
func (l Line) Kind() Kind { return KindLine }

// Points returns both endpoints.
func (l Line) Points() (x1, y1, x2, y2 float64) { return l.x1, l.y1, l.x2, l.y2 }

// Draw strokes the segment with the current colour and line width of dc.
func (l Line) Draw(dc *gg.Context) error {
	dc.DrawLine(l.x1, l.y1, l.x2, l.y2)
	return dc.Stroke()
}

// String returns the line command, e.g. "line 0 0 10 10".
func (l Line) String() string { return command(KindLine, l.x1, l.y1, l.x2, l.y2) }

func (Line) shape() {}

// Circle is given by its center and radius.
type Circle struct {
	cx, cy, r float64
}

// NewCircle validates the parameters and returns a Circle. A zero radius is
// allowed and draws nothing visible.
func NewCircle(cx, cy, r float64) (Circle, error) {
	if err := bounded(cx, cy, r); err != nil {
		return Circle{}, err
	}
	if r < 0 {
		return Circle{}, fmt.Errorf("%w: negative radius %v", ErrInvalidGeometry, r)
	}
	return Circle{cx: cx, cy: cy, r: r}, nil
}

// Kind returns KindCircle.
func (c Circle) Kind() Kind { return KindCircle }

// Center returns the center point.
func (c Circle) Center() (x, y float64) { return c.cx, c.cy }

// Radius returns the radius.
func (c Circle) Radius() float64 { return c.r }

// Draw strokes the circle outline on dc.
func (c Circle) Draw(dc *gg.Context) error {
	dc.DrawCircle(c.cx, c.cy, c.r)
	return dc.Stroke()
}

// String returns the circle command, e.g. "circle 10 10 5".
func (c Circle) String() string { return command(KindCircle, c.cx, c.cy, c.r) }

func (Circle) shape() {}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	x, y, w, h float64
}

// NewRect validates the parameters and returns a Rect.
func NewRect(x, y, w, h float64) (Rect, error) {
	if err := bounded(x, y, w, h); err != nil {
		return Rect{}, err
	}
	if w < 0 || h < 0 {
		return Rect{}, fmt.Errorf("%w: negative size %vx%v", ErrInvalidGeometry, w, h)
	}
	return Rect{x: x, y: y, w: w, h: h}, nil
}

// Kind returns KindRect.
func (r Rect) Kind() Kind { return KindRect }

// Origin returns the top-left corner.
func (r Rect) Origin() (x, y float64) { return r.x, r.y }

// Size returns width and height.
func (r Rect) Size() (w, h float64) { return r.w, r.h }

// Draw strokes the rectangle outline on dc.
func (r Rect) Draw(dc *gg.Context) error {
	dc.DrawRectangle(r.x, r.y, r.w, r.h)
	return dc.Stroke()
}

// String returns the rect command, e.g. "rect 0 0 20 20".
func (r Rect) String() string { return command(KindRect, r.x, r.y, r.w, r.h) }

func (Rect) shape() {}

func bounded(vals ...float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %v is not a finite number", ErrInvalidGeometry, v)
		}
		if math.Abs(v) > MaxCoord {
			return fmt.Errorf("%w: %v exceeds %v", ErrInvalidGeometry, v, MaxCoord)
		}
	}
	return nil
}

func command(k Kind, args ...float64) string {
	b := []byte(k.String())
	for _, a := range args {
		b = append(b, ' ')
		b = strconv.AppendFloat(b, a, 'g', -1, 64)
	}
	return string(b)
}
