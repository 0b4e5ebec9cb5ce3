package painter

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/gogpu/gg"
)

// Style holds the drawing attributes shared by every shape of a scene.
type Style struct {
	Background color.Color
	Foreground color.Color
	LineWidth  float64
}

// DefaultStyle is black outlines on a white canvas.
var DefaultStyle = Style{
	Background: color.White,
	Foreground: color.Black,
	LineWidth:  2,
}

// Rasterize draws the scene in order onto a new w×h image.
func Rasterize(scene Scene, st Style, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("rasterize: bad canvas size %dx%d", w, h)
	}
	dc := gg.NewContext(w, h)
	defer dc.Close()

	dc.ClearWithColor(gg.FromColor(st.Background))
	dc.SetColor(st.Foreground)
	dc.SetLineWidth(st.LineWidth)
	for i, sh := range scene {
		if err := sh.Draw(dc); err != nil {
			return nil, fmt.Errorf("rasterize: shape %d (%s): %w", i, sh, err)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), dc.Image(), image.Point{}, draw.Src)
	Logger().Debug("scene rasterized", "shapes", len(scene), "width", w, "height", h)
	return img, nil
}

// EncodePNG rasterizes the scene and writes it to out as PNG.
func EncodePNG(out io.Writer, scene Scene, st Style, w, h int) error {
	img, err := Rasterize(scene, st, w, h)
	if err != nil {
		return err
	}
	return png.Encode(out, img)
}
