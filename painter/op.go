package painter

import (
	"image"
	"image/draw"

	"golang.org/x/exp/shiny/screen"
)

// Operation defines an interface for commands that modify the loop state.
// It returns true if the texture was updated and requires a screen update.
type Operation interface {
	Do(s *State, t screen.Texture) (updated bool)
}

// State holds the current drawing state managed by the loop.
type State struct {
	Style
	Scene         Scene
	Width, Height int

	buf screen.Buffer // staging area for uploads to the texture
}

// OperationList groups multiple operations so they are applied in one batch.
type OperationList []Operation

// Do applies every operation in order and reports whether any of them
// updated the texture.
func (ol OperationList) Do(s *State, t screen.Texture) (updated bool) {
	for _, o := range ol {
		if o.Do(s, t) {
			updated = true
		}
	}
	return updated
}

// SetScene replaces the whole scene. The previous scene is dropped, never merged.
type SetScene struct {
	Scene Scene
}

// Do swaps in the new scene. It does not repaint by itself.
func (op SetScene) Do(s *State, _ screen.Texture) bool {
	Logger().Debug("scene replaced", "old", len(s.Scene), "new", len(op.Scene))
	s.Scene = op.Scene
	return false
}

// UpdateOp rasterizes the state and uploads the result to the texture.
type UpdateOp struct{}

// Do draws the current scene into the staging buffer and uploads it to t.
// It returns false when nothing could be drawn.
func (op UpdateOp) Do(s *State, t screen.Texture) bool {
	if s.buf == nil {
		Logger().Warn("update skipped: loop has no staging buffer")
		return false
	}
	img, err := Rasterize(s.Scene, s.Style, s.Width, s.Height)
	if err != nil {
		Logger().Error("update failed", "err", err)
		return false
	}
	dst := s.buf.RGBA()
	draw.Draw(dst, dst.Bounds(), img, image.Point{}, draw.Src)
	t.Upload(image.Point{}, s.buf, s.buf.Bounds())
	return true
}

// Reset clears the scene and repaints the empty canvas.
type Reset struct{}

// Do empties the scene and repaints.
func (op Reset) Do(s *State, t screen.Texture) bool {
	s.Scene = nil
	return UpdateOp{}.Do(s, t)
}
