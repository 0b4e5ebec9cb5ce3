package lang

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ederatone/drawide/painter"
)

// maxBody bounds the size of a posted command buffer.
const maxBody = 1 << 20

// Poster accepts operations for the render loop.
type Poster interface {
	Post(op painter.Operation)
}

// SceneSource exposes the currently displayed scene.
type SceneSource interface {
	Scene() painter.Scene
	Style() painter.Style
	Size() (w, h int)
}

// TextSink receives the complete command buffer whenever a client replaces it.
// The owner of the buffer is responsible for rebuilding the scene from it.
type TextSink func(text string)

// LoopSink returns a TextSink for setups without an editor: each buffer is
// rebuilt and handed straight to p.
func LoopSink(p Poster, b *Builder) TextSink {
	return func(text string) { Submit(p, b, text) }
}

// Submit rebuilds the scene from text and hands it to p as a single batch,
// so the renderer switches from the old scene to the new one in one step.
// An empty result is posted as a Reset.
func Submit(p Poster, b *Builder, text string) (painter.Scene, []LineError) {
	scene, errs := b.Rebuild(text)
	if len(scene) == 0 {
		p.Post(painter.Reset{})
	} else {
		p.Post(painter.OperationList{painter.SetScene{Scene: scene}, painter.UpdateOp{}})
	}
	return scene, errs
}

// HttpHandler serves the command buffer over HTTP.
//
//	POST   the body replaces the complete buffer held by sink
//	GET    PNG of the scene currently on screen
//	DELETE empty the buffer
//
// The POST reply lists the shape count and one diagnostic per malformed line,
// computed with b from the posted text.
func HttpHandler(src SceneSource, b *Builder, sink TextSink) http.HandlerFunc {
	log := painter.Logger().With("component", "http")
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			defer r.Body.Close()
			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
			if err != nil {
				log.Warn("read body", "err", err)
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					http.Error(w, "Command buffer too large", http.StatusRequestEntityTooLarge)
					return
				}
				http.Error(w, "Error reading request body", http.StatusBadRequest)
				return
			}
			text := string(body)
			scene, errs := b.Rebuild(text)
			sink(text)
			log.Info("buffer submitted", "shapes", len(scene), "errors", len(errs))

			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "shapes: %d\n", len(scene))
			for _, e := range errs {
				fmt.Fprintln(w, e.Error())
			}

		case http.MethodGet:
			width, height := src.Size()
			w.Header().Set("Content-Type", "image/png")
			if err := painter.EncodePNG(w, src.Scene(), src.Style(), width, height); err != nil {
				log.Error("encode png", "err", err)
				http.Error(w, "Error rendering scene", http.StatusInternalServerError)
			}

		case http.MethodDelete:
			sink("")
			w.WriteHeader(http.StatusNoContent)

		default:
			log.Warn("method not allowed", "method", r.Method)
			w.Header().Set("Allow", "GET, POST, DELETE")
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}
