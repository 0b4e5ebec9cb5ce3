package lang_test

import (
	"bytes"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/ederatone/drawide/painter"
	"github.com/ederatone/drawide/painter/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCanvas applies posted operations to a State without a screen.
type fakeCanvas struct {
	mu    sync.Mutex
	posts []painter.Operation
	state painter.State
}

func newFakeCanvas() *fakeCanvas {
	return &fakeCanvas{state: painter.State{Style: painter.DefaultStyle, Width: 64, Height: 48}}
}

func (c *fakeCanvas) Post(op painter.Operation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts = append(c.posts, op)
	op.Do(&c.state, nil)
}

func (c *fakeCanvas) Scene() painter.Scene {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Scene
}

func (c *fakeCanvas) Style() painter.Style { return c.state.Style }
func (c *fakeCanvas) Size() (int, int)     { return c.state.Width, c.state.Height }

func TestHttpHandler_Post(t *testing.T) {
	c := newFakeCanvas()
	b := lang.NewBuilder()
	h := lang.HttpHandler(c, b, lang.LoopSink(c, b))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("circle 10 10 5\nblah\nrect 0 0 20 20\n"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "shapes: 2\n"), body)
	assert.Contains(t, body, "line 2:")

	require.Len(t, c.posts, 1)
	assert.IsType(t, painter.OperationList{}, c.posts[0])
	assert.Equal(t, painter.Scene{circle(t, 10, 10, 5), rect(t, 0, 0, 20, 20)}, c.Scene())
}

func TestHttpHandler_PostReplacesScene(t *testing.T) {
	c := newFakeCanvas()
	b := lang.NewBuilder(lang.WithCache(true))
	h := lang.HttpHandler(c, b, lang.LoopSink(c, b))

	for _, text := range []string{"circle 1 1 1\ncircle 2 2 2", "line 0 0 1 1"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(text)))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, painter.Scene{line(t, 0, 0, 1, 1)}, c.Scene())
}

func TestHttpHandler_Get(t *testing.T) {
	c := newFakeCanvas()
	c.Post(painter.SetScene{Scene: painter.Scene{rect(t, 4, 4, 10, 10)}})
	b := lang.NewBuilder()
	h := lang.HttpHandler(c, b, lang.LoopSink(c, b))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}

func TestHttpHandler_Delete(t *testing.T) {
	c := newFakeCanvas()
	c.Post(painter.SetScene{Scene: painter.Scene{circle(t, 1, 1, 1)}})
	b := lang.NewBuilder()
	h := lang.HttpHandler(c, b, lang.LoopSink(c, b))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, c.Scene())
	assert.IsType(t, painter.Reset{}, c.posts[len(c.posts)-1])
}

func TestHttpHandler_PostGoesToSink(t *testing.T) {
	c := newFakeCanvas()
	var got []string
	h := lang.HttpHandler(c, lang.NewBuilder(), func(text string) { got = append(got, text) })

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("rect 0 0 20 20\nnope")))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "shapes: 1\nline 2: unknown command \"nope\"\n", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, []string{"rect 0 0 20 20\nnope", ""}, got)
	assert.Empty(t, c.posts, "the sink owns the buffer, the handler posts nothing itself")
}

func TestHttpHandler_PostTooLarge(t *testing.T) {
	c := newFakeCanvas()
	called := false
	h := lang.HttpHandler(c, lang.NewBuilder(), func(string) { called = true })

	body := strings.Repeat("circle 1 1 1\n", (1<<20)/13+1)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.False(t, called)
}

func TestHttpHandler_MethodNotAllowed(t *testing.T) {
	c := newFakeCanvas()
	b := lang.NewBuilder()
	h := lang.HttpHandler(c, b, lang.LoopSink(c, b))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, POST, DELETE", rec.Header().Get("Allow"))
}
