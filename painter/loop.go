package painter

import (
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/shiny/screen"
)

// Receiver defines an interface for components that can receive and display textures.
type Receiver interface {
	Update(t screen.Texture)
}

// MessageQueue is a thread-safe queue of operations.
type MessageQueue struct {
	mu  sync.Mutex
	ops []Operation
	ch  chan struct{} // one pending signal at most
}

// NewMessageQueue creates a new message queue.
func NewMessageQueue() *MessageQueue {
	return &MessageQueue{ch: make(chan struct{}, 1)}
}

// Push adds an operation to the queue and signals availability.
func (mq *MessageQueue) Push(op Operation) {
	mq.mu.Lock()
	mq.ops = append(mq.ops, op)
	mq.mu.Unlock()

	select {
	case mq.ch <- struct{}{}:
	default:
	}
}

// Pull retrieves and clears all operations currently in the queue.
func (mq *MessageQueue) Pull() []Operation {
	mq.mu.Lock()
	ops := mq.ops
	mq.ops = nil
	mq.mu.Unlock()
	return ops
}

// Wait returns a channel that signals when new operations might be available.
func (mq *MessageQueue) Wait() <-chan struct{} {
	return mq.ch
}

// Loop owns the drawing state and applies posted operations on a single goroutine.
type Loop struct {
	Receiver Receiver
	Mq       *MessageQueue

	state     *State
	published atomic.Pointer[Scene]

	stop    chan struct{}
	stopped chan struct{}
}

// NewLoop creates a loop drawing on a width×height canvas with the given style.
func NewLoop(r Receiver, width, height int, st Style) *Loop {
	l := &Loop{
		Receiver: r,
		Mq:       NewMessageQueue(),
		state: &State{
			Style:  st,
			Width:  width,
			Height: height,
		},
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	l.published.Store(&Scene{})
	return l
}

// Start allocates the texture and staging buffer on s and runs the event
// processing goroutine. The empty canvas is painted once on start.
func (l *Loop) Start(s screen.Screen) error {
	size := image.Pt(l.state.Width, l.state.Height)
	tx, err := s.NewTexture(size)
	if err != nil {
		return fmt.Errorf("painter: create texture: %w", err)
	}
	buf, err := s.NewBuffer(size)
	if err != nil {
		tx.Release()
		return fmt.Errorf("painter: create buffer: %w", err)
	}
	l.state.buf = buf

	go func() {
		defer close(l.stopped)
		defer func() {
			tx.Release()
			buf.Release()
			Logger().Debug("loop resources released")
		}()

		for {
			select {
			case <-l.stop:
				return
			case <-l.Mq.Wait():
				ops := l.Mq.Pull()
				if len(ops) == 0 {
					continue
				}
				var needsUpdate bool
				for _, op := range ops {
					if op.Do(l.state, tx) {
						needsUpdate = true
					}
				}
				sc := l.state.Scene
				l.published.Store(&sc)

				if needsUpdate && l.Receiver != nil {
					l.Receiver.Update(tx)
				}
			}
		}
	}()

	l.Post(UpdateOp{})
	Logger().Info("painter loop started", "width", size.X, "height", size.Y)
	return nil
}

// Post adds an operation to the message queue for processing.
func (l *Loop) Post(op Operation) {
	l.Mq.Push(op)
}

// Stop signals the event loop goroutine to terminate and waits for it.
func (l *Loop) Stop() {
	close(l.stop)
	<-l.stopped
	Logger().Info("painter loop stopped")
}

// Scene returns the scene as of the last processed batch of operations. The
// slice is swapped atomically, so callers never observe a half-replaced scene.
func (l *Loop) Scene() Scene {
	return *l.published.Load()
}

// Style returns the loop's drawing style.
func (l *Loop) Style() Style {
	return l.state.Style
}

// Size returns the canvas size in pixels.
func (l *Loop) Size() (w, h int) {
	return l.state.Width, l.state.Height
}
