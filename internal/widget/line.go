package widget

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/diogo/blarrychat/internal/models"
)

// WriterLog is a Log that prints each entry as "sender: text" on its own line
type WriterLog struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterLog creates a WriterLog writing to w
func NewWriterLog(w io.Writer) *WriterLog {
	return &WriterLog{w: w}
}

// Append implements Log
func (l *WriterLog) Append(msg models.Message) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "%s: %s\n", msg.Sender, msg.Text)
}

// ScrollToBottom implements Log; a stream is always at its bottom
func (l *WriterLog) ScrollToBottom() {}

// LineInput is an Input holding the line most recently read
type LineInput struct {
	value string
}

// Set replaces the current value, as if the user had typed it
func (i *LineInput) Set(value string) {
	i.value = value
}

// Value implements Input
func (i *LineInput) Value() string {
	return i.value
}

// Clear implements Input
func (i *LineInput) Clear() {
	i.value = ""
}

// RunLines drives c from r, treating every line as typed text followed by
// the confirm key. The calling goroutine acts as the UI loop: it is the only
// one touching c and its handles, while dispatches run concurrently.
// It returns once r is exhausted and every exchange has completed, or when
// ctx is cancelled.
func RunLines(ctx context.Context, c *Controller, input *LineInput, r io.Reader) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	results := make(chan Result)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	var wg sync.WaitGroup
	defer wg.Wait()

	dispatch := func(ex Exchange) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := c.Dispatch(ctx, ex)
			select {
			case results <- res:
			case <-ctx.Done():
			}
		}()
	}

	eof := false
	for !eof || c.Pending() > 0 {
		// A nil channel blocks forever: stop reading after EOF, and while a
		// serial controller is waiting for its reply.
		in := lines
		if eof || (c.Serial() && c.Pending() > 0) {
			in = nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case line, ok := <-in:
			if !ok {
				eof = true
				continue
			}
			input.Set(line)
			if ex, ok := c.Submit(); ok {
				dispatch(ex)
			}

		case res := <-results:
			c.Complete(res)
		}
	}

	select {
	case err := <-readErr:
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	default:
	}
	return nil
}
