package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	apierrors "github.com/diogo/blarrychat/internal/errors"
	"github.com/diogo/blarrychat/internal/widget"
)

// errExchangeFailed reports a send whose failure was already rendered
var errExchangeFailed = errors.New("message was not answered")

// Gradient colors for animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#ff6b6b"), // Red
	lipgloss.Color("#feca57"), // Yellow
	lipgloss.Color("#48dbfb"), // Cyan
	lipgloss.Color("#ff9ff3"), // Pink
	lipgloss.Color("#54a0ff"), // Blue
	lipgloss.Color("#5f27cd"), // Purple
	lipgloss.Color("#00d2d3"), // Teal
	lipgloss.Color("#1dd1a1"), // Green
}

var (
	colorText     = lipgloss.Color("#c0caf5")
	colorTextDim  = lipgloss.Color("#565f89")
	colorTextMute = lipgloss.Color("#3b4261")
	colorSuccess  = lipgloss.Color("#9ece6a")
	colorError    = lipgloss.Color("#f7768e")
)

// spinner handles the animated loading indicator
type spinner struct {
	out     io.Writer
	enabled bool
	message string
	stopCh  chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool // Flag to prevent double-close
}

// newSpinner creates a new animated spinner writing to out. A disabled
// spinner draws nothing, so pipes and logs stay clean.
func newSpinner(out io.Writer, enabled bool, message string) *spinner {
	return &spinner{
		out:     out,
		enabled: enabled,
		message: message,
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	if !s.enabled {
		close(s.done)
		return
	}

	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stopCh:
				// Clear line and show cursor
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *spinner) render() {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	barChars := []string{"█", "█", "█", "█", "█", "█", "▓", "▒", "░"}

	spinIdx := s.frame % len(chars)
	spinColor := gradientColors[s.frame%len(gradientColors)]
	spinnerChar := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	barWidth := 16
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		colorIdx := (i + s.frame) % len(gradientColors)
		charIdx := (i + s.frame/2) % len(barChars)
		style := lipgloss.NewStyle().Foreground(gradientColors[colorIdx])
		bar.WriteString(style.Render(barChars[charIdx]))
	}

	var dots strings.Builder
	numDots := (s.frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dotColor := gradientColors[(s.frame+i)%len(gradientColors)]
			dots.WriteString(lipgloss.NewStyle().Foreground(dotColor).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	msg := lipgloss.NewStyle().Foreground(colorText).Render(s.message)

	fmt.Fprintf(s.out, "\r\033[K%s %s %s %s", spinnerChar, bar.String(), msg, dots.String())
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stopCh)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and shows success message
func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	if !s.enabled {
		return
	}
	checkmark := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(message)
	fmt.Fprintf(s.out, "%s %s\n", checkmark, msg)
}

// stop clears the spinner line
func (s *spinner) stop() {
	s.stopOnce()
	<-s.done
}

// stopWithError stops the spinner and leaves the line clear for the error
func (s *spinner) stopWithError() {
	s.stop()
}

// runOnce sends a single message through a line-mode controller, so the
// one-shot output matches the log: the local echo, then the reply or, when
// error entries are on, the error entry. Either way a failure exits non-zero.
func runOnce(ctx context.Context, deps *Dependencies, sess *session, text string) error {
	input := &widget.LineInput{}
	input.Set(text)
	c := sess.controller(deps.Stdout, input)

	ex, ok := c.Submit()
	if !ok {
		return fmt.Errorf("nothing to send: %w", apierrors.ErrEmptyMessage)
	}

	spin := newSpinner(deps.Stderr, deps.Spinner, "Waiting for Blarry")
	spin.start()
	res := c.Dispatch(ctx, ex)
	if res.OK() {
		spin.stop()
	} else {
		spin.stopWithError()
	}

	c.Complete(res)
	if !res.OK() {
		if c.ErrorEntries() {
			return fmt.Errorf("%w: %w", errExchangeFailed, res.Err)
		}
		return fmt.Errorf("send failed: %w", res.Err)
	}

	if sess.cfg.CopyToClipboard {
		copyReply(deps, res.Reply)
	}
	return nil
}

// copyReply copies a reply and reports the outcome on Stderr
func copyReply(deps *Dependencies, text string) {
	if err := deps.Clipboard(text); err != nil {
		warnMsg := lipgloss.NewStyle().Foreground(colorError).Render(
			fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
		)
		fmt.Fprintln(deps.Stderr, warnMsg)
		return
	}
	clipMsg := lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard")
	fmt.Fprintln(deps.Stderr, clipMsg)
}

// formatErrorMessage formats an error with additional context from structured errors
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}

	errorStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s: %v", context, err)))

	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	if endpoint := apierrors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	if hint := apierrors.Hint(err); hint != "" {
		sb.WriteString(dimStyle.Render("\n  Hint: " + hint))
	}

	return sb.String()
}
