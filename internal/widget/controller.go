package widget

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	apierrors "github.com/diogo/blarrychat/internal/errors"
	"github.com/diogo/blarrychat/internal/models"
)

// Controller translates user intent into rendered messages and requests
type Controller struct {
	log    Log
	input  Input
	send   SendControl
	client Sender

	localLabel     string
	assistantLabel string
	errorLabel     string
	serial         bool
	errorEntries   bool
	logger         zerolog.Logger

	seq     uint64
	pending int
}

// Option configures a Controller
type Option func(*Controller)

// WithLabels sets the sender labels for local and assistant messages
func WithLabels(local, assistant string) Option {
	return func(c *Controller) {
		if local != "" {
			c.localLabel = local
		}
		if assistant != "" {
			c.assistantLabel = assistant
		}
	}
}

// WithSerialSends disables the send control while an exchange is in flight
func WithSerialSends(enabled bool) Option {
	return func(c *Controller) {
		c.serial = enabled
	}
}

// WithErrorEntries renders failed exchanges as entries under the error
// label. Without it a failure is only logged and the local echo stays the
// last entry of the exchange.
func WithErrorEntries(enabled bool) Option {
	return func(c *Controller) {
		c.errorEntries = enabled
	}
}

// WithLogger sets the logger for exchange outcomes
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// New binds a controller to its handles. send may be nil when the front end
// only submits through the confirm key.
func New(log Log, input Input, send SendControl, client Sender, opts ...Option) *Controller {
	if send == nil {
		send = noopControl{}
	}

	c := &Controller{
		log:            log,
		input:          input,
		send:           send,
		client:         client,
		localLabel:     models.LabelLocal,
		assistantLabel: models.LabelAssistant,
		errorLabel:     models.LabelError,
		logger:         zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.send.SetEnabled(true)
	return c
}

// Render appends text under sender to the log and scrolls to the newest entry
func (c *Controller) Render(sender, text string) {
	c.append(models.Message{Sender: sender, Text: text, Kind: c.kindFor(sender)})
}

func (c *Controller) kindFor(sender string) models.Kind {
	switch sender {
	case c.localLabel:
		return models.KindUser
	case c.errorLabel:
		return models.KindError
	default:
		return models.KindAssistant
	}
}

func (c *Controller) append(msg models.Message) {
	msg.Text = plainText(msg.Text)
	c.log.Append(msg)
	c.log.ScrollToBottom()
}

// Submit reads the input and, when it is not blank, echoes it to the log,
// clears the input and returns the exchange to dispatch. It never blocks
// and issues no request itself.
func (c *Controller) Submit() (Exchange, bool) {
	if c.serial && c.pending > 0 {
		return Exchange{}, false
	}

	text := strings.TrimSpace(c.input.Value())
	if text == "" {
		return Exchange{}, false
	}

	c.seq++
	c.pending++

	c.append(models.Message{Sender: c.localLabel, Text: text, Kind: models.KindUser, Seq: c.seq})
	c.input.Clear()

	if c.serial {
		c.send.SetEnabled(false)
	}

	c.logger.Debug().Uint64("seq", c.seq).Int("pending", c.pending).Msg("message submitted")
	return Exchange{Seq: c.seq, Text: text}, true
}

// Dispatch performs the network step for ex. It touches no handle and is
// safe to call from any goroutine.
func (c *Controller) Dispatch(ctx context.Context, ex Exchange) Result {
	reply, err := c.client.SendMessage(ctx, ex.Text)
	if err != nil {
		return Failure(ex.Seq, err)
	}
	if reply == nil {
		return Failure(ex.Seq, apierrors.ErrNoContent)
	}
	return Success(ex.Seq, reply.Text)
}

// Complete renders the outcome of an exchange: the reply under the assistant
// label, or on failure an error entry when enabled. The local echo is never
// withdrawn.
func (c *Controller) Complete(res Result) {
	if c.pending > 0 {
		c.pending--
	}
	if c.serial && c.pending == 0 {
		c.send.SetEnabled(true)
	}

	if !res.OK() {
		c.logger.Warn().Uint64("seq", res.Seq).Err(res.Err).Msg("exchange failed")
		if !c.errorEntries {
			return
		}
		c.append(models.Message{
			Sender: c.errorLabel,
			Text:   describeFailure(res.Err),
			Kind:   models.KindError,
			Seq:    res.Seq,
		})
		return
	}

	c.logger.Debug().Uint64("seq", res.Seq).Int("pending", c.pending).Msg("reply received")
	c.append(models.Message{
		Sender: c.assistantLabel,
		Text:   res.Reply,
		Kind:   models.KindAssistant,
		Seq:    res.Seq,
	})
}

// describeFailure turns an exchange error into the text of an error entry
func describeFailure(err error) string {
	msg := "no reply: " + err.Error()
	if hint := apierrors.Hint(err); hint != "" {
		msg += " (" + hint + ")"
	}
	return msg
}

// Pending returns the number of exchanges submitted but not completed
func (c *Controller) Pending() int {
	return c.pending
}

// Serial reports whether overlapping sends are disabled
func (c *Controller) Serial() bool {
	return c.serial
}

// ErrorEntries reports whether failures are rendered in the log
func (c *Controller) ErrorEntries() bool {
	return c.errorEntries
}

// Labels returns the local and assistant sender labels
func (c *Controller) Labels() (local, assistant string) {
	return c.localLabel, c.assistantLabel
}
