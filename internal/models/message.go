package models

// Kind classifies an entry in the message log
type Kind int

const (
	KindUser Kind = iota
	KindAssistant
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindAssistant:
		return "assistant"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Message represents one rendered line of the chat log.
// Seq ties a local echo to the reply or failure of the same exchange;
// it is zero for entries rendered outside an exchange.
type Message struct {
	Sender string
	Text   string
	Kind   Kind
	Seq    uint64
}
