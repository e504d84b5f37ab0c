package widget

// Exchange is one submitted message waiting to be dispatched
type Exchange struct {
	Seq  uint64
	Text string
}

// Result is the outcome of dispatching an Exchange
type Result struct {
	Seq   uint64
	Reply string
	Err   error
}

// Success builds the result of an exchange that got a reply
func Success(seq uint64, reply string) Result {
	return Result{Seq: seq, Reply: reply}
}

// Failure builds the result of an exchange that failed
func Failure(seq uint64, err error) Result {
	return Result{Seq: seq, Err: err}
}

// OK reports whether the exchange produced a reply
func (r Result) OK() bool {
	return r.Err == nil
}
