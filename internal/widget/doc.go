// Package widget implements the chat widget controller.
//
// A Controller is bound to three UI handles supplied by the front end: a Log
// the messages are appended to, an Input the user types into, and a
// SendControl that triggers submission. The controller never owns a thread:
// Submit, Render and Complete must be called from the front end's UI loop,
// while Dispatch performs the network call and may run anywhere.
//
// A submission goes through three steps:
//
//	ex, ok := c.Submit()          // UI loop: trim, local echo, clear input
//	res := c.Dispatch(ctx, ex)    // any goroutine: one request to /message
//	c.Complete(res)               // UI loop: render reply or error entry
//
// Several exchanges may be in flight at once. Their results are rendered in
// completion order and carry the sequence number of the send they answer.
package widget
