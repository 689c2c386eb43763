package outbox

import "context"

// Signal is a one-shot user-visible outcome: either a success message or
// an error message. Signals are not replayable state; an Outbox holds at
// most one undelivered signal and a newer one displaces it.
type Signal struct {
	Err     bool
	Message string
}

func Success(msg string) Signal { return Signal{Message: msg} }
func Error(msg string) Signal   { return Signal{Err: true, Message: msg} }

// Outbox is a single-slot signal queue. Publishing never blocks; if the
// previous signal was never consumed it is dropped in favor of the new one.
type Outbox struct {
	ch chan Signal
}

func New() *Outbox { return &Outbox{ch: make(chan Signal, 1)} }

func (o *Outbox) Publish(s Signal) {
	for {
		select {
		case o.ch <- s:
			return
		default:
			// slot occupied: displace the stale signal
			select {
			case <-o.ch:
			default:
			}
		}
	}
}

// TryRecv returns the pending signal, if any, without blocking.
func (o *Outbox) TryRecv() (Signal, bool) {
	select {
	case s := <-o.ch:
		return s, true
	default:
		return Signal{}, false
	}
}

// Recv blocks until a signal is published or ctx is done.
func (o *Outbox) Recv(ctx context.Context) (Signal, error) {
	select {
	case s := <-o.ch:
		return s, nil
	case <-ctx.Done():
		return Signal{}, ctx.Err()
	}
}
