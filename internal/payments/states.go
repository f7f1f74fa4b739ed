package payments

// State is the payment orchestration state for one checkout attempt
type State string

const (
	StateNone            State = "NONE"
	StateInitiating      State = "INITIATING"
	StateAwaitingGateway State = "AWAITING_GATEWAY"
	StateVerifying       State = "VERIFYING"
	StateConfirmed       State = "CONFIRMED"
	StateFailed          State = "FAILED"
	StateCancelled       State = "CANCELLED"
)

// Terminal reports whether the state ends the attempt. A failed attempt is
// retried by re-entering INITIATING with a fresh intent, never by resending
// a stale proof.
func (s State) Terminal() bool {
	switch s {
	case StateConfirmed, StateFailed, StateCancelled:
		return true
	}
	return false
}
