package constants

import "fmt"

// Persistent client-state keys. The checkout pipeline keeps the auth token,
// the most recent selected-seats backup, and per-draft pending-payment
// markers. Token and backup live under fixed well-known keys; the backup is a
// single-draft artifact, so last writer wins.
// Pattern: busbook:{concern}:{identifier?}

const (
	// KeyAuthToken stores the bearer token for upstream calls.
	KeyAuthToken = "busbook:auth:token"

	// KeySeatBackup stores the selected-seats snapshot written when seats
	// are confirmed. Read only when a step arrives without its seat payload.
	KeySeatBackup = "busbook:checkout:seat_backup"
)

// PaymentPendingKey marks an in-flight payment initiation for a draft.
// A second initiate for the same draft is rejected while the key exists.
func PaymentPendingKey(tripID, fromStopID, toStopID string) string {
	return fmt.Sprintf("busbook:payment:pending:%s:%s:%s", tripID, fromStopID, toStopID)
}
