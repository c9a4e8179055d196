package interfaces

import "github.com/google/uuid"

// EventSink receives fire-and-forget business events describing completed
// state transitions. Emission must never fail the calling operation.
type EventSink interface {
	Emit(event string, payload map[string]interface{}, actorID *uuid.UUID)
}

// Business event names emitted by the seller lifecycle service
const (
	EventSellerRegistered  = "seller_registered"
	EventSellerApproved    = "seller_approved"
	EventSellerRejected    = "seller_rejected"
	EventSellerSuspended   = "seller_suspended"
	EventSellerReactivated = "seller_reactivated"
	EventSellerDeleted     = "seller_deleted"
)
