package interfaces

import (
	"context"

	"github.com/google/uuid"
)

// UserValidator checks that a referenced user exists and is active in the
// external user service. A confirmed missing or inactive user returns
// (false, nil); only a failure to reach the user service returns an error.
type UserValidator interface {
	ValidateUser(ctx context.Context, userID uuid.UUID) (bool, error)
}
