package interfaces

import (
	"context"

	"facilitator/domain"
)

// RegistrationStore is an ordered, deduplicated queue of client registrations.
//
//go:generate moq -stub -out mock/store.go -pkg mock . RegistrationStore
type RegistrationStore interface {
	// Add appends endpoint to the tail unless an equal endpoint is already queued.
	// Returns:
	// 1) (true, nil) when the endpoint was appended;
	// 2) (false, nil) when an equal endpoint is already present (the store is unchanged);
	// 3) (false, internal_server_error) when the backing storage fails.
	Add(ctx context.Context, endpoint domain.Endpoint) (bool, error)

	// Take removes and returns the oldest endpoint. It never waits for a future Add.
	// Returns:
	// 1) (endpoint, true, nil) when an endpoint was dequeued;
	// 2) (zero, false, nil) when the store is empty;
	// 3) (zero, false, internal_server_error) when the backing storage fails.
	Take(ctx context.Context) (domain.Endpoint, bool, error)

	// Size returns the number of queued endpoints. The value may be stale as soon as it is read.
	Size(ctx context.Context) (int, error)
}
