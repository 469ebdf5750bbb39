package domain

import (
	"context"
	"time"
)

// Params is an open mapping of query parameters. Nil, empty-string and nil-pointer
// values are dropped before the request is sent.
type Params map[string]any

// CatalogRepository: Network operations against the remote catalog (implemented by
// source adapters)
type CatalogRepository interface {
	// FetchCatalogPage calls a list endpoint and normalizes its results, using assumed
	// as the media kind when the payload omits one
	FetchCatalogPage(ctx context.Context, endpoint string, params Params, assumed MediaKind) (*Page, error)

	// FetchSuggestions calls the multi search endpoint and keeps movie, tv and person results
	FetchSuggestions(ctx context.Context, query string) ([]Suggestion, error)

	// FetchJSON calls a flat-object endpoint and decodes it into dest
	FetchJSON(ctx context.Context, endpoint string, params Params, dest any) error
}

// SlotStore is a named-slot byte store. Each slot holds one serialized document that is
// rewritten as a whole.
type SlotStore interface {
	// Init prepares the backing storage
	Init() error

	// Read returns the slot contents; ok is false when the slot has never been written
	Read(slot string) (data []byte, ok bool, err error)

	// Write replaces the slot contents
	Write(slot string, data []byte) error

	// Delete removes the slot; deleting a missing slot is not an error
	Delete(slot string) error

	Close() error
}

// User is the signed-in identity
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	SignedInAt  time.Time `json:"signed_in_at"`
}

// IdentityProvider is the opaque sign-in collaborator
type IdentityProvider interface {
	CurrentUser() (User, bool)
	SignIn(ctx context.Context, displayName string) (User, error)
	SignOut() error
}
