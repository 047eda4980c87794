package models

import (
	"time"

	"github.com/dmitrijs2005/timekeeper/internal/optional"
)

type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Address   *string   `json:"address"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientInput is the create payload. Pointers mark required fields that
// may be missing from the request.
type ClientInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"is_active"`
}

// Build materializes a validated input into a new Client.
func (in ClientInput) Build(id string, now time.Time) *Client {
	return &Client{
		ID:        id,
		Name:      deref(in.Name, ""),
		Email:     deref(in.Email, ""),
		Phone:     in.Phone,
		Address:   in.Address,
		IsActive:  deref(in.IsActive, true),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type ClientPatch struct {
	Name     optional.Value[string] `json:"name"`
	Email    optional.Value[string] `json:"email"`
	Phone    optional.Value[string] `json:"phone"`
	Address  optional.Value[string] `json:"address"`
	IsActive optional.Value[bool]   `json:"is_active"`
}

// Fields returns only the attributes present in the patch.
func (p ClientPatch) Fields() map[string]any {
	f := map[string]any{}
	put(f, "name", p.Name)
	put(f, "email", p.Email)
	put(f, "phone", p.Phone)
	put(f, "address", p.Address)
	put(f, "is_active", p.IsActive)
	return f
}
