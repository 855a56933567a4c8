package model

import "time"

// Device is a paired phone or tablet allowed to call the API.
type Device struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	PairedAt  time.Time  `json:"paired_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}
