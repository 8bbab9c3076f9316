package models

import (
	"time"
)

// Ad is a community advertisement record as held by the ad store.
type Ad struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Link      *string   `json:"link,omitempty"` // nil when the submitter gave no link
	Email     string    `json:"-"`
	Paid      bool      `json:"paid"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewAd is the input for creating an ad record.
type NewAd struct {
	Message string
	Link    *string
	Email   string
	Paid    bool
}

// PublicAd is the browser-facing projection of an Ad. Email and link never leave through it.
type PublicAd struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns the browser-facing projection of the ad.
func (a Ad) Public() PublicAd {
	return PublicAd{ID: a.ID, Message: a.Message, CreatedAt: a.CreatedAt}
}

// PublicAds projects a list of ads, preserving order.
func PublicAds(list []Ad) []PublicAd {
	out := make([]PublicAd, 0, len(list))
	for _, a := range list {
		out = append(out, a.Public())
	}
	return out
}
