// file: model/token.go

package model

import "time"

// RefreshPair is what the client holds between sessions. The ID is a plain
// lookup key; Secret is returned exactly once and only its hash is kept
// server-side.
type RefreshPair struct {
	ID        string    `json:"refresh_token_id"`
	Secret    string    `json:"refresh_token_secret"`
	ExpiresAt time.Time `json:"expires_at"`
}
