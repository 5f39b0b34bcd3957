// Package session keeps login sessions: an opaque random token mapped to the
// account it was issued for.
package session

import (
	"context"
	"time"

	"github.com/dmitrijs2005/siteback/internal/common"
)

// TokenBytes is the amount of randomness in a token; the token itself is its
// hex encoding, 48 characters long.
const TokenBytes = 24

// Session is what a token resolves to.
type Session struct {
	AccountID int64     `json:"account_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Store maps tokens to sessions. Implementations are safe for concurrent use.
//
// Resolve returns common.ErrorNotFound for unknown tokens and
// common.ErrSessionExpired for tokens past their lifetime; callers treat both
// as "not logged in". Destroy of an unknown token succeeds.
type Store interface {
	Create(ctx context.Context, accountID int64) (string, error)
	Resolve(ctx context.Context, token string) (int64, error)
	Destroy(ctx context.Context, token string) error
	// Sweep drops expired sessions and reports how many were removed.
	Sweep(ctx context.Context) (int, error)
	Len(ctx context.Context) (int, error)
}

func newToken() (string, error) {
	return common.MakeRandHexString(TokenBytes)
}
