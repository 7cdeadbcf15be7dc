package ports

//go:generate mockgen -source=services.go -destination=mocks/services_mock.go -package=mocks

import (
	"context"
	"time"

	"demo-bank/internal/core/domain"
)

// HashService handles one-way password hashing.
type HashService interface {
	Hash(password string) (string, error)
	// Verify compares in constant time. A malformed hash is an error.
	Verify(password string, hash string) (bool, error)
}

// SignatureService signs and verifies cookie payloads.
type SignatureService interface {
	Sign(payload string) string
	Verify(payload string, signature string) bool
}

// SessionStore keeps sessions server-side. Implementations must drop
// sessions once their TTL elapses.
type SessionStore interface {
	Save(ctx context.Context, s *domain.Session, ttl time.Duration) error
	// Get returns nil, nil for unknown or expired tokens.
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}

// --- Service Ports (Business Logic) ---

// AuthService authenticates users and manages their sessions.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	Logout(ctx context.Context, token string) error
	ResolveSession(ctx context.Context, token string) (*domain.Session, error)
}

// AccountService serves read-only account queries.
type AccountService interface {
	GetProfile(ctx context.Context, userID int64) (*domain.User, error)
	GetHistory(ctx context.Context, userID int64) ([]domain.Transaction, error)
}

// TransferService debits the sender and records the ledger entry atomically.
type TransferService interface {
	Transfer(ctx context.Context, req TransferRequest) error
}

// TransferRequest holds the raw transfer input for the session's user.
type TransferRequest struct {
	UserID    int64
	Recipient string
	Amount    string
}
