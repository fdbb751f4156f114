package services

import (
	"context"
	"crypto/rand"
	"culinary-calc/backend/app/cache"
	"culinary-calc/backend/app/models"
	"culinary-calc/backend/app/repo"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultBcryptCost is the work factor used when none is configured.
const DefaultBcryptCost = 12

// TokenSource mints opaque bearer secrets for new sessions.
type TokenSource interface {
	NewToken() (string, error)
}

type AuthOptions struct {
	BcryptCost int
	SessionTTL time.Duration
	// Now defaults to time.Now in UTC.
	Now func() time.Time
	// Stats is cleared when a user is created. May be nil.
	Stats *cache.StatsCache
}

type NewUser struct {
	Name     string
	Email    string
	Password string
	// Role defaults to models.RoleUser when empty.
	Role models.Role
}

// AuthService owns credentials and sessions. Logical failures (unknown
// email, wrong password, expired session) come back as nil results;
// only storage failures are returned as errors.
type AuthService struct {
	users     *repo.UserRepository
	sessions  *repo.SessionRepository
	tokens    TokenSource
	cost      int
	ttl       time.Duration
	now       func() time.Time
	stats     *cache.StatsCache
	dummyHash []byte
}

func NewAuthService(users *repo.UserRepository, sessions *repo.SessionRepository, tokens TokenSource, opts AuthOptions) (*AuthService, error) {
	s := &AuthService{users: users, sessions: sessions, tokens: tokens, cost: opts.BcryptCost, ttl: opts.SessionTTL, now: opts.Now, stats: opts.Stats}
	if s.cost == 0 {
		s.cost = DefaultBcryptCost
	}
	if s.cost < bcrypt.MinCost || s.cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range", s.cost)
	}
	if s.ttl <= 0 {
		s.ttl = 7 * 24 * time.Hour
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	// compared against when the email is unknown so both failure paths pay for one bcrypt run
	secret := make([]byte, 24)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword(secret, s.cost)
	if err != nil {
		return nil, err
	}
	s.dummyHash = hash
	return s, nil
}

// SessionTTL is how long a freshly created session stays valid.
func (s *AuthService) SessionTTL() time.Duration { return s.ttl }

func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword treats every failure, including a malformed hash, as a mismatch.
func (s *AuthService) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *AuthService) CreateUser(ctx context.Context, in NewUser) (*models.User, error) {
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, models.ErrInvalidRole)
	}
	count, err := s.users.CountByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateEmail
	}
	hash, err := s.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &models.User{Name: in.Name, Email: in.Email, PasswordHash: hash, Role: role, IsActive: true}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	invalidateStats(ctx, s.stats)
	return u, nil
}

// AuthenticateUser returns nil, nil for an unknown email, an inactive
// account, or a wrong password alike.
func (s *AuthService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.users.FindActiveByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, nil
	}
	if !s.VerifyPassword(password, u.PasswordHash) {
		return nil, nil
	}
	return u, nil
}

func (s *AuthService) GenerateToken() (string, error) { return s.tokens.NewToken() }

// CreateSession issues a new token for userID valid for SessionTTL.
// Side effect: the user's already expired sessions are deleted first.
// Other live sessions of the same user are left alone.
func (s *AuthService) CreateSession(ctx context.Context, userID string) (string, error) {
	token, err := s.GenerateToken()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	now := s.now()
	if _, err := s.sessions.DeleteExpired(ctx, userID, now); err != nil {
		return "", fmt.Errorf("purge expired sessions: %w", err)
	}
	sess := &models.Session{UserID: userID, Token: token, ExpiresAt: now.Add(s.ttl)}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

// ValidateSession never extends the expiry.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}
	return s.sessions.FindUser(ctx, token, s.now())
}

// DeleteSession is idempotent.
func (s *AuthService) DeleteSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteByToken(ctx, token)
}

// GetUserByID returns nil, nil for unknown or inactive users.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.FindActiveByID(ctx, id)
}

// EnsureAdmin creates the bootstrap administrator unless the email is
// already taken or no credentials are configured.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	_, err := s.CreateUser(ctx, NewUser{Name: name, Email: email, Password: password, Role: models.RoleAdmin})
	if errors.Is(err, ErrDuplicateEmail) {
		return nil
	}
	return err
}
