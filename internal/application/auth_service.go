package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-todo-api/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-todo-api/internal/domain/repository"
)

// maxPasswordBytes is the longest input bcrypt will hash.
const maxPasswordBytes = 72

// fallbackMissHash is a well-formed bcrypt hash compared against when the
// configured hasher cannot produce a dummy hash of its own.
const fallbackMissHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type AuthService struct {
	Users    repo.UserRepository
	Hasher   PasswordHasher
	Tokens   TokenIssuer
	Notifier Notifier // optional
	Logger   logrus.FieldLogger

	// dummyHash is compared against when the email is unknown so a miss
	// costs as much as a wrong password.
	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users repo.UserRepository, hasher PasswordHasher, tokens TokenIssuer, notifier Notifier, logger logrus.FieldLogger) *AuthService {
	return &AuthService{
		Users:    users,
		Hasher:   hasher,
		Tokens:   tokens,
		Notifier: notifier,
		Logger:   logger,
	}
}

// Token is a signed bearer token and its expiry.
type Token struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Signup registers a new user. The returned user carries no usable secret;
// PasswordHash is excluded from serialization.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*entity.User, error) {
	existing, err := s.Users.GetByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, ErrEmailTaken
	case err != nil && !errors.Is(err, repo.ErrNotFound):
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}

	if len(password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, maxPasswordBytes)
	}
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{Email: email, PasswordHash: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		// lost the race against a concurrent signup; the unique index decides
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	counters.Add(metricSignups, 1)

	if s.Notifier != nil {
		if nErr := s.Notifier.Welcome(ctx, u); nErr != nil && s.Logger != nil {
			s.Logger.WithError(nErr).WithField("user_id", u.ID).Warn("welcome notification failed")
		}
	}
	return u, nil
}

// ValidateCredentials returns the user when email and password match.
// ok is false for an unknown email or a wrong password; err is reserved for
// store failures.
func (s *AuthService) ValidateCredentials(ctx context.Context, email, password string) (u *entity.User, ok bool, err error) {
	u, err = s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		s.Hasher.Compare(s.missHash(), password)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup user by email: %w", err)
	}
	if !s.Hasher.Compare(u.PasswordHash, password) {
		return nil, false, nil
	}
	return u, true, nil
}

// Login issues a bearer token for an already validated user.
func (s *AuthService) Login(ctx context.Context, u *entity.User) (Token, error) {
	access, exp, err := s.Tokens.Generate(u.ID, u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return Token{}, fmt.Errorf("generate access token: %w", err)
	}
	return Token{AccessToken: access, ExpiresAt: exp}, nil
}

// Authenticate validates credentials and issues a token. Unknown email and
// wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (Token, error) {
	u, ok, err := s.ValidateCredentials(ctx, email, password)
	if err != nil {
		return Token{}, err
	}
	if !ok {
		counters.Add(metricLoginsFailed, 1)
		return Token{}, ErrInvalidCredentials
	}
	tok, err := s.Login(ctx, u)
	if err != nil {
		return Token{}, err
	}
	counters.Add(metricLoginsOK, 1)
	return tok, nil
}

func (s *AuthService) missHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.Hasher.Hash("not-a-real-password")
		if err != nil {
			if s.Logger != nil {
				s.Logger.WithError(err).Warn("dummy password hash failed, using fallback")
			}
			h = fallbackMissHash
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
