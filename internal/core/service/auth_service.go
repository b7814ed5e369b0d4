package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tagdemo/storefront/internal/core/domain"
	"github.com/tagdemo/storefront/internal/core/ports"
	"github.com/tagdemo/storefront/internal/pkg/metrics"
)

// AuthService implements registration and login against the local roster.
// Passwords are compared verbatim; this roster must never hold real credentials.
type AuthService struct {
	users   ports.Record[[]domain.StoredUser]
	session ports.Record[domain.User]
	delay   time.Duration
	logger  zerolog.Logger
	now     func() time.Time

	mu sync.Mutex
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(users ports.Record[[]domain.StoredUser], session ports.Record[domain.User], delay time.Duration, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:   users,
		session: session,
		delay:   delay,
		logger:  logger.With().Str("component", "auth").Logger(),
		now:     time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) (domain.User, error) {
	if err := sleep(ctx, s.delay); err != nil {
		return domain.User{}, err
	}
	if email == "" || password == "" || name == "" {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "invalid").Inc()
		return domain.User{}, domain.ErrMissingRegistration
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, _ := s.users.Get(ctx)
	taken := make(map[string]bool, len(users))
	for _, u := range users {
		if u.Email == email {
			metrics.AuthAttemptsTotal.WithLabelValues("register", "duplicate").Inc()
			return domain.User{}, domain.ErrDuplicateEmail
		}
		taken[u.ID] = true
	}

	now := s.now().UTC()
	ms := now.UnixMilli()
	id := "user_" + strconv.FormatInt(ms, 10)
	for taken[id] {
		ms++
		id = "user_" + strconv.FormatInt(ms, 10)
	}

	stored := domain.StoredUser{
		User: domain.User{
			ID:        id,
			Email:     email,
			Name:      name,
			CreatedAt: now,
			Gender:    domain.GenderUnknown,
		},
		Password: password,
	}
	if err := s.users.Set(ctx, append(users, stored)); err != nil {
		return domain.User{}, fmt.Errorf("save user: %w", err)
	}
	if err := s.session.Set(ctx, stored.User); err != nil {
		return domain.User{}, fmt.Errorf("start session: %w", err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "ok").Inc()
	s.logger.Info().Str("user_id", id).Msg("user registered")
	return stored.User.Clone(), nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	if err := sleep(ctx, s.delay); err != nil {
		return domain.User{}, err
	}

	users, _ := s.users.Get(ctx)
	for _, u := range users {
		if u.Email != email || u.Password != password {
			continue
		}
		if err := s.session.Set(ctx, u.User); err != nil {
			return domain.User{}, fmt.Errorf("start session: %w", err)
		}
		metrics.AuthAttemptsTotal.WithLabelValues("login", "ok").Inc()
		s.logger.Info().Str("user_id", u.ID).Msg("user logged in")
		return u.User.Clone(), nil
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid").Inc()
	return domain.User{}, domain.ErrInvalidCredentials
}

// UpdateAttributes merges attrs into the roster entry and, when that user is
// signed in, into the session too.
func (s *AuthService) UpdateAttributes(ctx context.Context, userID string, attrs domain.Attributes) (domain.User, error) {
	if err := sleep(ctx, s.delay); err != nil {
		return domain.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, _ := s.users.Get(ctx)
	idx := -1
	for i, u := range users {
		if u.ID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.User{}, domain.ErrUserNotFound
	}

	users[idx].User = attrs.Apply(users[idx].User)
	if err := s.users.Set(ctx, users); err != nil {
		return domain.User{}, fmt.Errorf("save user: %w", err)
	}

	if current, ok := s.session.Get(ctx); ok && current.ID == userID {
		if err := s.session.Set(ctx, attrs.Apply(current)); err != nil {
			return domain.User{}, fmt.Errorf("update session: %w", err)
		}
	}
	return users[idx].User.Clone(), nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.session.Remove(ctx); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

func (s *AuthService) CurrentUser(ctx context.Context) (domain.User, bool) {
	return s.session.Get(ctx)
}

func (s *AuthService) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.CurrentUser(ctx)
	return ok
}
