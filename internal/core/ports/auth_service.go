package ports

import (
	"context"

	"github.com/tagdemo/storefront/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, name string) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
	UpdateAttributes(ctx context.Context, userID string, attrs domain.Attributes) (domain.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (domain.User, bool)
	IsAuthenticated(ctx context.Context) bool
}
