package service

import (
	"context"

	"github.com/tagdemo/storefront/internal/core/domain"
	"github.com/tagdemo/storefront/internal/core/ports"
)

// Register creates an account and signs it in. On failure the message is
// kept in State().Error and the error is returned.
func (s *Store) Register(ctx context.Context, email, password, name string) (domain.User, error) {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	s.beginLoading()
	u, err := s.auth.Register(ctx, email, password, name)
	if err != nil {
		s.fail(err)
		return domain.User{}, err
	}
	s.signedIn(u)

	s.tracker.TrackIdentify(u)
	s.tracker.TrackSignup(u)
	return u, nil
}

func (s *Store) Login(ctx context.Context, email, password string) (domain.User, error) {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	s.beginLoading()
	u, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.fail(err)
		return domain.User{}, err
	}
	s.signedIn(u)

	s.tracker.TrackIdentify(u)
	s.tracker.TrackLogin(u)
	return u, nil
}

func (s *Store) Logout(ctx context.Context) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	if err := s.auth.Logout(ctx); err != nil {
		return err
	}
	s.update(func(st *ports.StoreState) {
		st.User = nil
		st.Error = ""
	})
	s.tracker.SetIdentity("")
	return nil
}

// CheckAuth reloads the session from persistence and returns the signed-in
// user, or nil.
func (s *Store) CheckAuth(ctx context.Context) *domain.User {
	u, ok := s.auth.CurrentUser(ctx)
	if !ok {
		s.update(func(st *ports.StoreState) { st.User = nil })
		s.tracker.SetIdentity("")
		return nil
	}
	s.update(func(st *ports.StoreState) {
		cp := u.Clone()
		st.User = &cp
	})
	s.tracker.SetIdentity(u.ID)
	return &u
}

// UpdateAttributes changes the demographics of the signed-in user.
func (s *Store) UpdateAttributes(ctx context.Context, attrs domain.Attributes) (domain.User, error) {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	current := s.State().User
	if current == nil {
		return domain.User{}, domain.ErrNotAuthenticated
	}

	s.beginLoading()
	u, err := s.auth.UpdateAttributes(ctx, current.ID, attrs)
	if err != nil {
		s.fail(err)
		return domain.User{}, err
	}
	s.signedIn(u)

	s.tracker.TrackAttribute(u)
	return u, nil
}

func (s *Store) beginLoading() {
	s.update(func(st *ports.StoreState) {
		st.IsLoading = true
		st.Error = ""
	})
}

func (s *Store) fail(err error) {
	s.logger.Debug().Err(err).Msg("session action failed")
	s.update(func(st *ports.StoreState) {
		st.IsLoading = false
		st.Error = err.Error()
	})
}

func (s *Store) signedIn(u domain.User) {
	s.update(func(st *ports.StoreState) {
		cp := u.Clone()
		st.User = &cp
		st.IsLoading = false
	})
	s.tracker.SetIdentity(u.ID)
}
