package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Mostofa-Abedin/trello/internal/core/domain"
	"github.com/Mostofa-Abedin/trello/internal/core/ports"
	"github.com/Mostofa-Abedin/trello/internal/pkg/metrics"
)

// UserService implements registration and user read-back.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	cache  ports.UserViewCache // nil disables caching
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, cache ports.UserViewCache, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, cache: cache, log: log}
}

// Register builds a candidate user from the input and persists it.
//
// Name and email are copied verbatim. A non-empty password is replaced by its
// digest; an absent or empty one leaves the hash unset and storage decides.
// Constraint violations come back as *domain.ConstraintViolation untouched.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.UserView, error) {
	candidate := &domain.User{
		Name:  in.Name,
		Email: in.Email,
	}

	if in.Password != nil && *in.Password != "" {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			metrics.RegistrationsTotal.WithLabelValues(registrationOutcome(err)).Inc()
			return nil, fmt.Errorf("register: hash password: %w", err)
		}
		candidate.PasswordHash = &hash
	}

	created, err := s.repo.Create(ctx, candidate)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registrationOutcome(err)).Inc()
		var violation *domain.ConstraintViolation
		if errors.As(err, &violation) {
			s.log.Info().
				Str("kind", string(violation.Kind)).
				Str("field", violation.Field).
				Msg("registration rejected by storage constraint")
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}
	metrics.RegistrationsTotal.WithLabelValues(metrics.OutcomeCreated).Inc()

	view := domain.NewUserView(created)
	s.cacheView(ctx, view)

	s.log.Info().Int64("user_id", view.ID).Msg("user registered")
	return &view, nil
}

// User returns the view of a single user, consulting the cache first.
func (s *UserService) User(ctx context.Context, id int64) (*domain.UserView, error) {
	if s.cache != nil {
		view, ok, err := s.cache.Get(ctx, id)
		switch {
		case err != nil:
			metrics.UserViewCacheTotal.WithLabelValues(metrics.CacheError).Inc()
			s.log.Warn().Err(err).Int64("user_id", id).Msg("user view cache read failed, falling back to storage")
		case ok:
			metrics.UserViewCacheTotal.WithLabelValues(metrics.CacheHit).Inc()
			return view, nil
		default:
			metrics.UserViewCacheTotal.WithLabelValues(metrics.CacheMiss).Inc()
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}

	view := domain.NewUserView(user)
	s.cacheView(ctx, view)
	return &view, nil
}

// Users returns a page of user views ordered by id.
func (s *UserService) Users(ctx context.Context, limit, offset int) ([]domain.UserView, error) {
	users, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return domain.NewUserViews(users), nil
}

func (s *UserService) cacheView(ctx context.Context, view domain.UserView) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, view); err != nil {
		s.log.Warn().Err(err).Int64("user_id", view.ID).Msg("failed to cache user view")
	}
}

func registrationOutcome(err error) string {
	if errors.Is(err, domain.ErrPasswordTooLong) {
		return metrics.OutcomePasswordTooLong
	}
	var violation *domain.ConstraintViolation
	if !errors.As(err, &violation) {
		return metrics.OutcomeError
	}
	if violation.Kind == domain.ViolationUnique {
		return metrics.OutcomeDuplicate
	}
	return metrics.OutcomeMissingField
}
