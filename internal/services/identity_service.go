package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/models"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type userStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type sessionRevocations interface {
	Revoke(ctx context.Context, sessionID, userID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// SessionInvalidator pushes a sign-out to every live socket of a session.
type SessionInvalidator interface {
	InvalidateSession(sessionID string)
}

// Identity is what a verified access token says about the caller.
type Identity struct {
	UserID    string
	Email     string
	SessionID string
	ExpiresAt time.Time
}

type IdentityService struct {
	users       userStore
	revocations sessionRevocations
	invalidator SessionInvalidator
	logger      *zap.Logger
}

func NewIdentityService(
	users userStore,
	revocations sessionRevocations,
	invalidator SessionInvalidator,
	logger *zap.Logger,
) *IdentityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentityService{
		users:       users,
		revocations: revocations,
		invalidator: invalidator,
		logger:      logger,
	}
}

func (s *IdentityService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

// Register stores the role an identity-provider user picked at sign-up.
// The role never changes afterwards: registering again with the same role
// returns the stored user, a different role fails with ErrRoleConflict.
func (s *IdentityService) Register(
	ctx context.Context,
	identity Identity,
	role string,
) (*models.User, bool, error) {
	if identity.UserID == "" {
		return nil, false, ErrUnauthenticated
	}
	parsedRole, ok := models.ParseRole(role)
	if !ok {
		return nil, false, fmt.Errorf("%w: role must be one of: trainee, trainer", ErrInvalidInput)
	}

	existing, err := s.users.GetByID(ctx, identity.UserID)
	if err == nil {
		return s.matchExisting(existing, parsedRole)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	user := &models.User{
		ID:    identity.UserID,
		Email: strings.ToLower(strings.TrimSpace(identity.Email)),
		Role:  parsedRole,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if !isUniqueViolation(err) {
			return nil, false, err
		}
		// Lost a race with a concurrent registration of the same id, or the
		// e-mail belongs to another account.
		existing, getErr := s.users.GetByID(ctx, identity.UserID)
		if getErr != nil {
			return nil, false, ErrRoleConflict
		}
		return s.matchExisting(existing, parsedRole)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, true, nil
}

func (s *IdentityService) matchExisting(existing *models.User, role models.Role) (*models.User, bool, error) {
	if existing.Role != role {
		return nil, false, ErrRoleConflict
	}
	return existing, false, nil
}

// SignOut revokes the caller's session and tells every socket of that
// session to leave. Signing out twice is not an error.
func (s *IdentityService) SignOut(ctx context.Context, identity Identity) error {
	if identity.UserID == "" || identity.SessionID == "" {
		return ErrUnauthenticated
	}
	if err := s.revocations.Revoke(ctx, identity.SessionID, identity.UserID, identity.ExpiresAt); err != nil {
		return err
	}
	if s.invalidator != nil {
		s.invalidator.InvalidateSession(identity.SessionID)
	}
	s.logger.Info("session signed out", zap.String("user_id", identity.UserID), zap.String("session_id", identity.SessionID))
	return nil
}

func (s *IdentityService) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}
	return s.revocations.IsRevoked(ctx, sessionID)
}
