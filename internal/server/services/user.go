// Package services contains server-side business logic. This file implements
// UserService: credential verification and token issuance, profile lookup,
// the roster listing, and the single write path that changes a user's status.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/teamboard/internal/common"
	"github.com/dmitrijs2005/teamboard/internal/server/auth"
	"github.com/dmitrijs2005/teamboard/internal/server/config"
	"github.com/dmitrijs2005/teamboard/internal/server/models"
	"github.com/dmitrijs2005/teamboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/teamboard/internal/server/security"
)

// LoginResult bundles the authenticated user with a freshly minted token.
type LoginResult struct {
	User  *models.User
	Token string
}

// UserService provides user-related operations:
// - Login: verify credentials and mint a bearer token
// - GetByID: resolve a live user record (used by the auth gate and /me)
// - ListUsers: the roster, optionally filtered by resolved status name
// - UpdateStatus: change a user's status after validating the target status
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	hasher                *security.Hasher
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		hasher:                security.NewHasher(cfg.BcryptCost),
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Login verifies the password against the stored bcrypt hash and, on success,
// returns the user with a token valid for the configured window. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username string, password []byte) (*LoginResult, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, user.Username, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &LoginResult{User: user, Token: token}, nil
}

// GetByID resolves the user against live store state. The auth gate calls
// this on every request so a deleted user is rejected even with a valid token.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	return repo.GetByID(ctx, id)
}

// ListUsers returns the roster ordered by id. A non-empty statusName keeps
// only users whose resolved status name equals it exactly.
func (s *UserService) ListUsers(ctx context.Context, statusName string) ([]*models.User, error) {
	repo := s.repomanager.Users(s.db)
	return repo.List(ctx, statusName)
}

// UpdateStatus changes the user's status to statusID.
//
// The status row is looked up before the write so a bad id surfaces as
// common.ErrInvalidStatus rather than a store-level constraint violation.
// A zero-row update means the user vanished between auth and mutation and
// yields common.ErrorNotFound, distinguishable from the status check.
func (s *UserService) UpdateStatus(ctx context.Context, userID, statusID int64) (*models.User, error) {
	if statusID <= 0 {
		return nil, common.ErrorValidation
	}

	status, err := s.repomanager.Statuses(s.db).GetByID(ctx, statusID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidStatus
		}
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).UpdateStatus(ctx, userID, statusID)
	if err != nil {
		return nil, err
	}

	// attach the resolved name so the caller can render without a re-fetch
	user.StatusName = &status.Name
	return user, nil
}
