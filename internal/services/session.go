// Package services contains server-side business logic. This file implements
// SessionService, which coordinates sign-up, sign-in, refresh-token rotation,
// and sign-out over the user and refresh-token repositories.
package services

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/mbelkin/storefront/internal/auth"
	"github.com/mbelkin/storefront/internal/common"
	"github.com/mbelkin/storefront/internal/config"
	"github.com/mbelkin/storefront/internal/dbx"
	"github.com/mbelkin/storefront/internal/logging"
	"github.com/mbelkin/storefront/internal/models"
	"github.com/mbelkin/storefront/internal/repositories/refreshtokens"
	"github.com/mbelkin/storefront/internal/repositories/repomanager"
)

const refreshTokenBytes = 64

// SessionService provides the authentication lifecycle:
//   - SignUp: create a user with the default role in one transaction
//   - SignIn: verify credentials and mint a token pair
//   - Refresh: exchange a live refresh token for a new access token,
//     rotating the refresh token when it nears expiry
//   - SignOut: revoke the caller's refresh token
type SessionService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	logger          logging.Logger
	jwtSecret       []byte
	issuer          string
	audience        string
	accessValidity  time.Duration
	refreshValidity time.Duration
	rotationWindow  time.Duration
}

// NewSessionService constructs a SessionService using repositories and
// server config.
func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *SessionService {
	return &SessionService{
		db:              db,
		repomanager:     m,
		logger:          logger.With("module", "session"),
		jwtSecret:       []byte(cfg.SecretKey),
		issuer:          cfg.JWTIssuer,
		audience:        cfg.JWTAudience,
		accessValidity:  cfg.AccessTokenValidityDuration,
		refreshValidity: cfg.RefreshTokenValidityDuration,
		rotationWindow:  cfg.RefreshRotationWindow,
	}
}

// SignUp creates a user record and assigns the default customer role inside
// one read-committed transaction; any failure rolls the whole thing back.
// Panics from the storage layer are converted to a generic failure here, at
// the orchestrator boundary.
func (s *SessionService) SignUp(ctx context.Context, userName, password string) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			s.logger.Error(ctx, "sign-up panic", "panic", p)
			res = fail(http.StatusInternalServerError, "could not create user")
		}
	}()

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return fail(http.StatusInternalServerError, "could not create user")
	}

	opts := &sql.TxOptions{Isolation: sql.LevelReadCommitted}
	err = dbx.WithTx(ctx, s.db, opts, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		user, err := repo.Create(ctx, &models.User{UserName: userName, PasswordHash: hash})
		if err != nil {
			return err
		}
		return repo.AssignRole(ctx, user.ID, models.RoleCustomer)
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return fail(http.StatusConflict, "username is already taken")
		}
		s.logger.Error(ctx, "sign-up failed", "username", userName, "error", err)
		return fail(http.StatusInternalServerError, "could not create user")
	}

	s.logger.Info(ctx, "user registered", "username", userName)
	return succeed(http.StatusCreated, "user registered")
}

// SignIn verifies the credentials and, on success, issues a fresh access and
// refresh token into the caller's session storage. Unknown users and wrong
// passwords are reported identically.
func (s *SessionService) SignIn(ctx context.Context, sctx SessionContext, userName, password string) Result {
	ip := sctx.ClientIP()
	if ip == "" {
		s.logger.Error(ctx, "sign-in refused", "error", common.ErrMissingClientIP)
		return fail(http.StatusInternalServerError, "could not establish session")
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUserName(ctx, userName)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "user lookup failed", "error", err)
			return fail(http.StatusInternalServerError, "could not establish session")
		}
		// same answer as a wrong password, no user enumeration
		return fail(http.StatusUnauthorized, "invalid username or password")
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return fail(http.StatusUnauthorized, "invalid username or password")
	}

	roles, err := repo.GetRoles(ctx, user.ID)
	if err != nil {
		s.logger.Error(ctx, "role lookup failed", "user_id", user.ID, "error", err)
		return fail(http.StatusInternalServerError, "could not establish session")
	}

	now := time.Now()
	access, err := auth.GenerateToken(user.ID, user.UserName, roles, s.jwtSecret, s.tokenParams())
	if err != nil {
		s.logger.Error(ctx, "access token generation failed", "error", err)
		return fail(http.StatusInternalServerError, "could not establish session")
	}

	refresh, expiresAt, err := s.issueRefreshToken(ctx, s.repomanager.RefreshTokens(s.db), user.ID, ip, now)
	if err != nil {
		s.logger.Error(ctx, "refresh token issuance failed", "error", err)
		return fail(http.StatusInternalServerError, "could not establish session")
	}

	sctx.SetAccessToken(access, now.Add(s.accessValidity))
	sctx.SetRefreshToken(refresh, expiresAt)

	s.logger.Info(ctx, "user signed in", "user_id", user.ID)
	return succeed(http.StatusOK, "signed in")
}

// Refresh exchanges the caller's refresh token for a new access token. The
// refresh token itself is reused while it has more than the rotation window
// left; once it enters the window it is revoked and replaced in the same
// transaction.
func (s *SessionService) Refresh(ctx context.Context, sctx SessionContext) Result {
	ip := sctx.ClientIP()
	if ip == "" {
		s.logger.Error(ctx, "refresh refused", "error", common.ErrMissingClientIP)
		return fail(http.StatusInternalServerError, "could not refresh session")
	}

	userID, res := s.callerID(sctx)
	if !res.Succeeded {
		return res
	}

	refreshValue := sctx.RefreshToken()
	if refreshValue == "" {
		return fail(http.StatusUnauthorized, "refresh token missing")
	}

	repo := s.repomanager.RefreshTokens(s.db)
	stored, err := repo.FindByUserAndToken(ctx, userID, refreshValue)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fail(http.StatusUnauthorized, "invalid refresh token")
		}
		s.logger.Error(ctx, "refresh token lookup failed", "error", err)
		return fail(http.StatusInternalServerError, "could not refresh session")
	}

	now := time.Now()
	if !stored.Active(now) {
		return fail(http.StatusUnauthorized, "refresh token expired or revoked")
	}

	currentToken, currentExpiry := stored.Token, stored.ExpiresAt
	if stored.NearExpiry(now, s.rotationWindow) {
		currentToken, currentExpiry, err = s.rotateRefreshToken(ctx, stored, ip, now)
		if err != nil {
			s.logger.Error(ctx, "refresh token rotation failed", "user_id", userID, "error", err)
			return fail(http.StatusInternalServerError, "could not refresh session")
		}
		s.logger.Info(ctx, "refresh token rotated", "user_id", userID)
	}

	usersRepo := s.repomanager.Users(s.db)
	user, err := usersRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "user lookup failed", "user_id", userID, "error", err)
		return fail(http.StatusInternalServerError, "could not refresh session")
	}
	roles, err := usersRepo.GetRoles(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "role lookup failed", "user_id", userID, "error", err)
		return fail(http.StatusInternalServerError, "could not refresh session")
	}

	access, err := auth.GenerateToken(user.ID, user.UserName, roles, s.jwtSecret, s.tokenParams())
	if err != nil {
		s.logger.Error(ctx, "access token generation failed", "error", err)
		return fail(http.StatusInternalServerError, "could not refresh session")
	}

	sctx.SetAccessToken(access, now.Add(s.accessValidity))
	sctx.SetRefreshToken(currentToken, currentExpiry)

	return succeed(http.StatusOK, "session refreshed")
}

// SignOut revokes the caller's refresh token and clears session storage.
// A second sign-out finds the token already revoked and reports failure
// rather than erroring out.
func (s *SessionService) SignOut(ctx context.Context, sctx SessionContext) Result {
	ip := sctx.ClientIP()
	if ip == "" {
		s.logger.Error(ctx, "sign-out refused", "error", common.ErrMissingClientIP)
		return fail(http.StatusInternalServerError, "could not close session")
	}

	userID, res := s.callerID(sctx)
	if !res.Succeeded {
		return res
	}

	refreshValue := sctx.RefreshToken()
	if refreshValue == "" {
		return fail(http.StatusBadRequest, "no active session")
	}

	repo := s.repomanager.RefreshTokens(s.db)
	stored, err := repo.FindByUserAndToken(ctx, userID, refreshValue)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fail(http.StatusBadRequest, "no active session")
		}
		s.logger.Error(ctx, "refresh token lookup failed", "error", err)
		return fail(http.StatusInternalServerError, "could not close session")
	}

	if err := repo.Revoke(ctx, stored.ID, time.Now(), ip, ""); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fail(http.StatusBadRequest, "session already closed")
		}
		s.logger.Error(ctx, "refresh token revocation failed", "error", err)
		return fail(http.StatusInternalServerError, "could not close session")
	}

	sctx.ClearTokens()

	s.logger.Info(ctx, "user signed out", "user_id", userID)
	return succeed(http.StatusOK, "signed out")
}

// --- helpers below ---

func (s *SessionService) tokenParams() auth.TokenParams {
	return auth.TokenParams{Issuer: s.issuer, Audience: s.audience, Validity: s.accessValidity}
}

// callerID identifies the caller from the access token in session storage.
// Expiry is deliberately not enforced: refresh and sign-out must work with an
// access token that has already run out.
func (s *SessionService) callerID(sctx SessionContext) (string, Result) {
	accessValue := sctx.AccessToken()
	if accessValue == "" {
		return "", fail(http.StatusUnauthorized, "access token missing")
	}
	claims, err := auth.ParseTokenAllowExpired(accessValue, s.jwtSecret, s.issuer, s.audience)
	if err != nil {
		return "", fail(http.StatusUnauthorized, "invalid access token")
	}
	return claims.Subject, Result{Succeeded: true}
}

func (s *SessionService) issueRefreshToken(ctx context.Context, repo refreshtokens.Repository, userID, ip string, now time.Time) (string, time.Time, error) {
	value, err := common.MakeOpaqueToken(refreshTokenBytes)
	if err != nil {
		return "", time.Time{}, err
	}
	token := &models.RefreshToken{
		UserID:      userID,
		Token:       value,
		ExpiresAt:   now.Add(s.refreshValidity),
		CreatedByIP: ip,
	}
	if err := repo.Create(ctx, token); err != nil {
		return "", time.Time{}, err
	}
	return value, token.ExpiresAt, nil
}

// rotateRefreshToken persists a replacement token and revokes the old one in
// a single transaction, linking the rows through replaced_by_token.
func (s *SessionService) rotateRefreshToken(ctx context.Context, old *models.RefreshToken, ip string, now time.Time) (string, time.Time, error) {
	var value string
	var expiresAt time.Time

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)
		var err error
		value, expiresAt, err = s.issueRefreshToken(ctx, repoTx, old.UserID, ip, now)
		if err != nil {
			return err
		}
		return repoTx.Revoke(ctx, old.ID, now, ip, value)
	})
	if err != nil {
		return "", time.Time{}, err
	}
	return value, expiresAt, nil
}
