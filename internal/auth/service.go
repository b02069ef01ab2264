package auth

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"

	"github.com/taskhive/taskhive/internal/access"
	"github.com/taskhive/taskhive/internal/audit"
)

// Auditor records security events. Satisfied by *audit.Recorder.
type Auditor interface {
	Record(ctx context.Context, actorID int64, action, detail string)
}

// Service wraps authentication business rules: registration, login and
// the refresh-token lifecycle.
type Service struct {
	repo       Repository
	codec      *access.Codec
	sessions   *RefreshStore
	auditor    Auditor
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewService constructs a new Service.
func NewService(repo Repository, codec *access.Codec, sessions *RefreshStore, auditor Auditor, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		repo:       repo,
		codec:      codec,
		sessions:   sessions,
		auditor:    auditor,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Register creates an account. A nil role means the caller omitted the
// field and gets the default user role; a present role has already been
// parsed strictly by the payload layer.
func (s *Service) Register(ctx context.Context, username, email, password string, role *access.Role) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	newRole := access.RoleUser
	if role != nil {
		newRole = *role
	}
	return s.repo.CreateUser(ctx, norm.NFC.String(username), email, string(hash), newRole)
}

// Login validates credentials and issues an access/refresh token pair.
// The access token carries the catalog permissions for the user's role;
// without them the token could never pass a gated route.
func (s *Service) Login(ctx context.Context, email, password, ip, ua string) (*User, TokenPair, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.auditor.Record(ctx, user.ID, audit.ActionLoginFailed, "wrong password")
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issuePair(ctx, user, ip, ua)
	if err != nil {
		return nil, TokenPair{}, err
	}
	s.auditor.Record(ctx, user.ID, audit.ActionLogin, ip)
	return user, pair, nil
}

// Refresh rotates a refresh token: the presented one is consumed and a
// fresh pair is issued. A consumed, revoked or expired token yields
// ErrSessionUnknown.
func (s *Service) Refresh(ctx context.Context, refreshToken, ip, ua string) (TokenPair, error) {
	userID, err := s.sessions.Take(ctx, refreshToken)
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.repo.DeleteSession(ctx, refreshToken); err != nil {
		return TokenPair{}, err
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return TokenPair{}, ErrSessionUnknown
	}
	if !user.IsActive {
		return TokenPair{}, ErrSessionUnknown
	}
	pair, err := s.issuePair(ctx, user, ip, ua)
	if err != nil {
		return TokenPair{}, err
	}
	s.auditor.Record(ctx, user.ID, audit.ActionRefresh, ip)
	return pair, nil
}

// Logout revokes a refresh session. Unknown tokens are not an error;
// logout is idempotent.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if err := s.sessions.Revoke(ctx, refreshToken); err != nil {
		return err
	}
	return s.repo.DeleteSession(ctx, refreshToken)
}

func (s *Service) issuePair(ctx context.Context, user *User, ip, ua string) (TokenPair, error) {
	expiresAt := s.now().Add(s.accessTTL)
	accessToken, err := s.codec.Issue(access.Claims{
		Subject:     strconv.FormatInt(user.ID, 10),
		Role:        user.Role,
		Permissions: access.PermissionsFor(user.Role),
		ExpiresAt:   expiresAt,
	})
	if err != nil {
		return TokenPair{}, err
	}

	refreshToken := uuid.NewString()
	if err := s.sessions.Save(ctx, refreshToken, user.ID); err != nil {
		return TokenPair{}, err
	}
	if err := s.repo.CreateSession(ctx, refreshToken, user.ID, s.now().Add(s.refreshTTL), ip, ua); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}
