package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/matheusrsantos97-lgtm/VetFlow/internal/models"
	appErrors "github.com/matheusrsantos97-lgtm/VetFlow/pkg/errors"
	"github.com/matheusrsantos97-lgtm/VetFlow/pkg/validation"
)

type authUserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	SaveAll(ctx context.Context, users []models.User) error
	GetSession(ctx context.Context, userID string) (*models.User, error)
	SetSession(ctx context.Context, user models.User) error
	DeleteSession(ctx context.Context, userID string) error
}

// draftForgetter drops per-user in-memory state when a session ends.
type draftForgetter interface {
	Forget(userID string)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	Issuer            string
}

// AuthService provides registration, login and profile use cases.
type AuthService struct {
	repo      authUserRepository
	drafts    draftForgetter
	validator structValidator
	logger    *zap.Logger
	config    AuthConfig
	now       func() time.Time

	// mu serializes read-modify-write cycles of the users collection.
	mu sync.Mutex
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, drafts draftForgetter, validate structValidator, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.MustNew()
	}
	if config.AccessTokenExpiry <= 0 {
		config.AccessTokenExpiry = 24 * time.Hour
	}
	return &AuthService{repo: repo, drafts: drafts, validator: validate, logger: logger, config: config, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func emailTaken(users []models.User, email, exceptID string) bool {
	for _, u := range users {
		if u.ID != exceptID && normalizeEmail(u.Email) == email {
			return true
		}
	}
	return false
}

func (s *AuthService) loadUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load users")
	}
	return users, nil
}

// Register creates an account and logs it in.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	email := normalizeEmail(req.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	if emailTaken(users, email, "") {
		return nil, appErrors.Clone(appErrors.ErrConflict, "Este email já está cadastrado.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "A senha deve ter no máximo 72 bytes.")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := models.User{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hash),
	}
	if err := s.repo.SaveAll(ctx, append(users, user)); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist user")
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return s.openSession(ctx, user)
}

// Login authenticates a user by email and password hash and opens a session.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	email := normalizeEmail(req.Email)
	for _, u := range users {
		if normalizeEmail(u.Email) != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) == nil {
			return s.openSession(ctx, u)
		}
		break
	}
	return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Email ou senha inválidos.")
}

func (s *AuthService) openSession(ctx context.Context, user models.User) (*models.AuthResponse, error) {
	if err := s.repo.SetSession(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist session")
	}
	token, issuedAt, err := s.generateAccessToken(user)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}
	return &models.AuthResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.AccessTokenExpiry.Seconds()),
		IssuedAt:    issuedAt,
		User:        user.Info(),
	}, nil
}

// Logout removes the session record and the user's report draft.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.repo.DeleteSession(ctx, userID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove session")
	}
	if s.drafts != nil {
		s.drafts.Forget(userID)
	}
	return nil
}

// Authenticate validates a token and resolves the active session user.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.GetSession(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session expired")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	return user, nil
}

// CurrentUser returns the session snapshot of the user.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.UserInfo, error) {
	user, err := s.repo.GetSession(ctx, userID)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session expired")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	info := user.Info()
	return &info, nil
}

// UpdateProfile overwrites the user's record in the collection and in the session.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.UserInfo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	email := normalizeEmail(req.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range users {
		if users[i].ID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Usuário não encontrado.")
	}
	if emailTaken(users, email, userID) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "Este email já está cadastrado.")
	}

	updated := models.User{
		ID:        userID,
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Password:  users[idx].Password,
		CRMV:      strings.TrimSpace(req.CRMV),
		Phone:     strings.TrimSpace(req.Phone),
		BirthDate: req.BirthDate,
	}
	users[idx] = updated
	if err := s.repo.SaveAll(ctx, users); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist user")
	}
	if err := s.repo.SetSession(ctx, updated); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist session")
	}
	info := updated.Info()
	return &info, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) generateAccessToken(user models.User) (string, time.Time, error) {
	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.config.AccessTokenExpiry)
	claims := &models.JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.AccessTokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, issuedAt, nil
}
