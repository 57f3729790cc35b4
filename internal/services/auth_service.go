package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/yukikurage/task-report-api/internal/auth"
	apierrors "github.com/yukikurage/task-report-api/internal/errors"
	"github.com/yukikurage/task-report-api/internal/models"
	"github.com/yukikurage/task-report-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrConsoleCredentialsRequired = apierrors.Validation("Username and Password are required")
	ErrConsoleInvalidCredentials  = apierrors.Validation("Invalid credentials or inactive account")
	ErrNotAdminAccount            = apierrors.PermissionDenied("Account is not an admin account")

	ErrCredentialsRequired = apierrors.Validation("Email and password are required.")
	ErrNoAccountForEmail   = apierrors.Validation("No account found in this email")
	ErrAccountInactive     = apierrors.Validation("Account is not active, please contact admin")
	ErrInvalidCredentials  = apierrors.Unauthenticated("Invalid credentials")
	ErrInvalidRefreshToken = apierrors.Unauthenticated("Invalid or expired token")
)

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// comparePassword checks password against hash, or against a fixed hash when
// the account does not exist so both paths cost one bcrypt comparison.
func comparePassword(hash, password string) bool {
	if hash == "" {
		dummyHashOnce.Do(func() {
			dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
		})
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

type credentialCheck struct {
	user       *models.User
	passwordOK bool
}

func (s *AuthService) authenticate(input LoginInput) (credentialCheck, error) {
	user, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			comparePassword("", input.Password)
			return credentialCheck{}, nil
		}
		return credentialCheck{}, fmt.Errorf("failed to find user: %w", err)
	}

	return credentialCheck{
		user:       user,
		passwordOK: comparePassword(user.PasswordHash, input.Password),
	}, nil
}

// ConsoleLogin verifies console credentials. Only admins and super-admins
// may open a console session.
func (s *AuthService) ConsoleLogin(input LoginInput) (*models.User, error) {
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, ErrConsoleCredentialsRequired
	}

	check, err := s.authenticate(input)
	if err != nil {
		return nil, err
	}
	if check.user == nil || !check.passwordOK || !check.user.IsActive {
		return nil, ErrConsoleInvalidCredentials
	}
	if !check.user.IsSuperAdmin() && !check.user.IsAdmin() {
		return nil, ErrNotAdminAccount
	}

	return check.user, nil
}

// APILogin verifies API credentials and issues a token pair.
func (s *AuthService) APILogin(input LoginInput) (auth.TokenPair, error) {
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return auth.TokenPair{}, ErrCredentialsRequired
	}

	check, err := s.authenticate(input)
	if err != nil {
		return auth.TokenPair{}, err
	}
	switch {
	case check.user == nil:
		return auth.TokenPair{}, ErrNoAccountForEmail
	case !check.user.IsActive:
		return auth.TokenPair{}, ErrAccountInactive
	case !check.passwordOK:
		return auth.TokenPair{}, ErrInvalidCredentials
	}

	return s.tokens.IssuePair(check.user)
}

// Refresh exchanges a refresh token for a new access token.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := s.tokens.Parse(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	user, err := s.activeUser(claims.UserID)
	if err != nil {
		if apierrors.KindOf(err) == apierrors.KindUnauthenticated {
			return "", ErrInvalidRefreshToken
		}
		return "", err
	}

	return s.tokens.IssueAccess(user)
}

// PrincipalFromToken resolves the caller behind an access token.
func (s *AuthService) PrincipalFromToken(accessToken string) (*auth.Principal, error) {
	claims, err := s.tokens.Parse(accessToken, auth.TokenTypeAccess)
	if err != nil {
		return nil, auth.ErrNotAuthenticated
	}
	return s.Principal(claims.UserID)
}

// Principal loads the current state of an account. Missing and inactive
// accounts are not authenticated.
func (s *AuthService) Principal(userID uint64) (*auth.Principal, error) {
	user, err := s.activeUser(userID)
	if err != nil {
		return nil, err
	}
	return auth.NewPrincipal(user), nil
}

func (s *AuthService) activeUser(userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !user.IsActive {
		return nil, auth.ErrNotAuthenticated
	}
	return user, nil
}
