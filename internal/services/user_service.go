package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/task-report-api/internal/auth"
	apierrors "github.com/yukikurage/task-report-api/internal/errors"
	"github.com/yukikurage/task-report-api/internal/models"
	"github.com/yukikurage/task-report-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrRequiredFields    = apierrors.Validation("Fill all the required fields")
	ErrInvalidEmail      = apierrors.Validation("Enter a valid email address")
	ErrInvalidRole       = apierrors.Validation("Invalid role")
	ErrPasswordMismatch  = apierrors.Validation("Passwords are not matching")
	ErrEmailTaken        = apierrors.Conflict("A user with this email already exists")
	ErrUserIDRequired    = apierrors.Validation("User ID not provided")
	ErrUserNotFound      = apierrors.NotFound("User not found")
	ErrPasswordRequired  = apierrors.Validation("Password is required")
	ErrFirstNameRequired = apierrors.Validation("First name is required")
)

const (
	WarnAdminNotFoundOnCreate = "Selected admin not found. User created without assigned admin"
	WarnAdminNotFoundOnUpdate = "Selected admin not found. User updated without assigned admin"
)

// UserService manages accounts on behalf of super-admins.
type UserService struct {
	userRepo   repository.UserRepository
	validate   *validator.Validate
	bcryptCost int
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		validate:   validator.New(),
		bcryptCost: bcrypt.DefaultCost,
	}
}

// CreateUserInput carries the raw values of the add-user form.
type CreateUserInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	Role            string
	AssignedAdminID string
}

// UpdateUserInput carries the raw values of the update-user form.
type UpdateUserInput struct {
	ID              string
	FirstName       string
	LastName        string
	Email           string
	Role            string
	AssignedAdminID string
}

// UserResult is a saved account plus any non-fatal warnings.
type UserResult struct {
	User     *models.User
	Warnings []string
}

// UserDirectory is everything the user management screen shows.
type UserDirectory struct {
	Users  []models.User
	Admins []models.User
	Roles  []models.Role
}

// Create adds a user or admin account.
func (s *UserService) Create(p *auth.Principal, input CreateUserInput) (*UserResult, error) {
	if err := auth.Authorize(p, models.RoleSuperAdmin); err != nil {
		return nil, err
	}

	firstName := strings.TrimSpace(input.FirstName)
	email := models.NormalizeEmail(input.Email)
	if firstName == "" || email == "" || input.Password == "" || input.ConfirmPassword == "" || input.Role == "" {
		return nil, ErrRequiredFields
	}
	if err := s.validate.Var(email, "email"); err != nil {
		return nil, ErrInvalidEmail
	}
	role, err := assignableRole(input.Role)
	if err != nil {
		return nil, err
	}
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if err := s.ensureEmailFree(email, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		FirstName:    firstName,
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}

	result := &UserResult{User: user}
	if role == models.RoleUser && strings.TrimSpace(input.AssignedAdminID) != "" {
		admin, err := s.findAdmin(input.AssignedAdminID)
		if err != nil {
			return nil, err
		}
		if admin == nil {
			result.Warnings = append(result.Warnings, WarnAdminNotFoundOnCreate)
		} else {
			user.AssignedAdminID = &admin.ID
			user.AssignedAdmin = admin
		}
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return result, nil
}

// Update rewrites an account's names, email, role and assigned admin. An
// admin demoted to another role releases every user assigned to it.
func (s *UserService) Update(p *auth.Principal, input UpdateUserInput) (*UserResult, error) {
	if err := auth.Authorize(p, models.RoleSuperAdmin); err != nil {
		return nil, err
	}

	user, err := s.lookup(input.ID)
	if err != nil {
		return nil, err
	}

	firstName := strings.TrimSpace(input.FirstName)
	email := models.NormalizeEmail(input.Email)
	if firstName == "" || email == "" || input.Role == "" {
		return nil, ErrRequiredFields
	}
	if err := s.validate.Var(email, "email"); err != nil {
		return nil, ErrInvalidEmail
	}
	role, err := assignableRole(input.Role)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(email, user.ID); err != nil {
		return nil, err
	}

	previousRole := user.Role
	user.FirstName = firstName
	user.LastName = strings.TrimSpace(input.LastName)
	user.Email = email
	user.Role = role
	user.AssignedAdminID = nil
	user.AssignedAdmin = nil

	result := &UserResult{User: user}
	if role == models.RoleUser && strings.TrimSpace(input.AssignedAdminID) != "" {
		admin, err := s.findAdmin(input.AssignedAdminID)
		if err != nil {
			return nil, err
		}
		if admin == nil || admin.ID == user.ID {
			result.Warnings = append(result.Warnings, WarnAdminNotFoundOnUpdate)
		} else {
			user.AssignedAdminID = &admin.ID
			user.AssignedAdmin = admin
		}
	}

	demoted := previousRole == models.RoleAdmin && role != models.RoleAdmin
	if err := s.userRepo.Update(user, demoted); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return result, nil
}

// Delete removes an account together with its tasks.
func (s *UserService) Delete(p *auth.Principal, id string) error {
	if err := auth.Authorize(p, models.RoleSuperAdmin); err != nil {
		return err
	}

	user, err := s.lookup(id)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// ListForAssignment returns every account the caller may manage together
// with the admin and role choices.
func (s *UserService) ListForAssignment(p *auth.Principal) (*UserDirectory, error) {
	if err := auth.Authorize(p, models.RoleSuperAdmin); err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(repository.UserFilter{
		ExcludeID:         &p.ID,
		ExcludeSuperusers: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	adminRole := models.RoleAdmin
	admins, err := s.userRepo.List(repository.UserFilter{Role: &adminRole})
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}

	return &UserDirectory{
		Users:  users,
		Admins: admins,
		Roles:  models.AssignableRoles,
	}, nil
}

// AssignedUsers lists the accounts managed by the calling admin.
func (s *UserService) AssignedUsers(p *auth.Principal) ([]models.User, error) {
	if err := auth.Authorize(p, models.RoleAdmin); err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(repository.UserFilter{AssignedAdminID: &p.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned users: %w", err)
	}
	return users, nil
}

// SuperAdminInput holds the values for bootstrapping a super-admin.
type SuperAdminInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// CreateSuperAdmin creates a staff super-admin account. It is not reachable
// from the console.
func (s *UserService) CreateSuperAdmin(input SuperAdminInput) (*models.User, error) {
	email := models.NormalizeEmail(input.Email)
	if email == "" {
		return nil, ErrRequiredFields
	}
	if err := s.validate.Var(email, "email"); err != nil {
		return nil, ErrInvalidEmail
	}
	if strings.TrimSpace(input.FirstName) == "" {
		return nil, ErrFirstNameRequired
	}
	if input.Password == "" {
		return nil, ErrPasswordRequired
	}
	if err := s.ensureEmailFree(email, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: string(hash),
		Role:         models.RoleSuperAdmin,
		IsActive:     true,
		IsStaff:      true,
		IsSuperuser:  true,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create super admin: %w", err)
	}
	return user, nil
}

func (s *UserService) lookup(rawID string) (*models.User, error) {
	rawID = strings.TrimSpace(rawID)
	if rawID == "" {
		return nil, ErrUserIDRequired
	}
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// findAdmin resolves an admin account id. A nil user means no such admin.
func (s *UserService) findAdmin(rawID string) (*models.User, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(rawID), 10, 64)
	if err != nil {
		return nil, nil
	}

	admin, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	if !admin.IsAdmin() {
		return nil, nil
	}
	return admin, nil
}

func (s *UserService) ensureEmailFree(email string, excludeID uint64) error {
	taken, err := s.userRepo.EmailTaken(email, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return ErrEmailTaken
	}
	return nil
}

func assignableRole(raw string) (models.Role, error) {
	role, ok := models.ParseRole(strings.TrimSpace(raw))
	if !ok {
		return "", ErrInvalidRole
	}
	for _, r := range models.AssignableRoles {
		if r == role {
			return role, nil
		}
	}
	return "", ErrInvalidRole
}
