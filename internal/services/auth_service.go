package services

import (
	"database/sql"
	"errors"
	"fmt"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
	"resto_pos_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameExists     = errors.New("username already exists")
	ErrRoleNotFound       = errors.New("specified role not found")
	ErrUserInactive       = errors.New("user account is deactivated")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

// --- DTOs ---

// LoginRequest DTO
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterUserRequest DTO
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
	RoleName string `json:"role_name"` // e.g., "Admin", "Staff". Defaults to Staff if empty.
}

// AuthResponse DTO
type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token,omitempty"`
}

// --- AuthService Interface ---
type AuthService interface {
	RegisterUser(req RegisterUserRequest) (*models.User, error)
	LoginUser(req LoginRequest) (*AuthResponse, error)
	GetUserProfile(userID int64) (*models.User, error)
}

type authService struct {
	authRepo repositories.AuthRepository
	db       *sql.DB
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(authRepo repositories.AuthRepository, db *sql.DB) AuthService {
	return &authService{authRepo: authRepo, db: db}
}

// RegisterUser handles the business logic for user registration.
func (s *authService) RegisterUser(req RegisterUserRequest) (*models.User, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	roleName := req.RoleName
	if roleName == "" {
		roleName = "Staff"
	}
	role, err := s.authRepo.FindRoleByName(roleName)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRoleNotFound, roleName)
		}
		return nil, fmt.Errorf("failed to look up role %q: %w", roleName, err)
	}

	user := models.User{
		Username: req.Username,
		Email:    utils.NewNullString(req.Email),
		FullName: utils.NewNullString(req.FullName),
		RoleID:   &role.ID,
	}

	userID, err := s.authRepo.CreateUser(s.db, &user, string(hashedPasswordBytes))
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.authRepo.FindUserByID(userID)
}

// LoginUser verifies credentials and issues access and refresh tokens.
func (s *authService) LoginUser(req LoginRequest) (*AuthResponse, error) {
	user, hashedPassword, err := s.authRepo.FindUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	roleName := ""
	if user.Role != nil {
		roleName = user.Role.Name
	}

	accessToken, err := utils.GenerateAccessToken(user.ID, user.Username, roleName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// GetUserProfile returns the authenticated user's profile.
func (s *authService) GetUserProfile(userID int64) (*models.User, error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	return user, nil
}
