package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"formacao-backend/internal/middleware"
	"formacao-backend/internal/models"
	"formacao-backend/internal/repository"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type AuthService struct {
	userRepo           *repository.UserRepo
	jwtAuth            *middleware.JWTAuth
	allowedEmailDomain string
}

func NewAuthService(userRepo *repository.UserRepo, jwtAuth *middleware.JWTAuth, allowedEmailDomain string) *AuthService {
	return &AuthService{
		userRepo:           userRepo,
		jwtAuth:            jwtAuth,
		allowedEmailDomain: allowedEmailDomain,
	}
}

func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	fields := make(map[string]string)

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)

	if req.FullName == "" {
		fields["full_name"] = "Full name is required"
	}
	if !emailRegex.MatchString(req.Email) {
		fields["email"] = "Invalid email address"
	}
	if len(req.Password) < 8 {
		fields["password"] = "Password must be at least 8 characters"
	}
	if s.allowedEmailDomain != "" && !strings.HasSuffix(req.Email, "@"+s.allowedEmailDomain) {
		fields["email"] = fmt.Sprintf("Registration is restricted to @%s addresses", s.allowedEmailDomain)
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if existing, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, &ConflictError{Message: "An account with this email already exists"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, *models.AuthTokens, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, &UnauthorizedError{Message: "Invalid email or password"}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive {
		return nil, nil, &UnauthorizedError{Message: "Account is deactivated"}
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, nil, &UnauthorizedError{Message: "Invalid email or password"}
	}

	token, err := s.jwtAuth.GenerateAccessToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, nil, fmt.Errorf("failed to update last login: %w", err)
	}

	return user, &models.AuthTokens{AccessToken: token, ExpiresIn: int((24 * time.Hour).Seconds())}, nil
}

// SetAdminClaim grants or revokes the admin role by email. The caller
// must already be an admin; the router enforces that.
func (s *AuthService) SetAdminClaim(ctx context.Context, req *models.SetAdminClaimRequest) (*models.SetAdminClaimResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !emailRegex.MatchString(email) {
		return nil, &ValidationError{Fields: map[string]string{"email": "Invalid email address"}}
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{Message: fmt.Sprintf("No user found with email %s", email)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.userRepo.SetAdmin(ctx, user.ID, req.IsAdmin); err != nil {
		return nil, fmt.Errorf("failed to update admin role: %w", err)
	}

	verb := "revoked from"
	if req.IsAdmin {
		verb = "granted to"
	}
	return &models.SetAdminClaimResponse{
		Success: true,
		Message: fmt.Sprintf("Admin role %s %s. The user must sign in again for the change to take effect.", verb, email),
	}, nil
}
