package services

import (
	"errors"
	"fmt"
	"time"

	"kiosk/internal/models"
	"kiosk/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is how long an issued identity token stays valid.
const TokenTTL = 7 * 24 * time.Hour

// Identity is the verified content of a token. Cart and order
// operations take it as an explicit parameter; they never re-derive it
// from a request.
type Identity struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the identity may hit admin-only routes.
func (id *Identity) IsAdmin() bool {
	return id != nil && id.Role == models.RoleAdmin
}

// AuthService handles registration, login and identity tokens.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService. An empty secret is a
// configuration error the composition root must reject before calling
// this.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  TokenTTL,
	}
}

// RegisterUser creates an account with a bcrypt-hashed password. The
// requested role is ignored: self-service registration always yields a
// regular user, admins are provisioned directly in the store.
func (s *AuthService) RegisterUser(name, email, password string) (*models.User, error) {
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, fmt.Errorf("email '%s' already registered: %w", email, ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// LoginUser authenticates by email and password and returns a signed
// token alongside the user. An unknown email and a wrong password are
// reported as distinct failures, matching the public API contract.
func (s *AuthService) LoginUser(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return "", nil, fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid password: %w", ErrUnauthorized)
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// IssueToken signs the four identity fields with a 7-day expiry.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"role":    user.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// VerifyToken checks signature and expiry and returns the identity the
// token carries. Every failure mode, including a malformed token, comes
// back as ErrUnauthorized for the caller to branch on.
func (s *AuthService) VerifyToken(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims: %w", ErrUnauthorized)
	}

	identity := &Identity{
		UserID: claimString(claims, "user_id"),
		Name:   claimString(claims, "name"),
		Email:  claimString(claims, "email"),
		Role:   claimString(claims, "role"),
	}
	if identity.UserID == "" {
		return nil, fmt.Errorf("token missing user id: %w", ErrUnauthorized)
	}
	return identity, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
