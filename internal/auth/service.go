// Package auth handles account registration, login, profile management
// and JWT issuance/verification.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/ecotrack/backend/internal/errors"
	"github.com/ecotrack/backend/internal/models"
	"github.com/ecotrack/backend/internal/store"
	"github.com/ecotrack/backend/internal/util"
)

const (
	tokenLifetime     = 7 * 24 * time.Hour
	minPasswordLength = 6

	// demoTokenPrefix marks the throwaway tokens issued when no database
	// is configured
	demoTokenPrefix = "demo-token-"
)

// ErrInvalidToken is returned when a bearer token fails verification
var ErrInvalidToken = errors.New("invalid or expired token")

// Service implements registration, login and profile operations
type Service struct {
	store  store.Store
	secret []byte
	demo   bool
}

// NewService creates an auth service. When the store has no real
// persistence behind it the service runs in demo mode: any credentials
// are accepted and demo tokens are issued.
func NewService(st store.Store, secret string) *Service {
	return &Service{
		store:  st,
		secret: []byte(secret),
		demo:   !st.Available(),
	}
}

// RegisterInput carries a signup request
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and returns a signed token for it
func (s *Service) Register(ctx context.Context, in RegisterInput) (string, *models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	switch {
	case in.Name == "":
		return "", nil, apperrors.ValidationError("name", "Name is required")
	case in.Email == "":
		return "", nil, apperrors.ValidationError("email", "Email is required")
	case len(in.Password) < minPasswordLength:
		return "", nil, apperrors.ValidationError("password",
			fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}

	if s.demo {
		return s.demoSession(ctx)
	}

	if _, err := s.store.UserByEmail(ctx, in.Email); err == nil {
		return "", nil, apperrors.Conflict("An account with this email")
	} else if !errors.Is(err, store.ErrNotFound) {
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login verifies credentials and returns a signed token
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	if s.demo {
		return s.demoSession(ctx)
	}

	user, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, apperrors.Unauthorized("Invalid email or password")
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.Unauthorized("Invalid email or password")
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Profile returns the account behind an authenticated identity
func (s *Service) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("user")
		}
		return nil, err
	}
	return user, nil
}

// ProfileUpdate carries the updatable account fields; nil means unchanged
type ProfileUpdate struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Location  *string `json:"location"`
	AvatarURL *string `json:"avatar"`
}

// UpdateProfile applies a partial update to the account. Changing the
// email to one held by another account is a conflict.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*models.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*in.Email))
		if email == "" {
			return nil, apperrors.ValidationError("email", "Email cannot be empty")
		}
		taken, err := s.store.EmailTakenByOther(ctx, email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.Conflict("An account with this email")
		}
		user.Email = email
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperrors.ValidationError("name", "Name cannot be empty")
		}
		user.Name = name
	}
	if in.Phone != nil {
		user.Phone = in.Phone
	}
	if in.Location != nil {
		user.Location = in.Location
	}
	if in.AvatarURL != nil {
		user.AvatarURL = in.AvatarURL
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GenerateToken signs a 7-day HS256 token for the user
func (s *Service) GenerateToken(u *models.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"name":    u.Name,
		"iat":     now.Unix(),
		"exp":     now.Add(tokenLifetime).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Authenticate resolves a bearer token to the identity it was issued for
func (s *Service) Authenticate(ctx context.Context, token string) (util.Identity, error) {
	if s.demo {
		if strings.HasPrefix(token, demoTokenPrefix) {
			user, err := s.store.UserByID(ctx, store.DemoUserID)
			if err != nil {
				return util.Identity{}, err
			}
			return util.Identity{ID: user.ID, Name: user.Name, Email: user.Email}, nil
		}
		return util.Identity{}, ErrInvalidToken
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return util.Identity{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return util.Identity{}, ErrInvalidToken
	}
	id, _ := claims["user_id"].(string)
	if id == "" {
		return util.Identity{}, ErrInvalidToken
	}
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)

	return util.Identity{ID: id, Name: name, Email: email}, nil
}

// demoSession issues a throwaway token for the canned demo account
func (s *Service) demoSession(ctx context.Context) (string, *models.User, error) {
	user, err := s.store.UserByID(ctx, store.DemoUserID)
	if err != nil {
		return "", nil, err
	}
	token := fmt.Sprintf("%s%d", demoTokenPrefix, time.Now().UnixMilli())
	return token, user, nil
}
