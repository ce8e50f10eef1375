package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/domain"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/port"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/infra/logger"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/infra/security"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/repository"
)

const minPasswordLength = 6

// AuthService handles account onboarding and sign-in.
type AuthService struct {
	users  port.UserRepository
	tokens *security.TokenService
	events port.EventPublisher
	logger *zap.Logger
	now    func() time.Time
}

// NewAuthService constructs an auth service.
func NewAuthService(users port.UserRepository, tokens *security.TokenService, events port.EventPublisher, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		users:  users,
		tokens: tokens,
		events: events,
		logger: log,
		now:    time.Now,
	}
}

// WithClock overrides the time source. Intended for tests.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// SignUpInput carries the fields a new account registers with.
type SignUpInput struct {
	FullName string
	Email    string
	Password string
	Hall     string
	Bio      string
}

// Session pairs an authenticated user with their signed session token.
type Session struct {
	User      domain.User
	Token     string
	ExpiresAt time.Time
}

// SignUp registers a student account. The cohort identity (batch, department,
// student id) is derived from the institutional email exactly once here and
// never edited afterwards. Every new account starts as STUDENT.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (Session, error) {
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return Session{}, fmt.Errorf("full name is required")
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if len(input.Password) < minPasswordLength {
		return Session{}, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	identity, err := domain.ParseStudentEmail(email)
	if err != nil {
		return Session{}, err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return Session{}, ErrEmailExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return Session{}, fmt.Errorf("lookup email: %w", err)
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := domain.User{
		ID:           uuid.NewString(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
		Batch:        identity.Batch,
		Department:   identity.Department,
		StudentID:    identity.StudentID,
		Role:         domain.RoleStudent,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if hall := strings.TrimSpace(input.Hall); hall != "" {
		user.Hall = &hall
	}
	if bio := strings.TrimSpace(input.Bio); bio != "" {
		user.Bio = &bio
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Lost a registration race on the same email.
		if errors.Is(err, repository.ErrConflict) {
			return Session{}, ErrEmailExists
		}
		return Session{}, fmt.Errorf("create user: %w", err)
	}

	if s.events != nil {
		event := domain.UserRegisteredEvent{
			EventID:      uuid.NewString(),
			UserID:       user.ID,
			Email:        user.Email,
			FullName:     user.FullName,
			Batch:        user.Batch,
			Department:   user.Department,
			Role:         user.Role,
			RegisteredAt: now,
		}
		if err := s.events.PublishUserRegistered(ctx, event); err != nil {
			s.logger.Warn("publish user registered event failed",
				zap.String("email", logger.MaskEmail(user.Email)), zap.Error(err))
		}
	}

	return s.issueSession(user)
}

// SignIn authenticates an email/password pair and issues a session token.
// Unknown email and wrong password produce the same error.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return Session{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok || !user.IsActive {
		return Session{}, ErrInvalidCredentials
	}

	return s.issueSession(*user)
}

// Authenticate resolves a bearer token to the account it was issued for.
// Every failure maps to security.ErrInvalidToken so callers can treat the
// request as anonymous without learning why the token was rejected.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (domain.User, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, security.ErrInvalidToken
		}
		return domain.User{}, fmt.Errorf("lookup token subject: %w", err)
	}
	if !user.IsActive {
		return domain.User{}, security.ErrInvalidToken
	}

	return *user, nil
}

func (s *AuthService) issueSession(user domain.User) (Session, error) {
	token, err := s.tokens.Issue(user.Email, []domain.Role{user.Role})
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}

	return Session{
		User:      user,
		Token:     token,
		ExpiresAt: s.now().UTC().Add(s.tokens.TTL()),
	}, nil
}
