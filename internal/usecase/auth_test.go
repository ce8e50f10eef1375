package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/domain"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/infra/security"
)

func newTestTokens(t *testing.T) *security.TokenService {
	t.Helper()
	tokens, err := security.NewTokenService("usecase-test-secret", "cuet-sphere", security.DefaultTokenTTL)
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}
	return tokens
}

func TestSignUpDerivesCohortFromEmail(t *testing.T) {
	users := newFakeUserRepository()
	publisher := &fakeEventPublisher{}
	svc := NewAuthService(users, newTestTokens(t), publisher, nil)

	session, err := svc.SignUp(context.Background(), SignUpInput{
		FullName: "Nafis Rahman",
		Email:    "u2204015@student.cuet.ac.bd",
		Password: "hunter2-but-longer",
		Hall:     "Bangabandhu Hall",
		Bio:      "CSE '22.",
	})
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}

	user := session.User
	if user.Batch != "22" || user.Department != "04" || user.StudentID != "015" {
		t.Fatalf("unexpected cohort identity: %+v", user)
	}
	if user.Hall == nil || *user.Hall != "Bangabandhu Hall" {
		t.Fatalf("hall = %v", user.Hall)
	}
	if user.Bio == nil || *user.Bio != "CSE '22." {
		t.Fatalf("bio = %v", user.Bio)
	}
	if user.Role != domain.RoleStudent {
		t.Fatalf("new account role = %s, want STUDENT", user.Role)
	}
	if user.PasswordHash == "" || user.PasswordHash == "hunter2-but-longer" {
		t.Fatal("password was not hashed")
	}
	if session.Token == "" {
		t.Fatal("SignUp did not issue a token")
	}
	if len(publisher.registered) != 1 {
		t.Fatalf("expected 1 registration event, got %d", len(publisher.registered))
	}
	if publisher.registered[0].Department != "04" {
		t.Fatalf("event department = %s", publisher.registered[0].Department)
	}
}

func TestSignUpRejectsNonInstitutionalEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepository(), newTestTokens(t), nil, nil)

	_, err := svc.SignUp(context.Background(), SignUpInput{
		FullName: "Nafis Rahman",
		Email:    "nafis@gmail.com",
		Password: "hunter2-but-longer",
	})

	var invalid *domain.InvalidIdentityError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidIdentityError, got %v", err)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	users := newFakeUserRepository(domain.User{
		ID:    "existing",
		Email: "u2204015@student.cuet.ac.bd",
	})
	svc := NewAuthService(users, newTestTokens(t), nil, nil)

	_, err := svc.SignUp(context.Background(), SignUpInput{
		FullName: "Nafis Rahman",
		Email:    "u2204015@student.cuet.ac.bd",
		Password: "hunter2-but-longer",
	})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestSignUpNormalizesEmailCase(t *testing.T) {
	users := newFakeUserRepository()
	svc := NewAuthService(users, newTestTokens(t), nil, nil)

	session, err := svc.SignUp(context.Background(), SignUpInput{
		FullName: "Nafis Rahman",
		Email:    "  U2204015@STUDENT.CUET.AC.BD ",
		Password: "hunter2-but-longer",
	})
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if session.User.Email != "u2204015@student.cuet.ac.bd" {
		t.Fatalf("email not normalized: %q", session.User.Email)
	}
}

func TestSignInWrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	hash, err := security.HashPassword("the-right-password")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	users := newFakeUserRepository(domain.User{
		ID:           "u1",
		Email:        "u2204015@student.cuet.ac.bd",
		PasswordHash: hash,
		IsActive:     true,
		Role:         domain.RoleStudent,
	})
	svc := NewAuthService(users, newTestTokens(t), nil, nil)

	_, wrongPass := svc.SignIn(context.Background(), "u2204015@student.cuet.ac.bd", "not-the-password")
	_, unknown := svc.SignIn(context.Background(), "u2204099@student.cuet.ac.bd", "whatever")

	if !errors.Is(wrongPass, ErrInvalidCredentials) {
		t.Fatalf("wrong password error = %v", wrongPass)
	}
	if !errors.Is(unknown, ErrInvalidCredentials) {
		t.Fatalf("unknown email error = %v", unknown)
	}
	if wrongPass.Error() != unknown.Error() {
		t.Fatal("sign-in failures are distinguishable")
	}
}

func TestSignInSuccessIssuesToken(t *testing.T) {
	hash, err := security.HashPassword("the-right-password")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	users := newFakeUserRepository(domain.User{
		ID:           "u1",
		Email:        "u2204015@student.cuet.ac.bd",
		PasswordHash: hash,
		IsActive:     true,
		Role:         domain.RoleCR,
	})
	tokens := newTestTokens(t)
	svc := NewAuthService(users, tokens, nil, nil)

	session, err := svc.SignIn(context.Background(), "u2204015@student.cuet.ac.bd", "the-right-password")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}

	claims, err := tokens.Verify(session.Token)
	if err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}
	if claims.Subject != "u2204015@student.cuet.ac.bd" {
		t.Fatalf("token subject = %s", claims.Subject)
	}
	roles := claims.Roles()
	if len(roles) != 1 || roles[0] != domain.RoleCR {
		t.Fatalf("token roles = %v", roles)
	}
}

func TestSignInInactiveAccountRejected(t *testing.T) {
	hash, err := security.HashPassword("the-right-password")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	users := newFakeUserRepository(domain.User{
		ID:           "u1",
		Email:        "u2204015@student.cuet.ac.bd",
		PasswordHash: hash,
		IsActive:     false,
	})
	svc := NewAuthService(users, newTestTokens(t), nil, nil)

	_, err = svc.SignIn(context.Background(), "u2204015@student.cuet.ac.bd", "the-right-password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateResolvesActor(t *testing.T) {
	users := newFakeUserRepository(domain.User{
		ID:       "u1",
		Email:    "u2204015@student.cuet.ac.bd",
		IsActive: true,
		Role:     domain.RoleStudent,
	})
	tokens := newTestTokens(t)
	svc := NewAuthService(users, tokens, nil, nil)

	token, err := tokens.Issue("u2204015@student.cuet.ac.bd", []domain.Role{domain.RoleStudent})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	actor, err := svc.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if actor.ID != "u1" {
		t.Fatalf("resolved actor = %+v", actor)
	}
}

func TestAuthenticateUnknownSubject(t *testing.T) {
	tokens := newTestTokens(t)
	svc := NewAuthService(newFakeUserRepository(), tokens, nil, nil)

	token, err := tokens.Issue("u2204015@student.cuet.ac.bd", []domain.Role{domain.RoleStudent})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, security.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSignUpEventPublishFailureDoesNotAbort(t *testing.T) {
	users := newFakeUserRepository()
	publisher := &fakeEventPublisher{publishErr: errors.New("broker down")}
	svc := NewAuthService(users, newTestTokens(t), publisher, nil)

	if _, err := svc.SignUp(context.Background(), SignUpInput{
		FullName: "Nafis Rahman",
		Email:    "u2204015@student.cuet.ac.bd",
		Password: "hunter2-but-longer",
	}); err != nil {
		t.Fatalf("SignUp failed on publish error: %v", err)
	}

	if _, err := users.GetByEmail(context.Background(), "u2204015@student.cuet.ac.bd"); err != nil {
		t.Fatalf("user was not persisted: %v", err)
	}
}

func TestSessionExpiryMatchesTokenTTL(t *testing.T) {
	users := newFakeUserRepository()
	svc := NewAuthService(users, newTestTokens(t), nil, nil)

	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return issuedAt })

	session, err := svc.SignUp(context.Background(), SignUpInput{
		FullName: "Nafis Rahman",
		Email:    "u2204015@student.cuet.ac.bd",
		Password: "hunter2-but-longer",
	})
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}

	if !session.ExpiresAt.Equal(issuedAt.Add(24 * time.Hour)) {
		t.Fatalf("session expiry = %v", session.ExpiresAt)
	}
}
