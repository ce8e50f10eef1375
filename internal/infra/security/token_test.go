package security

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/domain"
)

func newTestTokenService(t *testing.T, now func() time.Time) *TokenService {
	t.Helper()

	svc, err := NewTokenService("unit-test-secret", "cuet-sphere", DefaultTokenTTL)
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}
	if now != nil {
		svc.WithClock(now)
	}
	return svc
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t, nil)

	signed, err := svc.Issue("u2204015@student.cuet.ac.bd", []domain.Role{domain.RoleCR})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := svc.Verify(signed)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}

	if claims.Subject != "u2204015@student.cuet.ac.bd" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}

	roles := claims.Roles()
	if len(roles) != 1 || roles[0] != domain.RoleCR {
		t.Fatalf("unexpected roles: %v", roles)
	}
}

func TestTokenExpiresAfterLifetime(t *testing.T) {
	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	current := issuedAt

	svc := newTestTokenService(t, func() time.Time { return current })

	signed, err := svc.Issue("u2204015@student.cuet.ac.bd", []domain.Role{domain.RoleStudent})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	current = issuedAt.Add(23 * time.Hour)
	if _, err := svc.Verify(signed); err != nil {
		t.Fatalf("token rejected before expiry: %v", err)
	}

	current = issuedAt.Add(25 * time.Hour)
	if _, err := svc.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestTokenTamperedSignatureRejected(t *testing.T) {
	svc := newTestTokenService(t, nil)

	signed, err := svc.Issue("u2204015@student.cuet.ac.bd", []domain.Role{domain.RoleStudent})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", signed)
	}
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	if _, err := svc.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	issuer := newTestTokenService(t, nil)
	other, err := NewTokenService("a-different-secret", "cuet-sphere", DefaultTokenTTL)
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}

	signed, err := issuer.Issue("u2204015@student.cuet.ac.bd", []domain.Role{domain.RoleStudent})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := other.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign secret, got %v", err)
	}
}

func TestTokenGarbageRejected(t *testing.T) {
	svc := newTestTokenService(t, nil)

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(input); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", input, err)
		}
	}
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	if _, err := NewTokenService("  ", "cuet-sphere", DefaultTokenTTL); err == nil {
		t.Fatal("expected error for blank secret")
	}
}

func TestSessionClaimsRolesDropsUnknownNames(t *testing.T) {
	claims := &SessionClaims{Authorities: "STUDENT, CR ,JANITOR"}

	roles := claims.Roles()
	if len(roles) != 2 || roles[0] != domain.RoleStudent || roles[1] != domain.RoleCR {
		t.Fatalf("unexpected roles: %v", roles)
	}
}
