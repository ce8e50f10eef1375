package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/domain"
)

type fakeResolver struct {
	users map[string]domain.User
}

func (f *fakeResolver) Authenticate(_ context.Context, token string) (domain.User, error) {
	user, ok := f.users[token]
	if !ok {
		return domain.User{}, errors.New("token: invalid or expired")
	}
	return user, nil
}

func newAuthTestRouter(resolver *fakeResolver, guards ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(EnrichContext())
	router.Use(ResolveActor(resolver, nil))

	chain := append([]gin.HandlerFunc{}, guards...)
	chain = append(chain, func(c *gin.Context) {
		if actor, ok := GetActor(c); ok {
			c.JSON(http.StatusOK, gin.H{"actor": actor.Email})
			return
		}
		c.JSON(http.StatusOK, gin.H{"actor": ""})
	})
	router.GET("/probe", chain...)
	return router
}

func TestResolveActorSetsAuthenticatedUser(t *testing.T) {
	resolver := &fakeResolver{users: map[string]domain.User{
		"good-token": {Email: "u2204015@student.cuet.ac.bd", Role: domain.RoleStudent},
	}}
	router := newAuthTestRouter(resolver)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if body := rr.Body.String(); body != `{"actor":"u2204015@student.cuet.ac.bd"}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestResolveActorContinuesAnonymouslyOnBadToken(t *testing.T) {
	resolver := &fakeResolver{users: map[string]domain.User{}}
	router := newAuthTestRouter(resolver)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer forged-token")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if body := rr.Body.String(); body != `{"actor":""}` {
		t.Fatalf("expected anonymous actor, got %s", body)
	}
}

func TestResolveActorLogsRejectedToken(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	resolver := &fakeResolver{users: map[string]domain.User{}}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(EnrichContext())
	router.Use(ResolveActor(resolver, zap.New(core)))
	router.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer forged-token")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	rejected := logs.FilterMessage("bearer token rejected, continuing anonymously")
	if rejected.Len() != 1 {
		t.Fatalf("expected 1 rejection log entry, got %d", rejected.Len())
	}
	fields := rejected.All()[0].ContextMap()
	if _, ok := fields["error"]; !ok {
		t.Fatal("rejection log entry carries no error field")
	}
}

func TestRequireActorRejectsAnonymous(t *testing.T) {
	resolver := &fakeResolver{users: map[string]domain.User{}}
	router := newAuthTestRouter(resolver, RequireActor())

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	resolver := &fakeResolver{users: map[string]domain.User{
		"student-token": {Email: "u2204015@student.cuet.ac.bd", Role: domain.RoleStudent},
		"admin-token":   {Email: "u2104001@student.cuet.ac.bd", Role: domain.RoleSystemAdmin},
	}}
	router := newAuthTestRouter(resolver, RequireAdmin())

	cases := []struct {
		name   string
		token  string
		status int
	}{
		{name: "anonymous", token: "", status: http.StatusUnauthorized},
		{name: "student", token: "student-token", status: http.StatusForbidden},
		{name: "admin", token: "admin-token", status: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rr.Code)
			}
		})
	}
}
