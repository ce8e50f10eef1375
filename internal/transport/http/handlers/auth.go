package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/domain"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/usecase"
)

// AuthHandler exposes account registration and sign-in endpoints.
type AuthHandler struct {
	auth *usecase.AuthService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *usecase.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterRoutes binds authentication routes, applying optional middleware ahead of handlers.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, signUpMiddlewares, signInMiddlewares []gin.HandlerFunc) {
	signUpChain := append([]gin.HandlerFunc{}, signUpMiddlewares...)
	signUpChain = append(signUpChain, h.signUp)
	r.POST("/signup", signUpChain...)

	signInChain := append([]gin.HandlerFunc{}, signInMiddlewares...)
	signInChain = append(signInChain, h.signIn)
	r.POST("/signin", signInChain...)
}

// SignUp godoc
// @Summary Register a student account
// @Description Creates an account from an institutional student email. Batch, department, and student ID are derived from the address.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body SignUpRequest true "Registration payload"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/auth/signup [post]
func (h *AuthHandler) signUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid signup payload"))
		return
	}

	session, err := h.auth.SignUp(c.Request.Context(), usecase.SignUpInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Hall:     req.Hall,
		Bio:      req.Bio,
	})
	if err != nil {
		var identityErr *domain.InvalidIdentityError
		if errors.As(err, &identityErr) {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, identityErr.Error()))
			return
		}
		if errors.Is(err, usecase.ErrEmailExists) {
			c.JSON(http.StatusConflict, NewErrorResponse(c, "email already registered"))
			return
		}
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, newAuthResponse(session))
}

// SignIn godoc
// @Summary Authenticate with email and password
// @Description Verifies credentials and returns a signed session token.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body SignInRequest true "Credentials payload"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/auth/signin [post]
func (h *AuthHandler) signIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid signin payload"))
		return
	}

	session, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrInvalidCredentials, Status: http.StatusUnauthorized, Message: "invalid email or password"},
		}, http.StatusInternalServerError, "failed to sign in")
		return
	}

	c.JSON(http.StatusOK, newAuthResponse(session))
}

func newAuthResponse(session usecase.Session) AuthResponse {
	return AuthResponse{
		Token:     session.Token,
		TokenType: "Bearer",
		ExpiresAt: session.ExpiresAt,
		User:      newUserSummary(session.User),
	}
}
