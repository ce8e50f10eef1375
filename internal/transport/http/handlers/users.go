package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/repository"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/transport/http/middleware"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/usecase"
)

// UserHandler exposes profile and cohort directory endpoints.
type UserHandler struct {
	users *usecase.UserService
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(users *usecase.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRoutes binds user routes. All routes require an authenticated actor.
func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/profile", h.profile)
	r.PUT("/profile", h.updateProfile)
	r.GET("/group", h.groupMembers)
}

// Profile godoc
// @Summary Fetch the caller's own profile
// @Tags Users
// @Produce json
// @Success 200 {object} UserSummary
// @Failure 404 {object} ErrorResponse
// @Router /api/users/profile [get]
func (h *UserHandler) profile(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	user, err := h.users.Profile(c.Request.Context(), actor)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "user not found"},
		}, http.StatusInternalServerError, "failed to fetch profile")
		return
	}

	c.JSON(http.StatusOK, newUserSummary(user))
}

// UpdateProfile godoc
// @Summary Edit the caller's own profile
// @Description Edits display fields only. Email, role, and the derived cohort identity cannot be changed.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} UserSummary
// @Failure 400 {object} ErrorResponse
// @Router /api/users/profile [put]
func (h *UserHandler) updateProfile(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid profile payload"))
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), actor, usecase.UpdateProfileInput{
		FullName:        req.FullName,
		Hall:            req.Hall,
		Bio:             req.Bio,
		ProfileImage:    req.ProfileImage,
		BackgroundImage: req.BackgroundImage,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "user not found"},
		}, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, newUserSummary(user))
}

// GroupMembers godoc
// @Summary List the caller's cohort mates
// @Description Returns every user in the caller's (batch, department) group. SYSTEM_ADMIN receives the whole directory.
// @Tags Users
// @Produce json
// @Success 200 {array} UserSummary
// @Router /api/users/group [get]
func (h *UserHandler) groupMembers(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	members, err := h.users.GroupMembers(c.Request.Context(), actor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list group members"))
		return
	}

	c.JSON(http.StatusOK, newUserSummaries(members))
}
