package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/domain"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/repository"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/transport/http/middleware"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/usecase"
)

// AdminHandler exposes the CR grant/revoke workflow and directory listings.
type AdminHandler struct {
	admin *usecase.AdminService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(admin *usecase.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// RegisterRoutes binds admin routes. The group must already enforce SYSTEM_ADMIN.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/assign-cr", h.assignCR)
	r.DELETE("/remove-cr/:email", h.removeCR)
	r.GET("/users", h.listUsers)
	r.GET("/users/department/:department/batch/:batch", h.listCohort)
	r.GET("/users/:email", h.getUser)
}

// AssignCR godoc
// @Summary Promote a student to class representative
// @Description Grants the CR role to the student identified by email. The declared batch and department must match the student's cohort. SYSTEM_ADMIN only.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body AssignCRRequest true "Target student"
// @Success 200 {object} UserSummary
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/admin/assign-cr [post]
func (h *AdminHandler) assignCR(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req AssignCRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "email, batch and department are required"))
		return
	}

	declared := domain.Cohort{Batch: req.Batch, Department: req.Department}
	user, err := h.admin.GrantCR(c.Request.Context(), actor, req.Email, declared)
	if err != nil {
		RespondWithMappedError(c, err, roleTransitionErrorCases("grant"), http.StatusInternalServerError, "failed to assign CR role")
		return
	}

	c.JSON(http.StatusOK, newUserSummary(user))
}

// RemoveCR godoc
// @Summary Demote a class representative back to student
// @Description Revokes the CR role from the user identified by email. SYSTEM_ADMIN only.
// @Tags Admin
// @Produce json
// @Param email path string true "Target user email"
// @Success 200 {object} UserSummary
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/admin/remove-cr/{email} [delete]
func (h *AdminHandler) removeCR(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	user, err := h.admin.RevokeCR(c.Request.Context(), actor, c.Param("email"))
	if err != nil {
		RespondWithMappedError(c, err, roleTransitionErrorCases("revoke"), http.StatusInternalServerError, "failed to remove CR role")
		return
	}

	c.JSON(http.StatusOK, newUserSummary(user))
}

func roleTransitionErrorCases(action string) []ErrorCase {
	return []ErrorCase{
		{Err: usecase.ErrForbidden, Status: http.StatusForbidden, Message: "admin privileges required"},
		{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "user not found"},
		{Err: usecase.ErrCohortMismatch, Status: http.StatusBadRequest, Message: "declared cohort does not match the target user"},
		{Err: usecase.ErrAlreadyCR, Status: http.StatusConflict, Message: "user already holds the CR role"},
		{Err: usecase.ErrNotCR, Status: http.StatusConflict, Message: "user does not hold the CR role"},
		{Err: usecase.ErrInvalidRoleTransition, Status: http.StatusConflict, Message: "cannot " + action + " CR role for this user"},
	}
}

func (h *AdminHandler) listUsers(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	users, err := h.admin.ListUsers(c.Request.Context(), actor)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrForbidden, Status: http.StatusForbidden, Message: "admin privileges required"},
		}, http.StatusInternalServerError, "failed to list users")
		return
	}

	c.JSON(http.StatusOK, newUserSummaries(users))
}

func (h *AdminHandler) listCohort(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	users, err := h.admin.ListCohort(c.Request.Context(), actor, c.Param("department"), c.Param("batch"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrForbidden, Status: http.StatusForbidden, Message: "admin privileges required"},
		}, http.StatusInternalServerError, "failed to list cohort members")
		return
	}

	c.JSON(http.StatusOK, newUserSummaries(users))
}

func (h *AdminHandler) getUser(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	user, err := h.admin.GetUser(c.Request.Context(), actor, c.Param("email"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrForbidden, Status: http.StatusForbidden, Message: "admin privileges required"},
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "user not found"},
		}, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, newUserSummary(user))
}
