package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/usecase"
)

// CatalogueHandler exposes the course and semester catalogues resources are
// filed under.
type CatalogueHandler struct {
	resources *usecase.ResourceService
}

// NewCatalogueHandler constructs CatalogueHandler.
func NewCatalogueHandler(resources *usecase.ResourceService) *CatalogueHandler {
	return &CatalogueHandler{resources: resources}
}

// RegisterRoutes binds catalogue routes. All routes require an authenticated actor.
func (h *CatalogueHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/courses/department/:department", h.listCourses)
	r.GET("/semesters", h.listSemesters)
}

// ListCourses godoc
// @Summary List the courses of one department
// @Tags Catalogue
// @Produce json
// @Param department path string true "Two-digit department code"
// @Success 200 {array} CourseResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/courses/department/{department} [get]
func (h *CatalogueHandler) listCourses(c *gin.Context) {
	courses, err := h.resources.Courses(c.Request.Context(), c.Param("department"))
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, err.Error()))
		return
	}

	c.JSON(http.StatusOK, newCourseResponses(courses))
}

// ListSemesters godoc
// @Summary List every semester
// @Tags Catalogue
// @Produce json
// @Success 200 {array} SemesterResponse
// @Router /api/semesters [get]
func (h *CatalogueHandler) listSemesters(c *gin.Context) {
	semesters, err := h.resources.Semesters(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list semesters"))
		return
	}

	c.JSON(http.StatusOK, newSemesterResponses(semesters))
}
