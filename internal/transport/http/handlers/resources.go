package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/domain"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/port"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/repository"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/transport/http/middleware"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/usecase"
)

// ResourceHandler exposes cohort-scoped learning resource endpoints.
type ResourceHandler struct {
	resources *usecase.ResourceService
}

// NewResourceHandler constructs ResourceHandler.
func NewResourceHandler(resources *usecase.ResourceService) *ResourceHandler {
	return &ResourceHandler{resources: resources}
}

// RegisterRoutes binds resource routes. All routes require an authenticated actor.
func (h *ResourceHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.create)
	r.GET("", h.list)
	r.GET("/course/:course", h.listByCourse)
	r.GET("/course/:course/semester/:semester", h.listByCourseAndSemester)
	r.GET("/type/:type", h.listByType)
	r.GET("/my", h.listMine)
	r.GET("/search", h.search)
	r.GET("/:id", h.get)
	r.PUT("/:id", h.update)
	r.DELETE("/:id", h.delete)
}

// Create godoc
// @Summary Upload a learning resource
// @Description Registers a resource in the uploader's cohort. The course must belong to the uploader's department. CR or SYSTEM_ADMIN only.
// @Tags Resources
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Resource title"
// @Param resource_type formData string true "Resource type"
// @Param course_code formData string true "Course code, e.g. CSE-241"
// @Param semester_name formData string true "Semester name, e.g. Level 2 Term 1"
// @Param description formData string false "Optional description"
// @Param file formData file false "Resource file; alternatively pass file_path as an external link"
// @Success 201 {object} ResourceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/resources [post]
func (h *ResourceHandler) create(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req CreateResourceRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "title, resource_type, course_code, and semester_name are required"))
		return
	}

	resourceType, ok := domain.ParseResourceType(req.ResourceType)
	if !ok {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "unknown resource type"))
		return
	}

	input := usecase.CreateResourceInput{
		Title:        req.Title,
		Description:  req.Description,
		ResourceType: resourceType,
		CourseCode:   req.CourseCode,
		SemesterName: req.SemesterName,
		FilePath:     req.FilePath,
	}

	upload, file, err := openUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "unreadable file upload"))
		return
	}
	if file != nil {
		defer file.Close()
		input.File = upload
	}

	resource, err := h.resources.Create(c.Request.Context(), actor, input)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrForbidden, Status: http.StatusForbidden, Message: "only CR or admin accounts may upload resources"},
			{Err: usecase.ErrCourseNotFound, Status: http.StatusNotFound, Message: "course not found"},
			{Err: usecase.ErrSemesterNotFound, Status: http.StatusNotFound, Message: "semester not found"},
			{Err: usecase.ErrCohortMismatch, Status: http.StatusBadRequest, Message: "course belongs to another department"},
		}, http.StatusInternalServerError, "failed to create resource")
		return
	}

	c.JSON(http.StatusCreated, newResourceResponse(resource))
}

// List godoc
// @Summary List resources visible to the caller
// @Description Students and CRs see their own cohort's resources; SYSTEM_ADMIN sees all.
// @Tags Resources
// @Produce json
// @Success 200 {array} ResourceResponse
// @Router /api/resources [get]
func (h *ResourceHandler) list(c *gin.Context) {
	h.respondList(c, port.ResourceFilter{})
}

func (h *ResourceHandler) listByCourse(c *gin.Context) {
	h.respondList(c, port.ResourceFilter{CourseCode: c.Param("course")})
}

func (h *ResourceHandler) listByCourseAndSemester(c *gin.Context) {
	h.respondList(c, port.ResourceFilter{
		CourseCode:   c.Param("course"),
		SemesterName: c.Param("semester"),
	})
}

func (h *ResourceHandler) listByType(c *gin.Context) {
	resourceType, ok := domain.ParseResourceType(c.Param("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "unknown resource type"))
		return
	}
	h.respondList(c, port.ResourceFilter{ResourceType: resourceType})
}

func (h *ResourceHandler) respondList(c *gin.Context, filter port.ResourceFilter) {
	actor, _ := middleware.GetActor(c)

	resources, err := h.resources.List(c.Request.Context(), actor, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list resources"))
		return
	}

	c.JSON(http.StatusOK, newResourceResponses(resources))
}

func (h *ResourceHandler) listMine(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	resources, err := h.resources.ListMine(c.Request.Context(), actor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list resources"))
		return
	}

	c.JSON(http.StatusOK, newResourceResponses(resources))
}

// Search godoc
// @Summary Search resources by title
// @Description Case-insensitive title search within the caller's visible scope.
// @Tags Resources
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {array} ResourceResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/resources/search [get]
func (h *ResourceHandler) search(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "query parameter q is required"))
		return
	}

	resources, err := h.resources.Search(c.Request.Context(), actor, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to search resources"))
		return
	}

	c.JSON(http.StatusOK, newResourceResponses(resources))
}

func (h *ResourceHandler) get(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	resource, err := h.resources.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "resource not found"},
		}, http.StatusInternalServerError, "failed to fetch resource")
		return
	}

	c.JSON(http.StatusOK, newResourceResponse(resource))
}

func (h *ResourceHandler) update(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid update payload"))
		return
	}

	resource, err := h.resources.Update(c.Request.Context(), actor, c.Param("id"), usecase.UpdateResourceInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "resource not found"},
			{Err: usecase.ErrForbidden, Status: http.StatusForbidden, Message: "only the uploader or an admin may edit a resource"},
		}, http.StatusInternalServerError, "failed to update resource")
		return
	}

	c.JSON(http.StatusOK, newResourceResponse(resource))
}

func (h *ResourceHandler) delete(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	if err := h.resources.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "resource not found"},
			{Err: usecase.ErrForbidden, Status: http.StatusForbidden, Message: "only the uploader or an admin may delete a resource"},
		}, http.StatusInternalServerError, "failed to delete resource")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "resource deleted"})
}
