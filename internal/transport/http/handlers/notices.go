package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/domain"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/port"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/repository"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/transport/http/middleware"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/usecase"
)

// NoticeHandler exposes cohort-scoped notice endpoints.
type NoticeHandler struct {
	notices *usecase.NoticeService
}

// NewNoticeHandler constructs NoticeHandler.
func NewNoticeHandler(notices *usecase.NoticeService) *NoticeHandler {
	return &NoticeHandler{notices: notices}
}

// RegisterRoutes binds notice routes. All routes require an authenticated actor.
func (h *NoticeHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.create)
	r.GET("", h.list)
	r.GET("/type/:type", h.listByType)
	r.GET("/my", h.listMine)
	r.GET("/:id", h.get)
	r.DELETE("/:id", h.delete)
}

// Create godoc
// @Summary Publish a notice to the sender's cohort
// @Description Creates a notice scoped to the sender's (batch, department). CR or SYSTEM_ADMIN only. Accepts an optional "file" attachment.
// @Tags Notices
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Notice title"
// @Param message formData string true "Notice body"
// @Param notice_type formData string false "GENERAL, URGENT, ACADEMIC, or EVENT"
// @Param file formData file false "Optional attachment"
// @Success 201 {object} NoticeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/notices [post]
func (h *NoticeHandler) create(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req CreateNoticeRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "title and message are required"))
		return
	}

	input := usecase.CreateNoticeInput{
		Title:   req.Title,
		Message: req.Message,
	}
	if req.NoticeType != "" {
		noticeType, ok := domain.ParseNoticeType(req.NoticeType)
		if !ok {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "unknown notice type"))
			return
		}
		input.NoticeType = noticeType
	}

	upload, file, err := openUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "unreadable attachment"))
		return
	}
	if file != nil {
		defer file.Close()
		input.Attachment = upload
	}

	notice, err := h.notices.Create(c.Request.Context(), actor, input)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrForbidden, Status: http.StatusForbidden, Message: "only CR or admin accounts may publish notices"},
		}, http.StatusInternalServerError, "failed to create notice")
		return
	}

	c.JSON(http.StatusCreated, newNoticeResponse(notice))
}

// List godoc
// @Summary List notices visible to the caller
// @Description Students and CRs see their own cohort's notices; SYSTEM_ADMIN sees all. Newest first.
// @Tags Notices
// @Produce json
// @Param page query int false "Page number, starting at 0"
// @Param size query int false "Page size"
// @Success 200 {array} NoticeResponse
// @Router /api/notices [get]
func (h *NoticeHandler) list(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	notices, err := h.notices.List(c.Request.Context(), actor, pageFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list notices"))
		return
	}

	c.JSON(http.StatusOK, newNoticeResponses(notices))
}

func (h *NoticeHandler) listByType(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	noticeType, ok := domain.ParseNoticeType(c.Param("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "unknown notice type"))
		return
	}

	notices, err := h.notices.ListByType(c.Request.Context(), actor, noticeType, pageFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list notices"))
		return
	}

	c.JSON(http.StatusOK, newNoticeResponses(notices))
}

func (h *NoticeHandler) listMine(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	notices, err := h.notices.ListMine(c.Request.Context(), actor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list notices"))
		return
	}

	c.JSON(http.StatusOK, newNoticeResponses(notices))
}

// Get godoc
// @Summary Fetch a single notice
// @Description Returns the notice if it belongs to the caller's cohort. Foreign-cohort notices respond 404.
// @Tags Notices
// @Produce json
// @Param id path string true "Notice ID"
// @Success 200 {object} NoticeResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/notices/{id} [get]
func (h *NoticeHandler) get(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	notice, err := h.notices.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "notice not found"},
		}, http.StatusInternalServerError, "failed to fetch notice")
		return
	}

	c.JSON(http.StatusOK, newNoticeResponse(notice))
}

func (h *NoticeHandler) delete(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	if err := h.notices.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "notice not found"},
			{Err: usecase.ErrForbidden, Status: http.StatusForbidden, Message: "only the sender or an admin may delete a notice"},
		}, http.StatusInternalServerError, "failed to delete notice")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "notice deleted"})
}

// openUpload extracts the optional "file" multipart part into an upload
// descriptor. A missing file is not an error.
func openUpload(c *gin.Context) (*usecase.AttachmentUpload, multipart.File, error) {
	header, err := c.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile || err == http.ErrNotMultipart {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}

	upload := &usecase.AttachmentUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}
	return upload, file, nil
}

func pageFromQuery(c *gin.Context) port.Page {
	page := port.Page{}
	if raw := c.Query("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page.Number = n
		}
	}
	if raw := c.Query("size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page.Size = n
		}
	}
	return page
}
