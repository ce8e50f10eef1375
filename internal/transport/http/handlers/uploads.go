package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/transport/http/middleware"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/usecase"
)

// UploadHandler exposes direct file upload endpoints backed by the object
// store.
type UploadHandler struct {
	users *usecase.UserService
}

// NewUploadHandler constructs UploadHandler.
func NewUploadHandler(users *usecase.UserService) *UploadHandler {
	return &UploadHandler{users: users}
}

// RegisterRoutes binds upload routes. All routes require an authenticated actor.
func (h *UploadHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/file", h.uploadFile)
	r.POST("/profile", h.uploadProfileImage)
}

// UploadFile godoc
// @Summary Upload a file
// @Description Stores the multipart "file" part in the object store and returns its public URL.
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 201 {object} FileUploadResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/upload/file [post]
func (h *UploadHandler) uploadFile(c *gin.Context) {
	upload, file, err := openUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "unreadable file"))
		return
	}
	if file == nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "file is required"))
		return
	}
	defer file.Close()

	url, err := h.users.UploadFile(c.Request.Context(), *upload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to upload file"))
		return
	}

	c.JSON(http.StatusCreated, FileUploadResponse{FileURL: url})
}

// UploadProfileImage godoc
// @Summary Upload a profile or background image
// @Description Stores the multipart "file" part and sets it as the caller's profile image. Pass target=background to replace the background image instead.
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image to upload"
// @Param target formData string false "profile (default) or background"
// @Success 200 {object} UserSummary
// @Failure 400 {object} ErrorResponse
// @Router /api/upload/profile [post]
func (h *UploadHandler) uploadProfileImage(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	target := usecase.ProfileImageMain
	switch c.PostForm("target") {
	case "", "profile":
	case "background":
		target = usecase.ProfileImageBackground
	default:
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "target must be profile or background"))
		return
	}

	upload, file, err := openUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "unreadable file"))
		return
	}
	if file == nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "file is required"))
		return
	}
	defer file.Close()

	user, err := h.users.SetProfileImage(c.Request.Context(), actor, target, *upload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to update profile image"))
		return
	}

	c.JSON(http.StatusOK, newUserSummary(user))
}
