package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/domain"
)

// ErrorResponse represents a generic error payload with trace ID for debugging.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error response with trace ID from context
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	traceID, _ := c.Get("trace_id")
	traceIDStr, _ := traceID.(string)

	return ErrorResponse{
		Error:   errorMsg,
		TraceID: traceIDStr,
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports liveness status.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadinessResponse reports the status of each dependency check.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// UserSummary describes a user as returned by the API. Derived cohort fields
// are included; the password hash never is.
type UserSummary struct {
	ID              string      `json:"id"`
	FullName        string      `json:"full_name"`
	Email           string      `json:"email"`
	Batch           string      `json:"batch"`
	Department      string      `json:"department"`
	DepartmentName  string      `json:"department_name,omitempty"`
	StudentID       string      `json:"student_id"`
	FullStudentID   string      `json:"full_student_id"`
	Role            domain.Role `json:"role"`
	Hall            *string     `json:"hall,omitempty"`
	Bio             *string     `json:"bio,omitempty"`
	ProfileImage    *string     `json:"profile_image,omitempty"`
	BackgroundImage *string     `json:"background_image,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

func newUserSummary(user domain.User) UserSummary {
	deptName, _ := domain.DepartmentName(user.Department)
	return UserSummary{
		ID:              user.ID,
		FullName:        user.FullName,
		Email:           user.Email,
		Batch:           user.Batch,
		Department:      user.Department,
		DepartmentName:  deptName,
		StudentID:       user.StudentID,
		FullStudentID:   user.Batch + user.Department + user.StudentID,
		Role:            user.Role,
		Hall:            user.Hall,
		Bio:             user.Bio,
		ProfileImage:    user.ProfileImage,
		BackgroundImage: user.BackgroundImage,
		CreatedAt:       user.CreatedAt,
	}
}

func newUserSummaries(users []domain.User) []UserSummary {
	summaries := make([]UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, newUserSummary(user))
	}
	return summaries
}

// SignUpRequest defines the payload for account registration. Every new
// account starts as STUDENT; there is no role field to claim.
type SignUpRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Hall     string `json:"hall"`
	Bio      string `json:"bio"`
}

// SignInRequest defines the payload for the sign-in endpoint.
type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse describes a successful authentication result.
type AuthResponse struct {
	Token     string      `json:"token"`
	TokenType string      `json:"token_type"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      UserSummary `json:"user"`
}

// NoticeResponse describes a notice as returned by the API.
type NoticeResponse struct {
	ID          string            `json:"id"`
	Batch       string            `json:"batch"`
	Department  string            `json:"department"`
	Title       string            `json:"title"`
	Message     string            `json:"message"`
	NoticeType  domain.NoticeType `json:"notice_type"`
	Attachment  *string           `json:"attachment,omitempty"`
	SenderID    string            `json:"sender_id"`
	SenderName  string            `json:"sender_name"`
	SenderEmail string            `json:"sender_email"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func newNoticeResponse(notice domain.Notice) NoticeResponse {
	return NoticeResponse{
		ID:          notice.ID,
		Batch:       notice.Batch,
		Department:  notice.Department,
		Title:       notice.Title,
		Message:     notice.Message,
		NoticeType:  notice.NoticeType,
		Attachment:  notice.Attachment,
		SenderID:    notice.SenderID,
		SenderName:  notice.SenderName,
		SenderEmail: notice.SenderEmail,
		CreatedAt:   notice.CreatedAt,
		UpdatedAt:   notice.UpdatedAt,
	}
}

func newNoticeResponses(notices []domain.Notice) []NoticeResponse {
	responses := make([]NoticeResponse, 0, len(notices))
	for _, notice := range notices {
		responses = append(responses, newNoticeResponse(notice))
	}
	return responses
}

// CreateNoticeRequest defines the multipart form fields for creating a notice.
// The attachment file rides alongside under the "file" field.
type CreateNoticeRequest struct {
	Title      string `form:"title" binding:"required"`
	Message    string `form:"message" binding:"required"`
	NoticeType string `form:"notice_type"`
}

// ResourceResponse describes a learning resource as returned by the API.
type ResourceResponse struct {
	ID             string              `json:"id"`
	Batch          string              `json:"batch"`
	Title          string              `json:"title"`
	Description    *string             `json:"description,omitempty"`
	ResourceType   domain.ResourceType `json:"resource_type"`
	FilePath       string              `json:"file_path"`
	CourseCode     string              `json:"course_code"`
	CourseName     string              `json:"course_name"`
	DepartmentCode string              `json:"department_code"`
	SemesterName   string              `json:"semester_name"`
	UploaderID     string              `json:"uploader_id"`
	UploaderName   string              `json:"uploader_name"`
	UploaderEmail  string              `json:"uploader_email"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func newResourceResponse(resource domain.Resource) ResourceResponse {
	return ResourceResponse{
		ID:             resource.ID,
		Batch:          resource.Batch,
		Title:          resource.Title,
		Description:    resource.Description,
		ResourceType:   resource.ResourceType,
		FilePath:       resource.FilePath,
		CourseCode:     resource.CourseCode,
		CourseName:     resource.CourseName,
		DepartmentCode: resource.DepartmentCode,
		SemesterName:   resource.SemesterName,
		UploaderID:     resource.UploaderID,
		UploaderName:   resource.UploaderName,
		UploaderEmail:  resource.UploaderEmail,
		CreatedAt:      resource.CreatedAt,
		UpdatedAt:      resource.UpdatedAt,
	}
}

func newResourceResponses(resources []domain.Resource) []ResourceResponse {
	responses := make([]ResourceResponse, 0, len(resources))
	for _, resource := range resources {
		responses = append(responses, newResourceResponse(resource))
	}
	return responses
}

// CreateResourceRequest defines the multipart form fields for uploading a
// resource. Either a "file" upload or an external file_path link is accepted.
type CreateResourceRequest struct {
	Title        string `form:"title" binding:"required"`
	Description  string `form:"description"`
	ResourceType string `form:"resource_type" binding:"required"`
	CourseCode   string `form:"course_code" binding:"required"`
	SemesterName string `form:"semester_name" binding:"required"`
	FilePath     string `form:"file_path"`
}

// UpdateResourceRequest defines the editable resource fields. Absent fields
// are left unchanged.
type UpdateResourceRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// UpdateProfileRequest defines the editable profile fields. Absent fields are
// left unchanged; an empty string clears the field.
type UpdateProfileRequest struct {
	FullName        *string `json:"full_name"`
	Hall            *string `json:"hall"`
	Bio             *string `json:"bio"`
	ProfileImage    *string `json:"profile_image"`
	BackgroundImage *string `json:"background_image"`
}

// FileUploadResponse carries the public URL of a directly uploaded file.
type FileUploadResponse struct {
	FileURL string `json:"file_url"`
}

// CourseResponse describes a catalogue course.
type CourseResponse struct {
	ID             string `json:"id"`
	CourseCode     string `json:"course_code"`
	CourseName     string `json:"course_name"`
	DepartmentCode string `json:"department_code"`
}

func newCourseResponses(courses []domain.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		out = append(out, CourseResponse{
			ID:             course.ID,
			CourseCode:     course.CourseCode,
			CourseName:     course.CourseName,
			DepartmentCode: course.DepartmentCode,
		})
	}
	return out
}

// SemesterResponse describes a catalogue semester.
type SemesterResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newSemesterResponses(semesters []domain.Semester) []SemesterResponse {
	out := make([]SemesterResponse, 0, len(semesters))
	for _, semester := range semesters {
		out = append(out, SemesterResponse{ID: semester.ID, Name: semester.Name})
	}
	return out
}

// AssignCRRequest identifies the student being promoted to CR. The declared
// batch and department must match the target's stored cohort.
type AssignCRRequest struct {
	Email      string `json:"email" binding:"required"`
	Batch      string `json:"batch" binding:"required"`
	Department string `json:"department" binding:"required"`
}
