package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/domain"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/port"
)

// UserService covers self-service profile operations and direct file uploads.
type UserService struct {
	users  port.UserRepository
	store  port.AttachmentStore
	logger *zap.Logger
	now    func() time.Time
}

// NewUserService constructs a user service.
func NewUserService(users port.UserRepository, store port.AttachmentStore, log *zap.Logger) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserService{users: users, store: store, logger: log, now: time.Now}
}

// WithClock overrides the time source. Intended for tests.
func (s *UserService) WithClock(now func() time.Time) *UserService {
	s.now = now
	return s
}

// Profile returns the actor's own account record.
func (s *UserService) Profile(ctx context.Context, actor domain.User) (domain.User, error) {
	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return domain.User{}, err
	}
	return *user, nil
}

// UpdateProfileInput carries the self-editable profile fields. Nil fields
// are left unchanged. Email, role, and the derived cohort identity are not
// editable through the profile.
type UpdateProfileInput struct {
	FullName        *string
	Hall            *string
	Bio             *string
	ProfileImage    *string
	BackgroundImage *string
}

// UpdateProfile edits the actor's own profile.
func (s *UserService) UpdateProfile(ctx context.Context, actor domain.User, input UpdateProfileInput) (domain.User, error) {
	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return domain.User{}, err
	}

	if input.FullName != nil {
		fullName := strings.TrimSpace(*input.FullName)
		if fullName == "" {
			return domain.User{}, fmt.Errorf("full name cannot be empty")
		}
		user.FullName = fullName
	}
	if input.Hall != nil {
		user.Hall = optionalString(*input.Hall)
	}
	if input.Bio != nil {
		user.Bio = optionalString(*input.Bio)
	}
	if input.ProfileImage != nil {
		user.ProfileImage = optionalString(*input.ProfileImage)
	}
	if input.BackgroundImage != nil {
		user.BackgroundImage = optionalString(*input.BackgroundImage)
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.users.Update(ctx, *user); err != nil {
		return domain.User{}, fmt.Errorf("update profile: %w", err)
	}
	return *user, nil
}

// GroupMembers returns every account in the actor's own cohort.
// Scope-bypassing roles see the whole directory.
func (s *UserService) GroupMembers(ctx context.Context, actor domain.User) ([]domain.User, error) {
	if actor.Role.CanBypassScope() {
		return s.users.ListAll(ctx)
	}
	return s.users.ListByCohort(ctx, actor.Cohort())
}

// UploadFile stores an arbitrary file in the object store and returns its
// public URL. The caller decides what the URL is attached to.
func (s *UserService) UploadFile(ctx context.Context, upload AttachmentUpload) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("file storage is not configured")
	}

	url, err := s.store.Upload(ctx, upload.FileName, upload.ContentType, upload.Body, upload.Size)
	if err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}
	return url, nil
}

// ProfileImageTarget selects which image slot a profile upload replaces.
type ProfileImageTarget string

const (
	ProfileImageMain       ProfileImageTarget = "profile"
	ProfileImageBackground ProfileImageTarget = "background"
)

// SetProfileImage uploads a new profile or background image and persists its
// URL on the actor's record. The replaced image is deleted best-effort.
func (s *UserService) SetProfileImage(ctx context.Context, actor domain.User, target ProfileImageTarget, upload AttachmentUpload) (domain.User, error) {
	if s.store == nil {
		return domain.User{}, fmt.Errorf("file storage is not configured")
	}

	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return domain.User{}, err
	}

	url, err := s.store.Upload(ctx, upload.FileName, upload.ContentType, upload.Body, upload.Size)
	if err != nil {
		return domain.User{}, fmt.Errorf("upload image: %w", err)
	}

	var previous *string
	switch target {
	case ProfileImageBackground:
		previous = user.BackgroundImage
		user.BackgroundImage = &url
	default:
		previous = user.ProfileImage
		user.ProfileImage = &url
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.users.Update(ctx, *user); err != nil {
		s.deleteImage(ctx, &url)
		return domain.User{}, fmt.Errorf("update profile image: %w", err)
	}

	s.deleteImage(ctx, previous)
	return *user, nil
}

func (s *UserService) deleteImage(ctx context.Context, url *string) {
	if s.store == nil || url == nil || *url == "" {
		return
	}
	if err := s.store.Delete(ctx, *url); err != nil {
		s.logger.Warn("delete profile image failed", zap.String("url", *url), zap.Error(err))
	}
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
