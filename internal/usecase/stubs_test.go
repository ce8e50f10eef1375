package usecase

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/domain"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/port"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/repository"
)

type fakeUserRepository struct {
	mu        sync.Mutex
	byEmail   map[string]domain.User
	createErr error
}

func newFakeUserRepository(users ...domain.User) *fakeUserRepository {
	repo := &fakeUserRepository{byEmail: make(map[string]domain.User)}
	for _, user := range users {
		repo.byEmail[user.Email] = user
	}
	return repo
}

func (r *fakeUserRepository) Create(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.byEmail {
		if user.ID == id {
			copy := user
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := user
	return &copy, nil
}

func (r *fakeUserRepository) Update(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; !ok {
		return repository.ErrNotFound
	}
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepository) UpdateRole(_ context.Context, email string, fromRole, toRole domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byEmail[email]
	if !ok || user.Role != fromRole {
		return repository.ErrNotFound
	}
	user.Role = toRole
	r.byEmail[email] = user
	return nil
}

func (r *fakeUserRepository) ListByCohort(_ context.Context, cohort domain.Cohort) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, user := range r.byEmail {
		if user.Cohort().Equals(cohort) {
			out = append(out, user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *fakeUserRepository) ListAll(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.byEmail))
	for _, user := range r.byEmail {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

type fakeNoticeRepository struct {
	mu      sync.Mutex
	notices map[string]domain.Notice
}

func newFakeNoticeRepository(notices ...domain.Notice) *fakeNoticeRepository {
	repo := &fakeNoticeRepository{notices: make(map[string]domain.Notice)}
	for _, notice := range notices {
		repo.notices[notice.ID] = notice
	}
	return repo
}

func (r *fakeNoticeRepository) Create(_ context.Context, notice domain.Notice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices[notice.ID] = notice
	return nil
}

func (r *fakeNoticeRepository) GetByID(_ context.Context, id string) (*domain.Notice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	notice, ok := r.notices[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := notice
	return &copy, nil
}

func (r *fakeNoticeRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notices[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.notices, id)
	return nil
}

func (r *fakeNoticeRepository) List(_ context.Context, scope *domain.Cohort, noticeType domain.NoticeType, _ port.Page) ([]domain.Notice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Notice
	for _, notice := range r.notices {
		if scope != nil && !notice.Cohort().Equals(*scope) {
			continue
		}
		if noticeType != "" && notice.NoticeType != noticeType {
			continue
		}
		out = append(out, notice)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeNoticeRepository) ListBySender(_ context.Context, senderID string) ([]domain.Notice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Notice
	for _, notice := range r.notices {
		if notice.SenderID == senderID {
			out = append(out, notice)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeResourceRepository struct {
	mu        sync.Mutex
	resources map[string]domain.Resource
}

func newFakeResourceRepository(resources ...domain.Resource) *fakeResourceRepository {
	repo := &fakeResourceRepository{resources: make(map[string]domain.Resource)}
	for _, resource := range resources {
		repo.resources[resource.ID] = resource
	}
	return repo
}

func (r *fakeResourceRepository) Create(_ context.Context, resource domain.Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resources[resource.ID] = resource
	return nil
}

func (r *fakeResourceRepository) GetByID(_ context.Context, id string) (*domain.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resource, ok := r.resources[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := resource
	return &copy, nil
}

func (r *fakeResourceRepository) Update(_ context.Context, resource domain.Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.resources[resource.ID]; !ok {
		return repository.ErrNotFound
	}
	r.resources[resource.ID] = resource
	return nil
}

func (r *fakeResourceRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.resources[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.resources, id)
	return nil
}

func (r *fakeResourceRepository) List(_ context.Context, scope *domain.Cohort, filter port.ResourceFilter) ([]domain.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Resource
	for _, resource := range r.resources {
		if scope != nil && !resource.Cohort().Equals(*scope) {
			continue
		}
		if filter.CourseCode != "" && resource.CourseCode != filter.CourseCode {
			continue
		}
		if filter.SemesterName != "" && resource.SemesterName != filter.SemesterName {
			continue
		}
		if filter.ResourceType != "" && resource.ResourceType != filter.ResourceType {
			continue
		}
		if filter.TitleSearch != "" && !strings.Contains(strings.ToLower(resource.Title), strings.ToLower(filter.TitleSearch)) {
			continue
		}
		out = append(out, resource)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeResourceRepository) ListByUploader(_ context.Context, uploaderID string) ([]domain.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Resource
	for _, resource := range r.resources {
		if resource.UploaderID == uploaderID {
			out = append(out, resource)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeCourseRepository struct {
	byCode map[string]domain.Course
}

func newFakeCourseRepository(courses ...domain.Course) *fakeCourseRepository {
	repo := &fakeCourseRepository{byCode: make(map[string]domain.Course)}
	for _, course := range courses {
		repo.byCode[course.CourseCode] = course
	}
	return repo
}

func (r *fakeCourseRepository) Create(_ context.Context, course domain.Course) error {
	r.byCode[course.CourseCode] = course
	return nil
}

func (r *fakeCourseRepository) GetByCode(_ context.Context, courseCode string) (*domain.Course, error) {
	course, ok := r.byCode[courseCode]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := course
	return &copy, nil
}

func (r *fakeCourseRepository) ListByDepartment(_ context.Context, departmentCode string) ([]domain.Course, error) {
	var out []domain.Course
	for _, course := range r.byCode {
		if course.DepartmentCode == departmentCode {
			out = append(out, course)
		}
	}
	return out, nil
}

func (r *fakeCourseRepository) Count(_ context.Context) (int, error) {
	return len(r.byCode), nil
}

type fakeSemesterRepository struct {
	byName map[string]domain.Semester
}

func newFakeSemesterRepository(semesters ...domain.Semester) *fakeSemesterRepository {
	repo := &fakeSemesterRepository{byName: make(map[string]domain.Semester)}
	for _, semester := range semesters {
		repo.byName[semester.Name] = semester
	}
	return repo
}

func (r *fakeSemesterRepository) Create(_ context.Context, semester domain.Semester) error {
	r.byName[semester.Name] = semester
	return nil
}

func (r *fakeSemesterRepository) GetByName(_ context.Context, name string) (*domain.Semester, error) {
	semester, ok := r.byName[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := semester
	return &copy, nil
}

func (r *fakeSemesterRepository) List(_ context.Context) ([]domain.Semester, error) {
	out := make([]domain.Semester, 0, len(r.byName))
	for _, semester := range r.byName {
		out = append(out, semester)
	}
	return out, nil
}

func (r *fakeSemesterRepository) Count(_ context.Context) (int, error) {
	return len(r.byName), nil
}

type fakeAttachmentStore struct {
	uploadErr error
	deleteErr error
	uploads   []string
	deletes   []string
}

func (s *fakeAttachmentStore) Upload(_ context.Context, fileName, _ string, body io.Reader, _ int64) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	if body != nil {
		_, _ = io.Copy(io.Discard, body)
	}
	url := "https://files.test/" + fileName
	s.uploads = append(s.uploads, url)
	return url, nil
}

func (s *fakeAttachmentStore) Delete(_ context.Context, fileURL string) error {
	s.deletes = append(s.deletes, fileURL)
	return s.deleteErr
}

type fakeEventPublisher struct {
	publishErr error
	registered []domain.UserRegisteredEvent
	created    []domain.NoticeCreatedEvent
	changed    []domain.RoleChangedEvent
}

func (p *fakeEventPublisher) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	if p.publishErr != nil {
		return p.publishErr
	}
	p.registered = append(p.registered, event)
	return nil
}

func (p *fakeEventPublisher) PublishNoticeCreated(_ context.Context, event domain.NoticeCreatedEvent) error {
	if p.publishErr != nil {
		return p.publishErr
	}
	p.created = append(p.created, event)
	return nil
}

func (p *fakeEventPublisher) PublishRoleChanged(_ context.Context, event domain.RoleChangedEvent) error {
	if p.publishErr != nil {
		return p.publishErr
	}
	p.changed = append(p.changed, event)
	return nil
}

func (p *fakeEventPublisher) Close() error { return nil }
