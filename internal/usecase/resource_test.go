package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/domain"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/port"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/repository"
)

func newResourceFixture() (*fakeResourceRepository, *fakeCourseRepository, *fakeSemesterRepository, *fakeAttachmentStore) {
	resources := newFakeResourceRepository()
	courses := newFakeCourseRepository(
		domain.Course{ID: "c1", CourseCode: "CSE-241", CourseName: "Data Structures", DepartmentCode: "04"},
		domain.Course{ID: "c2", CourseCode: "EEE-141", CourseName: "Circuits", DepartmentCode: "02"},
	)
	semesters := newFakeSemesterRepository(domain.Semester{ID: "s1", Name: "Level 2 Term 1"})
	return resources, courses, semesters, &fakeAttachmentStore{}
}

func TestCreateResourceChecksCourseDepartment(t *testing.T) {
	resources, courses, semesters, store := newResourceFixture()
	svc := NewResourceService(resources, courses, semesters, store, nil)

	resource, err := svc.Create(context.Background(), crActor, CreateResourceInput{
		Title:        "DS lecture 5",
		ResourceType: domain.ResourceLectureNote,
		CourseCode:   "CSE-241",
		SemesterName: "Level 2 Term 1",
		File: &AttachmentUpload{
			FileName:    "ds-5.pdf",
			ContentType: "application/pdf",
			Size:        512,
			Body:        strings.NewReader("pdf"),
		},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if resource.Batch != crActor.Batch || resource.DepartmentCode != "04" {
		t.Fatalf("resource cohort = %s/%s", resource.Batch, resource.DepartmentCode)
	}
	if resource.CourseName != "Data Structures" || resource.SemesterName != "Level 2 Term 1" {
		t.Fatalf("catalogue snapshot missing: %+v", resource)
	}
}

func TestCreateResourceForeignDepartmentCourse(t *testing.T) {
	resources, courses, semesters, store := newResourceFixture()
	svc := NewResourceService(resources, courses, semesters, store, nil)

	_, err := svc.Create(context.Background(), crActor, CreateResourceInput{
		Title:        "Circuits notes",
		CourseCode:   "EEE-141",
		SemesterName: "Level 2 Term 1",
		FilePath:     "https://files.test/circuits.pdf",
	})
	if !errors.Is(err, ErrCohortMismatch) {
		t.Fatalf("expected ErrCohortMismatch, got %v", err)
	}
}

func TestCreateResourceUnknownCatalogueEntries(t *testing.T) {
	resources, courses, semesters, store := newResourceFixture()
	svc := NewResourceService(resources, courses, semesters, store, nil)

	_, err := svc.Create(context.Background(), crActor, CreateResourceInput{
		Title:        "Mystery",
		CourseCode:   "CSE-999",
		SemesterName: "Level 2 Term 1",
		FilePath:     "https://files.test/x.pdf",
	})
	if !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}

	_, err = svc.Create(context.Background(), crActor, CreateResourceInput{
		Title:        "Mystery",
		CourseCode:   "CSE-241",
		SemesterName: "Level 9 Term 9",
		FilePath:     "https://files.test/x.pdf",
	})
	if !errors.Is(err, ErrSemesterNotFound) {
		t.Fatalf("expected ErrSemesterNotFound, got %v", err)
	}
}

func TestCreateResourceStudentForbidden(t *testing.T) {
	resources, courses, semesters, store := newResourceFixture()
	svc := NewResourceService(resources, courses, semesters, store, nil)

	_, err := svc.Create(context.Background(), studentActor, CreateResourceInput{
		Title:        "nope",
		CourseCode:   "CSE-241",
		SemesterName: "Level 2 Term 1",
		FilePath:     "https://files.test/x.pdf",
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestResourceListScopesAndFilters(t *testing.T) {
	own := domain.Resource{ID: "r1", Batch: "22", DepartmentCode: "04", CourseCode: "CSE-241", SemesterName: "Level 2 Term 1", ResourceType: domain.ResourceLectureNote, Title: "Graph notes"}
	ownOtherCourse := domain.Resource{ID: "r2", Batch: "22", DepartmentCode: "04", CourseCode: "CSE-243", SemesterName: "Level 2 Term 1", ResourceType: domain.ResourceBook, Title: "Algorithms text"}
	foreign := domain.Resource{ID: "r3", Batch: "21", DepartmentCode: "04", CourseCode: "CSE-241", ResourceType: domain.ResourceLectureNote, Title: "Old graph notes"}
	resources := newFakeResourceRepository(own, ownOtherCourse, foreign)
	svc := NewResourceService(resources, nil, nil, nil, nil)

	visible, err := svc.List(context.Background(), studentActor, port.ResourceFilter{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("student sees %d resources, want 2", len(visible))
	}

	byCourse, err := svc.List(context.Background(), studentActor, port.ResourceFilter{CourseCode: "CSE-241"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(byCourse) != 1 || byCourse[0].ID != "r1" {
		t.Fatalf("course filter = %v", byCourse)
	}

	all, err := svc.List(context.Background(), adminActor, port.ResourceFilter{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("admin sees %d resources, want 3", len(all))
	}
}

func TestResourceSearchMatchesTitleCaseInsensitive(t *testing.T) {
	resources := newFakeResourceRepository(
		domain.Resource{ID: "r1", Batch: "22", DepartmentCode: "04", Title: "Graph Theory Notes"},
		domain.Resource{ID: "r2", Batch: "22", DepartmentCode: "04", Title: "Circuits Lab"},
	)
	svc := NewResourceService(resources, nil, nil, nil, nil)

	hits, err := svc.Search(context.Background(), studentActor, "graph")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "r1" {
		t.Fatalf("search hits = %v", hits)
	}

	if _, err := svc.Search(context.Background(), studentActor, "   "); err == nil {
		t.Fatal("blank query accepted")
	}
}

func TestResourceUpdateOwnerOnly(t *testing.T) {
	existing := domain.Resource{ID: "r1", Batch: "22", DepartmentCode: "04", UploaderID: "cr-1", Title: "Old title"}
	resources := newFakeResourceRepository(existing)
	svc := NewResourceService(resources, nil, nil, nil, nil)

	title := "New title"
	if _, err := svc.Update(context.Background(), studentActor, "r1", UpdateResourceInput{Title: &title}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	updated, err := svc.Update(context.Background(), crActor, "r1", UpdateResourceInput{Title: &title})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "New title" {
		t.Fatalf("title = %q", updated.Title)
	}
}

func TestResourceDeleteCleansUpFile(t *testing.T) {
	existing := domain.Resource{ID: "r1", Batch: "22", DepartmentCode: "04", UploaderID: "cr-1", FilePath: "https://files.test/ds-5.pdf"}
	resources := newFakeResourceRepository(existing)
	store := &fakeAttachmentStore{deleteErr: errors.New("bucket unavailable")}
	svc := NewResourceService(resources, nil, nil, store, nil)

	if err := svc.Delete(context.Background(), crActor, "r1"); err != nil {
		t.Fatalf("Delete propagated storage error: %v", err)
	}
	if len(store.deletes) != 1 {
		t.Fatalf("file deletes = %v", store.deletes)
	}
	if _, err := resources.GetByID(context.Background(), "r1"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("resource row survived delete: %v", err)
	}
}

func TestResourceGetHidesForeignCohort(t *testing.T) {
	resources := newFakeResourceRepository(
		domain.Resource{ID: "r1", Batch: "21", DepartmentCode: "04", Title: "Old notes"},
	)
	svc := NewResourceService(resources, nil, nil, nil, nil)

	if _, err := svc.Get(context.Background(), studentActor, "r1"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("foreign cohort read error = %v", err)
	}
	if _, err := svc.Get(context.Background(), adminActor, "r1"); err != nil {
		t.Fatalf("admin read failed: %v", err)
	}
}

func TestCatalogueListings(t *testing.T) {
	_, courses, semesters, _ := newResourceFixture()
	svc := NewResourceService(newFakeResourceRepository(), courses, semesters, nil, nil)

	got, err := svc.Courses(context.Background(), "04")
	if err != nil {
		t.Fatalf("Courses returned error: %v", err)
	}
	if len(got) != 1 || got[0].CourseCode != "CSE-241" {
		t.Fatalf("department 04 courses = %+v", got)
	}

	if _, err := svc.Courses(context.Background(), "  "); err == nil {
		t.Fatal("blank department code accepted")
	}

	terms, err := svc.Semesters(context.Background())
	if err != nil {
		t.Fatalf("Semesters returned error: %v", err)
	}
	if len(terms) != 1 || terms[0].Name != "Level 2 Term 1" {
		t.Fatalf("semesters = %+v", terms)
	}
}
