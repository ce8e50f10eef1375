package domain

import "time"

// ResourceType categorizes an uploaded learning resource.
type ResourceType string

const (
	ResourceLectureNote   ResourceType = "LECTURE_NOTE"
	ResourceAssignment    ResourceType = "ASSIGNMENT"
	ResourceLabManual     ResourceType = "LAB_MANUAL"
	ResourceBook          ResourceType = "BOOK"
	ResourcePresentation  ResourceType = "PRESENTATION"
	ResourceQuestionPaper ResourceType = "QUESTION_PAPER"
	ResourceSolution      ResourceType = "SOLUTION"
	ResourceOther         ResourceType = "OTHER"
)

// ParseResourceType resolves the string form of a resource type.
func ParseResourceType(s string) (ResourceType, bool) {
	switch ResourceType(s) {
	case ResourceLectureNote, ResourceAssignment, ResourceLabManual, ResourceBook,
		ResourcePresentation, ResourceQuestionPaper, ResourceSolution, ResourceOther:
		return ResourceType(s), true
	}
	return "", false
}

// Resource is a cohort-scoped learning material reference.
//
// Batch is copied from the uploader at creation time. The resource's course
// must belong to the uploader's department; that invariant is checked at
// upload, not merely copied.
type Resource struct {
	ID             string
	Batch          string
	ResourceType   ResourceType
	Title          string
	FilePath       string
	Description    *string
	CourseID       string
	CourseCode     string
	CourseName     string
	DepartmentCode string
	SemesterID     string
	SemesterName   string
	UploaderID     string
	UploaderName   string
	UploaderEmail  string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Cohort returns the resource's owning (batch, department) pair. The
// department comes from the resource's course.
func (r Resource) Cohort() Cohort {
	return Cohort{Batch: r.Batch, Department: r.DepartmentCode}
}

// Course belongs to exactly one department, identified by its canonical
// zero-padded numeric code.
type Course struct {
	ID             string
	CourseCode     string
	CourseName     string
	DepartmentCode string
}

// Semester is a named term reference, e.g. "Level 2 Term 1".
type Semester struct {
	ID   string
	Name string
}
