package postgres

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories groups concrete PostgreSQL repository implementations.
type Repositories struct {
	Users     *UserRepository
	Notices   *NoticeRepository
	Resources *ResourceRepository
	Courses   *CourseRepository
	Semesters *SemesterRepository
}

// NewRepositories wires all repositories backed by the provided pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(pool),
		Notices:   NewNoticeRepository(pool),
		Resources: NewResourceRepository(pool),
		Courses:   NewCourseRepository(pool),
		Semesters: NewSemesterRepository(pool),
	}
}
