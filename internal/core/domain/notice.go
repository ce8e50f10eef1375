package domain

import "time"

// NoticeType categorizes a notice.
type NoticeType string

const (
	NoticeGeneral  NoticeType = "GENERAL"
	NoticeUrgent   NoticeType = "URGENT"
	NoticeAcademic NoticeType = "ACADEMIC"
	NoticeEvent    NoticeType = "EVENT"
)

// ParseNoticeType resolves the string form of a notice type.
func ParseNoticeType(s string) (NoticeType, bool) {
	switch NoticeType(s) {
	case NoticeGeneral, NoticeUrgent, NoticeAcademic, NoticeEvent:
		return NoticeType(s), true
	}
	return "", false
}

// Notice is a cohort-scoped announcement.
//
// Batch and Department are copied from the sender at creation time and are
// immutable afterwards; they are never recomputed from the sender record.
type Notice struct {
	ID          string
	Batch       string
	Department  string
	Title       string
	Message     string
	Attachment  *string
	NoticeType  NoticeType
	SenderID    string
	SenderName  string
	SenderEmail string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Cohort returns the notice's owning (batch, department) pair.
func (n Notice) Cohort() Cohort {
	return Cohort{Batch: n.Batch, Department: n.Department}
}
