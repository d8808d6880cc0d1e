package models

import "math"

// DefaultPerPage is the page size when the caller does not pick one.
const DefaultPerPage = 20

// ParentFilter is the tri-state parent-task predicate of task listing.
// The zero value means "absent": restrict to top-level tasks. An explicit
// null means "do not filter by parent"; an explicit id matches that
// parent's children. The three states are distinct on the wire
// (omitted vs the literal "null" vs a number), so they are distinct here.
type ParentFilter struct {
	Set  bool
	Null bool
	ID   uint
}

// ParentAny returns the "do not filter by parent" state.
func ParentAny() ParentFilter {
	return ParentFilter{Set: true, Null: true}
}

// ParentID returns the "children of this parent" state.
func ParentID(id uint) ParentFilter {
	return ParentFilter{Set: true, ID: id}
}

// DateRange is an inclusive calendar-day range filter. It only applies
// when both bounds are present and non-blank; the service normalizes the
// bounds to day start/end in local time.
type DateRange struct {
	From string
	To   string
}

func (r DateRange) Active() bool {
	return r.From != "" && r.To != ""
}

// TaskListFilter carries every predicate of the task listing contract.
// Soft-deleted rows are always excluded; that is not a caller choice.
type TaskListFilter struct {
	Parent     ParentFilter
	ProjectID  *uint
	MeetingID  *uint
	AssignedTo *uint
	TaskStatus string
	Priority   string
	Completion DateRange // against completion_date
	Submission DateRange // against submission_date
	ShowAll    bool
	Page       int
	PerPage    int
}

// PageMeta describes one page of a listing, sufficient to render a
// page-link control.
type PageMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PerPage  int   `json:"per_page"`
	LastPage int   `json:"lastPage"`
	From     *int  `json:"from"`
	To       *int  `json:"to"`
}

// NewPageMeta computes pagination metadata. From/To are nil exactly when
// there are no matches.
func NewPageMeta(total int64, page, perPage int) PageMeta {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	lastPage := int(math.Ceil(float64(total) / float64(perPage)))
	if lastPage < 1 {
		lastPage = 1
	}
	meta := PageMeta{Total: total, Page: page, PerPage: perPage, LastPage: lastPage}
	if total > 0 {
		from := (page-1)*perPage + 1
		to := page * perPage
		if int64(to) > total {
			to = int(total)
		}
		meta.From = &from
		meta.To = &to
	}
	return meta
}

// TaskPage is the result of the task listing operation: the annotated
// page plus its metadata.
type TaskPage struct {
	Tasks []AnnotatedTask
	Meta  PageMeta
}

// SubtaskRollup computes the derived completion aggregates from a task's
// immediate children. completionPercent is 0 for a childless task.
func SubtaskRollup(children []Task) (total, completed, incompleted, percent int) {
	total = len(children)
	for _, c := range children {
		if c.TaskStatus == StatusCompleted {
			completed++
		}
	}
	incompleted = total - completed
	if total > 0 {
		percent = int(math.Round(float64(completed) / float64(total) * 100))
	}
	return total, completed, incompleted, percent
}
