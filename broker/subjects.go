package broker

// NATS subjects, one per entity.
const (
	UserSubject    = "taskhub.users"
	ProjectSubject = "taskhub.projects"
	TaskSubject    = "taskhub.tasks"
	MeetingSubject = "taskhub.meetings"
)

// EntitySubjects lists every subject the event stream relays to clients.
var EntitySubjects = []string{UserSubject, ProjectSubject, TaskSubject, MeetingSubject}

type EventType string

// Event names in <entity>.<action> form.
const (
	UserCreated EventType = "user.created"
	UserUpdated EventType = "user.updated"

	ProjectCreated EventType = "project.created"
	ProjectUpdated EventType = "project.updated"
	ProjectDeleted EventType = "project.deleted"

	TaskCreated EventType = "task.created"
	TaskUpdated EventType = "task.updated"
	TaskDeleted EventType = "task.deleted"

	MeetingCreated EventType = "meeting.created"
	MeetingUpdated EventType = "meeting.updated"
	MeetingDeleted EventType = "meeting.deleted"
)
