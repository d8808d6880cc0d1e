package services

import (
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/ibrahimbiplob75/taskhub/testutils"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "sprint-planning", Slugify("Sprint Planning"))
	assert.Equal(t, "q3-review-2024", Slugify("Q3 Review (2024)"))
	assert.Equal(t, "standup", Slugify("--Standup--"))
	assert.Equal(t, "meeting", Slugify("!!!"))
	assert.Equal(t, "meeting", Slugify(""))
}

func TestCreateMeeting_MissingFields(t *testing.T) {
	db, _, close := testutils.SetupMockDB()
	defer close()

	meetingService := &MeetingService{}
	_, err := meetingService.CreateMeeting(db, MeetingInput{}, 1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateMeeting_UnknownProject(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "projects" WHERE id = \$1`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	projectID := uint(99)
	meetingService := &MeetingService{}
	_, err := meetingService.CreateMeeting(db, MeetingInput{Title: strPtr("Kickoff"), ProjectID: &projectID}, 1)
	assert.ErrorIs(t, err, ErrProjectNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMeeting_SlugCollision(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "projects" WHERE id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "meetings" WHERE slug = \$1`).
		WithArgs("kickoff").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "meetings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectCommit()

	projectID := uint(1)
	meetingService := &MeetingService{}
	meeting, err := meetingService.CreateMeeting(db, MeetingInput{Title: strPtr("Kickoff"), ProjectID: &projectID}, 1)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(meeting.Slug, "kickoff-"))
	assert.Len(t, meeting.Slug, len("kickoff-")+8)
	assert.NoError(t, mock.ExpectationsWereMet())
}
