package services

import (
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/ibrahimbiplob75/taskhub/models"
	"github.com/ibrahimbiplob75/taskhub/testutils"
)

func TestStartOfISOWeek(t *testing.T) {
	// 2024-03-13 is a Wednesday; its week starts Monday the 11th.
	wednesday := time.Date(2024, 3, 13, 15, 30, 0, 0, time.Local)
	monday := startOfISOWeek(wednesday)
	assert.Equal(t, time.Monday, monday.Weekday())
	assert.Equal(t, 11, monday.Day())
	assert.Equal(t, 0, monday.Hour())

	// Sunday belongs to the week that started six days earlier.
	sunday := time.Date(2024, 3, 17, 8, 0, 0, 0, time.Local)
	assert.Equal(t, 11, startOfISOWeek(sunday).Day())

	// Monday is its own week start.
	mondayNoon := time.Date(2024, 3, 11, 12, 0, 0, 0, time.Local)
	assert.Equal(t, 11, startOfISOWeek(mondayNoon).Day())
}

func TestGetCalendarMonthData_InvalidMonth(t *testing.T) {
	db, _, close := testutils.SetupMockDB()
	defer close()

	taskService := &TaskService{}
	_, err := taskService.GetCalendarMonthData(db, 2024, 0, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = taskService.GetCalendarMonthData(db, 2024, 13, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetCalendarMonthData_CountsPerDay(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectQuery(`SELECT "completion_date" FROM "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"completion_date"}).
			AddRow(time.Date(2024, 3, 5, 10, 0, 0, 0, time.Local)).
			AddRow(time.Date(2024, 3, 5, 16, 0, 0, 0, time.Local)).
			AddRow(time.Date(2024, 3, 20, 9, 0, 0, 0, time.Local)))

	taskService := &TaskService{}
	counts, err := taskService.GetCalendarMonthData(db, 2024, 3, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), counts[5])
	assert.Equal(t, int64(1), counts[20])
	assert.Len(t, counts, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTaskStatusAnalytics_AllStatusesPresent(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectQuery(`SELECT task_status, COUNT\(\*\) AS count FROM "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"task_status", "count"}).
			AddRow("pending", 3).
			AddRow("completed", 2))

	taskService := &TaskService{}
	analytics, err := taskService.GetTaskStatusAnalytics(db, nil)
	assert.NoError(t, err)
	assert.Len(t, analytics, len(models.TaskStatuses))

	byStatus := map[string]models.TaskStatusCount{}
	for _, a := range analytics {
		byStatus[a.Status] = a
	}
	assert.Equal(t, int64(3), byStatus[models.StatusPending].Count)
	assert.Equal(t, int64(2), byStatus[models.StatusCompleted].Count)
	assert.Equal(t, int64(0), byStatus[models.StatusHold].Count)
	assert.Equal(t, "In Progress", byStatus[models.StatusInProgress].Label)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetKanbanTasks_EveryColumnExists(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectQuery(`SELECT (.+) FROM "tasks" WHERE status = \$1 AND parent_task_id IS NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "task_status", "serial"}).
			AddRow(1, "First", "pending", 0).
			AddRow(2, "Second", "pending", 1))

	taskService := &TaskService{}
	columns, err := taskService.GetKanbanTasks(db, nil)
	assert.NoError(t, err)
	assert.Len(t, columns, len(models.TaskStatuses))
	assert.Len(t, columns[models.StatusPending], 2)
	assert.Empty(t, columns[models.StatusCompleted])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateKanbanTask_RequiresAField(t *testing.T) {
	db, _, close := testutils.SetupMockDB()
	defer close()

	taskService := &TaskService{}
	_, err := taskService.UpdateKanbanTask(db, 5, nil, nil)
	assert.ErrorIs(t, err, ErrValidation)
}
