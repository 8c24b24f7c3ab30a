package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/pellyjosh/psychiatrist-sub000/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockRepo(t *testing.T) (AppointmentRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return NewAppointmentRepository(mock, zap.NewNop()), mock
}

func TestUpdateStatusIfApplied(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectExec("UPDATE appointments").
		WithArgs(id, entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	applied, err := repo.UpdateStatusIf(context.Background(), id,
		entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusIfStatusMovedUnderneath(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	// The guard matched no rows: someone else transitioned first.
	mock.ExpectExec("UPDATE appointments").
		WithArgs(id, entity.AppointmentStatusPending, entity.AppointmentStatusCancelled).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	applied, err := repo.UpdateStatusIf(context.Background(), id,
		entity.AppointmentStatusPending, entity.AppointmentStatusCancelled)
	require.NoError(t, err)
	assert.False(t, applied, "zero rows affected means the transition lost")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusIfQueryError(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectExec("UPDATE appointments").
		WithArgs(id, entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.UpdateStatusIf(context.Background(), id,
		entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestRescheduleIfSetsSlotAndStatus(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectExec("UPDATE appointments").
		WithArgs(id, entity.AppointmentStatusConfirmed, entity.AppointmentStatusPending, "2026-08-01", "14:00").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	applied, err := repo.RescheduleIf(context.Background(), id, "2026-08-01", "14:00",
		entity.AppointmentStatusConfirmed, entity.AppointmentStatusPending)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDNoRowsIsNil(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM appointments WHERE id").
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	appt, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, appt, "a missing row is nil, not an error")
}

func TestFindPendingDuplicateNoRowsIsNil(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM appointments").
		WithArgs("jane.doe@example.com", "initial-eval", "2026-07-01", "10:00").
		WillReturnError(pgx.ErrNoRows)

	appt, err := repo.FindPendingDuplicate(context.Background(),
		"jane.doe@example.com", "initial-eval", "2026-07-01", "10:00")
	require.NoError(t, err)
	assert.Nil(t, appt)
}

func TestCountWithFilters(t *testing.T) {
	repo, mock := newMockRepo(t)
	patientID := uuid.New()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM appointments WHERE status = \$1 AND patient_id = \$2`).
		WithArgs(entity.AppointmentStatusPending, patientID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))

	count, err := repo.Count(context.Background(), AppointmentFilter{
		Status:    entity.AppointmentStatusPending,
		PatientID: &patientID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByStatusForPatient(t *testing.T) {
	repo, mock := newMockRepo(t)
	patientID := uuid.New()

	rows := pgxmock.NewRows([]string{"status", "count"}).
		AddRow(entity.AppointmentStatusPending, int64(2)).
		AddRow(entity.AppointmentStatusCompleted, int64(4))

	mock.ExpectQuery(`SELECT status, COUNT\(\*\)`).
		WithArgs(patientID).
		WillReturnRows(rows)

	counts, err := repo.CountByStatusForPatient(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[entity.AppointmentStatusPending])
	assert.Equal(t, int64(4), counts[entity.AppointmentStatusCompleted])
	assert.NotContains(t, counts, entity.AppointmentStatusConfirmed)
}

func TestUpdateAdminNotesMissingRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectExec("UPDATE appointments SET admin_notes").
		WithArgs(id, "bring prior records").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateAdminNotes(context.Background(), id, "bring prior records")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
