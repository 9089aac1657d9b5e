package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/medassist/internal/db/dbtest"
	domain "github.com/BruksfildServices01/medassist/internal/domain/appointment"
	"github.com/BruksfildServices01/medassist/internal/httperr"
	"github.com/BruksfildServices01/medassist/internal/infra/repository"
)

var taipei = time.FixedZone("CST", 8*60*60)

func fixedNow() time.Time {
	return time.Date(2025, 12, 10, 12, 0, 0, 0, taipei)
}

func newStore(t *testing.T) *Store {
	t.Helper()
	repo := repository.NewAppointmentGormRepository(dbtest.NewTestDB(t))
	return NewStore(repo, nil, fixedNow)
}

func validFields() domain.Fields {
	return domain.Fields{
		PatientID:    "A12345",
		PatientName:  "王小明",
		PatientPhone: "0912345678",
		Department:   "內科",
		DoctorName:   "陳大文",
		Date:         "2025-12-11",
		Time:         "14:00",
		Symptoms:     "頭痛",
	}
}

func strPtr(s string) *string { return &s }

func TestCreateThenListRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	f := validFields()

	created, err := s.Create(ctx, "alice", f)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	apps, err := s.List(ctx, "alice", "")
	require.NoError(t, err)
	require.Len(t, apps, 1)

	got := apps[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, f.PatientID, got.PatientID)
	assert.Equal(t, f.PatientName, got.PatientName)
	assert.Equal(t, f.PatientPhone, got.PatientPhone)
	assert.Equal(t, f.Department, got.Department)
	assert.Equal(t, f.DoctorName, got.DoctorName)
	assert.Equal(t, f.Date, got.AppointmentDate)
	assert.Equal(t, f.Time, got.AppointmentTime)
	assert.Equal(t, f.Symptoms, got.Symptoms)
	assert.Equal(t, string(domain.StatusPending), got.Status)
}

func TestCreateRejectsMissingAndPast(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	f := validFields()
	f.DoctorName = "  "
	_, err := s.Create(ctx, "alice", f)
	assert.True(t, httperr.IsBusiness(err, "missing_fields"))

	f = validFields()
	f.Date = "2025-12-10"
	f.Time = "11:00"
	_, err = s.Create(ctx, "alice", f)
	assert.True(t, httperr.IsBusiness(err, "past_appointment"))

	apps, err := s.List(ctx, "alice", "")
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestCancelIsIdempotent(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	ap, err := s.Create(ctx, "alice", validFields())
	require.NoError(t, err)

	first, err := s.Cancel(ctx, "alice", ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), first.Status)

	second, err := s.Cancel(ctx, "alice", ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), second.Status)
}

func TestOtherOwnerCannotTouchAppointment(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	ap, err := s.Create(ctx, "alice", validFields())
	require.NoError(t, err)

	_, err = s.Update(ctx, "bob", ap.ID, domain.Patch{Department: strPtr("外科")})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFoundOrForbidden))

	_, err = s.Cancel(ctx, "bob", ap.ID)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFoundOrForbidden))

	apps, err := s.List(ctx, "alice", "")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "內科", apps[0].Department)
	assert.Equal(t, string(domain.StatusPending), apps[0].Status)

	others, err := s.List(ctx, "bob", "")
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestUpdateAppliesOnlyPresentFields(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	ap, err := s.Create(ctx, "alice", validFields())
	require.NoError(t, err)

	updated, err := s.Update(ctx, "alice", ap.ID, domain.Patch{Time: strPtr("16:30")})
	require.NoError(t, err)
	assert.Equal(t, "16:30", updated.AppointmentTime)
	assert.Equal(t, "2025-12-11", updated.AppointmentDate)
	assert.Equal(t, "陳大文", updated.DoctorName)
}

func TestUpdateRevalidatesMomentAndLeavesRowUntouched(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	ap, err := s.Create(ctx, "alice", validFields())
	require.NoError(t, err)

	_, err = s.Update(ctx, "alice", ap.ID, domain.Patch{
		Department: strPtr("外科"),
		Date:       strPtr("2025-12-01"),
	})
	assert.True(t, httperr.IsBusiness(err, "past_appointment"))

	apps, err := s.List(ctx, "alice", "")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "內科", apps[0].Department)
	assert.Equal(t, "2025-12-11", apps[0].AppointmentDate)
}

func TestUpdateCancelledIsRejected(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	ap, err := s.Create(ctx, "alice", validFields())
	require.NoError(t, err)
	_, err = s.Cancel(ctx, "alice", ap.ID)
	require.NoError(t, err)

	_, err = s.Update(ctx, "alice", ap.ID, domain.Patch{Time: strPtr("15:00")})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestUpdateWithEmptyPatch(t *testing.T) {
	s := newStore(t)

	_, err := s.Update(context.Background(), "alice", 1, domain.Patch{})

	assert.True(t, httperr.IsBusiness(err, "empty_patch"))
}
