package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henokhm/ride-hailing-bot/internal/db"
	"github.com/henokhm/ride-hailing-bot/internal/models"
	"github.com/henokhm/ride-hailing-bot/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	gdb, err := db.Connect(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	st, err := store.New(gdb)
	require.NoError(t, err)
	return st
}

func TestSentinelDriverSeededOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	gdb, err := db.Connect(path)
	require.NoError(t, err)
	st, err := store.New(gdb)
	require.NoError(t, err)

	// reopening must tolerate the existing sentinel
	gdb2, err := db.Connect(path)
	require.NoError(t, err)
	st, err = store.New(gdb2)
	require.NoError(t, err)

	u, err := st.GetUser(models.SentinelDriverID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleDriver, u.Role)

	// exactly one row with the sentinel id
	_, err = st.CreateUser(models.SentinelDriverID, "Another Sentinel", "+0", models.RoleDriver)
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestCreateAndGetUser(t *testing.T) {
	st := newTestStore(t)

	created, err := st.CreateUser(42, "Abebe Kebede", "+251911111111", models.RolePassenger)
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	u, err := st.GetUser(42)
	require.NoError(t, err)
	assert.Equal(t, "Abebe Kebede", u.FullName)
	assert.Equal(t, "+251911111111", u.PhoneNumber)
	assert.Equal(t, models.RolePassenger, u.Role)

	_, err = st.GetUser(43)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateUserDuplicate(t *testing.T) {
	st := newTestStore(t)

	_, err := st.CreateUser(1, "First Draft", "+1", models.RoleDriver)
	require.NoError(t, err)

	_, err = st.CreateUser(1, "Second Draft", "+2", models.RoleDriver)
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestCreateUserBadRole(t *testing.T) {
	st := newTestStore(t)

	_, err := st.CreateUser(1, "Bad Role", "+1", models.Role("Cyclist"))
	assert.ErrorIs(t, err, store.ErrConstraint)
}

func TestDeleteUser(t *testing.T) {
	st := newTestStore(t)

	_, err := st.CreateUser(7, "To Delete", "+7", models.RolePassenger)
	require.NoError(t, err)

	require.NoError(t, st.DeleteUser(7))
	_, err = st.GetUser(7)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, st.DeleteUser(7), store.ErrNotFound)
}

func TestEditUserPartialUpdate(t *testing.T) {
	st := newTestStore(t)

	_, err := st.CreateUser(7, "Old Name", "+1", models.RolePassenger)
	require.NoError(t, err)

	newName := "New Name"
	u, err := st.EditUser(7, &newName, nil)
	require.NoError(t, err)
	assert.Equal(t, "New Name", u.FullName)
	assert.Equal(t, "+1", u.PhoneNumber)

	newPhone := "+2"
	u, err = st.EditUser(7, nil, &newPhone)
	require.NoError(t, err)
	assert.Equal(t, "New Name", u.FullName)
	assert.Equal(t, "+2", u.PhoneNumber)

	_, err = st.EditUser(999, &newName, nil)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateRideUnknownPassenger(t *testing.T) {
	st := newTestStore(t)

	_, err := st.CreateRide(999, "Bole", "Piassa", 10, 150)
	assert.ErrorIs(t, err, store.ErrConstraint)
}

func TestRideLifecycle(t *testing.T) {
	st := newTestStore(t)

	_, err := st.CreateUser(1, "Pass Enger", "+1", models.RolePassenger)
	require.NoError(t, err)
	_, err = st.CreateUser(2, "Dri Ver", "+2", models.RoleDriver)
	require.NoError(t, err)

	ride, err := st.CreateRide(1, "Bole", "Piassa", 10, 150)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCreated, ride.Status)
	assert.Equal(t, models.SentinelDriverID, ride.DriverID)
	assert.Positive(t, ride.RideID)

	_, err = st.UpdateRideStatus(ride.RideID, models.StatusOngoing)
	require.NoError(t, err)

	updated, err := st.AssignDriver(ride.RideID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.DriverID)

	_, err = st.UpdateRideStatus(ride.RideID, models.StatusCompleted)
	require.NoError(t, err)
}

func TestIllegalStatusTransitions(t *testing.T) {
	st := newTestStore(t)

	_, err := st.CreateUser(1, "Pass Enger", "+1", models.RolePassenger)
	require.NoError(t, err)

	ride, err := st.CreateRide(1, "Bole", "Piassa", 10, 150)
	require.NoError(t, err)

	// created may not jump straight to completed
	_, err = st.UpdateRideStatus(ride.RideID, models.StatusCompleted)
	assert.ErrorIs(t, err, store.ErrIllegalTransition)

	_, err = st.UpdateRideStatus(ride.RideID, models.StatusCancelled)
	require.NoError(t, err)

	// cancelled is terminal
	_, err = st.UpdateRideStatus(ride.RideID, models.StatusOngoing)
	assert.ErrorIs(t, err, store.ErrIllegalTransition)

	_, err = st.UpdateRideStatus(ride.RideID, models.RideStatus("teleported"))
	assert.ErrorIs(t, err, store.ErrConstraint)

	_, err = st.UpdateRideStatus(999, models.StatusOngoing)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRideHistoryFiltersByStatus(t *testing.T) {
	st := newTestStore(t)

	_, err := st.CreateUser(1, "Pass Enger", "+1", models.RolePassenger)
	require.NoError(t, err)

	mkRide := func(target models.RideStatus) *models.Ride {
		ride, err := st.CreateRide(1, "Bole", "Piassa", 10, 150)
		require.NoError(t, err)
		switch target {
		case models.StatusOngoing:
			_, err = st.UpdateRideStatus(ride.RideID, models.StatusOngoing)
			require.NoError(t, err)
		case models.StatusCompleted:
			_, err = st.UpdateRideStatus(ride.RideID, models.StatusOngoing)
			require.NoError(t, err)
			_, err = st.UpdateRideStatus(ride.RideID, models.StatusCompleted)
			require.NoError(t, err)
		case models.StatusCancelled:
			_, err = st.UpdateRideStatus(ride.RideID, models.StatusCancelled)
			require.NoError(t, err)
		}
		return ride
	}

	mkRide(models.StatusCreated)
	mkRide(models.StatusOngoing)
	completed := mkRide(models.StatusCompleted)
	cancelled := mkRide(models.StatusCancelled)

	history, err := st.GetRideHistory(1)
	require.NoError(t, err)
	require.Len(t, history, 2)
	// newest first
	assert.Equal(t, cancelled.RideID, history[0].RideID)
	assert.Equal(t, completed.RideID, history[1].RideID)

	empty, err := st.GetRideHistory(models.SentinelDriverID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCreateRatingBounds(t *testing.T) {
	st := newTestStore(t)

	_, err := st.CreateUser(1, "Pass Enger", "+1", models.RolePassenger)
	require.NoError(t, err)
	_, err = st.CreateUser(2, "Dri Ver", "+2", models.RoleDriver)
	require.NoError(t, err)

	_, err = st.CreateRating(2, 1, 0, "")
	assert.ErrorIs(t, err, store.ErrConstraint)

	_, err = st.CreateRating(2, 1, 6, "")
	assert.ErrorIs(t, err, store.ErrConstraint)

	low, err := st.CreateRating(2, 1, 1, "bad trip")
	require.NoError(t, err)
	assert.Positive(t, low.RatingID)

	high, err := st.CreateRating(2, 1, 5, "")
	require.NoError(t, err)
	assert.Greater(t, high.RatingID, low.RatingID)
}

func TestCreateRatingUnknownUsers(t *testing.T) {
	st := newTestStore(t)

	_, err := st.CreateUser(1, "Pass Enger", "+1", models.RolePassenger)
	require.NoError(t, err)

	_, err = st.CreateRating(999, 1, 3, "")
	assert.ErrorIs(t, err, store.ErrConstraint)
}

func TestGetDriverRatings(t *testing.T) {
	st := newTestStore(t)

	_, err := st.CreateUser(1, "Pass Enger", "+1", models.RolePassenger)
	require.NoError(t, err)
	_, err = st.CreateUser(2, "Dri Ver", "+2", models.RoleDriver)
	require.NoError(t, err)

	empty, err := st.GetDriverRatings(2)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = st.CreateRating(2, 1, 4, "smooth ride")
	require.NoError(t, err)

	ratings, err := st.GetDriverRatings(2)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, 4, ratings[0].RatingValue)
	assert.Equal(t, "smooth ride", ratings[0].Feedback)
}
