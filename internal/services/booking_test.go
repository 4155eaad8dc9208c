package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/homespace-app/homespace-backend/internal/models"
)

func bookingFixture(t *testing.T) (*gorm.DB, *BookingService, *models.User, *models.Hostel, *models.Room) {
	t.Helper()

	db := setupTestDB(t)
	svc := NewBookingService(db)
	owner := createUser(t, db, "owner@example.com", models.RoleOwner)
	hostel := createHostel(t, db, owner.ID, models.HostelStatusApproved)
	room := createRoom(t, db, hostel.ID, 2)
	return db, svc, owner, hostel, room
}

func TestCreateBooking(t *testing.T) {
	_, svc, _, _, room := bookingFixture(t)
	student := createUser(t, svc.db, "student@example.com", models.RoleStudent)

	booking, err := svc.Create(student.ID, CreateBookingInput{
		RoomID:    room.ID,
		StartDate: date(2026, time.March, 15),
		Months:    3,
	})
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusRequested, booking.Status)
	assert.Equal(t, date(2026, time.March, 15), booking.StartDate)
	assert.Equal(t, date(2026, time.June, 15), booking.EndDate)
	assert.Equal(t, 3, booking.Months)
}

func TestCreateBookingEndDateClamped(t *testing.T) {
	_, svc, _, _, room := bookingFixture(t)
	student := createUser(t, svc.db, "student@example.com", models.RoleStudent)

	// Jan 31 + 1 month clamps to the last day of February.
	booking, err := svc.Create(student.ID, CreateBookingInput{
		RoomID:    room.ID,
		StartDate: date(2026, time.January, 31),
		Months:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.February, 28), booking.EndDate)
}

func TestCreateBookingMinimumDuration(t *testing.T) {
	_, svc, _, _, room := bookingFixture(t)
	student := createUser(t, svc.db, "student@example.com", models.RoleStudent)

	_, err := svc.Create(student.ID, CreateBookingInput{
		RoomID:    room.ID,
		StartDate: date(2026, time.March, 1),
		Months:    0,
	})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestCreateBookingRoomNotFound(t *testing.T) {
	_, svc, _, _, _ := bookingFixture(t)
	student := createUser(t, svc.db, "student@example.com", models.RoleStudent)

	_, err := svc.Create(student.ID, CreateBookingInput{
		RoomID:    9999,
		StartDate: date(2026, time.March, 1),
		Months:    1,
	})
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestCreateBookingCapacityConflict(t *testing.T) {
	db, svc, _, hostel, _ := bookingFixture(t)
	room := createRoom(t, db, hostel.ID, 1)

	first := createUser(t, db, "first@example.com", models.RoleStudent)
	second := createUser(t, db, "second@example.com", models.RoleStudent)

	_, err := svc.Create(first.ID, CreateBookingInput{
		RoomID:    room.ID,
		StartDate: date(2026, time.March, 1),
		Months:    3,
	})
	require.NoError(t, err)

	// Overlapping range on a single-bed room: the pending request holds
	// the bed even before the owner approves it.
	_, err = svc.Create(second.ID, CreateBookingInput{
		RoomID:    room.ID,
		StartDate: date(2026, time.April, 1),
		Months:    2,
	})
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))

	// A range after the first booking ends goes through.
	booking, err := svc.Create(second.ID, CreateBookingInput{
		RoomID:    room.ID,
		StartDate: date(2026, time.July, 1),
		Months:    2,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusRequested, booking.Status)
}

func TestCreateBookingTouchingBoundaryCounts(t *testing.T) {
	db, svc, _, hostel, _ := bookingFixture(t)
	room := createRoom(t, db, hostel.ID, 1)

	first := createUser(t, db, "first@example.com", models.RoleStudent)
	second := createUser(t, db, "second@example.com", models.RoleStudent)

	_, err := svc.Create(first.ID, CreateBookingInput{
		RoomID:    room.ID,
		StartDate: date(2026, time.March, 1),
		Months:    1,
	})
	require.NoError(t, err)

	// First booking ends April 1; a booking starting April 1 shares that day.
	_, err = svc.Create(second.ID, CreateBookingInput{
		RoomID:    room.ID,
		StartDate: date(2026, time.April, 1),
		Months:    1,
	})
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestCreateBookingOnePendingPerHostel(t *testing.T) {
	db, svc, _, hostel, roomA := bookingFixture(t)
	roomB := createRoom(t, db, hostel.ID, 2)
	student := createUser(t, db, "student@example.com", models.RoleStudent)

	_, err := svc.Create(student.ID, CreateBookingInput{
		RoomID:    roomA.ID,
		StartDate: date(2026, time.March, 1),
		Months:    2,
	})
	require.NoError(t, err)

	// Second request in the same hostel is blocked even for a different
	// room and a non-overlapping range.
	_, err = svc.Create(student.ID, CreateBookingInput{
		RoomID:    roomB.ID,
		StartDate: date(2026, time.September, 1),
		Months:    2,
	})
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestCreateBookingAllowedAfterRejection(t *testing.T) {
	db, svc, owner, _, room := bookingFixture(t)
	student := createUser(t, db, "student@example.com", models.RoleStudent)

	first, err := svc.Create(student.ID, CreateBookingInput{
		RoomID:    room.ID,
		StartDate: date(2026, time.March, 1),
		Months:    2,
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(first.ID, models.BookingStatusRejected, owner.ID, models.RoleOwner)
	require.NoError(t, err)

	// A rejected booking no longer blocks the hostel or the room.
	_, err = svc.Create(student.ID, CreateBookingInput{
		RoomID:    room.ID,
		StartDate: date(2026, time.March, 1),
		Months:    2,
	})
	require.NoError(t, err)
}

func TestApproveBookingDecrementsBeds(t *testing.T) {
	db, svc, owner, hostel, _ := bookingFixture(t)
	room := createRoom(t, db, hostel.ID, 1)
	student := createUser(t, db, "student@example.com", models.RoleStudent)

	booking, err := svc.Create(student.ID, CreateBookingInput{
		RoomID:    room.ID,
		StartDate: date(2026, time.March, 1),
		Months:    2,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(booking.ID, models.BookingStatusApproved, owner.ID, models.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusApproved, updated.Status)

	var got models.Room
	require.NoError(t, db.First(&got, room.ID).Error)
	assert.Equal(t, 0, got.AvailableBeds)
	assert.Equal(t, models.RoomStatusFull, got.Status)
}

func TestApproveBookingNoAvailableBeds(t *testing.T) {
	db, svc, owner, hostel, _ := bookingFixture(t)
	room := createRoom(t, db, hostel.ID, 2)
	require.NoError(t, db.Model(&models.Room{}).Where("id = ?", room.ID).
		Update("available_beds", 0).Error)

	student := createUser(t, db, "student@example.com", models.RoleStudent)
	booking := models.Booking{
		UserID:    student.ID,
		RoomID:    room.ID,
		StartDate: date(2026, time.March, 1),
		EndDate:   date(2026, time.May, 1),
		Months:    2,
		Status:    models.BookingStatusRequested,
	}
	require.NoError(t, db.Create(&booking).Error)

	_, err := svc.UpdateStatus(booking.ID, models.BookingStatusApproved, owner.ID, models.RoleOwner)
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))

	// The booking stays pending when the approval fails.
	var got models.Booking
	require.NoError(t, db.First(&got, booking.ID).Error)
	assert.Equal(t, models.BookingStatusRequested, got.Status)
}

func TestRejectBookingLeavesRoomUntouched(t *testing.T) {
	db, svc, owner, _, room := bookingFixture(t)
	student := createUser(t, db, "student@example.com", models.RoleStudent)

	booking, err := svc.Create(student.ID, CreateBookingInput{
		RoomID:    room.ID,
		StartDate: date(2026, time.March, 1),
		Months:    2,
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(booking.ID, models.BookingStatusRejected, owner.ID, models.RoleOwner)
	require.NoError(t, err)

	var got models.Room
	require.NoError(t, db.First(&got, room.ID).Error)
	assert.Equal(t, room.AvailableBeds, got.AvailableBeds)
	assert.Equal(t, models.RoomStatusAvailable, got.Status)
}

func TestUpdateBookingStatusAlreadyDecided(t *testing.T) {
	db, svc, owner, _, room := bookingFixture(t)
	student := createUser(t, db, "student@example.com", models.RoleStudent)

	booking, err := svc.Create(student.ID, CreateBookingInput{
		RoomID:    room.ID,
		StartDate: date(2026, time.March, 1),
		Months:    2,
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(booking.ID, models.BookingStatusRejected, owner.ID, models.RoleOwner)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(booking.ID, models.BookingStatusApproved, owner.ID, models.RoleOwner)
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestUpdateBookingStatusAuthorization(t *testing.T) {
	db, svc, _, _, room := bookingFixture(t)
	student := createUser(t, db, "student@example.com", models.RoleStudent)
	stranger := createUser(t, db, "stranger@example.com", models.RoleOwner)
	admin := createUser(t, db, "admin@example.com", models.RoleAdmin)

	booking, err := svc.Create(student.ID, CreateBookingInput{
		RoomID:    room.ID,
		StartDate: date(2026, time.March, 1),
		Months:    2,
	})
	require.NoError(t, err)

	// An owner of a different hostel cannot act on the booking.
	_, err = svc.UpdateStatus(booking.ID, models.BookingStatusApproved, stranger.ID, models.RoleOwner)
	require.Error(t, err)
	assert.Equal(t, KindForbidden, KindOf(err))

	// Admins can.
	updated, err := svc.UpdateStatus(booking.ID, models.BookingStatusApproved, admin.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusApproved, updated.Status)
}

func TestUpdateBookingStatusInvalid(t *testing.T) {
	_, svc, owner, _, _ := bookingFixture(t)

	_, err := svc.UpdateStatus(1, models.BookingStatusCancelled, owner.ID, models.RoleOwner)
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestConcurrentBookingsSingleBed(t *testing.T) {
	db, svc, _, hostel, _ := bookingFixture(t)
	room := createRoom(t, db, hostel.ID, 1)

	const attempts = 5
	students := make([]*models.User, attempts)
	for i := range students {
		students[i] = createUser(t, db, string(rune('a'+i))+"@example.com", models.RoleStudent)
	}

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(studentID uint) {
			defer wg.Done()
			_, err := svc.Create(studentID, CreateBookingInput{
				RoomID:    room.ID,
				StartDate: date(2026, time.March, 1),
				Months:    2,
			})
			results <- err
		}(students[i].ID)
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.Equal(t, KindConflict, KindOf(err))
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one booking should win the last bed")

	var count int64
	require.NoError(t, db.Model(&models.Booking{}).
		Where("room_id = ?", room.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCountActiveBookings(t *testing.T) {
	db, svc, owner, _, room := bookingFixture(t)
	first := createUser(t, db, "first@example.com", models.RoleStudent)
	second := createUser(t, db, "second@example.com", models.RoleStudent)

	b1, err := svc.Create(first.ID, CreateBookingInput{
		RoomID:    room.ID,
		StartDate: date(2026, time.March, 1),
		Months:    2,
	})
	require.NoError(t, err)

	b2, err := svc.Create(second.ID, CreateBookingInput{
		RoomID:    room.ID,
		StartDate: date(2026, time.April, 1),
		Months:    2,
	})
	require.NoError(t, err)

	count, err := svc.CountActiveBookings(room.ID, date(2026, time.April, 15), date(2026, time.April, 20))
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	// A rejected booking stops counting; an approved one still does.
	_, err = svc.UpdateStatus(b1.ID, models.BookingStatusRejected, owner.ID, models.RoleOwner)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(b2.ID, models.BookingStatusApproved, owner.ID, models.RoleOwner)
	require.NoError(t, err)

	count, err = svc.CountActiveBookings(room.ID, date(2026, time.April, 15), date(2026, time.April, 20))
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestFindAllBookingsVisibility(t *testing.T) {
	db, svc, owner, _, room := bookingFixture(t)

	otherOwner := createUser(t, db, "other-owner@example.com", models.RoleOwner)
	otherHostel := createHostel(t, db, otherOwner.ID, models.HostelStatusApproved)
	otherRoom := createRoom(t, db, otherHostel.ID, 2)

	student := createUser(t, db, "student@example.com", models.RoleStudent)
	admin := createUser(t, db, "admin@example.com", models.RoleAdmin)

	_, err := svc.Create(student.ID, CreateBookingInput{
		RoomID:    room.ID,
		StartDate: date(2026, time.March, 1),
		Months:    2,
	})
	require.NoError(t, err)
	_, err = svc.Create(student.ID, CreateBookingInput{
		RoomID:    otherRoom.ID,
		StartDate: date(2026, time.March, 1),
		Months:    2,
	})
	require.NoError(t, err)

	own, err := svc.FindAll(student.ID, models.RoleStudent)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	mine, err := svc.FindAll(owner.ID, models.RoleOwner)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, room.ID, mine[0].RoomID)

	all, err := svc.FindAll(admin.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
