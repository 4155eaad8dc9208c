package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/homespace-app/homespace-backend/internal/models"
)

func reviewFixture(t *testing.T) (*gorm.DB, *ReviewService, *models.User, *models.Hostel, *models.User) {
	t.Helper()

	db := setupTestDB(t)
	svc := NewReviewService(db)
	owner := createUser(t, db, "owner@example.com", models.RoleOwner)
	hostel := createHostel(t, db, owner.ID, models.HostelStatusApproved)
	student := createUser(t, db, "student@example.com", models.RoleStudent)
	return db, svc, owner, hostel, student
}

// grantStay gives the student an approved booking in the hostel whose start
// date has already passed.
func grantStay(t *testing.T, db *gorm.DB, hostelID, studentID uint) {
	t.Helper()

	room := createRoom(t, db, hostelID, 2)
	booking := models.Booking{
		UserID:    studentID,
		RoomID:    room.ID,
		StartDate: time.Now().AddDate(0, -2, 0),
		EndDate:   time.Now().AddDate(0, 1, 0),
		Months:    3,
		Status:    models.BookingStatusApproved,
	}
	require.NoError(t, db.Create(&booking).Error)
}

func TestCreateReviewRequiresVerifiedStay(t *testing.T) {
	_, svc, _, hostel, student := reviewFixture(t)

	_, err := svc.Create(student.ID, CreateReviewInput{
		HostelID: hostel.ID,
		Rating:   4,
		Comments: "Clean rooms",
	})
	require.Error(t, err)
	assert.Equal(t, KindForbidden, KindOf(err))
}

func TestCreateReviewPendingBookingDoesNotCount(t *testing.T) {
	db, svc, _, hostel, student := reviewFixture(t)

	room := createRoom(t, db, hostel.ID, 2)
	booking := models.Booking{
		UserID:    student.ID,
		RoomID:    room.ID,
		StartDate: time.Now().AddDate(0, -1, 0),
		EndDate:   time.Now().AddDate(0, 2, 0),
		Months:    3,
		Status:    models.BookingStatusRequested,
	}
	require.NoError(t, db.Create(&booking).Error)

	_, err := svc.Create(student.ID, CreateReviewInput{
		HostelID: hostel.ID,
		Rating:   4,
		Comments: "Clean rooms",
	})
	require.Error(t, err)
	assert.Equal(t, KindForbidden, KindOf(err))
}

func TestCreateReview(t *testing.T) {
	db, svc, _, hostel, student := reviewFixture(t)
	grantStay(t, db, hostel.ID, student.ID)

	review, err := svc.Create(student.ID, CreateReviewInput{
		HostelID: hostel.ID,
		Rating:   5,
		Comments: "Great place",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)

	// One review per student per hostel.
	_, err = svc.Create(student.ID, CreateReviewInput{
		HostelID: hostel.ID,
		Rating:   3,
		Comments: "Changed my mind",
	})
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestCreateReviewInvalidRating(t *testing.T) {
	_, svc, _, hostel, student := reviewFixture(t)

	for _, rating := range []int{0, 6} {
		_, err := svc.Create(student.ID, CreateReviewInput{
			HostelID: hostel.ID,
			Rating:   rating,
		})
		require.Error(t, err)
		assert.Equal(t, KindValidation, KindOf(err))
	}
}

func TestUpdateReviewAuthorOnly(t *testing.T) {
	db, svc, _, hostel, student := reviewFixture(t)
	grantStay(t, db, hostel.ID, student.ID)
	other := createUser(t, db, "other@example.com", models.RoleStudent)

	review, err := svc.Create(student.ID, CreateReviewInput{
		HostelID: hostel.ID,
		Rating:   5,
		Comments: "Great place",
	})
	require.NoError(t, err)

	_, err = svc.Update(review.ID, other.ID, 1, "Not mine")
	require.Error(t, err)
	assert.Equal(t, KindForbidden, KindOf(err))

	updated, err := svc.Update(review.ID, student.ID, 3, "Average after a month")
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Rating)
}

func TestDeleteReview(t *testing.T) {
	db, svc, _, hostel, student := reviewFixture(t)
	grantStay(t, db, hostel.ID, student.ID)
	other := createUser(t, db, "other@example.com", models.RoleStudent)
	admin := createUser(t, db, "admin@example.com", models.RoleAdmin)

	review, err := svc.Create(student.ID, CreateReviewInput{
		HostelID: hostel.ID,
		Rating:   5,
	})
	require.NoError(t, err)

	err = svc.Delete(review.ID, other.ID, models.RoleStudent)
	require.Error(t, err)
	assert.Equal(t, KindForbidden, KindOf(err))

	require.NoError(t, svc.Delete(review.ID, admin.ID, models.RoleAdmin))

	err = svc.Delete(review.ID, student.ID, models.RoleStudent)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestReplyToReview(t *testing.T) {
	db, svc, owner, hostel, student := reviewFixture(t)
	grantStay(t, db, hostel.ID, student.ID)
	stranger := createUser(t, db, "stranger@example.com", models.RoleOwner)

	review, err := svc.Create(student.ID, CreateReviewInput{
		HostelID: hostel.ID,
		Rating:   4,
		Comments: "Good but noisy",
	})
	require.NoError(t, err)

	_, err = svc.Reply(review.ID, stranger.ID, "Thanks!")
	require.Error(t, err)
	assert.Equal(t, KindForbidden, KindOf(err))

	replied, err := svc.Reply(review.ID, owner.ID, "We added quiet hours")
	require.NoError(t, err)
	assert.Equal(t, "We added quiet hours", replied.Reply)
	require.NotNil(t, replied.ReplyDate)
}
