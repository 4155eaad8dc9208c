package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homespace-app/homespace-backend/internal/models"
)

func TestCreateHostelStartsPending(t *testing.T) {
	db := setupTestDB(t)
	svc := NewHostelService(db)
	owner := createUser(t, db, "owner@example.com", models.RoleOwner)

	wifi := models.Amenity{Name: "WiFi"}
	require.NoError(t, db.Create(&wifi).Error)

	hostel, err := svc.Create(owner.ID, HostelInput{
		Name:       "Sunrise Hostel",
		City:       "Lahore",
		Address:    "12 Mall Road",
		AmenityIDs: []uint{wifi.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, models.HostelStatusPending, hostel.Status)
	require.Len(t, hostel.Amenities, 1)
	assert.Equal(t, "WiFi", hostel.Amenities[0].Name)
}

func TestFindAllHostelsOnlyApproved(t *testing.T) {
	db := setupTestDB(t)
	svc := NewHostelService(db)
	owner := createUser(t, db, "owner@example.com", models.RoleOwner)

	approved := createHostel(t, db, owner.ID, models.HostelStatusApproved)
	createHostel(t, db, owner.ID, models.HostelStatusPending)
	createHostel(t, db, owner.ID, models.HostelStatusRejected)

	hostels, err := svc.FindAll(HostelFilter{})
	require.NoError(t, err)
	require.Len(t, hostels, 1)
	assert.Equal(t, approved.ID, hostels[0].ID)
}

func TestFindAllHostelsFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := NewHostelService(db)
	owner := createUser(t, db, "owner@example.com", models.RoleOwner)

	lahore := models.Hostel{UserID: owner.ID, Name: "Sunrise Hostel", City: "Lahore",
		Address: "12 Mall Road", Status: models.HostelStatusApproved}
	require.NoError(t, db.Create(&lahore).Error)
	karachi := models.Hostel{UserID: owner.ID, Name: "Seaview Lodge", City: "Karachi",
		Address: "4 Clifton Block", Status: models.HostelStatusApproved}
	require.NoError(t, db.Create(&karachi).Error)

	createRoom(t, db, lahore.ID, 2) // price 15000

	byCity, err := svc.FindAll(HostelFilter{City: "karachi"})
	require.NoError(t, err)
	require.Len(t, byCity, 1)
	assert.Equal(t, karachi.ID, byCity[0].ID)

	bySearch, err := svc.FindAll(HostelFilter{Search: "sunrise"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, lahore.ID, bySearch[0].ID)

	// Price filter keeps only hostels with an available room in range.
	byPrice, err := svc.FindAll(HostelFilter{MinPrice: 10000, MaxPrice: 20000})
	require.NoError(t, err)
	require.Len(t, byPrice, 1)
	assert.Equal(t, lahore.ID, byPrice[0].ID)
}

func TestModerateHostel(t *testing.T) {
	db := setupTestDB(t)
	svc := NewHostelService(db)
	owner := createUser(t, db, "owner@example.com", models.RoleOwner)
	hostel := createHostel(t, db, owner.ID, models.HostelStatusPending)

	_, err := svc.Moderate(hostel.ID, models.HostelStatusPending)
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))

	moderated, err := svc.Moderate(hostel.ID, models.HostelStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.HostelStatusApproved, moderated.Status)

	_, err = svc.Moderate(9999, models.HostelStatusApproved)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestUpdateHostelAuthorization(t *testing.T) {
	db := setupTestDB(t)
	svc := NewHostelService(db)
	owner := createUser(t, db, "owner@example.com", models.RoleOwner)
	stranger := createUser(t, db, "stranger@example.com", models.RoleOwner)
	admin := createUser(t, db, "admin@example.com", models.RoleAdmin)
	hostel := createHostel(t, db, owner.ID, models.HostelStatusApproved)

	in := HostelInput{Name: "Renamed", City: "Lahore", Address: "12 Mall Road"}

	_, err := svc.Update(hostel.ID, stranger.ID, models.RoleOwner, in)
	require.Error(t, err)
	assert.Equal(t, KindForbidden, KindOf(err))

	updated, err := svc.Update(hostel.ID, admin.ID, models.RoleAdmin, in)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestDeleteHostel(t *testing.T) {
	db := setupTestDB(t)
	svc := NewHostelService(db)
	owner := createUser(t, db, "owner@example.com", models.RoleOwner)
	hostel := createHostel(t, db, owner.ID, models.HostelStatusApproved)

	require.NoError(t, svc.Delete(hostel.ID, owner.ID, models.RoleOwner))

	_, err := svc.FindByID(hostel.ID)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}
