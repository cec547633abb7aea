package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salongo/internal/domain/role"
	"github.com/BruksfildServices01/salongo/internal/models"
)

// Password is the clear text password of every fixture user.
const Password = "secret123"

var passwordHash = func() string {
	h, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}()

func User(t testing.TB, db *gorm.DB, r role.Role) *models.User {
	t.Helper()

	var n int64
	db.Model(&models.User{}).Count(&n)

	u := &models.User{
		Name:            fmt.Sprintf("%s %d", r, n+1),
		Email:           fmt.Sprintf("%s%d@example.com", r, n+1),
		Phone:           fmt.Sprintf("98765%05d", n+1),
		PasswordHash:    passwordHash,
		Role:            r,
		ProfileComplete: true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func Salon(t testing.TB, db *gorm.DB, ownerID *uint) *models.Salon {
	t.Helper()

	s := &models.Salon{
		Name:      "Glamour Studio",
		Location:  "Banjara Hills, Hyderabad",
		Rating:    4.5,
		OpenTime:  "09:00",
		CloseTime: "21:00",
		IsOpen:    true,
		OwnerID:   ownerID,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func Service(t testing.TB, db *gorm.DB, salonID uint, category string, price float64) *models.Service {
	t.Helper()

	s := &models.Service{
		Name:     category + " Service",
		Price:    price,
		Duration: 30,
		Category: category,
		SalonID:  salonID,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

// Worker creates a worker profile in salonID, bound to userID when set.
func Worker(t testing.TB, db *gorm.DB, salonID uint, userID *uint) *models.Worker {
	t.Helper()

	w := &models.Worker{
		Name:       "Priya",
		Role:       "Senior Stylist",
		Experience: 5,
		SalonID:    salonID,
		UserID:     userID,
	}
	require.NoError(t, db.Create(w).Error)
	return w
}

// WorkerUser creates a worker account with its profile in salonID.
func WorkerUser(t testing.TB, db *gorm.DB, salonID uint) (*models.User, *models.Worker) {
	t.Helper()

	u := User(t, db, role.Worker)
	return u, Worker(t, db, salonID, &u.ID)
}

func Booking(t testing.TB, db *gorm.DB, userID uint, svc *models.Service, status string) *models.Booking {
	t.Helper()

	b := &models.Booking{
		UserID:    userID,
		SalonID:   svc.SalonID,
		ServiceID: svc.ID,
		Date:      "2030-01-15",
		Time:      "10:30",
		Status:    status,
	}
	require.NoError(t, db.Create(b).Error)
	return b
}

func SignupCode(t testing.TB, db *gorm.DB, salonID uint, code string) *models.SignupCode {
	t.Helper()

	sc := &models.SignupCode{Code: code, SalonID: salonID}
	require.NoError(t, db.Create(sc).Error)
	return sc
}
