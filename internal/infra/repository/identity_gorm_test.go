package repository

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salongo/internal/domain/identity"
	"github.com/BruksfildServices01/salongo/internal/domain/role"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/models"
	"github.com/BruksfildServices01/salongo/internal/testutil"
)

func TestFindUserByEmailIgnoresCase(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewIdentityGormRepository(db)

	u := testutil.User(t, db, role.Customer)

	got, err := repo.FindUserByEmail(context.Background(), strings.ToUpper(u.Email))
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestEmailTakenByOther(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewIdentityGormRepository(db)
	ctx := context.Background()

	a := testutil.User(t, db, role.Customer)
	b := testutil.User(t, db, role.Customer)

	taken, err := repo.EmailTakenByOther(ctx, a.Email, a.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = repo.EmailTakenByOther(ctx, a.Email, b.ID)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestCreateUserWithCodeBindsWorkerToSalon(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewIdentityGormRepository(db)

	salon := testutil.Salon(t, db, nil)
	testutil.SignupCode(t, db, salon.ID, "AB12CD")

	u := &models.User{Name: "Ravi", Email: "ravi@example.com", Phone: "9000000001", PasswordHash: "x"}
	created, err := repo.CreateUserWithCode(context.Background(), u, identity.WorkerOnboarding{
		Code:   "ab12cd",
		Worker: models.Worker{Name: "Ravi", Phone: "9000000001"},
	})
	require.NoError(t, err)
	assert.Equal(t, role.Worker, u.Role)
	assert.Equal(t, salon.ID, created.SalonID)

	var w models.Worker
	require.NoError(t, db.Where("user_id = ?", u.ID).First(&w).Error)
	assert.Equal(t, salon.ID, w.SalonID)

	var sc models.SignupCode
	require.NoError(t, db.Where("code = ?", "AB12CD").First(&sc).Error)
	assert.True(t, sc.IsUsed)
	require.NotNil(t, sc.UsedByUserID)
	assert.Equal(t, u.ID, *sc.UsedByUserID)
}

func TestCreateUserWithUsedCodeRollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewIdentityGormRepository(db)

	salon := testutil.Salon(t, db, nil)
	sc := testutil.SignupCode(t, db, salon.ID, "ZZ99ZZ")
	require.NoError(t, db.Model(sc).Update("is_used", true).Error)

	u := &models.User{Name: "Late", Email: "late@example.com", Phone: "9000000002", PasswordHash: "x"}
	_, err := repo.CreateUserWithCode(context.Background(), u, identity.WorkerOnboarding{Code: "ZZ99ZZ"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidSignupCode))

	var count int64
	db.Model(&models.User{}).Where("email = ?", "late@example.com").Count(&count)
	assert.Zero(t, count)
}

func TestSignupCodeRedeemedOnce(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewIdentityGormRepository(db)

	salon := testutil.Salon(t, db, nil)
	testutil.SignupCode(t, db, salon.ID, "ONE111")

	users := make([]*models.User, 5)
	for i := range users {
		users[i] = testutil.User(t, db, role.Customer)
		require.NoError(t, db.Model(users[i]).Update("profile_complete", false).Error)
	}

	var wins int32
	var wg sync.WaitGroup
	for _, u := range users {
		wg.Add(1)
		go func(u *models.User) {
			defer wg.Done()
			_, _, err := repo.CompleteProfile(context.Background(), u.ID, identity.ProfileUpdate{
				Name: u.Name, Email: u.Email, Role: role.Worker,
			}, &identity.WorkerOnboarding{Code: "ONE111", Worker: models.Worker{Name: u.Name}})
			if err == nil {
				atomic.AddInt32(&wins, 1)
				return
			}
			assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidSignupCode), err)
		}(u)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)

	var workers int64
	db.Model(&models.Worker{}).Count(&workers)
	assert.Equal(t, int64(1), workers)
}

func TestCompleteProfileMarksComplete(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewIdentityGormRepository(db)

	u := testutil.User(t, db, role.Customer)
	require.NoError(t, db.Model(u).Update("profile_complete", false).Error)

	got, _, err := repo.CompleteProfile(context.Background(), u.ID, identity.ProfileUpdate{
		Name: "Asha", Email: "asha@example.com", Gender: "female", Role: role.Owner,
	}, nil)
	require.NoError(t, err)
	assert.True(t, got.ProfileComplete)
	assert.Equal(t, role.Owner, got.Role)
	assert.Equal(t, "asha@example.com", got.Email)

	_, _, err = repo.CompleteProfile(context.Background(), u.ID, identity.ProfileUpdate{
		Name: "Asha", Email: "asha@example.com", Role: role.Customer,
	}, nil)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))

	_, _, err = repo.CompleteProfile(context.Background(), 9999, identity.ProfileUpdate{
		Name: "X", Email: "x@example.com", Role: role.Customer,
	}, nil)
	assert.True(t, httperr.IsNotFound(err))
}
