package auth

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salongo/internal/audit"
	"github.com/BruksfildServices01/salongo/internal/domain/role"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/infra/repository"
	"github.com/BruksfildServices01/salongo/internal/models"
	"github.com/BruksfildServices01/salongo/internal/otp"
	"github.com/BruksfildServices01/salongo/internal/testutil"
)

type recordingSender struct {
	codes map[string]string
}

func (s *recordingSender) Name() string { return "test" }

func (s *recordingSender) Send(_ context.Context, phone, code string) error {
	if s.codes == nil {
		s.codes = map[string]string{}
	}
	s.codes[phone] = code
	return nil
}

func setupDB(t *testing.T) (*gorm.DB, *repository.IdentityGormRepository) {
	t.Helper()
	db := testutil.NewDB(t)
	return db, repository.NewIdentityGormRepository(db)
}

// pendingProfile is a user fresh out of OTP signup.
func pendingProfile(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	u := testutil.User(t, db, role.Customer)
	require.NoError(t, db.Model(u).Update("profile_complete", false).Error)
	return u
}

// ======================================================
// LOGIN / SIGNUP
// ======================================================

func TestLoginByEmailOrPhone(t *testing.T) {
	db, repo := setupDB(t)
	u := testutil.User(t, db, role.Customer)
	uc := NewLogin(repo)
	ctx := context.Background()

	got, err := uc.Execute(ctx, u.Email, testutil.Password)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = uc.Execute(ctx, u.Phone, testutil.Password)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	db, repo := setupDB(t)
	u := testutil.User(t, db, role.Customer)
	uc := NewLogin(repo)

	for _, tc := range []struct{ id, pw string }{
		{u.Email, "wrong"},
		{"nobody@example.com", testutil.Password},
		{"", ""},
	} {
		_, err := uc.Execute(context.Background(), tc.id, tc.pw)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidCredentials), tc.id)
	}
}

func TestSignupCustomerAndDuplicateEmail(t *testing.T) {
	_, repo := setupDB(t)
	uc := NewSignup(repo, &testutil.AuditRecorder{})
	ctx := context.Background()

	u, err := uc.Execute(ctx, SignupInput{Name: "Meera", Email: "Meera@Example.com", Phone: "9123456780", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, role.Customer, u.Role)
	assert.Equal(t, "meera@example.com", u.Email)

	_, err = uc.Execute(ctx, SignupInput{Name: "Other", Email: "meera@example.com", Phone: "9123456781", Password: "secret1"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeDuplicateEmail))

	_, err = NewLogin(repo).Execute(ctx, "meera@example.com", "secret1")
	assert.NoError(t, err)
}

func TestSignupWithCodeCreatesWorker(t *testing.T) {
	db, repo := setupDB(t)
	salon := testutil.Salon(t, db, nil)
	testutil.SignupCode(t, db, salon.ID, "K7P2QX")
	rec := &testutil.AuditRecorder{}

	u, err := NewSignup(repo, rec).Execute(context.Background(), SignupInput{
		Name: "Arjun", Email: "arjun@example.com", Phone: "9000011111", Password: "secret1", SignupCode: "k7p2qx",
	})
	require.NoError(t, err)
	assert.Equal(t, role.Worker, u.Role)

	var w models.Worker
	require.NoError(t, db.Where("user_id = ?", u.ID).First(&w).Error)
	assert.Equal(t, salon.ID, w.SalonID)
	assert.Equal(t, "9000011111", w.Phone)
	assert.Equal(t, []string{audit.ActionSignupCodeUsed}, rec.Actions())

	_, err = NewSignup(repo, rec).Execute(context.Background(), SignupInput{
		Name: "Late", Email: "late@example.com", Phone: "9000011112", Password: "secret1", SignupCode: "K7P2QX",
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidSignupCode))
}

// ======================================================
// OTP
// ======================================================

func TestRequestOTPValidatesPhone(t *testing.T) {
	uc := NewRequestOTP(otp.NewMemoryStore(time.Minute), &recordingSender{}, nil, time.Minute, false)

	for _, phone := range []string{"", "12345", "98765432101", "98765o3210"} {
		_, err := uc.Execute(context.Background(), phone)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation), phone)
	}
}

func TestRequestOTPDemoEchoesCode(t *testing.T) {
	sender := &recordingSender{}
	store := otp.NewMemoryStore(time.Minute)

	ch, err := NewRequestOTP(store, sender, nil, time.Minute, true).Execute(context.Background(), "9876543210")
	require.NoError(t, err)
	assert.NotEmpty(t, ch.VerificationID)
	assert.Equal(t, sender.codes["9876543210"], ch.DemoCode)

	ch, err = NewRequestOTP(store, sender, nil, time.Minute, false).Execute(context.Background(), "9876543210")
	require.NoError(t, err)
	assert.Empty(t, ch.DemoCode)
}

func TestResendReplacesCode(t *testing.T) {
	store := otp.NewMemoryStore(time.Minute)
	uc := NewRequestOTP(store, &recordingSender{}, nil, time.Minute, true)
	ctx := context.Background()

	first, err := uc.Execute(ctx, "9876543210")
	require.NoError(t, err)

	var second *Challenge
	for i := 0; i < 5; i++ {
		second, err = uc.Resend(ctx, first.VerificationID)
		require.NoError(t, err)
		if second.DemoCode != first.DemoCode {
			break
		}
	}
	assert.Equal(t, first.VerificationID, second.VerificationID)

	p, err := store.Get(ctx, first.VerificationID)
	require.NoError(t, err)
	assert.Equal(t, second.DemoCode, p.Code)

	_, err = uc.Resend(ctx, "unknown")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSessionMismatch))
}

func TestVerifyOTPFlow(t *testing.T) {
	db, repo := setupDB(t)
	store := otp.NewMemoryStore(time.Minute)
	ctx := context.Background()

	ch, err := NewRequestOTP(store, otp.NewLogSender(zerolog.Nop()), nil, time.Minute, true).Execute(ctx, "9876500001")
	require.NoError(t, err)

	verify := NewVerifyOTP(repo, store, nil)

	// wrong phone
	_, err = verify.Execute(ctx, VerifyOTPInput{VerificationID: ch.VerificationID, Phone: "9876500002", Code: ch.DemoCode})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSessionMismatch))

	// wrong code keeps the verification and touches no user
	wrong := "000000"
	if ch.DemoCode == wrong {
		wrong = "111111"
	}
	_, err = verify.Execute(ctx, VerifyOTPInput{VerificationID: ch.VerificationID, Phone: "9876500001", Code: wrong})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeIncorrectCode))

	var users int64
	db.Model(&models.User{}).Count(&users)
	assert.Zero(t, users)

	// correct code creates the account
	res, err := verify.Execute(ctx, VerifyOTPInput{VerificationID: ch.VerificationID, Phone: "9876500001", Code: ch.DemoCode})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, NextCreateProfile, res.Next)
	assert.Equal(t, "User 0001", res.User.Name)
	assert.Equal(t, "9876500001@salongo.app", res.User.Email)
	assert.False(t, res.User.ProfileComplete)
	assert.Equal(t, role.Customer, res.User.Role)

	// single use
	_, err = verify.Execute(ctx, VerifyOTPInput{VerificationID: ch.VerificationID, Phone: "9876500001", Code: ch.DemoCode})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSessionMismatch))
}

func TestVerifyOTPStopsAfterMaxAttempts(t *testing.T) {
	db, repo := setupDB(t)
	store := otp.NewMemoryStore(time.Minute)
	ctx := context.Background()

	ch, err := NewRequestOTP(store, &recordingSender{}, nil, time.Minute, true).Execute(ctx, "9876500003")
	require.NoError(t, err)

	verify := NewVerifyOTP(repo, store, nil)
	for i := 0; i < otp.MaxAttempts; i++ {
		_, err = verify.Execute(ctx, VerifyOTPInput{VerificationID: ch.VerificationID, Phone: "9876500003", Code: "000000"})
		assert.True(t, httperr.IsBusiness(err, httperr.CodeIncorrectCode), "attempt %d", i+1)
	}

	// the right code no longer works
	_, err = verify.Execute(ctx, VerifyOTPInput{VerificationID: ch.VerificationID, Phone: "9876500003", Code: ch.DemoCode})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSessionMismatch))

	var users int64
	db.Model(&models.User{}).Count(&users)
	assert.Zero(t, users)
}

func TestVerifyOTPResendResetsAttempts(t *testing.T) {
	_, repo := setupDB(t)
	store := otp.NewMemoryStore(time.Minute)
	ctx := context.Background()
	request := NewRequestOTP(store, &recordingSender{}, nil, time.Minute, true)

	ch, err := request.Execute(ctx, "9876500004")
	require.NoError(t, err)

	verify := NewVerifyOTP(repo, store, nil)
	for i := 0; i < otp.MaxAttempts-1; i++ {
		_, err = verify.Execute(ctx, VerifyOTPInput{VerificationID: ch.VerificationID, Phone: "9876500004", Code: "000000"})
		require.True(t, httperr.IsBusiness(err, httperr.CodeIncorrectCode))
	}

	ch, err = request.Resend(ctx, ch.VerificationID)
	require.NoError(t, err)

	p, err := store.Get(ctx, ch.VerificationID)
	require.NoError(t, err)
	assert.Zero(t, p.Attempts)

	res, err := verify.Execute(ctx, VerifyOTPInput{VerificationID: ch.VerificationID, Phone: "9876500004", Code: ch.DemoCode})
	require.NoError(t, err)
	assert.True(t, res.Created)
}

func TestVerifyOTPExistingUser(t *testing.T) {
	db, repo := setupDB(t)
	u := testutil.User(t, db, role.Worker)
	store := otp.NewMemoryStore(time.Minute)
	ctx := context.Background()

	ch, err := NewRequestOTP(store, &recordingSender{}, nil, time.Minute, true).Execute(ctx, u.Phone)
	require.NoError(t, err)

	res, err := NewVerifyOTP(repo, store, nil).Execute(ctx, VerifyOTPInput{
		VerificationID: ch.VerificationID, Phone: u.Phone, Code: ch.DemoCode,
	})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, u.ID, res.User.ID)
	assert.Equal(t, NextDashboard, res.Next)
}

func TestVerifyOTPExpired(t *testing.T) {
	_, repo := setupDB(t)
	store := otp.NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, otp.Pending{
		ID: "v", Phone: "9876500001", Code: "123456", ExpiresAt: time.Now().Add(-time.Second),
	}, time.Minute))

	_, err := NewVerifyOTP(repo, store, nil).Execute(ctx, VerifyOTPInput{VerificationID: "v", Phone: "9876500001", Code: "123456"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSessionMismatch))
}

// ======================================================
// PROFILE
// ======================================================

func TestCompleteProfile(t *testing.T) {
	db, repo := setupDB(t)
	u := pendingProfile(t, db)
	taken := testutil.User(t, db, role.Customer)
	uc := NewCompleteProfile(repo, &testutil.AuditRecorder{})
	ctx := context.Background()

	_, err := uc.Execute(ctx, u.ID, CompleteProfileInput{Name: "", Email: "a@b.c", Role: "customer"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))

	_, err = uc.Execute(ctx, u.ID, CompleteProfileInput{Name: "A", Email: "a@b.c", Role: "admin"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))

	_, err = uc.Execute(ctx, u.ID, CompleteProfileInput{Name: "A", Email: taken.Email, Role: "customer"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeDuplicateEmail))

	_, err = uc.Execute(ctx, u.ID, CompleteProfileInput{Name: "A", Email: "a@b.c", Role: "worker"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))

	res, err := uc.Execute(ctx, u.ID, CompleteProfileInput{Name: "Asha", Email: "asha@example.com", Role: "salon_owner", Gender: "female"})
	require.NoError(t, err)
	assert.Equal(t, NextOwnerOnboarding, res.Next)
	assert.Equal(t, role.Owner, res.User.Role)
	assert.True(t, res.User.ProfileComplete)

	// a second run cannot change the role
	_, err = uc.Execute(ctx, u.ID, CompleteProfileInput{Name: "Asha", Email: "asha@example.com", Role: "customer"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))
}

func TestCompleteProfileRejectsCompletedUser(t *testing.T) {
	db, repo := setupDB(t)
	customer := testutil.User(t, db, role.Customer)
	worker := testutil.User(t, db, role.Worker)
	uc := NewCompleteProfile(repo, &testutil.AuditRecorder{})
	ctx := context.Background()

	_, err := uc.Execute(ctx, customer.ID, CompleteProfileInput{Name: "R", Email: customer.Email, Role: "salon_owner"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))

	_, err = uc.Execute(ctx, worker.ID, CompleteProfileInput{Name: "W", Email: worker.Email, Role: "customer"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))

	var got models.User
	require.NoError(t, db.First(&got, customer.ID).Error)
	assert.Equal(t, role.Customer, got.Role)
	require.NoError(t, db.First(&got, worker.ID).Error)
	assert.Equal(t, role.Worker, got.Role)
}

func TestCompleteProfileAsWorker(t *testing.T) {
	db, repo := setupDB(t)
	salon := testutil.Salon(t, db, nil)
	testutil.SignupCode(t, db, salon.ID, "W0RK3R")
	u := pendingProfile(t, db)
	rec := &testutil.AuditRecorder{}

	res, err := NewCompleteProfile(repo, rec).Execute(context.Background(), u.ID, CompleteProfileInput{
		Name: "Kiran", Email: "kiran@example.com", Role: "worker", SignupCode: "w0rk3r",
	})
	require.NoError(t, err)
	assert.Equal(t, NextDashboard, res.Next)
	assert.Equal(t, role.Worker, res.User.Role)

	var w models.Worker
	require.NoError(t, db.Where("user_id = ?", u.ID).First(&w).Error)
	assert.Equal(t, salon.ID, w.SalonID)
	assert.Equal(t, u.Phone, w.Phone)

	require.Len(t, rec.Events(), 1)
	assert.Equal(t, salon.ID, rec.Events()[0].SalonID)
}
