package worker

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salongo/internal/domain/booking"
	"github.com/BruksfildServices01/salongo/internal/domain/role"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/infra/repository"
	"github.com/BruksfildServices01/salongo/internal/media"
	"github.com/BruksfildServices01/salongo/internal/testutil"
)

func TestDashboardBuckets(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewBookingGormRepository(db)
	ctx := context.Background()

	salon := testutil.Salon(t, db, nil)
	svc := testutil.Service(t, db, salon.ID, "Hair", 500)
	customer := testutil.User(t, db, role.Customer)
	meUser, me := testutil.WorkerUser(t, db, salon.ID)
	_, other := testutil.WorkerUser(t, db, salon.ID)

	testutil.Booking(t, db, customer.ID, svc, string(booking.StatusPending))

	mine := testutil.Booking(t, db, customer.ID, svc, string(booking.StatusPending))
	_, err := repo.AcceptBooking(ctx, mine.ID, me.ID, mine.CreatedAt)
	require.NoError(t, err)

	theirs := testutil.Booking(t, db, customer.ID, svc, string(booking.StatusPending))
	_, err = repo.AcceptBooking(ctx, theirs.ID, other.ID, theirs.CreatedAt)
	require.NoError(t, err)

	done := testutil.Booking(t, db, customer.ID, svc, string(booking.StatusPending))
	_, err = repo.AcceptBooking(ctx, done.ID, me.ID, done.CreatedAt)
	require.NoError(t, err)
	_, err = repo.CompleteBooking(ctx, done.ID, me.ID, done.CreatedAt)
	require.NoError(t, err)

	// another salon's pending booking stays invisible
	elsewhere := testutil.Salon(t, db, nil)
	testutil.Booking(t, db, customer.ID, testutil.Service(t, db, elsewhere.ID, "Hair", 100), string(booking.StatusPending))

	got, err := NewDashboard(repo).Execute(ctx, meUser.ID)
	require.NoError(t, err)

	assert.Len(t, got.Pending, 1)
	require.Len(t, got.Accepted, 1)
	assert.Equal(t, mine.ID, got.Accepted[0].ID)
	require.Len(t, got.Completed, 1)
	assert.Equal(t, done.ID, got.Completed[0].ID)

	_, err = NewDashboard(repo).Execute(ctx, customer.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

func TestUpdateProfile(t *testing.T) {
	db := testutil.NewDB(t)
	salon := testutil.Salon(t, db, nil)
	u, _ := testutil.WorkerUser(t, db, salon.ID)

	uc := NewUpdateProfile(repository.NewBookingGormRepository(db), repository.NewCatalogGormRepository(db))

	label := "Color Specialist"
	exp := 7
	got, err := uc.Execute(context.Background(), u.ID, UpdateProfileInput{Role: &label, Experience: &exp})
	require.NoError(t, err)
	assert.Equal(t, label, got.Role)
	assert.Equal(t, 7, got.Experience)
	assert.Equal(t, "Priya", got.Name)

	bad := "123"
	_, err = uc.Execute(context.Background(), u.ID, UpdateProfileInput{Phone: &bad})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))
}

type stubUploader struct{ err error }

func (s stubUploader) Upload(_ context.Context, prefix string, fh *multipart.FileHeader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "https://cdn.example.com/" + prefix + "/" + fh.Filename, nil
}

func fileHeader(t *testing.T) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("photo", "me.jpg")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("x"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["photo"][0]
}

func TestUploadPhoto(t *testing.T) {
	db := testutil.NewDB(t)
	salon := testutil.Salon(t, db, nil)
	u, w := testutil.WorkerUser(t, db, salon.ID)
	bookings := repository.NewBookingGormRepository(db)
	catalog := repository.NewCatalogGormRepository(db)
	ctx := context.Background()

	got, err := NewUploadPhoto(bookings, catalog, stubUploader{}).Execute(ctx, u.ID, fileHeader(t))
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("https://cdn.example.com/workers/%d/me.jpg", w.ID), got.ImageURL)

	_, err = NewUploadPhoto(bookings, catalog, nil).Execute(ctx, u.ID, fileHeader(t))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))

	_, err = NewUploadPhoto(bookings, catalog, stubUploader{err: media.ErrUnsupportedImage}).Execute(ctx, u.ID, fileHeader(t))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))
}
