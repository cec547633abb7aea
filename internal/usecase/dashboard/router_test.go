package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salongo/internal/domain/role"
	"github.com/BruksfildServices01/salongo/internal/infra/repository"
	"github.com/BruksfildServices01/salongo/internal/testutil"
	catalogUC "github.com/BruksfildServices01/salongo/internal/usecase/catalog"
	"github.com/BruksfildServices01/salongo/internal/usecase/owner"
	"github.com/BruksfildServices01/salongo/internal/usecase/worker"
)

func newRouter(db *gorm.DB) *Router {
	cat := repository.NewCatalogGormRepository(db)
	bk := repository.NewBookingGormRepository(db)
	return NewRouter(catalogUC.NewHome(cat), worker.NewDashboard(bk), owner.NewDashboard(cat, bk))
}

func TestRouterDispatchesByRole(t *testing.T) {
	db := testutil.NewDB(t)
	r := newRouter(db)
	ctx := context.Background()

	ownerUser := testutil.User(t, db, role.Owner)
	salon := testutil.Salon(t, db, &ownerUser.ID)
	workerUser, _ := testutil.WorkerUser(t, db, salon.ID)
	customer := testutil.User(t, db, role.Customer)

	got, err := r.Execute(ctx, customer.ID, role.Customer)
	require.NoError(t, err)
	assert.Equal(t, "customer", got.Role)
	require.NotNil(t, got.Customer)
	assert.Nil(t, got.Worker)
	assert.Nil(t, got.Owner)

	got, err = r.Execute(ctx, workerUser.ID, role.Worker)
	require.NoError(t, err)
	require.NotNil(t, got.Worker)
	assert.Equal(t, salon.ID, got.Worker.Worker.SalonID)

	got, err = r.Execute(ctx, ownerUser.ID, role.Owner)
	require.NoError(t, err)
	require.NotNil(t, got.Owner)
	assert.Equal(t, salon.ID, got.Owner.Salon.ID)
	assert.Empty(t, got.Next)
}

func TestRouterOwnerWithoutSalon(t *testing.T) {
	db := testutil.NewDB(t)
	u := testutil.User(t, db, role.Owner)

	got, err := newRouter(db).Execute(context.Background(), u.ID, role.Owner)
	require.NoError(t, err)
	assert.Nil(t, got.Owner)
	assert.Equal(t, "owner_onboarding", got.Next)
}

func TestRouterRejectsZeroRole(t *testing.T) {
	db := testutil.NewDB(t)

	_, err := newRouter(db).Execute(context.Background(), 1, role.Role(0))
	assert.Error(t, err)
}
