package dashboard

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/salongo/internal/domain/catalog"
	"github.com/BruksfildServices01/salongo/internal/domain/role"
	"github.com/BruksfildServices01/salongo/internal/dto"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/usecase/auth"
	catalogUC "github.com/BruksfildServices01/salongo/internal/usecase/catalog"
	"github.com/BruksfildServices01/salongo/internal/usecase/owner"
	"github.com/BruksfildServices01/salongo/internal/usecase/worker"
)

// Router resolves the landing view for a signed-in user from their role.
type Router struct {
	home   *catalogUC.Home
	worker *worker.Dashboard
	owner  *owner.Dashboard
}

func NewRouter(home *catalogUC.Home, worker *worker.Dashboard, owner *owner.Dashboard) *Router {
	return &Router{home: home, worker: worker, owner: owner}
}

func (r *Router) Execute(ctx context.Context, userID uint, rl role.Role) (*dto.DashboardDTO, error) {
	out := &dto.DashboardDTO{Role: rl.String()}

	switch rl {
	case role.Customer:
		v, err := r.home.Execute(ctx, catalog.SalonFilter{})
		if err != nil {
			return nil, err
		}
		out.Customer = v

	case role.Worker:
		v, err := r.worker.Execute(ctx, userID)
		if err != nil {
			return nil, err
		}
		out.Worker = v

	case role.Owner:
		v, err := r.owner.Execute(ctx, userID)
		if httperr.IsBusiness(err, httperr.CodeNotFound) {
			out.Next = auth.NextOwnerOnboarding
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out.Owner = v

	default:
		return nil, fmt.Errorf("dashboard: unhandled role %v", rl)
	}

	return out, nil
}
