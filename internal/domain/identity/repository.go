package identity

import (
	"context"

	"github.com/BruksfildServices01/salongo/internal/domain/role"
	"github.com/BruksfildServices01/salongo/internal/models"
)

// ProfileUpdate is the set of attributes the profile step may write.
type ProfileUpdate struct {
	Name   string
	Email  string
	Gender string
	Role   role.Role
}

// WorkerOnboarding binds a new worker profile to the salon that issued Code.
// Worker.SalonID and Worker.UserID are filled in by the repository.
type WorkerOnboarding struct {
	Code   string
	Worker models.Worker
}

type Repository interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByPhone(ctx context.Context, phone string) (*models.User, error)
	EmailTakenByOther(ctx context.Context, email string, userID uint) (bool, error)

	CreateUser(ctx context.Context, u *models.User) error

	// CreateUserWithCode creates u with the worker role and redeems the
	// signup code in the same transaction.
	CreateUserWithCode(ctx context.Context, u *models.User, onboarding WorkerOnboarding) (*models.Worker, error)

	// CompleteProfile writes the profile and, when onboarding is non-nil,
	// redeems its code in the same transaction. The worker is nil without
	// onboarding. It only applies once: a user whose profile is already
	// complete gets a forbidden business error.
	CompleteProfile(ctx context.Context, userID uint, p ProfileUpdate, onboarding *WorkerOnboarding) (*models.User, *models.Worker, error)
}
