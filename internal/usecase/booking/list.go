package booking

import (
	"context"

	domain "github.com/BruksfildServices01/salongo/internal/domain/booking"
	"github.com/BruksfildServices01/salongo/internal/dto"
)

type ListCustomerBookings struct {
	repo domain.Repository
}

func NewListCustomerBookings(repo domain.Repository) *ListCustomerBookings {
	return &ListCustomerBookings{repo: repo}
}

func (uc *ListCustomerBookings) Execute(ctx context.Context, userID uint) ([]dto.BookingListDTO, error) {
	list, err := uc.repo.ListBookingsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.BookingsFromModels(list), nil
}
