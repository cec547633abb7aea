package dto

import "github.com/BruksfildServices01/salongo/internal/models"

// CustomerHomeDTO is the landing view for customers and anonymous visitors.
type CustomerHomeDTO struct {
	Salons     []models.Salon `json:"salons"`
	Categories []string       `json:"categories"`
	Location   string         `json:"location,omitempty"`
	Query      string         `json:"query,omitempty"`
}

type WorkerDashboardDTO struct {
	Worker    models.Worker    `json:"worker"`
	Pending   []BookingListDTO `json:"pending"`
	Accepted  []BookingListDTO `json:"accepted"`
	Completed []BookingListDTO `json:"completed"`
}

type OwnerDashboardDTO struct {
	Salon       models.Salon        `json:"salon"`
	Bookings    []BookingListDTO    `json:"bookings"`
	Earnings    float64             `json:"earnings"`
	SignupCodes []models.SignupCode `json:"signup_codes"`
	Workers     []models.Worker     `json:"workers"`
}

// DashboardDTO wraps whichever view the caller's role resolves to.
type DashboardDTO struct {
	Role     string              `json:"role"`
	Customer *CustomerHomeDTO    `json:"customer,omitempty"`
	Worker   *WorkerDashboardDTO `json:"worker,omitempty"`
	Owner    *OwnerDashboardDTO  `json:"owner,omitempty"`
	// set when the owner still has to register a salon
	Next string `json:"next,omitempty"`
}
