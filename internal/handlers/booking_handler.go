package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salongo/internal/dto"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/httpresp"
	"github.com/BruksfildServices01/salongo/internal/middleware"
	ucBooking "github.com/BruksfildServices01/salongo/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create *ucBooking.CreateBooking
	list   *ucBooking.ListCustomerBookings
	cancel *ucBooking.CancelBooking
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	list *ucBooking.ListCustomerBookings,
	cancel *ucBooking.CancelBooking,
) *BookingHandler {
	return &BookingHandler{
		create: create,
		list:   list,
		cancel: cancel,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ServiceID         uint   `json:"service_id" binding:"required"`
	PreferredWorkerID *uint  `json:"preferred_worker_id"`
	Date              string `json:"date" binding:"required"`
	Time              string `json:"time" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	id := middleware.Identity(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		UserID:            id.UserID,
		ServiceID:         req.ServiceID,
		PreferredWorkerID: req.PreferredWorkerID,
		Date:              req.Date,
		Time:              req.Time,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, dto.BookingFromModel(*b))
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	id := middleware.Identity(c)

	list, err := h.list.Execute(c.Request.Context(), id.UserID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// CANCEL
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	id := middleware.Identity(c)

	bookingID, ok := paramID(c, "id")
	if !ok {
		return
	}

	b, err := h.cancel.Execute(c.Request.Context(), id.UserID, bookingID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.BookingFromModel(*b))
}
