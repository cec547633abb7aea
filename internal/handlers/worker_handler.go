package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salongo/internal/dto"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/httpresp"
	"github.com/BruksfildServices01/salongo/internal/middleware"
	ucBooking "github.com/BruksfildServices01/salongo/internal/usecase/booking"
	ucWorker "github.com/BruksfildServices01/salongo/internal/usecase/worker"
)

type WorkerHandler struct {
	dashboard *ucWorker.Dashboard
	toggle    *ucBooking.ToggleAvailability
	accept    *ucBooking.AcceptBooking
	complete  *ucBooking.CompleteBooking
	profile   *ucWorker.UpdateProfile
	photo     *ucWorker.UploadPhoto
}

func NewWorkerHandler(
	dashboard *ucWorker.Dashboard,
	toggle *ucBooking.ToggleAvailability,
	accept *ucBooking.AcceptBooking,
	complete *ucBooking.CompleteBooking,
	profile *ucWorker.UpdateProfile,
	photo *ucWorker.UploadPhoto,
) *WorkerHandler {
	return &WorkerHandler{
		dashboard: dashboard,
		toggle:    toggle,
		accept:    accept,
		complete:  complete,
		profile:   profile,
		photo:     photo,
	}
}

type UpdateWorkerProfileRequest struct {
	Role       *string `json:"role" binding:"omitempty,max=50"`
	Phone      *string `json:"phone"`
	ImageURL   *string `json:"image_url" binding:"omitempty,max=300"`
	Experience *int    `json:"experience" binding:"omitempty,gte=0,lte=80"`
	Skills     *string `json:"skills" binding:"omitempty,max=500"`
}

func (h *WorkerHandler) Dashboard(c *gin.Context) {
	out, err := h.dashboard.Execute(c.Request.Context(), middleware.Identity(c).UserID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *WorkerHandler) ToggleAvailability(c *gin.Context) {
	online, err := h.toggle.Execute(c.Request.Context(), middleware.Identity(c).UserID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, gin.H{"is_online": online})
}

// ------------------------------
// Booking transitions
// ------------------------------

func (h *WorkerHandler) Accept(c *gin.Context) {
	bookingID, ok := paramID(c, "id")
	if !ok {
		return
	}

	b, err := h.accept.Execute(c.Request.Context(), middleware.Identity(c).UserID, bookingID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, dto.BookingFromModel(*b))
}

func (h *WorkerHandler) Complete(c *gin.Context) {
	bookingID, ok := paramID(c, "id")
	if !ok {
		return
	}

	b, err := h.complete.Execute(c.Request.Context(), middleware.Identity(c).UserID, bookingID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, dto.BookingFromModel(*b))
}

// ------------------------------
// Profile
// ------------------------------

func (h *WorkerHandler) UpdateProfile(c *gin.Context) {
	var req UpdateWorkerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	w, err := h.profile.Execute(c.Request.Context(), middleware.Identity(c).UserID, ucWorker.UpdateProfileInput{
		Role:       req.Role,
		Phone:      req.Phone,
		ImageURL:   req.ImageURL,
		Experience: req.Experience,
		Skills:     req.Skills,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, w)
}

func (h *WorkerHandler) UploadPhoto(c *gin.Context) {
	fh, err := c.FormFile("photo")
	if err != nil {
		httperr.FromError(c, httperr.ErrBusinessf(httperr.CodeValidation, "photo is required."))
		return
	}

	w, err := h.photo.Execute(c.Request.Context(), middleware.Identity(c).UserID, fh)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, w)
}
