package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salongo/internal/domain/catalog"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/httpresp"
	"github.com/BruksfildServices01/salongo/internal/middleware"
	ucCatalog "github.com/BruksfildServices01/salongo/internal/usecase/catalog"
)

// PublicHandler serves salon browsing, plus reviews for signed-in customers.
type PublicHandler struct {
	home    *ucCatalog.Home
	details *ucCatalog.SalonDetails
	review  *ucCatalog.CreateReview
}

func NewPublicHandler(
	home *ucCatalog.Home,
	details *ucCatalog.SalonDetails,
	review *ucCatalog.CreateReview,
) *PublicHandler {
	return &PublicHandler{home: home, details: details, review: review}
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment" binding:"max=500"`
}

// GET /api/salons?location=&query=&category=
func (h *PublicHandler) ListSalons(c *gin.Context) {
	out, err := h.home.Execute(c.Request.Context(), catalog.SalonFilter{
		Location: c.Query("location"),
		Query:    c.Query("query"),
		Category: c.Query("category"),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *PublicHandler) GetSalon(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	s, err := h.details.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, s)
}

func (h *PublicHandler) CreateReview(c *gin.Context) {
	salonID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	out, err := h.review.Execute(c.Request.Context(), ucCatalog.CreateReviewInput{
		UserID:  middleware.Identity(c).UserID,
		SalonID: salonID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, out)
}
