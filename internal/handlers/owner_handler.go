package handlers

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/httpresp"
	"github.com/BruksfildServices01/salongo/internal/middleware"
	ucOwner "github.com/BruksfildServices01/salongo/internal/usecase/owner"
)

// ======================================================
// HANDLER
// ======================================================

type OwnerHandler struct {
	register   *ucOwner.RegisterSalon
	update     *ucOwner.UpdateSalon
	addService *ucOwner.AddService
	addWorker  *ucOwner.AddWorker
	generate   *ucOwner.GenerateSignupCode
	dashboard  *ucOwner.Dashboard
}

func NewOwnerHandler(
	register *ucOwner.RegisterSalon,
	update *ucOwner.UpdateSalon,
	addService *ucOwner.AddService,
	addWorker *ucOwner.AddWorker,
	generate *ucOwner.GenerateSignupCode,
	dashboard *ucOwner.Dashboard,
) *OwnerHandler {
	return &OwnerHandler{
		register:   register,
		update:     update,
		addService: addService,
		addWorker:  addWorker,
		generate:   generate,
		dashboard:  dashboard,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// RegisterSalonRequest is a multipart form; services is a JSON array.
type RegisterSalonRequest struct {
	Name      string `form:"name" binding:"required,max=100"`
	Location  string `form:"location" binding:"required,max=200"`
	Phone     string `form:"phone" binding:"max=20"`
	OpenTime  string `form:"open_time" binding:"required"`
	CloseTime string `form:"close_time" binding:"required"`
	MapURL    string `form:"map_url" binding:"max=500"`
	Services  string `form:"services"`
}

type UpdateSalonRequest struct {
	LogoURL   *string `form:"logo_url" json:"logo_url"`
	MapURL    *string `form:"map_url" json:"map_url"`
	IsOpen    *bool   `form:"is_open" json:"is_open"`
	OpenTime  *string `form:"open_time" json:"open_time"`
	CloseTime *string `form:"close_time" json:"close_time"`
}

type AddServiceRequest struct {
	Name     string  `json:"name" binding:"required,max=100"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Duration int     `json:"duration" binding:"omitempty,gt=0"`
	Category string  `json:"category" binding:"max=50"`
	ImageURL string  `json:"image_url" binding:"max=300"`
}

type AddWorkerRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	Role       string `json:"role" binding:"max=50"`
	Phone      string `json:"phone" binding:"omitempty,phone10"`
	Experience int    `json:"experience" binding:"gte=0,lte=80"`
	Skills     string `json:"skills" binding:"max=500"`
	ImageURL   string `json:"image_url" binding:"max=300"`
}

// ======================================================
// SALON
// ======================================================

func (h *OwnerHandler) RegisterSalon(c *gin.Context) {
	var req RegisterSalonRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	services, err := ucOwner.ParseServices(req.Services)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	s, err := h.register.Execute(c.Request.Context(), ucOwner.RegisterSalonInput{
		OwnerID:   middleware.Identity(c).UserID,
		Name:      req.Name,
		Location:  req.Location,
		Phone:     req.Phone,
		OpenTime:  req.OpenTime,
		CloseTime: req.CloseTime,
		MapURL:    req.MapURL,
		Photos:    formFiles(c, "photos[]", "photos"),
		Services:  services,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, s)
}

func (h *OwnerHandler) UpdateSalon(c *gin.Context) {
	var req UpdateSalonRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	var logo *multipart.FileHeader
	if files := formFiles(c, "logo"); len(files) > 0 {
		logo = files[0]
	}

	s, err := h.update.Execute(c.Request.Context(), middleware.Identity(c).UserID, ucOwner.UpdateSalonInput{
		LogoURL:   req.LogoURL,
		MapURL:    req.MapURL,
		IsOpen:    req.IsOpen,
		OpenTime:  req.OpenTime,
		CloseTime: req.CloseTime,
		Logo:      logo,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, s)
}

func (h *OwnerHandler) Dashboard(c *gin.Context) {
	out, err := h.dashboard.Execute(c.Request.Context(), middleware.Identity(c).UserID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, out)
}

// ======================================================
// SERVICES / WORKERS / CODES
// ======================================================

func (h *OwnerHandler) AddService(c *gin.Context) {
	var req AddServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	svc, err := h.addService.Execute(c.Request.Context(), middleware.Identity(c).UserID, ucOwner.ServiceInput{
		Name:     req.Name,
		Price:    req.Price,
		Duration: req.Duration,
		Category: req.Category,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, svc)
}

func (h *OwnerHandler) AddWorker(c *gin.Context) {
	var req AddWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	w, err := h.addWorker.Execute(c.Request.Context(), middleware.Identity(c).UserID, ucOwner.AddWorkerInput{
		Name:       req.Name,
		Role:       req.Role,
		Phone:      req.Phone,
		Experience: req.Experience,
		Skills:     req.Skills,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, w)
}

func (h *OwnerHandler) GenerateSignupCode(c *gin.Context) {
	sc, err := h.generate.Execute(c.Request.Context(), middleware.Identity(c).UserID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, sc)
}

// formFiles returns the uploads of the first non-empty field among names.
// Non-multipart requests have none.
func formFiles(c *gin.Context, names ...string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	for _, n := range names {
		if files := form.File[n]; len(files) > 0 {
			return files
		}
	}
	return nil
}
