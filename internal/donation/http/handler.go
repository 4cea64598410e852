package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/templeops/temple-booking-backend/internal/auth"
	"github.com/templeops/temple-booking-backend/internal/donation"
	"github.com/templeops/temple-booking-backend/internal/pkg/request"
	"github.com/templeops/temple-booking-backend/internal/pkg/response"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service donation.Service
}

func NewHandler(service donation.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateDonationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	d, err := h.service.Create(c.Request.Context(), donation.CreateRequest{
		TempleID:  body.TempleID,
		UserID:    auth.GetUserID(c),
		DonorName: body.DonorName,
		Purpose:   body.Purpose,
		Amount:    body.Amount,
		Note:      body.Note,
		Anonymous: body.Anonymous,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewDonationResponse(d))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), req.ID, auth.GetUserID(c), auth.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewDonationResponse(d))
}

// ListMine returns only the requester's donations.
func (h *Handler) ListMine(c *gin.Context) {
	var req ListDonationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	filter := req.toFilter()
	filter.UserID = auth.GetUserID(c)

	h.list(c, filter, req.Page, req.PageSize)
}

func (h *Handler) AdminList(c *gin.Context) {
	var req ListDonationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	h.list(c, req.toFilter(), req.Page, req.PageSize)
}

func (r *ListDonationsRequest) toFilter() donation.Filter {
	filter := donation.Filter{
		TempleID: r.TempleID,
		UserID:   r.UserID,
		Page:     r.Page,
		PageSize: r.PageSize,
	}
	if r.From != "" {
		t, _ := time.Parse(dateLayout, r.From)
		filter.From = &t
	}
	if r.To != "" {
		t, _ := time.Parse(dateLayout, r.To)
		filter.To = &t
	}
	return filter
}

func (h *Handler) list(c *gin.Context, filter donation.Filter, page, pageSize int) {
	donations, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list donations"})
		return
	}

	items := make([]DonationResponse, len(donations))
	for i, d := range donations {
		items[i] = NewDonationResponse(d)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}
