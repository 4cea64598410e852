package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/templeops/temple-booking-backend/internal/auth"
	"github.com/templeops/temple-booking-backend/internal/booking"
	"github.com/templeops/temple-booking-backend/internal/pkg/request"
	"github.com/templeops/temple-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// mustParseDate converts a value already validated by the datetime binding.
func mustParseDate(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	avail, err := h.service.CheckAvailability(c.Request.Context(), req.RoomID,
		mustParseDate(req.CheckIn), mustParseDate(req.CheckOut))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, AvailabilityResponse{
		Available:   avail.Available,
		Nights:      avail.Nights,
		TotalAmount: avail.TotalAmount,
	})
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		UserID:   auth.GetUserID(c),
		RoomID:   body.RoomID,
		CheckIn:  mustParseDate(body.CheckIn),
		CheckOut: mustParseDate(body.CheckOut),
		Adults:   body.Adults,
		Children: body.Children,
		Requests: body.Requests,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), req.ID, auth.GetUserID(c), auth.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// ListMine returns only the requester's bookings regardless of filters.
func (h *Handler) ListMine(c *gin.Context) {
	var req ListBookingsRequest
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
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	h.list(c, req.toFilter(), req.Page, req.PageSize)
}

func (r *ListBookingsRequest) toFilter() booking.Filter {
	filter := booking.Filter{
		UserID:    r.UserID,
		RoomID:    r.RoomID,
		TempleID:  r.TempleID,
		Status:    r.Status,
		Page:      r.Page,
		PageSize:  r.PageSize,
		SortBy:    r.SortBy,
		SortOrder: r.SortOrder,
	}
	if r.CheckInFrom != "" {
		t := mustParseDate(r.CheckInFrom)
		filter.CheckInFrom = &t
	}
	if r.CheckInTo != "" {
		t := mustParseDate(r.CheckInTo)
		filter.CheckInTo = &t
	}
	return filter
}

func (h *Handler) list(c *gin.Context, filter booking.Filter, page, pageSize int) {
	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Cancel(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), req.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) AdvanceStatus(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body AdvanceStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.AdvanceStatus(c.Request.Context(), req.ID, booking.Status(body.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) SetPayment(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body SetPaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.SetPaymentStatus(c.Request.Context(), req.ID, *body.Settled)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}
