package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/templeops/temple-booking-backend/internal/auth"
	"github.com/templeops/temple-booking-backend/internal/festival"
	"github.com/templeops/temple-booking-backend/internal/pkg/request"
	"github.com/templeops/temple-booking-backend/internal/pkg/response"
)

type Handler struct {
	service festival.Service
}

func NewHandler(service festival.Service) *Handler {
	return &Handler{service: service}
}

func mustParseDate(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}

func (h *Handler) List(c *gin.Context) {
	var req ListFestivalsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	festivals, total, err := h.service.List(c.Request.Context(), festival.Filter{
		TempleID: req.TempleID,
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list festivals"})
		return
	}

	items := make([]FestivalResponse, len(festivals))
	for i, f := range festivals {
		items[i] = NewFestivalResponse(f)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	f, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewFestivalResponse(f))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateFestivalRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	f, err := h.service.Create(c.Request.Context(), festival.CreateRequest{
		TempleID:           body.TempleID,
		Name:               body.Name,
		Description:        body.Description,
		StartDate:          mustParseDate(body.StartDate),
		EndDate:            mustParseDate(body.EndDate),
		ExpectedAttendance: body.ExpectedAttendance,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewFestivalResponse(f))
}

func (h *Handler) Update(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateFestivalRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	update := festival.UpdateRequest{
		Name:               body.Name,
		Description:        body.Description,
		ExpectedAttendance: body.ExpectedAttendance,
	}
	if body.StartDate != nil {
		t := mustParseDate(*body.StartDate)
		update.StartDate = &t
	}
	if body.EndDate != nil {
		t := mustParseDate(*body.EndDate)
		update.EndDate = &t
	}

	f, err := h.service.Update(c.Request.Context(), req.ID, update)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewFestivalResponse(f))
}

func (h *Handler) Cancel(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	f, err := h.service.Cancel(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewFestivalResponse(f))
}

func (h *Handler) Book(c *gin.Context) {
	var body BookFestivalRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Book(c.Request.Context(), festival.BookRequest{
		FestivalID: body.FestivalID,
		UserID:     auth.GetUserID(c),
		People:     body.People,
		Notes:      body.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) GetBooking(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.service.GetBookingByID(c.Request.Context(), req.ID, auth.GetUserID(c), auth.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) ListMyBookings(c *gin.Context) {
	var req ListFestivalBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	filter := req.toFilter()
	filter.UserID = auth.GetUserID(c)

	h.listBookings(c, filter, req.Page, req.PageSize)
}

func (h *Handler) AdminListBookings(c *gin.Context) {
	var req ListFestivalBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	h.listBookings(c, req.toFilter(), req.Page, req.PageSize)
}

func (r *ListFestivalBookingsRequest) toFilter() festival.BookingFilter {
	return festival.BookingFilter{
		FestivalID: r.FestivalID,
		UserID:     r.UserID,
		TempleID:   r.TempleID,
		Status:     r.Status,
		Page:       r.Page,
		PageSize:   r.PageSize,
		SortOrder:  r.SortOrder,
	}
}

func (h *Handler) listBookings(c *gin.Context, filter festival.BookingFilter, page, pageSize int) {
	bookings, total, err := h.service.ListBookings(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list festival bookings"})
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) CancelBooking(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.service.CancelBooking(c.Request.Context(), req.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) AdvanceBookingStatus(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body AdvanceBookingStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.AdvanceBookingStatus(c.Request.Context(), req.ID, festival.BookingStatus(body.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}
