package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/templeops/temple-booking-backend/internal/pkg/request"
	"github.com/templeops/temple-booking-backend/internal/pkg/response"
	"github.com/templeops/temple-booking-backend/internal/room"
	"github.com/templeops/temple-booking-backend/internal/temple"
)

type Handler struct {
	service room.Service
}

func NewHandler(service room.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListRoomsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	rooms, total, err := h.service.List(c.Request.Context(), room.Filter{
		TempleID: req.TempleID,
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rooms"})
		return
	}

	items := make([]RoomResponse, len(rooms))
	for i, rm := range rooms {
		items[i] = NewRoomResponse(rm)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	rm, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get room"})
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(rm))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRoomRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	rm, err := h.service.Create(c.Request.Context(), room.CreateRequest{
		TempleID:   body.TempleID,
		RoomNumber: body.RoomNumber,
		RoomTypeID: body.RoomTypeID,
		Floor:      body.Floor,
		Notes:      body.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, room.ErrTypeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, room.ErrNumberTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, room.ErrTempleRequired),
			errors.Is(err, room.ErrRoomTypeRequired),
			errors.Is(err, room.ErrRoomNumberMissing):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewRoomResponse(rm))
}

func (h *Handler) SetStatus(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body SetRoomStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.service.SetStatus(c.Request.Context(), req.ID, room.Status(body.Status))
	if err != nil {
		switch {
		case errors.Is(err, room.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		case errors.Is(err, room.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update room status"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListTypes(c *gin.Context) {
	templeID := c.Query("temple_id")
	if templeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "temple_id is required"})
		return
	}

	types, err := h.service.ListTypes(c.Request.Context(), templeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list room types"})
		return
	}

	items := make([]RoomTypeResponse, len(types))
	for i, rt := range types {
		items[i] = NewRoomTypeResponse(rt)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) CreateType(c *gin.Context) {
	var body CreateRoomTypeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	rt, err := h.service.CreateType(c.Request.Context(), room.CreateTypeRequest{
		TempleID:      body.TempleID,
		Name:          body.Name,
		BedCount:      body.BedCount,
		Capacity:      body.Capacity,
		PricePerNight: body.PricePerNight,
		Description:   body.Description,
		Amenities:     body.Amenities,
	})
	if err != nil {
		switch {
		case errors.Is(err, temple.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, room.ErrTypeNameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, room.ErrNonPositivePrice), errors.Is(err, room.ErrTempleRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room type"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewRoomTypeResponse(rt))
}
