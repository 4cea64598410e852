package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/templeops/temple-booking-backend/internal/pkg/request"
	"github.com/templeops/temple-booking-backend/internal/pkg/response"
	"github.com/templeops/temple-booking-backend/internal/temple"
)

type Handler struct {
	service temple.Service
}

func NewHandler(service temple.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListTemplesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	filter := temple.Filter{
		Keyword:  req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	temples, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list temples"})
		return
	}

	items := make([]TempleResponse, len(temples))
	for i, t := range temples {
		items[i] = NewTempleResponse(t)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, temple.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "temple not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get temple"})
		return
	}

	c.JSON(http.StatusOK, NewTempleResponse(t))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateTempleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	t, err := h.service.Create(c.Request.Context(), temple.CreateRequest{
		Name:            body.Name,
		Location:        body.Location,
		Description:     body.Description,
		EstablishedDate: body.EstablishedDate,
		ContactNumber:   body.ContactNumber,
		Email:           body.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, temple.ErrNameRequired), errors.Is(err, temple.ErrLocRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create temple"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewTempleResponse(t))
}

func (h *Handler) Update(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateTempleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	t, err := h.service.Update(c.Request.Context(), req.ID, temple.UpdateRequest{
		Name:            body.Name,
		Location:        body.Location,
		Description:     body.Description,
		EstablishedDate: body.EstablishedDate,
		ContactNumber:   body.ContactNumber,
		Email:           body.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, temple.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "temple not found"})
		case errors.Is(err, temple.ErrNameRequired), errors.Is(err, temple.ErrLocRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update temple"})
		}
		return
	}

	c.JSON(http.StatusOK, NewTempleResponse(t))
}
