package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-occupancy-backend/internal/model"
	"hotel-occupancy-backend/internal/occupancy"
	"hotel-occupancy-backend/internal/store"
)

type companionRequest struct {
	Name      string    `json:"name" binding:"required"`
	Document  string    `json:"document" binding:"required"`
	BirthDate time.Time `json:"birthDate" binding:"required"`
}

type createOccupationRequest struct {
	RoomID               int64              `json:"roomId" binding:"required"`
	ResponsibleName      string             `json:"responsibleName" binding:"required"`
	ResponsibleDocument  string             `json:"responsibleDocument" binding:"required"`
	ResponsiblePhone     string             `json:"responsiblePhone" binding:"required"`
	ResponsibleBirthDate time.Time          `json:"responsibleBirthDate" binding:"required"`
	VehiclePlate         string             `json:"vehiclePlate"`
	CheckInDate          time.Time          `json:"checkInDate" binding:"required"`
	ExpectedCheckOut     time.Time          `json:"expectedCheckOut" binding:"required"`
	RoomRate             model.Cents        `json:"roomRate" binding:"required"`
	InitialConsumption   model.Cents        `json:"initialConsumption"`
	Companions           []companionRequest `json:"companions"`
}

// CreateOccupation handles POST /api/occupations.
func (h *Handler) CreateOccupation(c *gin.Context) {
	var req createOccupationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := occupancy.CreateOccupationInput{
		RoomID:               req.RoomID,
		ResponsibleName:      req.ResponsibleName,
		ResponsibleDocument:  req.ResponsibleDocument,
		ResponsiblePhone:     req.ResponsiblePhone,
		ResponsibleBirthDate: req.ResponsibleBirthDate,
		VehiclePlate:         req.VehiclePlate,
		CheckInDate:          req.CheckInDate,
		ExpectedCheckOut:     req.ExpectedCheckOut,
		RoomRate:             req.RoomRate,
		InitialConsumption:   req.InitialConsumption,
	}
	for _, comp := range req.Companions {
		in.Companions = append(in.Companions, occupancy.CompanionInput{
			Name:      comp.Name,
			Document:  comp.Document,
			BirthDate: comp.BirthDate,
		})
	}

	occ, err := h.manager.CreateOccupation(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, occ)
}

// ListOccupations handles GET /api/occupations with optional ?status= and
// ?roomId= filters.
func (h *Handler) ListOccupations(c *gin.Context) {
	var f store.OccupationFilter
	if v := c.Query("status"); v != "" {
		s := model.OccupationStatus(v)
		f.Status = &s
	}
	if v := c.Query("roomId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid roomId"})
			return
		}
		f.RoomID = &id
	}

	occs, err := h.manager.ListOccupations(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, occs)
}

// GetOccupation handles GET /api/occupations/:id.
func (h *Handler) GetOccupation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	occ, err := h.manager.GetOccupation(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, occ)
}

// ActiveOccupationByRoom handles GET /api/occupations/room/:roomId.
func (h *Handler) ActiveOccupationByRoom(c *gin.Context) {
	roomID, ok := pathID(c, "roomId")
	if !ok {
		return
	}

	occ, err := h.manager.ActiveOccupationByRoom(c.Request.Context(), roomID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, occ)
}

type addConsumptionRequest struct {
	ProductID int64       `json:"productId" binding:"required"`
	Quantity  int         `json:"quantity" binding:"required"`
	UnitPrice model.Cents `json:"unitPrice" binding:"required"`
}

// AddConsumption handles POST /api/occupations/:id/consumptions.
func (h *Handler) AddConsumption(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req addConsumptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cons, err := h.manager.AddConsumption(c.Request.Context(), id, occupancy.AddConsumptionInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cons)
}

type checkOutRequest struct {
	ServiceChargePercentage float64 `json:"serviceChargePercentage"`
}

// CheckOut handles POST /api/occupations/:id/checkout. The body is optional;
// an absent or zero percentage selects the house default.
func (h *Handler) CheckOut(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req checkOutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	result, err := h.manager.CompleteCheckOut(c.Request.Context(), id, req.ServiceChargePercentage)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DeleteOccupation handles DELETE /api/occupations/:id.
func (h *Handler) DeleteOccupation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.manager.DeleteOccupation(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
