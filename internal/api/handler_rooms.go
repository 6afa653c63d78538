package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel-occupancy-backend/internal/model"
	"hotel-occupancy-backend/internal/occupancy"
	"hotel-occupancy-backend/internal/store"
)

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

type createRoomRequest struct {
	Number    string         `json:"number" binding:"required"`
	Floor     int            `json:"floor"`
	Capacity  int            `json:"capacity" binding:"required"`
	RoomType  model.RoomType `json:"roomType" binding:"required"`
	DailyRate model.Cents    `json:"dailyRate" binding:"required"`
	NightRate model.Cents    `json:"nightRate" binding:"required"`
}

// CreateRoom handles POST /api/rooms.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.manager.CreateRoom(c.Request.Context(), occupancy.CreateRoomInput{
		Number:    req.Number,
		Floor:     req.Floor,
		Capacity:  req.Capacity,
		RoomType:  req.RoomType,
		DailyRate: req.DailyRate,
		NightRate: req.NightRate,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// ListRooms handles GET /api/rooms with an optional ?status= filter.
func (h *Handler) ListRooms(c *gin.Context) {
	var status *model.RoomStatus
	if v := c.Query("status"); v != "" {
		s := model.RoomStatus(v)
		status = &s
	}

	rooms, err := h.manager.ListRooms(c.Request.Context(), status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoom handles GET /api/rooms/:id.
func (h *Handler) GetRoom(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	room, err := h.manager.GetRoom(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

type updateRoomRequest struct {
	Number    *string           `json:"number"`
	Floor     *int              `json:"floor"`
	Capacity  *int              `json:"capacity"`
	RoomType  *model.RoomType   `json:"roomType"`
	DailyRate *model.Cents      `json:"dailyRate"`
	NightRate *model.Cents      `json:"nightRate"`
	Status    *model.RoomStatus `json:"status"`
}

// UpdateRoom handles PUT /api/rooms/:id with a partial body.
func (h *Handler) UpdateRoom(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.manager.UpdateRoom(c.Request.Context(), id, store.RoomUpdate{
		Number:    req.Number,
		Floor:     req.Floor,
		Capacity:  req.Capacity,
		RoomType:  req.RoomType,
		DailyRate: req.DailyRate,
		NightRate: req.NightRate,
		Status:    req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

type updateRoomStatusRequest struct {
	Status model.RoomStatus `json:"status" binding:"required"`
}

// UpdateRoomStatus handles PATCH /api/rooms/:id/status, the housekeeping
// entry point for marking a cleaned room AVAILABLE again.
func (h *Handler) UpdateRoomStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateRoomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.manager.UpdateRoomStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// DeleteRoom handles DELETE /api/rooms/:id.
func (h *Handler) DeleteRoom(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.manager.DeleteRoom(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
