package handler

//go:generate mockgen -source=room_handler.go -destination=mock_room_service.go -package=handler

import (
	"fmt"
	"net/http"

	"auction-room/internal/events"
	model "auction-room/internal/models"
	"auction-room/services/room/helpers"
	"auction-room/utils"

	"github.com/gin-gonic/gin"
)

// RoomServiceInterface is the read side of the room exposed over HTTP
type RoomServiceInterface interface {
	Bids() ([]model.Bid, error)
	HighestBid() (model.Bid, bool)
	Users() []string
	Timer() model.TimerState
}

type RoomHandler struct {
	service RoomServiceInterface
}

func NewRoomHandler(service RoomServiceInterface) *RoomHandler {
	return &RoomHandler{service: service}
}

// GetBidsHandler handles GET /api/bids
func (h *RoomHandler) GetBidsHandler(c *gin.Context) {
	bids, err := h.service.Bids()
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetBidsHandler: error retrieving bids", map[string]any{"error": err.Error()})
		return
	}

	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, bid := range bids {
		resp = append(resp, helpers.NewBidResponse(bid))
	}

	utils.JSONListResponse(c, http.StatusOK, resp, len(resp), "bids retrieved successfully")
	helpers.LogSuccess("GetBidsHandler", "bids retrieved successfully", map[string]any{
		"count": len(resp),
	})
}

// GetHighestBidHandler handles GET /api/highest-bidder
func (h *RoomHandler) GetHighestBidHandler(c *gin.Context) {
	bid, ok := h.service.HighestBid()
	if !ok {
		utils.JSONResponse(c, http.StatusOK, nil, events.NoHighestBidMessage)
		utils.Info("GetHighestBidHandler: no bids placed yet", nil)
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBidResponse(bid), "highest bid retrieved successfully")
	helpers.LogSuccess("GetHighestBidHandler", "highest bid retrieved successfully", map[string]any{
		"bid_id":   bid.BidID,
		"username": bid.Username,
		"amount":   bid.Amount.StringFixed(2),
	})
}

// GetUsersHandler handles GET /api/users
func (h *RoomHandler) GetUsersHandler(c *gin.Context) {
	users := h.service.Users()
	if users == nil {
		users = []string{}
	}

	utils.JSONResponse(c, http.StatusOK, helpers.UsersResponse{Users: users, Count: len(users)}, "users retrieved successfully")
}

// GetTimerHandler handles GET /api/timer
func (h *RoomHandler) GetTimerHandler(c *gin.Context) {
	state := h.service.Timer()

	utils.JSONResponse(c, http.StatusOK, helpers.TimerResponse{
		Phase:     state.Phase,
		Remaining: state.RemainingSeconds,
		Duration:  state.DurationSeconds,
	}, "timer retrieved successfully")
}
