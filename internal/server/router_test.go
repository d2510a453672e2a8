package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"auction-room/internal/decoder"
	"auction-room/internal/dispatcher"
	"auction-room/internal/repository"
	"auction-room/internal/session"
	"auction-room/services/room/handler"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSetupRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	d := dispatcher.New(16, nil)
	repo := repository.NewMemoryRepo()
	room := session.New(repo, repo, d, session.Options{BidDuration: time.Minute, HistoryLimit: 50})
	router := SetupRouter(
		handler.NewRoomHandler(room),
		handler.NewWSHandler(room, d, handler.ConnectionConfig{PingInterval: time.Second}),
	)

	require.NoError(t, room.Handle("c1", decoder.Command{Kind: decoder.SetUsername, Username: "alice"}))
	require.NoError(t, room.Handle("c1", decoder.Command{Kind: decoder.Bid, Text: "bid 25", Amount: decimal.NewFromInt(25)}))

	tests := []struct {
		path           string
		expectedStatus int
		contains       string
	}{
		{path: "/healthz", expectedStatus: http.StatusOK, contains: `"status":"ok"`},
		{path: "/api/bids", expectedStatus: http.StatusOK, contains: `"count":1`},
		{path: "/api/highest-bidder", expectedStatus: http.StatusOK, contains: `"amount":25.00`},
		{path: "/api/users", expectedStatus: http.StatusOK, contains: `"users":["alice"]`},
		{path: "/api/timer", expectedStatus: http.StatusOK, contains: `"phase":"running"`},
		{path: "/metrics", expectedStatus: http.StatusOK, contains: "auction_bids_total"},
		{path: "/unknown", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(strings.TrimPrefix(tt.path, "/"), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.contains != "" {
				require.Contains(t, w.Body.String(), tt.contains)
			}
		})
	}
}

func TestSetupRouter_WebsocketRequiresUpgrade(t *testing.T) {
	gin.SetMode(gin.TestMode)

	d := dispatcher.New(16, nil)
	repo := repository.NewMemoryRepo()
	room := session.New(repo, repo, d, session.Options{BidDuration: time.Minute})
	router := SetupRouter(
		handler.NewRoomHandler(room),
		handler.NewWSHandler(room, d, handler.ConnectionConfig{PingInterval: time.Second}),
	)

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Zero(t, d.Count())
}
