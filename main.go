package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auction-room/internal/config"
	"auction-room/internal/dispatcher"
	"auction-room/internal/eventbus"
	"auction-room/internal/monitoring"
	"auction-room/internal/repository"
	"auction-room/internal/server"
	"auction-room/internal/session"
	"auction-room/services/room/handler"
	"auction-room/utils"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Fatal("failed to load configuration", map[string]any{"error": err.Error()})
	}
	if err := utils.SetLevel(cfg.LogLevel); err != nil {
		utils.Warn("invalid log level, keeping default", map[string]any{"log_level": cfg.LogLevel})
	}
	gin.SetMode(gin.ReleaseMode)

	monitor := monitoring.NewMonitor()

	var opts []dispatcher.Option
	if cfg.NATSURL != "" {
		publisher, err := eventbus.Connect(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			utils.Fatal("failed to start event mirror", map[string]any{"error": err.Error()})
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				utils.Warn("failed to close event mirror", map[string]any{"error": err.Error()})
			}
		}()
		opts = append(opts, dispatcher.WithMirror(publisher))
	}
	broadcaster := dispatcher.New(cfg.SendQueueSize, monitor, opts...)

	repo := repository.NewMemoryRepo()
	room := session.New(repo, repo, broadcaster, session.Options{
		BidDuration:       cfg.BidDuration,
		TickInterval:      cfg.TickInterval,
		HistoryLimit:      cfg.HistoryLimit,
		MaxUsernameLength: cfg.MaxUsernameLength,
		Clock:             clockwork.NewRealClock(),
		Monitor:           monitor,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go room.RunTimer(ctx)

	wsHandler := handler.NewWSHandler(room, broadcaster, handler.ConnectionConfig{
		WriteTimeout:   cfg.WriteTimeout,
		ReadTimeout:    cfg.ReadTimeout,
		PingInterval:   cfg.PingInterval,
		MaxMessageSize: cfg.MaxMessageSize,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	router := server.SetupRouter(handler.NewRoomHandler(room), wsHandler)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodHead, http.MethodGet},
		AllowedHeaders: []string{"*"},
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.Info("starting auction room server", map[string]any{
			"addr":         srv.Addr,
			"bid_duration": cfg.BidDuration.String(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Fatal("failed to start server", map[string]any{"error": err.Error()})
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan

	utils.Info("received shutdown signal", map[string]any{"signal": sig.String()})

	// stop accepting connections; hijacked websockets are not tracked by Shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Error("HTTP server shutdown failed", map[string]any{"error": err.Error()})
	}

	cancel()
	result := room.Close()
	if result.Winner != nil {
		utils.Info("final auction result", map[string]any{
			"winner": result.Winner.Username,
			"amount": result.Winner.Amount.StringFixed(2),
		})
	}

	closed := broadcaster.CloseAll()
	drainCtx, drainCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer drainCancel()
	if err := wsHandler.Wait(drainCtx); err != nil {
		utils.Warn("timed out flushing websocket connections", map[string]any{"connections": closed})
	}
}
