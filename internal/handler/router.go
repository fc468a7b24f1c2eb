/*
Package handler provides the HTTP handlers and routing setup for the chat relay.

This file defines the main Router, applying logging, CORS and recovery middleware
before delegating to the health check, the WebSocket endpoint and static assets.
*/
package handler

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"relaychat/internal/pkg/errs"
	"relaychat/internal/pkg/logx"
	"relaychat/internal/pkg/resp"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "Relay Chat Server"

// Router sets up the HTTP routing table for the relay.
func Router(deps *AppDeps) http.Handler {
	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.IsDevelopment() {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins: corsAllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		resp.RespondError(w, errs.NewError(errs.ErrRouteNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		resp.RespondError(w, errs.NewError(errs.ErrMethodNotAllowed, r.Method))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if deps.Coordinator.Stopped() {
			resp.RespondError(w, errs.NewError(errs.ErrRelayUnavailable))
			return
		}

		resp.RespondSuccess(w, map[string]string{
			"status":  "ok",
			"service": ServiceName,
		})
	})

	r.Get("/ws", HandleWebSocket(wsUpgrader, deps))

	mountStatic(r, deps.Config.StaticDir)

	return r
}

// mountStatic serves dir at the root when it exists.
func mountStatic(r chi.Router, dir string) {
	if dir == "" {
		return
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		logx.Warn("Static directory unavailable, client UI will not be served.", "static_dir", dir)
		return
	}

	r.Handle("/*", http.FileServer(http.Dir(dir)))
}
