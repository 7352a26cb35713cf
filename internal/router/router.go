package router

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ayame-bbs/ayame/internal/middleware"
	"github.com/ayame-bbs/ayame/internal/middleware/metrics"
	"github.com/ayame-bbs/ayame/internal/setup"
)

// New creates and configures a new mux router with all the routes.
func New(deps *setup.Dependencies) *mux.Router {
	r := mux.NewRouter()

	// Enable gzip compression for all responses
	r.Use(handlers.CompressHandler)

	r.Use(handlers.CORS(
		handlers.AllowedOrigins([]string{"http://localhost:8081"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	))

	r.Use(deps.SecurityHeaders)
	r.Use(middleware.RequestId)
	r.Use(metrics.Middleware)

	// Wildcard OPTIONS handler to avoid 404s for preflight requests
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := deps.Handler

	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/ready", h.Ready).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()

	// Public read/write routes
	v1.HandleFunc("/boards", h.ListBoards).Methods("GET")
	v1.HandleFunc("/boards/{board}", h.GetBoard).Methods("GET")
	v1.HandleFunc("/boards/{board}/threads", h.ListThreads).Methods("GET")
	v1.HandleFunc("/threads", h.CreateThread).Methods("POST")
	v1.HandleFunc("/threads/search", h.SearchThreads).Methods("GET")
	v1.HandleFunc("/threads/{thread}", h.GetThread).Methods("GET")
	v1.HandleFunc("/posts", h.CreatePost).Methods("POST")
	v1.HandleFunc("/posts/{post}", h.GetPost).Methods("GET")

	// Session endpoints stay outside the admin subrouter: login must be
	// reachable without a session.
	v1.HandleFunc("/admin/login", h.AdminLogin).Methods("POST")
	v1.HandleFunc("/admin/logout", h.AdminLogout).Methods("POST")

	// Admin routes
	admin := v1.PathPrefix("/admin").Subrouter()
	admin.Use(deps.AuthMiddleware.AdminOnly())
	admin.HandleFunc("/bans", h.BanIdentity).Methods("POST")
	admin.HandleFunc("/bans", h.ListBans).Methods("GET")
	admin.HandleFunc("/bans/{ban}", h.Unban).Methods("DELETE")
	admin.HandleFunc("/posts/{post}", h.DeletePost).Methods("DELETE")
	admin.HandleFunc("/threads/{thread}", h.DeleteThread).Methods("DELETE")
	admin.HandleFunc("/stats", h.Statistics).Methods("GET")
	admin.HandleFunc("/logs", h.Logs).Methods("GET")

	return r
}
