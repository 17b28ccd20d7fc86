package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"frontend_go/internal/api"
	"frontend_go/internal/config"
	"frontend_go/internal/session"
)

// Server renders the lost & found screens and forwards every action to the
// backend API. It holds no view state of its own; each request fetches what
// it renders.
type Server struct {
	cfg      *config.Config
	backend  *api.Client
	sessions *session.Manager
	tpl      *Templates
}

// NewRouter constructs the main HTTP router and wires pages, the session
// guard, and middleware.
func NewRouter(cfg *config.Config, backend *api.Client, sessions *session.Manager) (http.Handler, error) {
	tpl, err := NewTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		backend:  backend,
		sessions: sessions,
		tpl:      tpl,
	}

	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})

	// Anonymous screens
	r.Route("/auth", func(r chi.Router) {
		r.Get("/login", s.handleLoginPage)
		r.Post("/login", s.handleLoginSubmit)
		r.Get("/register", s.handleRegisterPage)
		r.Post("/register", s.handleRegisterSubmit)
	})

	// Authenticated screens
	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)

		r.Get("/dashboard", s.handleDashboard)

		r.Route("/items", func(r chi.Router) {
			r.Get("/report-lost", s.handleReportLostPage)
			r.Post("/report-lost", s.handleReportLostSubmit)
			r.Get("/report-found", s.handleReportFoundPage)
			r.Post("/report-found", s.handleReportFoundSubmit)
			r.Get("/{itemID}", s.handleItemDetail)
			r.Post("/{itemID}/status", s.handleItemStatus)
			r.Post("/{itemID}/message", s.handleItemMessage)
			r.Post("/{itemID}/report", s.handleItemReportUser)
		})

		r.Get("/messages", s.handleMessages)
		r.Post("/messages", s.handleSendMessage)

		r.Get("/profile", s.handleProfilePage)
		r.Post("/profile", s.handleProfileUpdate)
		r.Post("/profile/password", s.handlePasswordChange)

		r.Get("/admin", s.handleAdmin)
		r.Post("/admin/users/{userID}/role", s.handleUserRole)
		r.Post("/admin/reports/{reportID}/status", s.handleReportStatus)

		r.Post("/logout", s.handleLogout)
	})

	return r, nil
}

// basePage carries what the layout needs on every screen.
type basePage struct {
	Title   string
	Session session.Snapshot
	Unread  int
	Error   string
	Success string
}

func (s *Server) newBasePage(r *http.Request, title string) basePage {
	snap := CurrentSession(r)
	page := basePage{Title: title, Session: snap}
	if snap.IsAuthenticated {
		page.Unread = s.unreadCount(r.Context(), snap.Token)
	}
	return page
}

// unreadCount feeds the inbox badge; the badge is cosmetic so failures just
// log and show zero.
func (s *Server) unreadCount(ctx context.Context, token string) int {
	n, err := s.backend.UnreadCount(ctx, token)
	if err != nil {
		log.Printf("httpserver: unread count: %v", err)
		return 0
	}
	return n
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	page := struct {
		basePage
		Message string
	}{s.newBasePage(r, "Error"), message}
	s.tpl.Render(w, status, "error", page)
}
