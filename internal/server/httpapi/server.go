// Package httpapi exposes the timekeeper services over HTTP/JSON.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/timekeeper/internal/logging"
	"github.com/dmitrijs2005/timekeeper/internal/server/models"
	"github.com/dmitrijs2005/timekeeper/internal/server/services"
)

// Options tune the router.
type Options struct {
	RequestTimeout     time.Duration
	CORSAllowedOrigins []string
	MetricsEnabled     bool
}

// Server is the timekeeper HTTP API.
type Server struct {
	svc  *services.Services
	log  logging.Logger
	opts Options
	now  func() time.Time
}

func NewServer(svc *services.Services, log logging.Logger, opts Options) *Server {
	if log == nil {
		log = logging.Nop{}
	}
	return &Server{svc: svc, log: log.With("module", "http"), opts: opts, now: time.Now}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	if s.opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.opts.RequestTimeout))
	}
	r.Use(cors(s.opts.CORSAllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"message": "TimeTracker API is running"})
		})
		r.Get("/health", s.handleHealth)

		resource[models.Client, models.ClientInput, models.ClientPatch](r, "/clients", "Client", s, s.svc.Clients)
		resource[models.Project, models.ProjectInput, models.ProjectPatch](r, "/projects", "Project", s, s.svc.Projects)
		resource[models.TimeEntry, models.TimeEntryInput, models.TimeEntryPatch](r, "/time-entries", "Time entry", s, s.svc.TimeEntries)
		resource[models.Invoice, models.InvoiceInput, models.InvoicePatch](r, "/invoices", "Invoice", s, s.svc.Invoices)

		r.Route("/timer", func(r chi.Router) {
			r.Get("/active", s.handleTimerActive)
			r.Post("/start", s.handleTimerStart)
			r.Post("/stop", s.handleTimerStop)
		})

		r.Get("/export", s.handleExport)
		r.Post("/export/archive", s.handleExportArchive)
	})

	if s.opts.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": s.now().UTC(),
	})
}
