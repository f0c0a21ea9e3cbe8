package api

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"smartpay/backend/handlers"
	"smartpay/backend/middleware"
	"smartpay/backend/services"
)

// Options configures the HTTP surface.
type Options struct {
	Handler     *handlers.Handler
	Auth        *middleware.Auth
	Policy      services.AuthorizationPolicy
	CORSOrigins []string
	// ProofDir is served under /proofs/ when set.
	ProofDir string
	// StaticDir holds the built frontend. index.html answers unknown GET paths.
	StaticDir string
	Logger    *zap.Logger
}

// Server represents the API server
type Server struct {
	router *mux.Router
	opts   Options
}

// NewServer creates a new API server
func NewServer(opts Options) *Server {
	s := &Server{router: mux.NewRouter(), opts: opts}
	s.RegisterRoutes()
	return s
}

// RegisterRoutes registers every route both at the root and under /api.
func (s *Server) RegisterRoutes() {
	s.registerAPI(s.router)
	s.registerAPI(s.router.PathPrefix("/api").Subrouter())

	if s.opts.ProofDir != "" {
		s.router.PathPrefix("/proofs/").Handler(
			http.StripPrefix("/proofs/", http.FileServer(http.Dir(s.opts.ProofDir)))).Methods("GET")
	}

	if s.opts.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.opts.StaticDir))
		index := filepath.Join(s.opts.StaticDir, "index.html")
		s.router.PathPrefix("/assets/").Handler(fs)
		s.router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/api/") {
				http.NotFound(w, r)
				return
			}
			http.ServeFile(w, r, index)
		}).Methods("GET")
	}
}

func (s *Server) registerAPI(r *mux.Router) {
	h := s.opts.Handler

	// Public routes (no auth required)
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/auth/register", h.Register).Methods("POST")
	r.HandleFunc("/auth/login", h.Login).Methods("POST")

	protected := r.PathPrefix("").Subrouter()
	protected.Use(s.opts.Auth.Middleware)

	protected.HandleFunc("/me", h.GetMe).Methods("GET")
	protected.HandleFunc("/residents/sync", h.SyncResident).Methods("POST")

	protected.HandleFunc("/payments/mine", h.GetMyPayments).Methods("GET")
	protected.HandleFunc("/payments", h.SubmitPayment).Methods("POST")

	// Saved filters routes
	protected.HandleFunc("/filters", h.GetSavedFilters).Methods("GET")
	protected.HandleFunc("/filters", h.CreateSavedFilter).Methods("POST")
	protected.HandleFunc("/filters/{id}", h.GetSavedFilter).Methods("GET")
	protected.HandleFunc("/filters/{id}", h.UpdateSavedFilter).Methods("PUT")
	protected.HandleFunc("/filters/{id}", h.DeleteSavedFilter).Methods("DELETE")

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin(s.opts.Policy))

	admin.HandleFunc("/payments", h.GetAdminPayments).Methods("GET")
	admin.HandleFunc("/payments/export", h.ExportAdminPayments).Methods("GET")
	admin.HandleFunc("/dues", h.GetDues).Methods("GET")
	admin.HandleFunc("/dues", h.CreateDues).Methods("POST")
	admin.HandleFunc("/dues/{id}", h.UpdateDues).Methods("PUT")
	admin.HandleFunc("/dues/{id}", h.DeleteDues).Methods("DELETE")
}

// Handler returns the HTTP handler for the API server. CORS wraps the router so
// preflight requests are answered for every path.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	h = middleware.CORS(s.opts.CORSOrigins, s.opts.Logger)(h)
	h = middleware.RequestLogger(s.opts.Logger)(h)
	return middleware.Recover(s.opts.Logger)(h)
}
