package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/maxaizer/gig-market/internal/config"
	"github.com/maxaizer/gig-market/internal/services"
	log "github.com/sirupsen/logrus"
)

type Server struct {
	httpServer  *http.Server
	jobService  *services.JobService
	userService *services.UserService
	validate    *validator.Validate
}

func New(cfg config.ServerConfig, jobService *services.JobService, userService *services.UserService) *Server {

	s := &Server{
		jobService:  jobService,
		userService: userService,
		validate:    validator.New(),
	}

	router := mux.NewRouter()
	router.Use(metricsMiddleware)
	router.Use(rateLimitMiddleware(cfg.MaxRequestsPerSecond))

	router.HandleFunc("/", s.root).Methods("GET")

	router.HandleFunc("/jobs", handle(s.listJobs)).Methods("GET")
	router.HandleFunc("/jobs", handle(s.createJob)).Methods("POST")
	router.HandleFunc("/jobs/latest", handle(s.latestJobs)).Methods("GET") // keep before /{id}
	router.HandleFunc("/jobs/category/{category}", handle(s.jobsByCategory)).Methods("GET")
	router.HandleFunc("/jobs/search/{query}", handle(s.searchJobs)).Methods("GET")
	router.HandleFunc("/jobs/{id}", handle(s.getJob)).Methods("GET")
	router.HandleFunc("/jobs/{id}", handle(s.updateJob)).Methods("PATCH")
	router.HandleFunc("/jobs/{id}", handle(s.deleteJob)).Methods("DELETE")
	router.HandleFunc("/jobs/{id}/accept", handle(s.acceptJob)).Methods("PATCH")
	router.HandleFunc("/jobs/{id}/done", handle(s.resolveJob)).Methods("PATCH")

	router.HandleFunc("/my-accepted-tasks", handle(s.acceptedTasks)).Methods("GET")
	router.HandleFunc("/my-posted-jobs", handle(s.postedJobs)).Methods("GET")

	router.HandleFunc("/users", handle(s.registerUser)).Methods("POST")
	router.HandleFunc("/users", handle(s.lookupUser)).Methods("GET")

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	return s
}

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("gig market server is running"))
}

func (s *Server) Run() error {
	log.Infof("http server listening on %v", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the routing tree for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
