package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/maxaizer/gig-market/internal/domain/models"
)

type createJobRequest struct {
	Title     string  `json:"title" validate:"required"`
	Category  string  `json:"category" validate:"required"`
	Summary   string  `json:"summary"`
	Tags      string  `json:"tags"`
	PriceMin  float64 `json:"price_min"`
	PriceMax  float64 `json:"price_max"`
	UserEmail string  `json:"userEmail" validate:"required,email"`
}

type acceptJobRequest struct {
	UserEmail string `json:"userEmail" validate:"required,email"`
	UserName  string `json:"userName"`
}

type resolveJobRequest struct {
	Action string `json:"action" validate:"required"`
}

func jobID(r *http.Request) (string, error) {
	raw := mux.Vars(r)["id"]
	if _, err := uuid.Parse(raw); err != nil {
		return "", badRequest("invalid job id")
	}
	return raw, nil
}

func (s *Server) listJobs(w http.ResponseWriter, r *http.Request) error {

	sortDescending := false
	switch r.URL.Query().Get("sort") {
	case "", "asc":
	case "desc":
		sortDescending = true
	default:
		return badRequest("sort must be \"asc\" or \"desc\"")
	}

	jobs, err := s.jobService.List(r.Context(), r.URL.Query().Get("email"), sortDescending)
	if err != nil {
		return err
	}
	return respondJSON(w, http.StatusOK, jobs)
}

func (s *Server) latestJobs(w http.ResponseWriter, r *http.Request) error {
	jobs, err := s.jobService.Latest(r.Context())
	if err != nil {
		return err
	}
	return respondJSON(w, http.StatusOK, jobs)
}

func (s *Server) getJob(w http.ResponseWriter, r *http.Request) error {

	id, err := jobID(r)
	if err != nil {
		return err
	}

	job, err := s.jobService.GetByID(r.Context(), id)
	if err != nil {
		return err
	}
	return respondJSON(w, http.StatusOK, job)
}

func (s *Server) createJob(w http.ResponseWriter, r *http.Request) error {

	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return badRequest(err.Error())
	}

	id, err := s.jobService.Create(r.Context(), models.Job{
		Title:     req.Title,
		Category:  req.Category,
		Summary:   req.Summary,
		Tags:      req.Tags,
		PriceMin:  req.PriceMin,
		PriceMax:  req.PriceMax,
		UserEmail: req.UserEmail,
	})
	if err != nil {
		return err
	}
	return respondJSON(w, http.StatusCreated, map[string]any{"insertedId": id})
}

func (s *Server) updateJob(w http.ResponseWriter, r *http.Request) error {

	id, err := jobID(r)
	if err != nil {
		return err
	}

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		return badRequest("invalid request body")
	}
	if len(fields) == 0 {
		return badRequest("empty update")
	}
	if raw, ok := fields["status"].(string); ok {
		if _, err := models.ParseStatus(raw); err != nil {
			return badRequest(err.Error())
		}
	}

	affected, err := s.jobService.Update(r.Context(), id, fields)
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrJobNotFound
	}
	return respondJSON(w, http.StatusOK, map[string]any{"modifiedCount": affected})
}

func (s *Server) deleteJob(w http.ResponseWriter, r *http.Request) error {

	id, err := jobID(r)
	if err != nil {
		return err
	}

	affected, err := s.jobService.Delete(r.Context(), id)
	if err != nil {
		return err
	}
	return respondJSON(w, http.StatusOK, map[string]any{"deletedCount": affected})
}

func (s *Server) acceptJob(w http.ResponseWriter, r *http.Request) error {

	id, err := jobID(r)
	if err != nil {
		return err
	}

	var req acceptJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return badRequest(err.Error())
	}

	job, err := s.jobService.Accept(r.Context(), id, req.UserEmail, req.UserName)
	if err != nil {
		return err
	}
	return respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "job accepted",
		"data":    job,
	})
}

func (s *Server) resolveJob(w http.ResponseWriter, r *http.Request) error {

	id, err := jobID(r)
	if err != nil {
		return err
	}

	var req resolveJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("invalid request body")
	}

	action, err := models.ParseAction(req.Action)
	if err != nil {
		return badRequest(err.Error())
	}

	job, err := s.jobService.Resolve(r.Context(), id, action)
	if err != nil {
		return err
	}
	return respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "job " + string(job.Status),
		"data":    job,
	})
}

func (s *Server) jobsByCategory(w http.ResponseWriter, r *http.Request) error {
	jobs, err := s.jobService.ByCategory(r.Context(), mux.Vars(r)["category"])
	if err != nil {
		return err
	}
	return respondJSON(w, http.StatusOK, jobs)
}

func (s *Server) searchJobs(w http.ResponseWriter, r *http.Request) error {
	jobs, err := s.jobService.Search(r.Context(), mux.Vars(r)["query"])
	if err != nil {
		return err
	}
	return respondJSON(w, http.StatusOK, jobs)
}

func (s *Server) acceptedTasks(w http.ResponseWriter, r *http.Request) error {

	email := r.URL.Query().Get("email")
	if email == "" {
		return badRequest("missing required query parameter: email")
	}

	jobs, err := s.jobService.ByAccepter(r.Context(), email)
	if err != nil {
		return err
	}
	return respondJSON(w, http.StatusOK, jobs)
}

func (s *Server) postedJobs(w http.ResponseWriter, r *http.Request) error {

	email := r.URL.Query().Get("email")
	if email == "" {
		return badRequest("missing required query parameter: email")
	}

	jobs, err := s.jobService.ByPoster(r.Context(), email)
	if err != nil {
		return err
	}
	return respondJSON(w, http.StatusOK, jobs)
}
