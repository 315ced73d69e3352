package server

import (
	"encoding/json"
	"net/http"

	"github.com/maxaizer/gig-market/internal/domain/models"
)

type registerUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
	Bio   string `json:"bio"`
}

func (s *Server) registerUser(w http.ResponseWriter, r *http.Request) error {

	var req registerUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return badRequest(err.Error())
	}

	err := s.userService.Register(r.Context(), models.User{
		Email: req.Email,
		Name:  req.Name,
		Photo: req.Photo,
		Bio:   req.Bio,
	})
	if err != nil {
		return err
	}
	return respondJSON(w, http.StatusCreated, map[string]any{"insertedId": req.Email})
}

// lookupUser treats an unknown email as a structured absent result,
// not an error.
func (s *Server) lookupUser(w http.ResponseWriter, r *http.Request) error {

	email := r.URL.Query().Get("email")
	if email == "" {
		return badRequest("missing required query parameter: email")
	}

	user, err := s.userService.Lookup(r.Context(), email)
	if err != nil {
		return err
	}
	if user == nil {
		return respondJSON(w, http.StatusOK, map[string]any{"found": false})
	}
	return respondJSON(w, http.StatusOK, map[string]any{"found": true, "data": user})
}
