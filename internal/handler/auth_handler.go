package handler

import (
	"encoding/json"
	"net/http"

	"feedblog/internal/apperr"
	"feedblog/internal/validation"
)

type SignupResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

type StatusResponse struct {
	Message string `json:"message,omitempty"`
	Status  string `json:"status"`
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req validation.SignupInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apperr.Validation("Invalid request body.", nil))
		return
	}

	user, err := h.Auth.Signup(r.Context(), req)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, SignupResponse{
		Message: "User created.",
		UserID:  user.UserID,
	})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req validation.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apperr.Validation("Invalid request body.", nil))
		return
	}

	token, userID, err := h.Auth.Login(r.Context(), req)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:  token,
		UserID: userID,
	})
}

func (h *Handlers) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := identityID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	status, err := h.Auth.GetStatus(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Status: status})
}

func (h *Handlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := identityID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req validation.StatusInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apperr.Validation("Invalid request body.", nil))
		return
	}

	status, err := h.Auth.UpdateStatus(r.Context(), userID, req)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Message: "Status updated.", Status: status})
}
