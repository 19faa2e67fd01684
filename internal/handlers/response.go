package handlers

import (
	"encoding/json"
	"net/http"
)

// MessageResponse is the body of plain success and error responses.
// swagger:model MessageResponse
type MessageResponse struct {
	// Human-readable message
	// example: User not found
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Message: message})
}
