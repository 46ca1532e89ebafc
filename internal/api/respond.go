// Package api holds the JSON response envelope shared by all handlers.
// Every response carries {message, success}; handlers attach extra fields
// (user, job, ...) alongside.
package api

import (
	"encoding/json"
	"net/http"
)

// Envelope is the response body shape: {"message": ..., "success": ..., ...}.
type Envelope map[string]interface{}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Message writes a success envelope with just a message.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{"message": message, "success": true})
}

// Error writes a failure envelope with just a message.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{"message": message, "success": false})
}
