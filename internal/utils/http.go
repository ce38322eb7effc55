package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON serializes data to JSON and writes it to the HTTP response
// with the given status code.
//
// It sets the "Content-Type" header to "application/json". If marshaling
// fails it responds with 500 Internal Server Error and returns a wrapped
// error, so handlers can simply `return` after calling it.
//
// Example usage:
//
//	WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
//	WriteJSON(w, note, http.StatusCreated)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error serializing response to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error serializing response to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(body)
}
