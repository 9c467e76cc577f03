package handlers

import (
	"encoding/json"
	"net/http"
)

// errorBody — тело ответа об ошибке в формате DRF.
type errorBody struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail, code string) {
	writeJSON(w, status, errorBody{Detail: detail, Code: code})
}
