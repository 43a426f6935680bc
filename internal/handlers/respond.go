package handlers

import (
	"encoding/json"
	"net/http"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(payload)
	if err != nil {
		sugar.Error(err)
	}
}

// respondMsg writes the error object clients key off: {"msg": "<code>"}.
func respondMsg(w http.ResponseWriter, status int, code string) {
	respondJSON(w, status, map[string]string{"msg": code})
}

func respondInternalError(w http.ResponseWriter) {
	respondMsg(w, http.StatusInternalServerError, "internal_server_error")
}
