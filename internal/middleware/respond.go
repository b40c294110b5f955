package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError emits the API's error envelope. Mirrors handler.Error; kept
// local so middleware does not depend on the handler package.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
