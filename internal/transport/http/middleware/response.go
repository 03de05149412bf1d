package middleware

import (
	"encoding/json"
	"net/http"
)

// Messages shown by the landing page and dashboard as-is.
const (
	msgLoginRequired  = "로그인이 필요합니다"
	msgSessionExpired = "세션이 만료되었습니다. 다시 로그인해주세요"
	msgForbidden      = "접근 권한이 없습니다"
	msgRateLimited    = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요"
)

// errorBody matches the {error} shape the handlers write.
type errorBody struct {
	Error string `json:"error"`
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: msg})
}
