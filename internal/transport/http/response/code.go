package response

import "net/http"

// 各状态码的默认文案
const (
	MsgValidationFailed = "Validation failed"
	MsgInternal         = "Internal server error"
	MsgRouteNotFound    = "Route not found"
	MsgTooManyRequests  = "Too many requests from this IP, please try again later."
	MsgServerBusy       = "Server busy"
	MsgBodyTooLarge     = "Request body too large"
	MsgTimeout          = "Request timeout"
)

var statusMsg = map[int]string{
	http.StatusBadRequest:            MsgValidationFailed,
	http.StatusUnauthorized:          "Unauthorized",
	http.StatusForbidden:             "Forbidden",
	http.StatusNotFound:              "Not found",
	http.StatusConflict:              "Conflict",
	http.StatusRequestEntityTooLarge: MsgBodyTooLarge,
	http.StatusTooManyRequests:       MsgTooManyRequests,
	http.StatusInternalServerError:   MsgInternal,
	http.StatusServiceUnavailable:    MsgServerBusy,
	http.StatusGatewayTimeout:        MsgTimeout,
}

func StatusMessage(status int) string {
	if m, ok := statusMsg[status]; ok {
		return m
	}
	return http.StatusText(status)
}
