package response

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
)

// Envelope 所有接口统一返回结构
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Error message 为空时使用状态码默认文案
func Error(status int, message, detail string) Envelope {
	if message == "" {
		message = StatusMessage(status)
	}
	return Envelope{Success: false, Message: message, Error: detail}
}

func JSON(c *gin.Context, status int, message string, data any) {
	c.JSON(status, OK(message, data))
}

func Abort(c *gin.Context, status int, message, detail string) {
	c.AbortWithStatusJSON(status, Error(status, message, detail))
}

// JSONWithETag 按响应体 xxhash 生成弱 ETag；命中 If-None-Match 时返回 304
func JSONWithETag(c *gin.Context, status int, message string, data any) {
	b, err := json.Marshal(OK(message, data))
	if err != nil {
		Abort(c, http.StatusInternalServerError, "", err.Error())
		return
	}
	tag := ETag(b)
	c.Header("ETag", tag)
	c.Header("Cache-Control", "no-cache")
	if match := c.GetHeader("If-None-Match"); match != "" && match == tag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(status, "application/json; charset=utf-8", b)
}

func ETag(body []byte) string {
	return `W/"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
}
