package api

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope 统一响应信封：{success, data, error?, timestamp}
type Envelope struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp int64       `json:"timestamp"` // 毫秒时间戳
}

// respondOK 成功响应
func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	})
}

// respondError 失败响应（只暴露可读信息，不透出存储内部错误细节）
func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, Envelope{
		Success:   false,
		Error:     msg,
		Timestamp: time.Now().UnixMilli(),
	})
}
