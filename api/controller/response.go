package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessResponse 统一成功返回包装
func SuccessResponse(ctx *gin.Context, key string, data interface{}, total int) {
	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			key:     data,
			"total": total,
		},
	})
}

// ErrorResponse 统一错误返回包装
func ErrorResponse(ctx *gin.Context, status int, code string, message string) {
	ctx.JSON(status, gin.H{
		"status": "error",
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
