package handler

import (
	"errors"
	"net/http"

	"github.com/blues/scf/internal/errs"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// HandleError 将业务错误映射为HTTP状态码
func HandleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrNotYetObserved):
		// 非错误状态，客户端应退避后重试
		c.JSON(http.StatusAccepted, gin.H{
			"status":  "processing",
			"message": err.Error(),
		})
	case errors.Is(err, errs.ErrFormat),
		errors.Is(err, errs.ErrInvalidAddress),
		errors.Is(err, errs.ErrAmountTooSmall),
		errors.Is(err, errs.ErrChallengeInvalid),
		errors.Is(err, errs.ErrChallengeMismatch),
		errors.Is(err, errs.ErrSignatureInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrChallengeUsed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrWalletNotVerified):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrLedgerUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
