// Package response 提供统一的API响应格式
package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Response 统一返回值结构体
// @Description API统一响应格式
type Response struct {
	// 请求是否成功
	Success bool `json:"success" example:"true"`
	// 状态码，0表示成功，非0表示失败
	Code int `json:"code" example:"0"`
	// 响应消息
	Message string `json:"message" example:"success"`
	// 响应数据
	Data interface{} `json:"data,omitempty"`
	// 时间戳
	Timestamp int64 `json:"timestamp" example:"1640995200"`
}

// Success 成功响应
// @Summary 返回成功响应
// @Param c gin上下文
// @Param data 响应数据
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success:   true,
		Code:      0,
		Message:   "success",
		Data:      data,
		Timestamp: time.Now().Unix(),
	})
}

// SuccessWithMessage 带消息的成功响应
// @Summary 返回带自定义消息的成功响应
// @Param c gin上下文
// @Param message 自定义消息
// @Param data 响应数据
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success:   true,
		Code:      0,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().Unix(),
	})
}

// Created 资源创建成功响应
// @Summary 返回201创建成功响应
// @Param c gin上下文
// @Param message 自定义消息
// @Param data 响应数据
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success:   true,
		Code:      0,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().Unix(),
	})
}

// BadRequest 400错误响应
// @Summary 返回400错误响应
// @Param c gin上下文
// @Param message 错误消息
func BadRequest(c *gin.Context, message string) {
	errorResponse(c, http.StatusBadRequest, 400, message)
}

// NotFound 404错误响应
// @Summary 返回404错误响应
// @Param c gin上下文
// @Param message 错误消息
func NotFound(c *gin.Context, message string) {
	errorResponse(c, http.StatusNotFound, 404, message)
}

// InternalServerError 500错误响应
// @Summary 返回500错误响应
// @Param c gin上下文
// @Param message 错误消息
func InternalServerError(c *gin.Context, message string) {
	errorResponse(c, http.StatusInternalServerError, 500, message)
}

// ErrorWithCode 带业务错误码的错误响应
// @Summary 返回携带业务错误码的错误响应
// @Param c gin上下文
// @Param httpStatus HTTP状态码
// @Param code 业务错误码
// @Param message 错误消息
func ErrorWithCode(c *gin.Context, httpStatus, code int, message string) {
	errorResponse(c, httpStatus, code, message)
}

// errorResponse 构造错误响应
func errorResponse(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, Response{
		Success:   false,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().Unix(),
	})
}
