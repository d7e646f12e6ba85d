// Package handler 提供HTTP请求处理器
// 负责请求解析、流程编排调用和错误到HTTP状态码的映射
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/weiwangfds/filebox/internal/errors"
	"github.com/weiwangfds/filebox/internal/response"
)

// respondError 将应用错误映射为HTTP响应
// 校验类错误返回400，未找到类错误返回404，其余按依赖服务失败返回500
// 对外只暴露通用错误消息，详细信息仅记录在服务端日志
func respondError(c *gin.Context, err error, fallback apperrors.ErrorCode) {
	appErr, ok := apperrors.GetAppError(err)
	if !ok {
		appErr = apperrors.NewByCode(fallback)
	}

	switch appErr.Code {
	case apperrors.ErrInvalidParams,
		apperrors.ErrFileMissing,
		apperrors.ErrFileSizeTooLarge,
		apperrors.ErrContactMissingFields:
		response.ErrorWithCode(c, http.StatusBadRequest, int(appErr.Code), appErr.Message)
	case apperrors.ErrNotFound,
		apperrors.ErrFileNotFound,
		apperrors.ErrRecordNotFound:
		response.ErrorWithCode(c, http.StatusNotFound, int(appErr.Code), appErr.Message)
	default:
		response.ErrorWithCode(c, http.StatusInternalServerError, int(appErr.Code), appErr.Message)
	}
}
