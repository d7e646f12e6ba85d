// Package errors 定义应用程序统一错误类型和错误码
package errors

import (
	"fmt"

	"github.com/weiwangfds/filebox/internal/i18n"
)

// ErrorCode 错误码类型
type ErrorCode int

// 定义错误码常量
const (
	// 通用错误码 (1000-1999)
	ErrSuccess        ErrorCode = 0    // 成功
	ErrInternalServer ErrorCode = 1000 // 服务器内部错误
	ErrInvalidParams  ErrorCode = 1001 // 参数错误
	ErrNotFound       ErrorCode = 1004 // 资源未找到

	// 文件相关错误码 (2000-2999)
	ErrFileNotFound     ErrorCode = 2000 // 文件未找到
	ErrFileMissing      ErrorCode = 2001 // 请求未附带文件
	ErrFileUploadFailed ErrorCode = 2002 // 文件上传失败
	ErrFileDeleteFailed ErrorCode = 2003 // 文件删除失败
	ErrFileUpdateFailed ErrorCode = 2004 // 文件更新失败
	ErrFileReadFailed   ErrorCode = 2005 // 文件读取失败
	ErrFileWriteFailed  ErrorCode = 2006 // 文件写入失败
	ErrFileSizeTooLarge ErrorCode = 2007 // 文件大小超限

	// 留言与邮件相关错误码 (3000-3999)
	ErrContactMissingFields ErrorCode = 3000 // 留言必填字段缺失
	ErrContactSaveFailed    ErrorCode = 3001 // 留言保存失败
	ErrContactListFailed    ErrorCode = 3002 // 留言列表获取失败
	ErrMailSendFailed       ErrorCode = 3100 // 邮件发送失败
	ErrMailRelayFailed      ErrorCode = 3101 // 邮件服务器连接失败
	ErrMailEnvelopeBad      ErrorCode = 3102 // 邮件内容无效

	// 数据库相关错误码 (4000-4999)
	ErrDatabaseQuery  ErrorCode = 4001 // 数据库查询错误
	ErrDatabaseInsert ErrorCode = 4002 // 数据库插入错误
	ErrDatabaseUpdate ErrorCode = 4003 // 数据库更新错误
	ErrDatabaseDelete ErrorCode = 4004 // 数据库删除错误
	ErrRecordNotFound ErrorCode = 4006 // 记录未找到
)

// AppError 应用错误结构体
// @Description 应用程序统一错误格式
type AppError struct {
	// 错误码
	Code ErrorCode `json:"code"`
	// 错误消息
	Message string `json:"message"`
	// 详细错误信息
	Details string `json:"details,omitempty"`
	// 原始错误
	OriginalError error `json:"-"`
}

// Error 实现error接口
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%d] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// WithDetails 添加详细错误信息
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewByCode 根据错误码创建应用错误，消息取自i18n语言包
func NewByCode(code ErrorCode) *AppError {
	return New(code, GetErrorMessage(code))
}

// Wrap 包装原始错误
func Wrap(code ErrorCode, message string, err error) *AppError {
	appErr := &AppError{
		Code:          code,
		Message:       message,
		OriginalError: err,
	}
	if err != nil {
		appErr.Details = err.Error()
	}
	return appErr
}

// WrapByCode 根据错误码包装原始错误，消息取自i18n语言包
func WrapByCode(code ErrorCode, err error) *AppError {
	return Wrap(code, GetErrorMessage(code), err)
}

// IsAppError 判断是否为应用错误
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError 获取应用错误
func GetAppError(err error) (*AppError, bool) {
	appErr, ok := err.(*AppError)
	return appErr, ok
}

// IsCode 判断错误是否携带指定错误码
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := GetAppError(err)
	return ok && appErr.Code == code
}

// 错误码到i18n键的映射
var errorCodeToKeyMap = map[ErrorCode]string{
	ErrSuccess:        "success",
	ErrInternalServer: "internal_server_error",
	ErrInvalidParams:  "invalid_params",
	ErrNotFound:       "not_found",

	ErrFileNotFound:     "file_not_found",
	ErrFileMissing:      "file_missing",
	ErrFileUploadFailed: "file_upload_failed",
	ErrFileDeleteFailed: "file_delete_failed",
	ErrFileUpdateFailed: "file_update_failed",
	ErrFileReadFailed:   "file_read_failed",
	ErrFileWriteFailed:  "file_write_failed",
	ErrFileSizeTooLarge: "file_size_too_large",

	ErrContactMissingFields: "contact_missing_fields",
	ErrContactSaveFailed:    "contact_save_failed",
	ErrContactListFailed:    "contact_list_failed",
	ErrMailSendFailed:       "mail_send_failed",
	ErrMailRelayFailed:      "mail_relay_failed",
	ErrMailEnvelopeBad:      "mail_envelope_bad",

	ErrDatabaseQuery:  "database_query",
	ErrDatabaseInsert: "database_insert",
	ErrDatabaseUpdate: "database_update",
	ErrDatabaseDelete: "database_delete",
	ErrRecordNotFound: "record_not_found",
}

// GetErrorMessage 根据错误码获取错误消息（使用默认语言）
func GetErrorMessage(code ErrorCode) string {
	return GetErrorMessageWithLang(code, i18n.GetInstance().GetDefaultLanguage())
}

// GetErrorMessageWithLang 根据错误码和语言获取错误消息
func GetErrorMessageWithLang(code ErrorCode, lang string) string {
	key, exists := errorCodeToKeyMap[code]
	if !exists {
		key = "unknown_error"
	}
	return i18n.GetInstance().Translate(key, lang)
}
