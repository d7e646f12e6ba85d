// Package i18n 提供国际化支持
// 负责管理应用程序的语言包和翻译功能
package i18n

import (
	"sync"

	"github.com/go-playground/locales/en_US"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/weiwangfds/filebox/internal/logger"
)

// 支持的语言
const (
	LangZhCN = "zh-CN"
	LangEnUS = "en-US"
)

var (
	instance *I18n
	once     sync.Once

	// 语言包存储
	translations = map[string]map[string]string{
		LangZhCN: {
			"success":               "成功",
			"internal_server_error": "服务器内部错误",
			"invalid_params":        "参数错误",
			"not_found":             "资源未找到",

			"file_not_found":      "文件未找到",
			"file_missing":        "未选择文件或文件无效",
			"file_upload_failed":  "文件上传失败",
			"file_delete_failed":  "文件删除失败",
			"file_update_failed":  "文件更新失败",
			"file_read_failed":    "文件读取失败",
			"file_write_failed":   "文件写入失败",
			"file_size_too_large": "文件大小超限",

			"contact_missing_fields": "姓名、邮箱和留言内容不能为空",
			"contact_save_failed":    "留言保存失败",
			"contact_list_failed":    "留言列表获取失败",

			"mail_send_failed":    "邮件发送失败",
			"mail_relay_failed":   "邮件服务器连接失败",
			"mail_envelope_bad":   "邮件内容无效",

			"database_query":   "数据库查询错误",
			"database_insert":  "数据库插入错误",
			"database_update":  "数据库更新错误",
			"database_delete":  "数据库删除错误",
			"record_not_found": "记录未找到",

			"unknown_error": "未知错误",
		},
		LangEnUS: {
			"success":               "Success",
			"internal_server_error": "Internal Server Error",
			"invalid_params":        "Invalid Parameters",
			"not_found":             "Resource Not Found",

			"file_not_found":      "File Not Found",
			"file_missing":        "No File Attached",
			"file_upload_failed":  "File Upload Failed",
			"file_delete_failed":  "File Delete Failed",
			"file_update_failed":  "File Update Failed",
			"file_read_failed":    "File Read Failed",
			"file_write_failed":   "File Write Failed",
			"file_size_too_large": "File Size Too Large",

			"contact_missing_fields": "Name, Email And Message Are Required",
			"contact_save_failed":    "Failed To Save Contact Message",
			"contact_list_failed":    "Failed To List Contact Messages",

			"mail_send_failed":    "Mail Send Failed",
			"mail_relay_failed":   "Mail Relay Connection Failed",
			"mail_envelope_bad":   "Invalid Mail Envelope",

			"database_query":   "Database Query Error",
			"database_insert":  "Database Insert Error",
			"database_update":  "Database Update Error",
			"database_delete":  "Database Delete Error",
			"record_not_found": "Record Not Found",

			"unknown_error": "Unknown Error",
		},
	}
)

// I18n 国际化管理器
type I18n struct {
	translators map[string]ut.Translator
	defaultLang string
}

// GetInstance 获取I18n单例
func GetInstance() *I18n {
	once.Do(func() {
		instance = &I18n{
			translators: make(map[string]ut.Translator),
			defaultLang: LangZhCN,
		}
		instance.initTranslators()
	})
	return instance
}

// initTranslators 初始化翻译器
func (i *I18n) initTranslators() {
	zhCN := zh.New()
	enUS := en_US.New()
	uni := ut.New(zhCN, enUS, zhCN)

	// 注册支持的语言 - 使用locale库的标识符
	langMappings := map[string]string{
		LangZhCN: "zh",
		LangEnUS: "en_US",
	}

	for ourLang, localeLang := range langMappings {
		trans, found := uni.GetTranslator(localeLang)
		if !found {
			logger.Errorf("初始化翻译器失败 for language %s (locale: %s): translator not found", ourLang, localeLang)
			continue
		}
		i.translators[ourLang] = trans
	}

	logger.Info("国际化翻译器初始化完成")
}

// Translate 根据键和语言获取翻译
func (i *I18n) Translate(key, lang string) string {
	if translation, found := translations[lang][key]; found {
		return translation
	}

	// 如果当前语言没有找到，尝试在默认语言中查找
	if lang != i.defaultLang {
		if translation, found := translations[i.defaultLang][key]; found {
			return translation
		}
	}

	logger.Warnf("未找到翻译: %s, 语言: %s", key, lang)
	return key
}

// SetDefaultLanguage 设置默认语言
func (i *I18n) SetDefaultLanguage(lang string) {
	i.defaultLang = lang
}

// GetDefaultLanguage 获取默认语言
func (i *I18n) GetDefaultLanguage() string {
	return i.defaultLang
}

// IsSupportedLanguage 检查语言是否支持
func (i *I18n) IsSupportedLanguage(lang string) bool {
	_, exists := i.translators[lang]
	return exists
}
