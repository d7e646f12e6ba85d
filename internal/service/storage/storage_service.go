// Package storage 提供本地文件存储服务
// 负责将上传的字节流落盘、生成唯一落盘文件名并强制大小限制
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	apperrors "github.com/weiwangfds/filebox/internal/errors"
	"github.com/weiwangfds/filebox/internal/logger"
)

// Service 文件存储服务接口
// 只管理落盘字节，不感知元数据记录，两者的同步由上层服务负责
type Service interface {
	// Store 将数据流写入存储目录
	// 参数:
	//   originalName - 原始文件名，仅用于提取扩展名
	//   r - 文件数据流
	// 返回:
	//   string - 生成的落盘文件名
	//   int64 - 写入的字节数
	//   error - 错误信息，达到或超过大小限制时错误码为ErrFileSizeTooLarge
	// 写入通过临时文件完成，失败或超限不会留下部分写入的文件
	Store(originalName string, r io.Reader) (string, int64, error)

	// Delete 删除落盘文件
	// 文件已不存在时视为删除成功，并发删除同名文件是安全的
	Delete(storedName string) error

	// Exists 检查落盘文件是否存在
	Exists(storedName string) bool

	// PublicURL 返回落盘文件的对外访问路径
	PublicURL(storedName string) string

	// MaxSize 返回单文件大小上限（字节）
	MaxSize() int64
}

// localStorage 基于本地文件系统的存储服务实现
type localStorage struct {
	path       string        // 存储目录
	maxSize    int64         // 单文件大小上限
	publicBase string        // 对外访问路径前缀
	namegen    NameGenerator // 落盘文件名生成器
}

// NewService 创建本地存储服务实例
// 参数:
//
//	path - 存储目录，不存在时自动创建
//	maxSize - 单文件大小上限（字节）
//	publicBase - 对外访问路径前缀
//	namegen - 落盘文件名生成器
//
// 返回:
//
//	Service - 存储服务接口实例
//	error - 存储目录创建失败时的错误
func NewService(path string, maxSize int64, publicBase string, namegen NameGenerator) (Service, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", path, err)
	}

	logger.Infof("存储服务初始化完成，目录: %s，单文件上限: %d 字节", path, maxSize)

	return &localStorage{
		path:       path,
		maxSize:    maxSize,
		publicBase: publicBase,
		namegen:    namegen,
	}, nil
}

// Store 将数据流写入存储目录
// 先写入同目录下的临时文件再重命名提交，保证落盘文件要么完整存在要么不存在
func (s *localStorage) Store(originalName string, r io.Reader) (string, int64, error) {
	ext := filepath.Ext(originalName)
	storedName := s.namegen.Next(ext)
	targetPath := filepath.Join(s.path, storedName)

	tempFile, err := os.CreateTemp(s.path, ".upload_*")
	if err != nil {
		logger.Errorf("创建临时文件失败: %v", err)
		return "", 0, apperrors.WrapByCode(apperrors.ErrFileWriteFailed, err)
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath)

	// 写入量达到上限即拒绝，无需区分恰好等于和超过
	size, err := io.Copy(tempFile, io.LimitReader(r, s.maxSize))
	if err != nil {
		tempFile.Close()
		logger.Errorf("写入文件数据失败 %s: %v", originalName, err)
		return "", 0, apperrors.WrapByCode(apperrors.ErrFileWriteFailed, err)
	}

	if err := tempFile.Close(); err != nil {
		return "", 0, apperrors.WrapByCode(apperrors.ErrFileWriteFailed, err)
	}

	if size >= s.maxSize {
		logger.Warnf("文件 %s 超过大小上限 %d 字节，已拒绝", originalName, s.maxSize)
		return "", 0, apperrors.NewByCode(apperrors.ErrFileSizeTooLarge)
	}

	if err := os.Rename(tempPath, targetPath); err != nil {
		logger.Errorf("提交文件失败 %s -> %s: %v", tempPath, targetPath, err)
		return "", 0, apperrors.WrapByCode(apperrors.ErrFileWriteFailed, err)
	}

	logger.Infof("文件已落盘: %s (%d 字节)", storedName, size)
	return storedName, size, nil
}

// Delete 删除落盘文件
// 文件已不存在时视为成功
func (s *localStorage) Delete(storedName string) error {
	targetPath := filepath.Join(s.path, storedName)

	if err := os.Remove(targetPath); err != nil {
		if os.IsNotExist(err) {
			logger.Warnf("落盘文件 %s 已不存在，跳过删除", storedName)
			return nil
		}
		logger.Errorf("删除落盘文件失败 %s: %v", storedName, err)
		return apperrors.WrapByCode(apperrors.ErrFileDeleteFailed, err)
	}

	logger.Infof("落盘文件已删除: %s", storedName)
	return nil
}

// Exists 检查落盘文件是否存在
func (s *localStorage) Exists(storedName string) bool {
	_, err := os.Stat(filepath.Join(s.path, storedName))
	return err == nil
}

// PublicURL 返回落盘文件的对外访问路径
func (s *localStorage) PublicURL(storedName string) string {
	return s.publicBase + "/" + storedName
}

// MaxSize 返回单文件大小上限
func (s *localStorage) MaxSize() int64 {
	return s.maxSize
}
