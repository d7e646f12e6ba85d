package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NameGenerator 落盘文件名生成器接口
// 生成的名字需要在并发上传下保持唯一，测试中可替换为确定性实现
type NameGenerator interface {
	// Next 生成一个新的落盘文件名
	// 参数:
	//   ext - 原始文件扩展名（含点号，可为空）
	// 返回:
	//   string - 唯一落盘文件名
	Next(ext string) string
}

// timestampNameGenerator 默认文件名生成器
// 组合毫秒时间戳和随机串，同一时刻到达的上传也不会冲突
type timestampNameGenerator struct{}

// NewNameGenerator 创建默认文件名生成器
func NewNameGenerator() NameGenerator {
	return &timestampNameGenerator{}
}

// Next 生成落盘文件名: <毫秒时间戳>-<随机串><扩展名>
func (g *timestampNameGenerator) Next(ext string) string {
	random := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), random, strings.ToLower(ext))
}
