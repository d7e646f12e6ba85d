// 文件服务的单元测试
// 使用内存SQLite和临时目录存储，覆盖上传、列表、更新、删除流程
package file

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/weiwangfds/filebox/internal/database"
	apperrors "github.com/weiwangfds/filebox/internal/errors"
	"github.com/weiwangfds/filebox/internal/service/storage"
)

// setupService 创建基于内存数据库和临时目录的文件服务
func setupService(t *testing.T) (Service, storage.Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	storageService, err := storage.NewService(t.TempDir(), 1024, "/uploads", storage.NewNameGenerator())
	require.NoError(t, err)

	return NewService(db, storageService), storageService, db
}

// TestUpload 测试文件上传
func TestUpload(t *testing.T) {
	t.Run("上传成功产生一条记录", func(t *testing.T) {
		svc, storageService, db := setupService(t)

		record, err := svc.Upload("a.txt", "text/plain", "", strings.NewReader("0123456789"))
		require.NoError(t, err)

		assert.Equal(t, "a.txt", record.OriginalName)
		assert.Equal(t, int64(10), record.FileSize)
		assert.Equal(t, "text/plain", record.MimeType)
		assert.Empty(t, record.Description)
		assert.True(t, strings.HasSuffix(record.StoredName, ".txt"))
		assert.NotEmpty(t, record.FileID)
		assert.True(t, storageService.Exists(record.StoredName))

		var count int64
		require.NoError(t, db.Model(&database.Upload{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("超限上传不产生记录", func(t *testing.T) {
		svc, _, db := setupService(t)

		big := strings.Repeat("x", 2048)
		_, err := svc.Upload("big.bin", "application/octet-stream", "", strings.NewReader(big))
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrFileSizeTooLarge))

		var count int64
		require.NoError(t, db.Model(&database.Upload{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("带描述上传", func(t *testing.T) {
		svc, _, _ := setupService(t)

		record, err := svc.Upload("b.txt", "text/plain", "测试描述", strings.NewReader("data"))
		require.NoError(t, err)
		assert.Equal(t, "测试描述", record.Description)
	})
}

// TestList 测试文件列表排序
func TestList(t *testing.T) {
	t.Run("按创建时间倒序", func(t *testing.T) {
		svc, _, db := setupService(t)

		first, err := svc.Upload("first.txt", "text/plain", "", strings.NewReader("1"))
		require.NoError(t, err)
		second, err := svc.Upload("second.txt", "text/plain", "", strings.NewReader("2"))
		require.NoError(t, err)

		// 保证创建时间严格递增
		require.NoError(t, db.Model(&database.Upload{}).Where("file_id = ?", second.FileID).
			Update("created_at", first.CreatedAt.Add(time.Second)).Error)

		records, err := svc.List()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "second.txt", records[0].OriginalName)
		assert.Equal(t, "first.txt", records[1].OriginalName)
	})

	t.Run("创建时间相同时按插入顺序稳定排列", func(t *testing.T) {
		svc, _, db := setupService(t)

		now := time.Now()
		for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
			record, err := svc.Upload(name, "text/plain", "", strings.NewReader("x"))
			require.NoError(t, err)
			require.NoError(t, db.Model(&database.Upload{}).Where("file_id = ?", record.FileID).
				Update("created_at", now).Error)
		}

		records, err := svc.List()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "c.txt", records[0].OriginalName)
		assert.Equal(t, "b.txt", records[1].OriginalName)
		assert.Equal(t, "a.txt", records[2].OriginalName)
	})
}

// TestUpdate 测试文件元数据更新
func TestUpdate(t *testing.T) {
	t.Run("仅更新指定字段", func(t *testing.T) {
		svc, _, _ := setupService(t)

		record, err := svc.Upload("a.txt", "text/plain", "原描述", strings.NewReader("x"))
		require.NoError(t, err)

		newName := "renamed.txt"
		updated, err := svc.Update(record.FileID, UpdateRequest{OriginalName: &newName})
		require.NoError(t, err)
		assert.Equal(t, "renamed.txt", updated.OriginalName)
		assert.Equal(t, "原描述", updated.Description)

		newDesc := "新描述"
		updated, err = svc.Update(record.FileID, UpdateRequest{Description: &newDesc})
		require.NoError(t, err)
		assert.Equal(t, "renamed.txt", updated.OriginalName)
		assert.Equal(t, "新描述", updated.Description)
	})

	t.Run("更新不存在的文件返回未找到", func(t *testing.T) {
		svc, _, _ := setupService(t)

		newName := "x.txt"
		_, err := svc.Update("no-such-id", UpdateRequest{OriginalName: &newName})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrFileNotFound))
	})
}

// TestDelete 测试文件删除
func TestDelete(t *testing.T) {
	t.Run("删除后落盘文件和记录都不存在", func(t *testing.T) {
		svc, storageService, _ := setupService(t)

		record, err := svc.Upload("a.txt", "text/plain", "", strings.NewReader("x"))
		require.NoError(t, err)

		require.NoError(t, svc.Delete(record.FileID))
		assert.False(t, storageService.Exists(record.StoredName))

		records, err := svc.List()
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("重复删除返回未找到", func(t *testing.T) {
		svc, _, _ := setupService(t)

		record, err := svc.Upload("a.txt", "text/plain", "", strings.NewReader("x"))
		require.NoError(t, err)

		require.NoError(t, svc.Delete(record.FileID))

		err = svc.Delete(record.FileID)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrFileNotFound))
	})

	t.Run("落盘文件已不存在时仍删除记录", func(t *testing.T) {
		svc, storageService, _ := setupService(t)

		record, err := svc.Upload("a.txt", "text/plain", "", strings.NewReader("x"))
		require.NoError(t, err)

		// 模拟外部移除落盘文件
		require.NoError(t, storageService.Delete(record.StoredName))

		require.NoError(t, svc.Delete(record.FileID))

		records, err := svc.List()
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

// TestStats 测试文件统计
func TestStats(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.Upload("a.txt", "text/plain", "", strings.NewReader("12345"))
	require.NoError(t, err)
	_, err = svc.Upload("b.jpg", "image/jpeg", "", strings.NewReader("123"))
	require.NoError(t, err)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats["total_files"])
	assert.Equal(t, int64(8), stats["total_size"])
}
