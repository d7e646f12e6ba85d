// 路由层集成测试
// 通过httptest走完整的HTTP请求链路，覆盖各接口的状态码和响应结构
package router

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/weiwangfds/filebox/config"
	"github.com/weiwangfds/filebox/internal/database"
	"github.com/weiwangfds/filebox/internal/middleware"
)

// setupRouter 创建测试路由
// 使用内存数据库、临时存储目录，邮件发送关闭
func setupRouter(t *testing.T) *Router {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "release"},
		Storage: config.StorageConfig{
			Path:          t.TempDir(),
			MaxUploadSize: 1024,
			PublicBase:    "/uploads",
		},
		Mail: config.MailConfig{Enabled: false},
	}

	r, err := NewRouter(middleware.NewLoggerMiddleware(), db, cfg)
	require.NoError(t, err)
	return r
}

// doRequest 执行一次测试请求并返回响应
func doRequest(r *Router, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.GetEngine().ServeHTTP(w, req)
	return w
}

// parseBody 解析JSON响应体
func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// uploadFile 构造multipart上传请求
func uploadFile(t *testing.T, r *Router, filename, content, description string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)

	if description != "" {
		require.NoError(t, mw.WriteField("description", description))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return doRequest(r, req)
}

// TestUploadEndpoint 测试上传接口
func TestUploadEndpoint(t *testing.T) {
	t.Run("上传成功返回文件信息", func(t *testing.T) {
		r := setupRouter(t)

		w := uploadFile(t, r, "a.txt", "0123456789", "")
		require.Equal(t, http.StatusCreated, w.Code)

		body := parseBody(t, w)
		assert.Equal(t, true, body["success"])

		file := body["data"].(map[string]interface{})["file"].(map[string]interface{})
		assert.Equal(t, "a.txt", file["originalName"])
		assert.Equal(t, float64(10), file["size"])
		url := file["url"].(string)
		assert.True(t, strings.HasPrefix(url, "/uploads/"))
		assert.True(t, strings.HasSuffix(url, ".txt"))
	})

	t.Run("上传的文件可通过URL取回", func(t *testing.T) {
		r := setupRouter(t)

		w := uploadFile(t, r, "a.txt", "0123456789", "")
		require.Equal(t, http.StatusCreated, w.Code)

		body := parseBody(t, w)
		url := body["data"].(map[string]interface{})["file"].(map[string]interface{})["url"].(string)

		fetch := doRequest(r, httptest.NewRequest(http.MethodGet, url, nil))
		require.Equal(t, http.StatusOK, fetch.Code)
		assert.Equal(t, "0123456789", fetch.Body.String())
	})

	t.Run("未附带文件返回400", func(t *testing.T) {
		r := setupRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(""))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
		w := doRequest(r, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("超限文件返回400且列表为空", func(t *testing.T) {
		r := setupRouter(t)

		w := uploadFile(t, r, "big.bin", strings.Repeat("x", 2048), "")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		list := doRequest(r, httptest.NewRequest(http.MethodGet, "/api/files", nil))
		require.Equal(t, http.StatusOK, list.Code)
		files := parseBody(t, list)["data"].(map[string]interface{})["files"].([]interface{})
		assert.Empty(t, files)
	})
}

// TestFileEndpoints 测试文件列表、更新和删除接口
func TestFileEndpoints(t *testing.T) {
	t.Run("列表包含已上传文件", func(t *testing.T) {
		r := setupRouter(t)

		require.Equal(t, http.StatusCreated, uploadFile(t, r, "a.txt", "hello", "备注").Code)

		w := doRequest(r, httptest.NewRequest(http.MethodGet, "/api/files", nil))
		require.Equal(t, http.StatusOK, w.Code)

		files := parseBody(t, w)["data"].(map[string]interface{})["files"].([]interface{})
		require.Len(t, files, 1)
		file := files[0].(map[string]interface{})
		assert.Equal(t, "a.txt", file["originalName"])
		assert.Equal(t, "备注", file["description"])
	})

	t.Run("更新不存在的文件返回404", func(t *testing.T) {
		r := setupRouter(t)

		payload := `{"originalName":"renamed.txt"}`
		req := httptest.NewRequest(http.MethodPut, "/api/files/no-such-id", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := doRequest(r, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("更新后列表反映新名称", func(t *testing.T) {
		r := setupRouter(t)

		up := uploadFile(t, r, "a.txt", "hello", "")
		require.Equal(t, http.StatusCreated, up.Code)
		fileID := parseBody(t, up)["data"].(map[string]interface{})["file"].(map[string]interface{})["id"].(string)

		payload := `{"originalName":"renamed.txt","description":"新描述"}`
		req := httptest.NewRequest(http.MethodPut, "/api/files/"+fileID, strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := doRequest(r, req)
		require.Equal(t, http.StatusOK, w.Code)

		file := parseBody(t, w)["data"].(map[string]interface{})["file"].(map[string]interface{})
		assert.Equal(t, "renamed.txt", file["originalName"])
		assert.Equal(t, "新描述", file["description"])
	})

	t.Run("删除后URL不可访问且列表为空", func(t *testing.T) {
		r := setupRouter(t)

		up := uploadFile(t, r, "a.txt", "hello", "")
		require.Equal(t, http.StatusCreated, up.Code)
		file := parseBody(t, up)["data"].(map[string]interface{})["file"].(map[string]interface{})
		fileID := file["id"].(string)
		url := file["url"].(string)

		del := doRequest(r, httptest.NewRequest(http.MethodDelete, "/api/files/"+fileID, nil))
		require.Equal(t, http.StatusOK, del.Code)

		fetch := doRequest(r, httptest.NewRequest(http.MethodGet, url, nil))
		assert.Equal(t, http.StatusNotFound, fetch.Code)

		list := doRequest(r, httptest.NewRequest(http.MethodGet, "/api/files", nil))
		files := parseBody(t, list)["data"].(map[string]interface{})["files"].([]interface{})
		assert.Empty(t, files)

		// 重复删除返回404
		again := doRequest(r, httptest.NewRequest(http.MethodDelete, "/api/files/"+fileID, nil))
		assert.Equal(t, http.StatusNotFound, again.Code)
	})
}

// TestContactEndpoints 测试留言接口
func TestContactEndpoints(t *testing.T) {
	t.Run("提交成功", func(t *testing.T) {
		r := setupRouter(t)

		payload := `{"name":"A","email":"a@x.com","message":"hi"}`
		req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := doRequest(r, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, parseBody(t, w)["success"])
	})

	t.Run("必填字段缺失返回400且不保存", func(t *testing.T) {
		r := setupRouter(t)

		payload := `{"name":"A","email":"a@x.com"}`
		req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := doRequest(r, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		list := doRequest(r, httptest.NewRequest(http.MethodGet, "/api/contacts", nil))
		require.Equal(t, http.StatusOK, list.Code)
		contacts := parseBody(t, list)["data"].(map[string]interface{})["contacts"].([]interface{})
		assert.Empty(t, contacts)
	})

	t.Run("列表返回已提交留言", func(t *testing.T) {
		r := setupRouter(t)

		payload := `{"name":"A","email":"a@x.com","message":"hi"}`
		req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		require.Equal(t, http.StatusOK, doRequest(r, req).Code)

		list := doRequest(r, httptest.NewRequest(http.MethodGet, "/api/contacts", nil))
		require.Equal(t, http.StatusOK, list.Code)

		contacts := parseBody(t, list)["data"].(map[string]interface{})["contacts"].([]interface{})
		require.Len(t, contacts, 1)
		contact := contacts[0].(map[string]interface{})
		assert.Equal(t, "A", contact["name"])
		assert.Equal(t, "unread", contact["status"])
		assert.Equal(t, "", contact["subject"])
	})
}

// TestHealthEndpoint 测试健康检查接口
func TestHealthEndpoint(t *testing.T) {
	r := setupRouter(t)

	w := doRequest(r, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := parseBody(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["database"])
}

// TestNoRoute 测试未匹配的API路由
func TestNoRoute(t *testing.T) {
	r := setupRouter(t)

	w := doRequest(r, httptest.NewRequest(http.MethodGet, "/api/no-such-endpoint", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, parseBody(t, w)["success"])
}
