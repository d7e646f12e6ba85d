// Package router 定义HTTP路由
package router

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/filebox/config"
	"github.com/weiwangfds/filebox/internal/database"
	"github.com/weiwangfds/filebox/internal/handler"
	"github.com/weiwangfds/filebox/internal/middleware"
	"github.com/weiwangfds/filebox/internal/response"
	contactservice "github.com/weiwangfds/filebox/internal/service/contact"
	fileservice "github.com/weiwangfds/filebox/internal/service/file"
	mailservice "github.com/weiwangfds/filebox/internal/service/mail"
	storageservice "github.com/weiwangfds/filebox/internal/service/storage"
	"gorm.io/gorm"
)

// SPA入口文件路径，未匹配的非API路由全部回落到该文件
const spaIndexFile = "./web/index.html"

// Router 路由配置
type Router struct {
	engine *gin.Engine
	db     *gorm.DB
}

// NewRouter 创建路由实例
// 组装存储、邮件、文件和留言服务并注册全部路由
func NewRouter(loggerMiddleware *middleware.LoggerMiddleware, db *gorm.DB, cfg *config.Config) (*Router, error) {
	// 设置Gin模式
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// 初始化服务
	storageService, err := storageservice.NewService(
		cfg.Storage.Path,
		cfg.Storage.MaxUploadSize,
		cfg.Storage.PublicBase,
		storageservice.NewNameGenerator(),
	)
	if err != nil {
		return nil, err
	}

	mailSender := mailservice.NewSender(cfg.Mail)
	fileService := fileservice.NewService(db, storageService)
	contactService := contactservice.NewService(db, mailSender, cfg.Mail)

	// 初始化处理器
	fileHandler := handler.NewFileHandler(fileService)
	contactHandler := handler.NewContactHandler(contactService)

	// 使用中间件
	engine.Use(gin.Recovery())
	engine.Use(loggerMiddleware.RequestLogger())

	// 配置CORS
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// API路由组
	api := engine.Group("/api")
	{
		// 健康检查，数据库不可用时仍返回200，连接状态在载荷中上报
		api.GET("/health", func(c *gin.Context) {
			dbOK := database.Ping(db) == nil
			c.JSON(http.StatusOK, gin.H{
				"status":   "ok",
				"database": dbOK,
			})
		})

		// 文件管理接口
		api.POST("/upload", fileHandler.UploadFile)
		api.GET("/files", fileHandler.ListFiles)
		api.GET("/files/stats", fileHandler.GetFileStats)
		api.PUT("/files/:id", fileHandler.UpdateFile)
		api.DELETE("/files/:id", fileHandler.DeleteFile)

		// 留言接口
		api.POST("/contact", contactHandler.SubmitContact)
		api.GET("/contacts", contactHandler.ListContacts)
	}

	// 已上传文件静态服务
	engine.Static(cfg.Storage.PublicBase, cfg.Storage.Path)

	// SPA回落: 未匹配的API路由返回JSON 404，其余路由返回前端入口
	engine.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			response.NotFound(c, "接口不存在")
			return
		}
		c.File(spaIndexFile)
	})

	return &Router{
		engine: engine,
		db:     db,
	}, nil
}

// GetEngine 获取Gin引擎
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
