// Package router 注册HTTP路由
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/library-inventory/docs" // Swagger文档(swag init生成)
	"github.com/xiebiao/library-inventory/internal/infrastructure/config"
	"github.com/xiebiao/library-inventory/internal/interface/http/handler"
	"github.com/xiebiao/library-inventory/internal/interface/http/middleware"
	"github.com/xiebiao/library-inventory/pkg/logger"
	"github.com/xiebiao/library-inventory/pkg/response"
)

// New 创建并配置Gin引擎
//
// 中间件顺序：Recovery → RequestLogger → Tracing → Metrics
// 所有接口都返回HTTP 200，业务结果看响应体的code字段
func New(
	cfg *config.Config,
	log *logger.Logger,
	bookHandler *handler.BookHandler,
	locationHandler *handler.LocationHandler,
	scanHandler *handler.ScanHandler,
) *gin.Engine {
	gin.SetMode(ginMode(cfg.Server.Mode))

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(log),
		middleware.Tracing(),
		middleware.Metrics(),
	)

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus抓取端点
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档: http://localhost:8080/swagger/index.html
	if cfg.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	{
		books := v1.Group("/books")
		{
			books.POST("", bookHandler.AddBook)
			books.GET("", bookHandler.ListBooks)
			books.GET("/:barcode", bookHandler.GetBook)
			books.PUT("/:barcode", bookHandler.ModifyBook)
			books.DELETE("/:barcode", bookHandler.DeleteBook)
			books.POST("/:barcode/lend", bookHandler.LendBook)
		}

		locations := v1.Group("/locations")
		{
			locations.POST("/rack", locationHandler.RackBook)
			locations.GET("/assignments", locationHandler.ListAssignments)
		}

		scan := v1.Group("/scan")
		{
			scan.GET("", scanHandler.Scan)
			scan.POST("/image", scanHandler.ScanImage)
		}
	}

	return r
}

func ginMode(mode string) string {
	switch mode {
	case gin.ReleaseMode, gin.TestMode:
		return mode
	default:
		return gin.DebugMode
	}
}
