/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-10-17 10:35:28
 * @LastEditTime: 2025-08-27 19:02:45
 * @LastEditors: 安知鱼
 */
// anheyu-comment-api/cmd/server/app.go
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/anheyu-comment-api/internal/app/middleware"
	"github.com/anzhiyu-c/anheyu-comment-api/internal/app/task"
	"github.com/anzhiyu-c/anheyu-comment-api/internal/infra/persistence/database"
	"github.com/anzhiyu-c/anheyu-comment-api/internal/infra/persistence/sqlrepo"
	"github.com/anzhiyu-c/anheyu-comment-api/internal/infra/router"
	"github.com/anzhiyu-c/anheyu-comment-api/internal/pkg/utils"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/config"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/domain/model"
	comment_handler "github.com/anzhiyu-c/anheyu-comment-api/pkg/handler/comment"
	admission_service "github.com/anzhiyu-c/anheyu-comment-api/pkg/service/admission"
	comment_service "github.com/anzhiyu-c/anheyu-comment-api/pkg/service/comment"
	parser_service "github.com/anzhiyu-c/anheyu-comment-api/pkg/service/parser"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/service/setting"
	"github.com/anzhiyu-c/anheyu-comment-api/pkg/service/utility"
)

// App 结构体，用于封装应用的所有核心组件
type App struct {
	cfg        *config.Config
	engine     *gin.Engine
	taskBroker *task.Broker
	sqlDB      *sql.DB
	settingSvc setting.SettingService
	mw         *middleware.Middleware
}

// NewApp 是应用的构造函数，它执行所有的初始化和依赖注入工作
func NewApp() (*App, func(), error) {
	// --- Phase 1: 加载外部配置 ---
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}

	// --- Phase 2: 初始化基础设施 ---
	sqlDB, err := database.NewSQLDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("创建数据库连接池失败: %w", err)
	}

	cleanup := func() {
		log.Println("执行清理操作：关闭数据库连接...")
		sqlDB.Close()
	}

	dbType := database.Dialect(cfg)
	migrator := database.NewMigrationService(sqlDB, dbType)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		return nil, cleanup, fmt.Errorf("数据库迁移失败: %w", err)
	}
	sqlxDB := database.NewSqlxDB(sqlDB, cfg)

	// 尝试连接 Redis（如果失败，将自动降级到内存缓存）
	redisClient, err := database.NewRedisClient(context.Background(), cfg)
	if err != nil {
		return nil, cleanup, fmt.Errorf("redis 初始化失败: %w", err)
	}
	if redisClient != nil {
		prev := cleanup
		cleanup = func() {
			prev()
			log.Println("关闭 Redis 连接...")
			redisClient.Close()
		}
	}
	cacheSvc := utility.NewCacheServiceWithFallback(redisClient)

	// --- Phase 3: 初始化数据仓库层 ---
	settingRepo := sqlrepo.NewSettingRepository(sqlxDB)
	userRepo := sqlrepo.NewUserRepository(sqlxDB)
	postRepo := sqlrepo.NewPostRepository(sqlxDB)
	commentRepo := sqlrepo.NewCommentRepository(sqlxDB)

	// --- Phase 4: 初始化业务逻辑层 ---
	settingSvc := setting.NewSettingService(settingRepo)
	if err := settingSvc.LoadAllSettings(context.Background()); err != nil {
		return nil, cleanup, fmt.Errorf("从数据库加载站点配置失败: %w", err)
	}

	parserSvc := parser_service.NewService()
	admissionSvc := admission_service.NewService(commentRepo, settingSvc, cacheSvc)
	taskBroker := task.NewBroker(commentRepo, settingSvc)

	hooks := comment_service.Hooks{
		PostInsert: []comment_service.PostInsertFunc{
			func(ctx context.Context, created *model.Comment) {
				taskBroker.DispatchCommentNotification(created.ID)
			},
		},
	}

	commentSvc := comment_service.NewService(postRepo, commentRepo, userRepo, settingSvc, admissionSvc, hooks)
	builder := comment_service.NewBuilder(settingSvc, parserSvc, commentRepo, nil)

	// --- Phase 5: 初始化表现层 ---
	jwtSecret := cfg.GetString(config.KeyJWTSecret)
	if jwtSecret == "" {
		jwtSecret, err = utils.GenerateRandomString(32)
		if err != nil {
			return nil, cleanup, fmt.Errorf("生成 JWT 密钥失败: %w", err)
		}
		log.Println("⚠️ 警告: 未配置 JWT 密钥，已生成随机密钥。重启后已签发的令牌将全部失效。")
	}
	mw := middleware.NewMiddleware([]byte(jwtSecret))
	commentHandler := comment_handler.NewHandler(commentSvc, builder)
	appRouter := router.NewRouter(commentHandler, mw, settingSvc)

	// --- Phase 6: 配置 Gin 引擎 ---
	if cfg.GetBool(config.KeyServerDebug) {
		gin.SetMode(gin.DebugMode)
		log.Println("运行模式: Debug (Gin 将打印详细路由日志)")
	} else {
		gin.SetMode(gin.ReleaseMode)
		log.Println("运行模式: Release (Gin 启动日志已禁用)")
	}

	engine := gin.Default()
	if err := engine.SetTrustedProxies([]string{"127.0.0.1", "::1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}); err != nil {
		return nil, cleanup, fmt.Errorf("设置信任代理失败: %w", err)
	}
	engine.ForwardedByClientIP = true
	engine.Use(middleware.Cors())
	appRouter.Setup(engine)

	app := &App{
		cfg:        cfg,
		engine:     engine,
		taskBroker: taskBroker,
		sqlDB:      sqlDB,
		settingSvc: settingSvc,
		mw:         mw,
	}

	return app, cleanup, nil
}

func (a *App) Config() *config.Config {
	return a.cfg
}

func (a *App) Engine() *gin.Engine {
	return a.engine
}

func (a *App) SettingService() setting.SettingService {
	return a.settingSvc
}

func (a *App) Middleware() *middleware.Middleware {
	return a.mw
}

func (a *App) DB() *sql.DB {
	return a.sqlDB
}

func (a *App) Run() error {
	a.taskBroker.RegisterCronJobs()
	a.taskBroker.Start()
	port := a.cfg.GetString(config.KeyServerPort)
	if port == "" {
		port = "8091"
	}
	fmt.Printf("应用程序启动成功，正在监听端口: %s\n", port)

	return a.engine.Run(":" + port)
}

func (a *App) Stop() {
	if a.taskBroker != nil {
		a.taskBroker.Stop()
		log.Println("任务调度器已停止。")
	}
}
