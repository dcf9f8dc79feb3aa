package main

import (
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"

	"github.com/Gopher0727/StatusBoard/config"
	"github.com/Gopher0727/StatusBoard/internal/handlers"
	"github.com/Gopher0727/StatusBoard/internal/pkg/groq"
	"github.com/Gopher0727/StatusBoard/internal/repositories"
	"github.com/Gopher0727/StatusBoard/internal/routers"
	"github.com/Gopher0727/StatusBoard/internal/services"
	"github.com/Gopher0727/StatusBoard/internal/storage"
	"github.com/Gopher0727/StatusBoard/utils/ratelimit"

	logger "github.com/Gopher0727/StatusBoard/middleware/log"
)

func main() {
	cfg, err := config.LoadConfig("./config.toml")
	if err != nil {
		log.Fatalf("配置初始化失败: %v", err)
	}

	// 初始化日志
	zlog, err := logger.NewLogger(&cfg.Logging)
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	defer zlog.Sync()

	// 初始化 Redis（持久化后端或限流需要时）
	var redisClient *redis.Client
	if cfg.Redis.Enabled || cfg.Storage.Backend == "redis" {
		redisClient, err = storage.InitRedis(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize, cfg.Redis.MinIdleConns)
		if err != nil {
			log.Fatalf("redis 初始化失败: %v", err)
		}
	}

	// 选择持久化后端
	var store storage.Store
	switch cfg.Storage.Backend {
	case "redis":
		store = storage.NewRedisStore(redisClient)
	case "postgres":
		dsn := storage.BuildDSN(cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.DBName)
		db, err := storage.InitPostgres(dsn, cfg.Postgres.MaxIdleConns, cfg.Postgres.MaxOpenConns)
		if err != nil {
			log.Fatalf("postgres 初始化失败: %v", err)
		}
		store = storage.NewPostgresStore(db)
	default:
		store, err = storage.NewFileStore(cfg.Storage.Path)
		if err != nil {
			log.Fatalf("文件存储初始化失败: %v", err)
		}
	}

	// 初始化仓储层
	guildRepo := repositories.NewGuildRepository(store, zlog)
	settingsRepo := repositories.NewSettingsRepository(store, zlog)

	// 初始化服务层
	statusService := services.NewStatusService(settingsRepo)
	guildService := services.NewGuildService(guildRepo, statusService)
	leaderboardService := services.NewLeaderboardService(guildRepo)

	groqClient := groq.NewClient(cfg.Groq.APIKey, cfg.Groq.Model, cfg.Groq.BaseURL, time.Duration(cfg.Groq.TimeoutSeconds)*time.Second)
	supportService := services.NewSupportService(groqClient, zlog, time.Duration(cfg.Groq.TimeoutSeconds)*time.Second)

	// 初始化处理器
	statsHandler := handlers.NewStatsHandler(guildRepo)
	guildHandler := handlers.NewGuildHandler(guildService, leaderboardService, guildRepo)
	settingsHandler := handlers.NewSettingsHandler(settingsRepo)
	statusHandler := handlers.NewStatusHandler(statusService)
	supportHandler := handlers.NewSupportHandler(supportService)

	// 限流器（有 Redis 才启用，Redis 不可用时放行）
	var limiter ratelimit.Limiter
	if redisClient != nil && cfg.RateLimit.Enabled {
		limiter = ratelimit.NewTokenBucketLimiter(redisClient, zlog.Logger, true)
	}

	// 配置并创建 Gin 引擎
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// 设置路由
	routers.SetupRoutes(r,
		cfg,
		zlog,
		statsHandler,
		guildHandler,
		settingsHandler,
		statusHandler,
		supportHandler,
		limiter,
	)

	// 启动服务器
	log.Printf("正在启动服务器，监听端口 :%d\n", cfg.Server.Port)
	if err := r.Run(":" + strconv.FormatInt(int64(cfg.Server.Port), 10)); err != nil {
		log.Fatalf("启动服务器失败: %v", err)
	}
}
