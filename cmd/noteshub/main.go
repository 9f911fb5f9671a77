package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	apirouter "noteshub/internal/api/router"
	cataloghandlers "noteshub/internal/catalog/api/handlers"
	catalogrouter "noteshub/internal/catalog/api/router"
	catalogapp "noteshub/internal/catalog/app"
	catalogrepo "noteshub/internal/catalog/repository"
	chatapp "noteshub/internal/chat/app"
	chatrepo "noteshub/internal/chat/repository"
	chatrouter "noteshub/internal/chat/router"
	memberapp "noteshub/internal/member/app"
	memberdomain "noteshub/internal/member/domain"
	memberrepo "noteshub/internal/member/repository"
	memberrouter "noteshub/internal/member/router"
	"noteshub/pkg/config"
	"noteshub/pkg/database"
	"noteshub/pkg/logger"
	testtool "noteshub/pkg/test_tool"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.NotesHub, config.EnvConfig.NotesHubLogPath)
	cfg := config.LoadConfig[config.NotesHub](config.EnvConfig.NotesHub, config.EnvConfig.NotesHubYAMLPath)
	testtool.StartPprof()

	ctx := context.Background()

	// PostgreSQL, two handles on the same database: pgx pool for the member
	// account store, gorm for catalog resources and profiles
	sqlParams := fmt.Sprintf("postgres://%s:%s@%s:%d/%s", cfg.PostgreSQL.User, cfg.PostgreSQL.Password, cfg.PostgreSQL.Host, cfg.PostgreSQL.Port, cfg.PostgreSQL.Database)
	pool, err := database.NewDatabaseConnection(database.Connection{
		ConnectStr:    sqlParams,
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to postgreSQL database after retries",
			zap.String("address", fmt.Sprintf("[%s]", sqlParams)),
			zap.Error(err),
		)
	}
	defer pool.Close()

	gormDB, err := database.NewPGConnection(database.Connection{
		ConnectStr:    sqlParams,
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal("Unable to open gorm connection after retries", zap.Error(err))
	}

	// MongoDB holds the chat message feed
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%d", cfg.MongoDB.User, cfg.MongoDB.Password, cfg.MongoDB.Host, cfg.MongoDB.Port)
	mongo, err := database.NewMongoDB(ctx,
		database.Connection{
			ConnectStr:    uri,
			RetryCount:    cfg.MongoDB.RetryCount,
			RetryInterval: time.Duration(cfg.MongoDB.RetryInterval),
		},
		cfg.MongoDB.Database)
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to mongoDB database after retries",
			zap.String("address", fmt.Sprintf("[%s]", uri)),
			zap.Error(err),
		)
	}
	defer mongo.Close(ctx)

	// Redis carries chat pub/sub, member sessions and the online counter
	masterName, sentinel := config.GetRedisSetting()
	redisClient, err := database.NewRedisClient(masterName, sentinel, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}
	sessionRepo := database.NewRedisRepository[memberdomain.MemberSession](redisClient)

	// MinIO stores uploaded resource files and avatars
	minIO, err := database.NewMinIOConnection(database.MinIOConnection{
		Endpoint:      fmt.Sprintf("%s:%d", cfg.MinIO.Host, cfg.MinIO.Port),
		User:          cfg.MinIO.User,
		Password:      cfg.MinIO.Password,
		BucketName:    cfg.MinIO.BucketName,
		UseSSL:        cfg.MinIO.UseSSL,
		PublicBase:    cfg.MinIO.PublicBase,
		RetryCount:    cfg.MinIO.RetryCount,
		RetryInterval: time.Duration(cfg.MinIO.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal("Unable to connect to minIO after retries", zap.Error(err))
	}

	// Repositories
	resourceRepo := catalogrepo.NewResourceRepo(gormDB)
	profileRepo := memberrepo.NewProfileRepository(gormDB)
	memberRepo := memberrepo.NewMemberRepository(pool)
	msgRepo := chatrepo.NewMongoChatMessageRepository(mongo.Database)
	pubSub := chatrepo.NewRedisPubSub(redisClient)

	if err := resourceRepo.AutoMigrate(); err != nil {
		logger.Log.Fatal("resource migrate failed", zap.Error(err))
	}
	if err := profileRepo.AutoMigrate(); err != nil {
		logger.Log.Fatal("profile migrate failed", zap.Error(err))
	}

	// UseCases
	catalogUC := catalogapp.NewCatalogUseCase(minIO, resourceRepo)
	memberUC := memberapp.NewMemberUseCase(memberRepo, cfg.SessionTTL*time.Minute, sessionRepo)
	profileUC := memberapp.NewProfileUseCase(profileRepo, minIO)
	messageUC := chatapp.NewMessageUseCase(msgRepo, profileRepo, pubSub)

	r := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.NotesHubLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	apirouter.RegisterRoutes(r)
	catalogrouter.RegisterRoutes(r, cataloghandlers.NewResourceHandler(catalogUC))
	memberrouter.RegisterRoutes(r, memberapp.NewMemberHandler(memberUC, profileUC))
	chatrouter.RegisterRoutes(r, chatapp.NewChatWebsocketHandler(messageUC, pubSub))

	port := ":" + cfg.Port
	log.Printf("NotesHub listening on %s", port)
	if err := r.Listen(port); err != nil {
		log.Fatalf("Failed to start Fiber: %v", err)
	}
}
