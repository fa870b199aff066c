package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"matchup-service/internal/config"
	"matchup-service/internal/db"
	"matchup-service/internal/handlers"
	"matchup-service/internal/middleware"
	"matchup-service/internal/observability"
	"matchup-service/internal/rabbitmq"
	"matchup-service/internal/repositories"
	"matchup-service/internal/services"
	"matchup-service/internal/telemetry"
	"matchup-service/internal/ws"
)

const serviceName = "matchup-service"

func main() {
	cfg := config.Load()

	ctx := context.Background()
	shutdownTracer := telemetry.InitTracer(ctx, cfg.OTLPEndpoint, serviceName, cfg.Environment)
	defer shutdownTracer(ctx)

	database, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}

	eventPublisher, err := observability.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		log.Printf("event publishing disabled: %v", err)
	} else {
		observability.SetPublisher(eventPublisher)
		defer eventPublisher.Close()
	}

	auditPublisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	defer auditPublisher.Close()
	log.Printf("audit publisher mode=%s", rabbitmq.PublisherMode(auditPublisher))
	auditEmitter := telemetry.NewAuditEmitter(auditPublisher, cfg.AuditRoutingKey, serviceName, cfg.Environment)

	matchRepo := repositories.NewMatchRepo(database)
	appRepo := repositories.NewApplicationRepo(database)
	roomRepo := repositories.NewChatRoomRepo(database)
	messageRepo := repositories.NewMessageRepo(database)
	notificationRepo := repositories.NewNotificationRepo(database)
	rosterRepo := repositories.NewRosterRepo(database)

	hub := ws.NewHub()

	lifecycle := services.NewLifecycleService(matchRepo, appRepo, roomRepo, messageRepo, notificationRepo, rosterRepo, hub)
	chatRooms := services.NewChatRoomService(matchRepo, roomRepo, messageRepo, notificationRepo, hub)
	candidates := services.NewCandidateService(matchRepo, appRepo, rosterRepo)

	matchHandler := handlers.NewMatchHandler(matchRepo, rosterRepo, lifecycle, candidates, auditEmitter)
	applicationHandler := handlers.NewApplicationHandler(matchRepo, appRepo, rosterRepo, lifecycle, auditEmitter)
	chatHandler := handlers.NewChatHandler(chatRooms)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	roomWS := ws.NewRoomWebSocketHandler(hub, roomRepo, cfg.JWTSecret)

	router := gin.Default()

	// middlewares
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(observability.HTTPMetricsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret)

	router.POST("/matches", authMiddleware, matchHandler.CreateMatch)
	router.GET("/matches", authMiddleware, matchHandler.ListMatches)
	router.GET("/matches/:match_id", authMiddleware, matchHandler.GetMatch)
	router.DELETE("/matches/:match_id", authMiddleware, matchHandler.CancelMatch)
	router.GET("/matches/:match_id/candidates", authMiddleware, matchHandler.Candidates)

	router.POST("/matches/:match_id/applications", authMiddleware, applicationHandler.Submit)
	router.GET("/matches/:match_id/applications", authMiddleware, applicationHandler.ListByMatch)
	router.POST("/applications/:application_id/accept", authMiddleware, applicationHandler.Accept)
	router.POST("/applications/:application_id/reject", authMiddleware, applicationHandler.Reject)
	router.DELETE("/applications/:application_id", authMiddleware, applicationHandler.Withdraw)

	router.GET("/chats", authMiddleware, chatHandler.ListChats)
	router.POST("/chats/start", authMiddleware, chatHandler.StartChat)
	router.GET("/chats/:chat_id/messages", authMiddleware, chatHandler.GetChatMessages)
	router.POST("/chats/:chat_id/messages", authMiddleware, chatHandler.PostChatMessage)
	router.DELETE("/chats/:chat_id/me", authMiddleware, chatHandler.LeaveChat)

	router.GET("/notifications", authMiddleware, notificationHandler.List)
	router.POST("/notifications/:notification_id/read", authMiddleware, notificationHandler.MarkRead)

	router.GET("/ws/chats/:chat_id", roomWS.Handle)

	handlers.RegisterDebugRoutes(router, auditEmitter, cfg.Debug)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
