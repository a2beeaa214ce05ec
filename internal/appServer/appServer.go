package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/wtchen/clubroll/config"
	"github.com/wtchen/clubroll/internal/database"
	"github.com/wtchen/clubroll/internal/service"
	"github.com/wtchen/clubroll/internal/transport"
	"github.com/wtchen/clubroll/internal/transport/middleware"
	"github.com/wtchen/clubroll/internal/worker"
	"github.com/wtchen/clubroll/pkg/line"
	"github.com/wtchen/clubroll/pkg/queue"
	"github.com/wtchen/clubroll/pkg/redis"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize the document store
	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logrus.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	memberRepo := database.NewMemberRepository(redisClient)
	eventRepo := database.NewEventRepository(redisClient)
	responseRepo := database.NewResponseRepository(redisClient)

	// Initialize LINE client
	botClient := line.NewClient(cfg.Line.ChannelAccessToken, cfg.Line.ChannelSecret)

	// Initialize announce queue
	var taskPublisher service.TaskPublisher
	var announceQueue queue.Queue
	if q, err := queue.NewRedisQueue(redisClient, nil); err != nil {
		logrus.Errorf("Failed to initialize queue: %v. Continuing without announcements...", err)
	} else {
		announceQueue = q
		taskPublisher = service.NewQueueAdapter(q)
	}

	// Initialize services
	registrationService := service.NewRegistrationService(memberRepo, cfg.App.AdminSetupCode)
	eventService := service.NewEventService(eventRepo, taskPublisher)
	attendanceService := service.NewAttendanceService(memberRepo, eventRepo, responseRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start the announce worker
	if announceQueue != nil {
		announceWorker := worker.NewAnnounceWorker(announceQueue, eventService, botClient, cfg.App.TargetGroupID)
		go announceWorker.Start(ctx)
	}

	// Initialize handlers
	webhookHandler := transport.NewWebhookHandler(botClient, cfg.Line.ChannelSecret, registrationService, attendanceService)
	eventHandler := transport.NewEventHandler(eventService, attendanceService)
	memberHandler := transport.NewMemberHandler(registrationService)
	adminAuth := middleware.AdminAuth(botClient, registrationService, cfg.Line.LiffIDAdmin)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(webhookHandler, eventHandler, memberHandler, adminAuth)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if announceQueue != nil {
		if err := announceQueue.Close(); err != nil {
			logrus.Errorf("error occured on queue shutdown: %s", err.Error())
		}
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
