package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"valet_parking/internal/api"
	"valet_parking/internal/api/handler"
	"valet_parking/internal/api/middleware"
	"valet_parking/internal/config"
	"valet_parking/internal/queue"
	"valet_parking/internal/repository/postgresql"
	"valet_parking/internal/service"
	"valet_parking/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	db, err := postgresql.NewDB(cfg)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to database.")

	if cfg.AutoMigrate {
		if err := migrations.Up(db); err != nil {
			log.Fatalf("Migrations failed: %v", err)
		}
		log.Println("Migrations applied.")
	}

	userRepo := postgresql.NewPgUserRepository(db)
	carRepo := postgresql.NewPgCarRepository(db)
	spotRepo := postgresql.NewPgParkingSpotRepository(db)
	staffRepo := postgresql.NewPgStaffRepository(db)
	parkedCarRepo := postgresql.NewPgParkedCarRepository(db)
	paymentRepo := postgresql.NewPgPaymentRepository(db)
	reportRepo := postgresql.NewPgReportRepository(db)

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed := handler.NewLotFeed()
	go feed.Run(rootCtx)

	publishers := service.FanOut{feed}
	if cfg.AMQPURL != "" {
		amqpPub, err := queue.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatalf("Could not start event publisher: %v", err)
		}
		defer amqpPub.Close()
		publishers = append(publishers, amqpPub)
		log.Printf("Publishing parked-car events to exchange %s", cfg.AMQPExchange)
	}

	var lprService *service.LPRService
	var sqsClient *sqs.Client
	if cfg.LPREnabled || cfg.PaymentEventsQueueURL != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(rootCtx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			log.Fatalf("Could not load AWS config: %v", err)
		}
		if cfg.LPREnabled {
			lprService = service.NewLPRService(rekognition.NewFromConfig(awsCfg))
		}
		if cfg.PaymentEventsQueueURL != "" {
			sqsClient = sqs.NewFromConfig(awsCfg)
		}
	}
	if lprService == nil {
		lprService = service.NewLPRService(nil)
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiration, cfg.BcryptCost)
	resolver := service.NewRoleResolver(userRepo, staffRepo)
	parkedCarService := service.NewParkedCarService(parkedCarRepo, carRepo, spotRepo, service.NewRandomSlotLabeler(nil), publishers)
	paymentService := service.NewPaymentService(paymentRepo)

	var wg sync.WaitGroup
	if sqsClient != nil {
		consumer := queue.NewSQSConsumer(sqsClient, cfg.PaymentEventsQueueURL, paymentService)
		wg.Add(1)
		go func() {
			defer wg.Done()
			consumer.Start(rootCtx)
			log.Println("SQS Consumer stopped.")
		}()
	} else {
		log.Println("PAYMENT_EVENTS_QUEUE_URL not set, payment consumer disabled.")
	}

	router := api.SetupRouter(api.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		User:       handler.NewUserHandler(service.NewUserService(userRepo, staffRepo, spotRepo), service.NewCarService(carRepo), paymentService),
		ParkedCar:  handler.NewParkedCarHandler(parkedCarService),
		Manager:    handler.NewManagerHandler(service.NewManagerService(spotRepo, staffRepo, reportRepo)),
		SuperAdmin: handler.NewSuperAdminHandler(service.NewAdminService(spotRepo, staffRepo, reportRepo)),
		LPR:        handler.NewLPRHandler(lprService),
		WebSocket:  handler.NewWebSocketHandler(feed),
	}, middleware.NewAuthMiddleware(authService, resolver))

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server listening on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shut down: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		wg.Wait()
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		log.Println("SQS Consumer did not stop in time.")
	}

	log.Println("Server stopped.")
}
