package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitpulse/fitness-backend/internal/api"
	"fitpulse/fitness-backend/internal/config"
	"fitpulse/fitness-backend/internal/repository/mongo"
	"fitpulse/fitness-backend/internal/service"
	"fitpulse/fitness-backend/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	log.Info("starting fitness backend")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("could not load config", zap.Error(err))
	}

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatal("could not connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Error("failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	db := dbClient.Database(cfg.Database.Name)
	log.Info("database connection established", zap.String("database", cfg.Database.Name))

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureIndexes(ctx, db, log)
	}()

	// --- File Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3, log)
	if err != nil {
		log.Fatal("failed to initialize S3 storage", zap.Error(err))
	}

	// --- Repositories ---
	userRepo := mongo.NewMongoUserRepository(db)
	coachRepo := mongo.NewMongoCoachRepository(db)
	customerRepo := mongo.NewMongoCustomerRepository(db)
	assignmentRepo := mongo.NewMongoAssignmentRepository(db)
	workoutRepo := mongo.NewMongoWorkoutRepository(db)
	exerciseWorkoutRepo := mongo.NewMongoExerciseWorkoutRepository(db)
	chatRepo := mongo.NewMongoChatRepository(db)
	messageRepo := mongo.NewMongoMessageRepository(db)
	exerciseRepo := mongo.NewMongoExerciseRepository(db)
	feedbackRepo := mongo.NewMongoFeedbackRepository(db)
	fileRepo := mongo.NewMongoFileEntityRepository(db)
	diaryRepo := mongo.NewMongoDiaryRepository(db)
	stepsRepo := mongo.NewMongoStepsRepository(db)
	waterRepo := mongo.NewMongoWaterRepository(db)
	productRepo := mongo.NewMongoProductRepository(db)

	// --- Services ---
	principalService := service.NewPrincipalService(userRepo, coachRepo, customerRepo)
	authService := service.NewAuthService(userRepo, principalService, cfg.JWT.Secret, cfg.JWT.Expiration)
	userService := service.NewUserService(userRepo, coachRepo, customerRepo, assignmentRepo)
	chatService := service.NewChatService(chatRepo, messageRepo)
	coachService := service.NewCoachService(userRepo, coachRepo, customerRepo, assignmentRepo, chatService)
	customerService := service.NewCustomerService(userRepo, coachRepo, customerRepo, assignmentRepo, chatService)
	fileService := service.NewFileService(fileRepo, fileStorage)
	workoutService := service.NewWorkoutService(workoutRepo, exerciseWorkoutRepo, exerciseRepo, coachRepo, customerRepo, chatService)
	exerciseWorkoutService := service.NewExerciseWorkoutService(exerciseWorkoutRepo, workoutRepo, exerciseRepo)
	messageService := service.NewMessageService(messageRepo, chatRepo, chatService, fileService)
	exerciseService := service.NewExerciseService(exerciseRepo, exerciseWorkoutRepo, fileService)
	feedbackService := service.NewFeedbackService(feedbackRepo, coachRepo, assignmentRepo)
	diaryService := service.NewDiaryService(diaryRepo)
	trackingService := service.NewTrackingService(stepsRepo, waterRepo, cfg.Goals)
	storeService := service.NewStoreService(productRepo)

	// --- Router ---
	router := gin.New()
	router.Use(api.RequestLogger(log), gin.Recovery())

	api.SetupRoutes(
		router,
		cfg.JWT.Secret,
		principalService,
		authService,
		userService,
		coachService,
		customerService,
		workoutService,
		exerciseWorkoutService,
		chatService,
		messageService,
		exerciseService,
		fileService,
		feedbackService,
		diaryService,
		trackingService,
		storeService,
	)

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen and serve", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
