package api

import (
	"net/http"

	"fitpulse/fitness-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes mounts every API endpoint on the router. Handlers are
// constructed here from the services; main only wires services.
//
// Routes acting on the caller live under /me because the router cannot
// mix a literal segment with a path parameter at the same position.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	principalService service.PrincipalService,
	authService service.AuthService,
	userService service.UserService,
	coachService service.CoachService,
	customerService service.CustomerService,
	workoutService service.WorkoutService,
	exerciseWorkoutService service.ExerciseWorkoutService,
	chatService service.ChatService,
	messageService service.MessageService,
	exerciseService service.ExerciseService,
	fileService service.FileService,
	feedbackService service.FeedbackService,
	diaryService service.DiaryService,
	trackingService service.TrackingService,
	storeService service.StoreService,
) {
	authHandler := NewAuthHandler(authService, coachService, customerService)
	userHandler := NewUserHandler(userService)
	coachHandler := NewCoachHandler(coachService)
	customerHandler := NewCustomerHandler(customerService)
	workoutHandler := NewWorkoutHandler(workoutService, exerciseWorkoutService)
	chatHandler := NewChatHandler(chatService, messageService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	fileHandler := NewFileHandler(fileService)
	feedbackHandler := NewFeedbackHandler(feedbackService)
	wellnessHandler := NewWellnessHandler(diaryService, trackingService)
	storeHandler := NewStoreHandler(storeService)

	authMiddleware := AuthMiddleware(jwtSecret, principalService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	authGroup := apiV1.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/register/coach", authHandler.RegisterCoach)
		authGroup.POST("/register/customer", authHandler.RegisterCustomer)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Caller Routes ---
		meGroup := protected.Group("/me")
		{
			meGroup.GET("", userHandler.GetMe)
			meGroup.PUT("", userHandler.UpdateMe)
			meGroup.PUT("/password", userHandler.UpdatePassword)
			meGroup.DELETE("", userHandler.DeleteMe)

			meGroup.GET("/coach", coachHandler.GetMe)
			meGroup.POST("/coach", coachHandler.AttachProfile)
			meGroup.PUT("/coach", coachHandler.UpdateMe)
			meGroup.GET("/customers", coachHandler.ListCustomers)
			meGroup.POST("/customers/:customerId", coachHandler.AssignCustomer)
			meGroup.DELETE("/customers/:customerId", coachHandler.UnassignCustomer)

			meGroup.GET("/customer", customerHandler.GetMe)
			meGroup.POST("/customer", customerHandler.AttachProfile)
			meGroup.PUT("/customer", customerHandler.UpdateMe)
			meGroup.GET("/coaches", customerHandler.ListCoaches)
			meGroup.POST("/coaches/:coachId", customerHandler.AssignCoach)
			meGroup.DELETE("/coaches/:coachId", customerHandler.UnassignCoach)
		}

		// --- User Routes ---
		userGroup := protected.Group("/users")
		{
			userGroup.GET("", userHandler.List)
			userGroup.GET("/:id", userHandler.GetByID)
			userGroup.GET("/:id/dialogue", chatHandler.GetDialogueWith)
		}

		// --- Coach Routes ---
		coachGroup := protected.Group("/coaches")
		{
			coachGroup.GET("", coachHandler.List)
			coachGroup.GET("/:id", coachHandler.GetByID)

			// Feedback is always addressed through the coach it scores.
			coachGroup.POST("/:id/feedback", feedbackHandler.Create)
			coachGroup.GET("/:id/feedback", feedbackHandler.GetMine)
			coachGroup.PUT("/:id/feedback", feedbackHandler.Update)
		}

		// --- Customer Routes ---
		customerGroup := protected.Group("/customers")
		{
			customerGroup.GET("", customerHandler.List)
			customerGroup.GET("/:id", customerHandler.GetByID)
		}

		// --- Workout Routes ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.Create)
			workoutGroup.GET("", workoutHandler.List)
			workoutGroup.GET("/:id", workoutHandler.GetByID)
			workoutGroup.PUT("/:id", workoutHandler.Update)
			workoutGroup.DELETE("/:id", workoutHandler.Delete)
			workoutGroup.POST("/:id/exercises", workoutHandler.CreateExerciseWorkout)
		}

		exerciseWorkoutGroup := protected.Group("/exercise-workouts")
		{
			exerciseWorkoutGroup.GET("/:id", workoutHandler.GetExerciseWorkout)
			exerciseWorkoutGroup.PUT("/:id", workoutHandler.UpdateExerciseWorkout)
			exerciseWorkoutGroup.DELETE("/:id", workoutHandler.DeleteExerciseWorkout)
		}

		// --- Chat Routes ---
		chatGroup := protected.Group("/chats")
		{
			chatGroup.GET("", chatHandler.List)
			chatGroup.GET("/:id", chatHandler.GetByID)
			chatGroup.DELETE("/:id", chatHandler.Delete)
			chatGroup.GET("/:id/messages", chatHandler.ListMessages)
			chatGroup.POST("/:id/messages", chatHandler.CreateMessage)
		}

		messageGroup := protected.Group("/messages")
		{
			messageGroup.GET("/:id", chatHandler.GetMessage)
			messageGroup.PUT("/:id", chatHandler.UpdateMessage)
		}

		// --- Exercise Routes ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", exerciseHandler.Create)
			exerciseGroup.GET("", exerciseHandler.Search)
			exerciseGroup.GET("/:id", exerciseHandler.GetByID)
			exerciseGroup.PUT("/:id", exerciseHandler.Update)
			exerciseGroup.DELETE("/:id", exerciseHandler.Delete)
		}

		// --- File Routes ---
		fileGroup := protected.Group("/files")
		{
			fileGroup.POST("", fileHandler.Upload)
			fileGroup.GET("/:filename/url", fileHandler.GetURL)
			fileGroup.DELETE("/:id", fileHandler.Delete)
		}

		// --- Diary Routes ---
		diaryGroup := protected.Group("/diary")
		{
			diaryGroup.GET("", wellnessHandler.ListDiary)
			diaryGroup.PUT("/:date", wellnessHandler.UpsertDiary)
			diaryGroup.GET("/:date", wellnessHandler.GetDiary)
			diaryGroup.DELETE("/:date", wellnessHandler.DeleteDiary)
		}

		// --- Tracking Routes ---
		trackingGroup := protected.Group("/tracking")
		{
			trackingGroup.GET("/steps", wellnessHandler.ListSteps)
			trackingGroup.PUT("/steps/:date", wellnessHandler.SetSteps)
			trackingGroup.GET("/steps/:date", wellnessHandler.GetSteps)
			trackingGroup.GET("/water", wellnessHandler.ListWater)
			trackingGroup.PUT("/water/:date", wellnessHandler.SetWater)
			trackingGroup.GET("/water/:date", wellnessHandler.GetWater)
		}

		// --- Store Routes ---
		storeGroup := protected.Group("/store/products")
		{
			storeGroup.POST("", storeHandler.Create)
			storeGroup.GET("", storeHandler.List)
			storeGroup.GET("/:id", storeHandler.GetByID)
			storeGroup.PUT("/:id", storeHandler.Update)
			storeGroup.DELETE("/:id", storeHandler.Delete)
		}
	}
}
