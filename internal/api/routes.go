package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitforge/workout-builder/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	workoutService service.WorkoutService,
	ingestService service.IngestService,
	exportService service.ExportService,
	mappingService service.MappingService,
) {
	authHandler := NewAuthHandler(authService)
	workoutHandler := NewWorkoutHandler(workoutService)
	ingestHandler := NewIngestHandler(ingestService)
	exportHandler := NewExportHandler(exportService, mappingService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := currentUserID(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID.Hex()})
		})

		// --- Ingest Routes ---
		ingestGroup := protected.Group("/ingest")
		{
			ingestGroup.POST("/text", ingestHandler.FromText)
			ingestGroup.POST("/video", ingestHandler.FromVideoURL)
			ingestGroup.POST("/image-upload", ingestHandler.CreateImageUpload)
			ingestGroup.POST("/image", ingestHandler.FromImage)
		}

		// --- Workout Routes ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.GET("/:workoutId", workoutHandler.GetWorkout)
			workoutGroup.DELETE("/:workoutId", workoutHandler.DeleteWorkout)

			workoutGroup.PUT("/:workoutId/structure", workoutHandler.ReplaceStructure)
			workoutGroup.PUT("/:workoutId/settings", workoutHandler.SaveSettings)

			workoutGroup.POST("/:workoutId/blocks", workoutHandler.AddBlock)
			workoutGroup.PATCH("/:workoutId/blocks/:blockIdx", workoutHandler.UpdateBlock)
			workoutGroup.DELETE("/:workoutId/blocks/:blockIdx", workoutHandler.DeleteBlock)
			workoutGroup.POST("/:workoutId/warmup", workoutHandler.AddWarmupBlock)
			workoutGroup.POST("/:workoutId/cooldown", workoutHandler.AddCooldownBlock)

			workoutGroup.POST("/:workoutId/blocks/:blockIdx/exercises", workoutHandler.AddExercise)
			workoutGroup.PATCH("/:workoutId/blocks/:blockIdx/exercises/:exerciseIdx", workoutHandler.UpdateExercise)
			workoutGroup.DELETE("/:workoutId/blocks/:blockIdx/exercises/:exerciseIdx", workoutHandler.DeleteExercise)

			workoutGroup.POST("/:workoutId/blocks/:blockIdx/supersets", workoutHandler.AddSuperset)
			workoutGroup.PATCH("/:workoutId/blocks/:blockIdx/supersets/:supersetIdx", workoutHandler.UpdateSuperset)
			workoutGroup.DELETE("/:workoutId/blocks/:blockIdx/supersets/:supersetIdx", workoutHandler.DeleteSuperset)

			workoutGroup.POST("/:workoutId/move", workoutHandler.MoveExercise)
			workoutGroup.POST("/:workoutId/drag-end", workoutHandler.DragEnd)

			workoutGroup.GET("/:workoutId/export", exportHandler.Export)
			workoutGroup.POST("/:workoutId/validate", exportHandler.Validate)
		}
	}
}
