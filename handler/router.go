package handler

import (
	"kacchi/middleware"
	"kacchi/repository"
	"kacchi/services"
	"kacchi/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps carries everything the routes need.
type Deps struct {
	Store          *repository.Store
	Tokens         *services.TokenService
	Limiter        services.LoginLimiter
	Media          services.MediaPresigner
	AllowedOrigins []string
	MaxBodyBytes   int64
}

func NewRouter(d Deps) *gin.Engine {
	if d.Limiter == nil {
		d.Limiter = services.NoopLoginLimiter{}
	}
	if d.Media == nil {
		d.Media = services.DisabledPresigner{}
	}

	accounts := usecase.NewAccountsService(d.Store, d.Tokens, d.Limiter)
	rooms := usecase.NewRoomsService(d.Store)
	notes := usecase.NewNotesService(d.Store)
	stories := usecase.NewStoriesService(d.Store)
	expenses := usecase.NewExpensesService(d.Store)
	memories := usecase.NewMemoriesService(d.Store)
	profiles := usecase.NewProfileService(d.Store)
	dashboard := usecase.NewDashboardService(d.Store)
	search := usecase.NewSearchService(d.Store)

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(d.AllowedOrigins))
	router.Use(middleware.RequestSizeLimiter(d.MaxBodyBytes))

	router.GET("/", func(c *gin.Context) {
		HealthHandler(c, d.Store.Ping)
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(middleware.NoStore())

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", func(c *gin.Context) {
			RegisterHandler(c, accounts)
		})
		auth.POST("/login", func(c *gin.Context) {
			LoginHandler(c, accounts)
		})
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(d.Tokens))
	{
		roomRoutes := protected.Group("/rooms")
		{
			roomRoutes.GET("", func(c *gin.Context) {
				GetRoomsHandler(c, rooms)
			})
			roomRoutes.POST("", func(c *gin.Context) {
				CreateRoomHandler(c, rooms)
			})
			roomRoutes.GET("/:id", func(c *gin.Context) {
				GetRoomHandler(c, rooms)
			})
			roomRoutes.PUT("/:id", func(c *gin.Context) {
				UpdateRoomHandler(c, rooms)
			})
			roomRoutes.DELETE("/:id", func(c *gin.Context) {
				DeleteRoomHandler(c, rooms)
			})
			roomRoutes.GET("/:id/notes", func(c *gin.Context) {
				GetRoomNotesHandler(c, rooms)
			})
		}

		noteRoutes := protected.Group("/notes")
		{
			noteRoutes.GET("", func(c *gin.Context) {
				GetNotesHandler(c, notes)
			})
			noteRoutes.POST("", func(c *gin.Context) {
				CreateNoteHandler(c, notes)
			})
			noteRoutes.GET("/:id", func(c *gin.Context) {
				GetNoteHandler(c, notes)
			})
			noteRoutes.PUT("/:id", func(c *gin.Context) {
				UpdateNoteHandler(c, notes)
			})
			noteRoutes.DELETE("/:id", func(c *gin.Context) {
				DeleteNoteHandler(c, notes)
			})
		}

		storyRoutes := protected.Group("/stories")
		{
			storyRoutes.GET("", func(c *gin.Context) {
				GetStoriesHandler(c, stories)
			})
			storyRoutes.POST("", func(c *gin.Context) {
				CreateStoryHandler(c, stories)
			})
			storyRoutes.POST("/chapters", func(c *gin.Context) {
				CreateChapterHandler(c, stories)
			})
			storyRoutes.PUT("/chapters/:id", func(c *gin.Context) {
				UpdateChapterHandler(c, stories)
			})
			storyRoutes.DELETE("/chapters/:id", func(c *gin.Context) {
				DeleteChapterHandler(c, stories)
			})
			storyRoutes.GET("/:id", func(c *gin.Context) {
				GetStoryHandler(c, stories)
			})
			storyRoutes.PUT("/:id", func(c *gin.Context) {
				UpdateStoryHandler(c, stories)
			})
			storyRoutes.DELETE("/:id", func(c *gin.Context) {
				DeleteStoryHandler(c, stories)
			})
		}

		expenseRoutes := protected.Group("/expenses")
		{
			expenseRoutes.GET("", func(c *gin.Context) {
				GetExpensesHandler(c, expenses)
			})
			expenseRoutes.POST("", func(c *gin.Context) {
				CreateExpenseHandler(c, expenses)
			})
			expenseRoutes.GET("/summary", func(c *gin.Context) {
				GetExpenseSummaryHandler(c, expenses)
			})
			expenseRoutes.GET("/:id", func(c *gin.Context) {
				GetExpenseHandler(c, expenses)
			})
			expenseRoutes.PUT("/:id", func(c *gin.Context) {
				UpdateExpenseHandler(c, expenses)
			})
			expenseRoutes.DELETE("/:id", func(c *gin.Context) {
				DeleteExpenseHandler(c, expenses)
			})
		}

		memoryRoutes := protected.Group("/memories")
		{
			memoryRoutes.GET("", func(c *gin.Context) {
				GetMemoriesHandler(c, memories)
			})
			memoryRoutes.POST("", func(c *gin.Context) {
				CreateMemoryHandler(c, memories)
			})
			memoryRoutes.GET("/:id", func(c *gin.Context) {
				GetMemoryHandler(c, memories)
			})
			memoryRoutes.PUT("/:id", func(c *gin.Context) {
				UpdateMemoryHandler(c, memories)
			})
			memoryRoutes.DELETE("/:id", func(c *gin.Context) {
				DeleteMemoryHandler(c, memories)
			})
		}

		userRoutes := protected.Group("/users")
		{
			userRoutes.GET("/:id", func(c *gin.Context) {
				GetProfileHandler(c, profiles)
			})
			userRoutes.PUT("/:id", func(c *gin.Context) {
				UpdateProfileHandler(c, profiles)
			})
		}

		protected.GET("/dashboard", func(c *gin.Context) {
			DashboardHandler(c, dashboard)
		})
		protected.GET("/search", func(c *gin.Context) {
			SearchHandler(c, search)
		})
		protected.POST("/media/presign", func(c *gin.Context) {
			PresignUploadHandler(c, d.Media)
		})
	}

	router.NoRoute(notFoundRoute)

	return router
}
