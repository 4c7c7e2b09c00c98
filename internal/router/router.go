package router

import (
	"mlhub-go/internal/config"
	"mlhub-go/internal/handler"
	"mlhub-go/internal/middleware"
	"mlhub-go/internal/repository"
	"mlhub-go/internal/service"
	"mlhub-go/internal/storage"
	"mlhub-go/internal/utils"
	"mlhub-go/pkg/session_store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRouter wires repositories, services and handlers onto the HTTP
// surface.
func SetupRouter(
	cfg *config.Config,
	tokenManager *utils.TokenManager,
	sessionStore session_store.Store,
	logger *logrus.Logger,
	db *gorm.DB,
	modelBlobs *storage.BlobStore,
	datasetBlobs *storage.BlobStore,
) *gin.Engine {
	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	sessions := service.NewSessionManager(sessionStore, tokenManager, cfg)

	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.ResolveIdentity(sessions))

	userRepo := repository.NewUserRepository(db)
	modelRepo := repository.NewMLModelRepository(db)
	datasetRepo := repository.NewDatasetRepository(db)

	authService := service.NewAuthService(userRepo)
	modelService := service.NewMLModelService(modelRepo, modelBlobs)
	datasetService := service.NewDatasetService(datasetRepo, datasetBlobs)
	userService := service.NewUserService(userRepo, modelRepo, datasetRepo, modelBlobs, datasetBlobs)

	authHandler := handler.NewAuthHandler(authService, sessions, logger)
	modelHandler := handler.NewMLModelHandler(modelService, logger)
	datasetHandler := handler.NewDatasetHandler(datasetService, logger)
	userHandler := handler.NewUserHandler(userService, sessions, logger)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "ML model and dataset sharing platform",
			"version": "1.0.0",
		})
	})

	// Public routes.
	r.GET("/registration", authHandler.RegistrationPage)
	r.POST("/registration", authHandler.Register)
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	r.GET("/models", modelHandler.List)
	r.GET("/model/:id", modelHandler.Get)
	r.GET("/download-model/:id", modelHandler.Download)

	r.GET("/datasets", datasetHandler.List)
	r.GET("/dataset/:id", datasetHandler.Get)
	r.GET("/download-dataset/:id", datasetHandler.Download)

	r.GET("/user/:name", userHandler.Get)

	// Routes that need an authenticated identity.
	authorized := r.Group("")
	authorized.Use(middleware.LoginRequired())
	{
		uploads := authorized.Group("")
		uploads.Use(middleware.BodyLimit(cfg.Storage.GetMaxUploadBytes()))
		{
			uploads.GET("/load_model", modelHandler.UploadPage)
			uploads.POST("/load_model", modelHandler.Upload)
			uploads.GET("/edit-model/:id", modelHandler.EditPage)
			uploads.POST("/edit-model/:id", modelHandler.Edit)

			uploads.GET("/load_dataset", datasetHandler.UploadPage)
			uploads.POST("/load_dataset", datasetHandler.Upload)
		}

		authorized.GET("/delete-model/:id", modelHandler.Delete)
		authorized.GET("/delete-dataset/:id", datasetHandler.Delete)

		authorized.GET("/edit-profile", userHandler.EditProfilePage)
		authorized.POST("/edit-profile", userHandler.EditProfile)
		authorized.GET("/delete-account", userHandler.DeleteAccount)
	}

	return r
}
