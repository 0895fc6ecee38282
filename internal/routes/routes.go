package routes

import (
	"net/http"
	"time"

	"raffle-api/docs"
	"raffle-api/internal/domain/dto"
	"raffle-api/internal/handlers"
	"raffle-api/internal/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-openapi/runtime/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	User     *handlers.UserHandler
	Purchase *handlers.PurchaseHandler
}

func InitRoutes(info dto.ServiceInfo, corsOrigins []string, h Handlers, authMiddleware *middlewares.AuthMiddleware) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("notblank", validators.NotBlank)
	}

	router := gin.Default()

	_ = router.SetTrustedProxies(nil)

	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middlewares.Metrics())

	docs.SwaggerInfo.Version = info.Version
	router.GET("/swagger/doc.json", func(c *gin.Context) {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	})

	sh := middleware.SwaggerUI(middleware.SwaggerUIOpts{
		BasePath: "/",
		Path:     "swagger",
		SpecURL:  "/swagger/doc.json",
	}, nil)
	router.GET("/swagger", gin.WrapH(sh))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// public
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, []dto.ServiceInfo{info})
	})
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	router.POST("/login", h.Auth.Login)
	router.POST("/refresh", h.Auth.Refresh)
	router.POST("/users", h.User.CreateUser)

	// protected
	api := router.Group("/", authMiddleware.Handle())
	{
		api.GET("/users", h.User.ListUsers)
		api.GET("/users/:id", h.User.GetUser)
		api.PUT("/users/:id", h.User.UpdateUser)
		api.DELETE("/users/:id", h.User.DeleteUser)
		api.POST("/users/:id/entries/reconcile", h.User.ReconcileEntries)

		api.GET("/purchases", h.Purchase.ListPurchases)
		api.POST("/purchases", h.Purchase.CreatePurchase)
		api.GET("/purchases/:id", h.Purchase.GetPurchase)
		api.DELETE("/purchases/:id", h.Purchase.DeletePurchase)
	}

	return router
}
