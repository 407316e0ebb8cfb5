// Package router wires handlers and middleware into a gin engine.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "reskin/backend/docs" // registers the OpenAPI document served at /swagger
	"reskin/backend/internal/auth"
	"reskin/backend/internal/handler"
)

// Options configures New.
type Options struct {
	Handler     *handler.Handler
	Tokens      auth.Verifier
	Roles       auth.RoleChecker
	Logger      *logrus.Logger
	CORSOrigins []string
}

// New builds the engine serving the whole API.
func New(opts Options) *gin.Engine {
	h := opts.Handler
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(opts.Logger), CORS(opts.CORSOrigins))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	requireAuth := auth.AuthMiddleware(opts.Tokens)

	api := router.Group("/api")
	api.Use(auth.OptionalAuthMiddleware(opts.Tokens))
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", h.RegisterUser)
			authRoutes.POST("/login", h.LoginUser)
		}

		userRoutes := api.Group("/users")
		userRoutes.Use(requireAuth)
		{
			userRoutes.GET("/me", h.GetMe)
			userRoutes.PATCH("/me", h.UpdateMe)
		}

		gameRoutes := api.Group("/games")
		{
			gameRoutes.GET("", h.GetGames)
			gameRoutes.GET("/:id", h.GetGameByID)
			gameRoutes.GET("/:id/card-definitions", h.GetGameCards)
		}

		api.GET("/card-definitions/:tableName", h.GetCardDefinitions)

		cardSetRoutes := api.Group("/cardsets")
		{
			cardSetRoutes.GET("", h.GetCardSets)
			cardSetRoutes.GET("/user/me", requireAuth, h.GetMyCardSets) // Must be before /:id
			cardSetRoutes.GET("/:id", h.GetCardSetByID)
			cardSetRoutes.POST("", requireAuth, h.CreateCardSet)
			cardSetRoutes.PATCH("/:id", requireAuth, h.UpdateCardSet)
			cardSetRoutes.DELETE("/:id", requireAuth, h.DeleteCardSet)
		}

		adminRoutes := api.Group("/admin")
		adminRoutes.Use(requireAuth, auth.AdminMiddleware(opts.Roles))
		{
			adminRoutes.PUT("/games", h.UpsertGame)
		}

		deckRoutes := api.Group("/decks")
		{
			deckRoutes.GET("/:id", h.GetDeckByID)
			deckRoutes.GET("/:id/cards", h.GetDeckCards)
			deckRoutes.POST("", requireAuth, h.CreateDeck)
			deckRoutes.PATCH("/:id", requireAuth, h.UpdateDeck)
			deckRoutes.DELETE("/:id", requireAuth, h.DeleteDeck)
		}
	}

	return router
}
