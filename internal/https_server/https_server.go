// Package https_server assembles the gin engine: middleware, CORS and the
// business routes.
package https_server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"susu_ledger_server/internal/handler"
	"susu_ledger_server/internal/infrastructure/logger"
	"susu_ledger_server/internal/router"
)

// Init builds the engine from a blank gin instance so every middleware is
// explicit: zap request logging, panic recovery, CORS, then the routes.
func Init(handlers *handler.Handlers) *gin.Engine {
	engine := gin.New()

	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	rt := router.NewRouter(handlers)
	rt.RegisterRoutes(engine)

	return engine
}
