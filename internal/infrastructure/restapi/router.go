package restapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter configures and returns the gin router for the read-only serve
// mode: wallet endpoints, CORS and the prometheus metrics endpoint.
func SetupRouter(walletHandler *WalletHandler, zapLogger *zap.Logger) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.Use(ZapLoggerMiddleware(zapLogger))
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/wallets", walletHandler.ListWalletsHandler)
		v1.GET("/wallets/:walletAddress", walletHandler.GetWalletHandler)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
