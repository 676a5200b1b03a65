package main

import (
	"context"

	_ "property-price-api/docs"
	"property-price-api/internal/cache"
	"property-price-api/internal/config"
	"property-price-api/internal/handler"
	"property-price-api/internal/metrics"
	"property-price-api/internal/middleware"
	"property-price-api/internal/repository"
	"property-price-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Property Price Prediction API
//	@version		1.0
//	@description	Predicts the market price of residential property in Japan from address, floor area and building year.
//	@BasePath		/
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	// Database connection
	conn, err := pgxpool.New(context.Background(), config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	repo := repository.NewRepository(conn)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		log.Warn().Err(err).Msg("cannot ensure schema, predictions fall back to baseline pricing")
	}

	// Prediction cache. The service runs without it.
	var predictionCache service.PredictionCache
	var cachePinger handler.Pinger
	redisCache, err := cache.NewRedisCache(context.Background(), config.RedisAddress, config.RedisPassword)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, prediction caching disabled")
	} else {
		defer redisCache.Close()
		predictionCache = redisCache
		cachePinger = redisCache
	}

	// Initialize layers
	predictService := service.NewPredictService(repo, predictionCache, config.CacheTTL)
	historyService := service.NewHistoryService(repo)

	predictHandler := handler.NewPredictHandler(predictService)
	historyHandler := handler.NewHistoryHandler(historyService)
	healthHandler := handler.NewHealthHandler(repo, cachePinger)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(), middleware.Metrics())

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/predict", predictHandler.Predict)
	r.GET("/predictions", historyHandler.Recent)

	// The same routes behind the gateway prefix the deployed stack uses.
	api := r.Group("/api")
	api.POST("/predict", predictHandler.Predict)
	api.GET("/predictions", historyHandler.Recent)

	r.Run(config.ServerAddress)
}
