package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/OkunrinmetaWebDevelopment/AphiniTi-Profile-Answers/pkg/answers"
	"github.com/OkunrinmetaWebDevelopment/AphiniTi-Profile-Answers/pkg/apihelpers"
	"github.com/OkunrinmetaWebDevelopment/AphiniTi-Profile-Answers/pkg/db"
	"github.com/OkunrinmetaWebDevelopment/AphiniTi-Profile-Answers/pkg/utils"
	"github.com/OkunrinmetaWebDevelopment/AphiniTi-Profile-Answers/services/answers-api/apihandlers"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	answersDB "github.com/OkunrinmetaWebDevelopment/AphiniTi-Profile-Answers/pkg/db/answers"
)

var conf AnswersApiConfig

func main() {
	answersDBService, err := answersDB.NewAnswersDBService(db.DBConfigFromYamlObj(conf.DBConfigs.AnswersDB))
	if err != nil {
		slog.Error("Error connecting to Answers DB", slog.String("error", err.Error()))
		return
	}

	answerService := answers.NewAnswerService(answersDBService, conf.AnswersConfig.MaxSaveAttempts)

	corsMaxAge := 12 * time.Hour
	if conf.GinConfig.CORSMaxAge != "" {
		corsMaxAge, err = utils.ParseDurationString(conf.GinConfig.CORSMaxAge)
		if err != nil {
			slog.Error("Error parsing CORS max age", slog.String("error", err.Error()))
			return
		}
	}

	// Start webserver
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length"},
		ExposeHeaders:    []string{"Authorization", "Content-Type", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	}))

	// Add handlers
	router.GET("/", apihandlers.HealthCheckHandle)
	v1Root := router.Group("/v1")

	v1APIHandlers := apihandlers.NewHTTPHandler(
		conf.UserAuthConfig.JWTSignKey,
		answerService,
	)
	v1APIHandlers.AddAnswersAPI(v1Root)

	if conf.GinConfig.DebugMode {
		apihelpers.WriteRoutesToFile(router, "answers-api-routes.txt")
	}

	// Start the server
	slog.Info("Starting Answers API on port " + conf.GinConfig.Port)
	if !conf.GinConfig.MTLS.Use {
		err := router.Run(":" + conf.GinConfig.Port)
		if err != nil {
			slog.Error("Exited Answers API", slog.String("error", err.Error()))
			return
		}
	} else {
		// Create tls config for mutual TLS
		tlsConfig, err := apihelpers.LoadTLSConfig(conf.GinConfig.MTLS.CertificatePaths)
		if err != nil {
			slog.Error("Error loading TLS config.", slog.String("error", err.Error()))
			return
		}

		server := &http.Server{
			Addr:      ":" + conf.GinConfig.Port,
			Handler:   router,
			TLSConfig: tlsConfig,
		}

		err = server.ListenAndServeTLS(conf.GinConfig.MTLS.CertificatePaths.ServerCertPath, conf.GinConfig.MTLS.CertificatePaths.ServerKeyPath)
		if err != nil {
			slog.Error("Exited Answers API", slog.String("error", err.Error()))
			return
		}
	}
}
