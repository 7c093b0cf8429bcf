package main

import (
	"os"

	"github.com/OkunrinmetaWebDevelopment/AphiniTi-Profile-Answers/pkg/apihelpers"
	"github.com/OkunrinmetaWebDevelopment/AphiniTi-Profile-Answers/pkg/db"
	"github.com/OkunrinmetaWebDevelopment/AphiniTi-Profile-Answers/pkg/utils"
	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_ANSWERS_DB_USERNAME = "ANSWERS_DB_USERNAME"
	ENV_ANSWERS_DB_PASSWORD = "ANSWERS_DB_PASSWORD"
	ENV_USER_JWT_SIGN_KEY   = "USER_JWT_SIGN_KEY"
)

type AnswersApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`
		CORSMaxAge   string   `json:"cors_max_age" yaml:"cors_max_age"`

		// Mutual TLS configs
		MTLS struct {
			Use              bool                        `json:"use" yaml:"use"`
			CertificatePaths apihelpers.CertificatePaths `json:"certificate_paths" yaml:"certificate_paths"`
		} `json:"mtls" yaml:"mtls"`
	} `json:"gin_config" yaml:"gin_config"`

	// user auth configs
	UserAuthConfig struct {
		JWTSignKey string `json:"jwt_sign_key" yaml:"jwt_sign_key"`
	} `json:"user_auth_config" yaml:"user_auth_config"`

	// Answer record configs
	AnswersConfig struct {
		MaxSaveAttempts int `json:"max_save_attempts" yaml:"max_save_attempts"`
	} `json:"answers_config" yaml:"answers_config"`

	// DB configs
	DBConfigs struct {
		AnswersDB db.DBConfigYaml `json:"answers_db" yaml:"answers_db"`
	} `json:"db_configs" yaml:"db_configs"`
}

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(
		conf.Logging.LogLevel,
		conf.Logging.IncludeSrc,
		conf.Logging.LogToFile,
		conf.Logging.Filename,
		conf.Logging.MaxSize,
		conf.Logging.MaxAge,
		conf.Logging.MaxBackups,
		conf.Logging.CompressOldLogs,
	)

	// Override secrets from environment variables
	secretsOverride()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_ANSWERS_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.AnswersDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_ANSWERS_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.AnswersDB.Password = dbPassword
	}

	if userJwtSignKey := os.Getenv(ENV_USER_JWT_SIGN_KEY); userJwtSignKey != "" {
		conf.UserAuthConfig.JWTSignKey = userJwtSignKey
	}
}
