package router

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"courseapp/internal/api/v1/dto"
	"courseapp/internal/api/v1/handler"
	"courseapp/internal/config"
	"courseapp/internal/middleware"
	"courseapp/internal/pubsub"
	"courseapp/internal/repository"
	"courseapp/internal/service"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsmiddleware "github.com/aws/smithy-go/middleware"
	"github.com/go-playground/validator/v10"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *sql.DB, error) {
	logger.Info().Str("environment", cfg.Environment).Msg("Router initializing")

	// 1. Open DB connection (connection pooling)
	dsn := cfg.DBConnectionString
	// In a development environment, we want to ensure that SSL is disabled for
	// local testing. In production, the connection string should be provided
	// with the correct SSL settings.
	if cfg.Environment == "development" && !strings.Contains(dsn, "sslmode") {
		separator := " "
		if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
			if strings.Contains(dsn, "?") {
				separator = "&"
			} else {
				separator = "?"
			}
		}
		dsn += separator + "sslmode=disable"
	}
	// For non-development environments that use a transaction pooler like pgbouncer,
	// we must use the simple query protocol to avoid issues with server-side prepared statements.
	if cfg.Environment != "development" {
		if !strings.Contains(dsn, "prefer_simple_protocol") {
			separator := "&"
			if !strings.Contains(dsn, "?") {
				separator = "?"
			}
			dsn += separator + "prefer_simple_protocol=true"
		}
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open DB connection")
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		logger.Error().Err(err).Msg("Failed to ping DB")
		return nil, nil, err
	}
	logger.Info().Msg("Database connection successful")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	// 2. Resolve signing secrets. Outside development they may come from
	// Secret Manager; env vars are the fallback either way.
	userSecret, adminSecret := cfg.JWTUserSecret, cfg.JWTAdminSecret
	if cfg.Environment != "development" && cfg.GCPProjectID != "" && cfg.JWTUserSecretName != "" {
		resolver, err := service.NewSecretManagerResolver(context.Background(), cfg)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to create secret resolver")
			return nil, nil, err
		}
		userSecret, adminSecret, err = resolver.ResolveSigningSecrets(context.Background(), cfg)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to resolve signing secrets")
			return nil, nil, err
		}
	}

	// 3. Initialize S3 client
	s3Config, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
		awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
	)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load S3 config")
		return nil, nil, err
	}
	s3Client := s3.NewFromConfig(s3Config, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3URL)
		o.UsePathStyle = true
	})
	publicURL := cfg.S3PublicURL
	if publicURL == "" {
		publicURL = cfg.S3URL
	}

	// 4. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := dto.RegisterCustomValidations(validate); err != nil {
		logger.Error().Err(err).Msg("Failed to register custom validations")
		return nil, nil, err
	}

	// 5. Initialize Pub/Sub publisher for purchase events (optional)
	var publisher pubsub.Publisher
	if cfg.GCPProjectID != "" {
		p, err := pubsub.NewPublisher(context.Background(), cfg)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to create Pub/Sub publisher")
			return nil, nil, err
		}
		publisher = p
	}

	// 6. Initialize repositories & services & handlers
	principalRepo := repository.NewPrincipalRepo(db)
	courseRepo := repository.NewCourseRepo(db, logger)
	purchaseRepo := repository.NewPurchaseRepo(db)

	tokenTTL := time.Duration(cfg.TokenTTLHours) * time.Hour
	authSvc := service.NewAuthService(principalRepo, userSecret, adminSecret, tokenTTL, logger)
	assetSvc := service.NewAssetService(s3Client, cfg.S3Bucket, publicURL, logger)
	courseSvc := service.NewCourseService(courseRepo, assetSvc, logger)
	purchaseSvc := service.NewPurchaseService(purchaseRepo, courseRepo, publisher, cfg.PurchaseEventTopic, logger)

	userHandler := handler.NewUserHandler(authSvc, purchaseSvc, validate)
	adminHandler := handler.NewAdminHandler(authSvc, courseSvc, validate)
	courseHandler := handler.NewCourseHandler(courseSvc, purchaseSvc, validate)

	// 7. Initialize middleware: one auth gate per principal kind
	userMw := middleware.Auth(userSecret, middleware.UserContextKey)
	adminMw := middleware.Auth(adminSecret, middleware.AdminContextKey)

	// 8. Create ServeMux router
	mux := http.NewServeMux()
	userHandler.RegisterRoutes(mux, userMw)
	adminHandler.RegisterRoutes(mux, adminMw)
	courseHandler.RegisterRoutes(mux, userMw)

	// 9. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		Debug:            false,
	})

	return middleware.LoggerMiddleware(c.Handler(mux)), db, nil
}

// removeDisableGzip is a workaround for S3 signature errors with some S3-compatible services.
// See: https://github.com/supabase/storage/issues/577
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}
