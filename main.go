package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"socio_verify_api/config"
	"socio_verify_api/content"
	"socio_verify_api/contract"
	"socio_verify_api/firebase"
	"socio_verify_api/handlers"
	"socio_verify_api/metrics"
	"socio_verify_api/middlewares"
	"socio_verify_api/presentation"
	"socio_verify_api/store"
	"socio_verify_api/tools"
	"socio_verify_api/types"
	"socio_verify_api/verification"

	"cloud.google.com/go/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v\n", err)
	}

	// Initialize the logger
	var logger tools.Logger = tools.NewSlogLogger(os.Stdout)
	if cfg.LogDriver == config.LogCloud {
		cloudLogger, loggingClient, err := tools.NewCloudLogger(ctx, cfg.GCPProjectID, cfg.LogName)
		if err != nil {
			log.Fatalf("Failed to initialize Cloud Logging: %v\n", err)
		}
		defer loggingClient.Close()
		logger = cloudLogger
	}

	// Initialize Firebase only for the drivers that need it
	var firebaseApp *types.FirebaseApp
	if cfg.NeedsFirebase() {
		var err error
		firebaseApp, err = firebase.InitFirebaseApp(ctx, cfg, logger)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v\n", err)
		}
		defer firebaseApp.Close()
	}

	contractClient, closeContract, err := contract.Dial(ctx, cfg.RPCURL, cfg.ContractAddress, cfg.RPCTimeout)
	if err != nil {
		log.Fatalf("Failed to connect to the contract: %v\n", err)
	}
	defer closeContract()

	posts, closeStore, err := openPostStore(ctx, cfg, firebaseApp)
	if err != nil {
		log.Fatalf("Failed to initialize the post store: %v\n", err)
	}
	defer closeStore()

	gateway := openContentGateway(cfg, firebaseApp)

	m := metrics.New(prometheus.DefaultRegisterer)
	service := verification.NewService(contractClient, posts, gateway, logger, m)
	prober := presentation.NewProber(gateway, logger, m, cfg.ProbeConcurrency)
	renderer := presentation.NewRenderer(gateway, prober, cfg.ProfileBaseURL, cfg.ProbeTimeout, handlers.MediaPreviewPath)

	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestIdMiddleware(), middlewares.RequestLoggingMiddleware(logger, m))

	// Disable TrustedProxies feature
	if err := r.SetTrustedProxies(nil); err != nil {
		log.Fatalf("Failed to set trusted proxies: %v\n", err)
	}

	r.GET("/healthz", handlers.HealthHandler())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.POST("/verify", handlers.VerifyContentHandler(logger, service))

	postGroup := api.Group("/post/:id")
	postGroup.Use(middlewares.VerificationIdParamMiddleware(logger))
	postGroup.GET("", handlers.GetPostHandler(logger, service))
	postGroup.GET("/view", handlers.GetPostViewHandler(logger, service, renderer))

	mediaGroup := api.Group("/media/:cid")
	mediaGroup.Use(middlewares.CidParamMiddleware(logger))
	mediaGroup.GET("", handlers.GetMediaHandler(logger, gateway))
	mediaGroup.GET("/preview", handlers.GetMediaPreviewHandler(logger, gateway))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log(logging.Entry{
			Severity: logging.Info,
			Payload:  "Server listening",
			Labels:   map[string]string{"addr": cfg.Addr, "store": cfg.StoreDriver, "content": cfg.ContentDriver},
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v\n", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log(logging.Entry{
			Severity: logging.Error,
			Payload:  "Graceful shutdown failed",
			Labels:   map[string]string{"error": err.Error()},
		})
	}
}

func openPostStore(ctx context.Context, cfg config.Server, firebaseApp *types.FirebaseApp) (verification.PostStore, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		mongoStore, disconnect, err := store.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		return mongoStore, func() { _ = disconnect(context.Background()) }, nil
	case config.StorePostgres:
		pool, err := store.NewPostgresPool(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		return store.NewPostgresStore(pool), pool.Close, nil
	default:
		return store.NewFirestoreStore(firebaseApp.DB), func() {}, nil
	}
}

func openContentGateway(cfg config.Server, firebaseApp *types.FirebaseApp) content.Gateway {
	if cfg.ContentDriver == config.ContentGCS {
		return content.NewGCSGateway(firebaseApp.Storage, cfg.ContentBucket, cfg.ContentPrefix, cfg.MediaGatewayURL)
	}
	return content.NewIPFSGateway(cfg.ContentGatewayURL, cfg.MediaBaseURL(), cfg.GatewayTimeout)
}
