package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

const (
	StoreFirestore = "firestore"
	StoreMongo     = "mongo"
	StorePostgres  = "postgres"

	ContentIPFS = "ipfs"
	ContentGCS  = "gcs"

	LogSlog  = "slog"
	LogCloud = "cloud"
)

// Server captures everything main needs to wire the service.
type Server struct {
	Addr string

	RPCURL          string
	ContractAddress string
	RPCTimeout      time.Duration

	ContentDriver     string
	ContentGatewayURL string
	MediaGatewayURL   string
	ContentBucket     string
	ContentPrefix     string
	GatewayTimeout    time.Duration

	StoreDriver   string
	GCPProjectID  string
	MongoURI      string
	MongoDatabase string
	PostgresURL   string

	LogDriver string
	LogName   string

	ProbeTimeout     time.Duration
	ProbeConcurrency int

	ProfileBaseURL string
}

// FromEnv builds a Server config from environment variables. The variable
// names used by the first deployment are accepted as fallbacks.
func FromEnv() Server {
	port := env("PORT", "8080")

	return Server{
		Addr: "0.0.0.0:" + port,

		RPCURL:          env("RPC_URL", os.Getenv("TRON_RPC_URL")),
		ContractAddress: env("CONTRACT_ADDRESS", os.Getenv("ContentAuthenticator_ADDRESS")),
		RPCTimeout:      envDuration("RPC_TIMEOUT", 15*time.Second),

		ContentDriver:     env("CONTENT_DRIVER", ContentIPFS),
		ContentGatewayURL: env("CONTENT_GATEWAY_URL", env("PINATA_GATEWAY", "https://gateway.pinata.cloud/ipfs")),
		MediaGatewayURL:   os.Getenv("MEDIA_GATEWAY_URL"),
		ContentBucket:     os.Getenv("CONTENT_BUCKET"),
		ContentPrefix:     os.Getenv("CONTENT_PREFIX"),
		GatewayTimeout:    envDuration("GATEWAY_TIMEOUT", 20*time.Second),

		StoreDriver:   env("STORE_DRIVER", StoreFirestore),
		GCPProjectID:  env("GCP_PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT")),
		MongoURI:      env("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: env("MONGODB_DATABASE", "socio"),
		PostgresURL:   os.Getenv("POSTGRES_URL"),

		LogDriver: env("LOG_DRIVER", LogSlog),
		LogName:   env("LOG_NAME", "socio-verify-api"),

		ProbeTimeout:     envDuration("PROBE_TIMEOUT", 3*time.Second),
		ProbeConcurrency: envInt("PROBE_CONCURRENCY", 4),

		ProfileBaseURL: env("PROFILE_BASE_URL", "https://blockto.in"),
	}
}

// Validate rejects configurations main cannot start with.
func (s Server) Validate() error {
	if s.RPCURL == "" {
		return errors.New("RPC_URL is required")
	}
	if !common.IsHexAddress(s.ContractAddress) {
		return fmt.Errorf("CONTRACT_ADDRESS %q is not a hex address", s.ContractAddress)
	}

	switch s.ContentDriver {
	case ContentIPFS:
		if s.ContentGatewayURL == "" {
			return errors.New("CONTENT_GATEWAY_URL is required for the ipfs content driver")
		}
	case ContentGCS:
		if s.ContentBucket == "" {
			return errors.New("CONTENT_BUCKET is required for the gcs content driver")
		}
	default:
		return fmt.Errorf("unknown CONTENT_DRIVER %q", s.ContentDriver)
	}

	switch s.StoreDriver {
	case StoreFirestore:
	case StoreMongo:
		if s.MongoURI == "" {
			return errors.New("MONGODB_URI is required for the mongo store driver")
		}
	case StorePostgres:
		if s.PostgresURL == "" {
			return errors.New("POSTGRES_URL is required for the postgres store driver")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", s.StoreDriver)
	}

	switch s.LogDriver {
	case LogSlog:
	case LogCloud:
		if s.GCPProjectID == "" {
			return errors.New("GCP_PROJECT_ID is required for cloud logging")
		}
	default:
		return fmt.Errorf("unknown LOG_DRIVER %q", s.LogDriver)
	}

	if s.ProbeConcurrency < 1 {
		return errors.New("PROBE_CONCURRENCY must be at least 1")
	}
	return nil
}

// MediaBaseURL falls back to the content gateway when no separate media
// gateway is configured.
func (s Server) MediaBaseURL() string {
	if s.MediaGatewayURL != "" {
		return s.MediaGatewayURL
	}
	return s.ContentGatewayURL
}

// NeedsFirebase reports whether any selected driver talks to Google Cloud.
func (s Server) NeedsFirebase() bool {
	return s.StoreDriver == StoreFirestore || s.ContentDriver == ContentGCS
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
