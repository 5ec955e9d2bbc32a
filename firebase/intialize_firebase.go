package firebase

import (
	"context"

	"socio_verify_api/config"
	"socio_verify_api/tools"
	"socio_verify_api/types"

	"cloud.google.com/go/logging"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go"
)

// InitFirebaseApp creates the Firebase app and only the clients the
// configured drivers use: Firestore for the firestore store, Cloud Storage
// for the gcs content driver.
func InitFirebaseApp(ctx context.Context, cfg config.Server, logger tools.Logger) (*types.FirebaseApp, error) {
	var firebaseConfig *firebase.Config
	if cfg.GCPProjectID != "" {
		firebaseConfig = &firebase.Config{ProjectID: cfg.GCPProjectID}
	}

	app, err := firebase.NewApp(ctx, firebaseConfig)
	if err != nil {
		logInitError(logger, "Error initializing Firebase app", err)
		return nil, err
	}
	logInitSuccess(logger, "Firebase app initialized successfully")

	firebaseApp := &types.FirebaseApp{Admin: app}

	// Initialize the Firestore client
	if cfg.StoreDriver == config.StoreFirestore {
		db, err := app.Firestore(ctx)
		if err != nil {
			logInitError(logger, "Error initializing Firestore client", err)
			return nil, err
		}
		firebaseApp.DB = db
		logInitSuccess(logger, "Firestore client initialized successfully")
	}

	// Initialize the Storage client
	if cfg.ContentDriver == config.ContentGCS {
		gcs, err := storage.NewClient(ctx)
		if err != nil {
			logInitError(logger, "Error initializing Google Cloud Storage client", err)
			_ = firebaseApp.Close()
			return nil, err
		}
		firebaseApp.Storage = gcs
		logInitSuccess(logger, "Storage client initialized successfully")
	}

	return firebaseApp, nil
}

func logInitError(logger tools.Logger, payload string, err error) {
	logger.Log(logging.Entry{
		Severity: logging.Error,
		Payload:  payload,
		Labels:   map[string]string{"error": err.Error()},
	})
}

func logInitSuccess(logger tools.Logger, payload string) {
	logger.Log(logging.Entry{
		Severity: logging.Info,
		Payload:  payload,
		Labels:   map[string]string{"status": "success"},
	})
}
