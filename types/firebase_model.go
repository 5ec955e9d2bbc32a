package types

import (
	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go"
)

// FirebaseApp holds the Google clients that the selected drivers need. A
// client is nil when no configured driver uses it.
type FirebaseApp struct {
	Admin   *firebase.App
	DB      *firestore.Client
	Storage *storage.Client
}

func (a *FirebaseApp) Close() error {
	if a == nil {
		return nil
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			return err
		}
	}
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
