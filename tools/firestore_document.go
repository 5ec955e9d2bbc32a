package tools

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Gets a document from a Firestore collection, nil when it does not exist
func GetFirestoreDocument(c context.Context, client *firestore.Client, collection, documentName string) (*firestore.DocumentSnapshot, error) {
	doc, err := client.Collection(collection).Doc(documentName).Get(c)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	return doc, nil
}

// Finds the first document whose field equals value, nil when none matches
func FindFirestoreDocument(c context.Context, client *firestore.Client, collection, field string, value interface{}) (*firestore.DocumentSnapshot, error) {
	iter := client.Collection(collection).Where(field, "==", value).Limit(1).Documents(c)
	defer iter.Stop()

	doc, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return doc, nil
}
