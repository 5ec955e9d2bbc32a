package tools

import (
	"context"
	"io"

	gcs "cloud.google.com/go/storage"
)

var ErrObjectNotExist = gcs.ErrObjectNotExist

// Opens a reader on an object, ErrObjectNotExist when it is missing
func GetObjectFromStorage(c context.Context, storage *gcs.Client, bucket, path string) (io.ReadCloser, error) {
	rc, err := storage.Bucket(bucket).Object(path).NewReader(c)
	if err != nil {
		return nil, err
	}

	return rc, nil
}
