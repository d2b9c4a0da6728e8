// Package archive stores completed mood analyses in Google Cloud Storage.
package archive

import (
	"context"
	"path"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/oksasatya/moodwatch/pkg/helpers"
)

type GCSArchive struct {
	client *storage.Client
	bucket string
}

func NewGCSArchive(client *storage.Client, bucket string) *GCSArchive {
	return &GCSArchive{client: client, bucket: bucket}
}

// ObjectPath is analyses/<userID>/<uuid>.md.
func ObjectPath(userID int64, id string) string {
	return path.Join("analyses", strconv.FormatInt(userID, 10), id+".md")
}

// Archive uploads the analysis text and returns the object URL.
func (a *GCSArchive) Archive(ctx context.Context, userID int64, analysis string) (string, error) {
	objectPath := ObjectPath(userID, uuid.NewString())
	return helpers.UploadObject(ctx, a.client, a.bucket, objectPath, "text/markdown; charset=utf-8", strings.NewReader(analysis))
}
