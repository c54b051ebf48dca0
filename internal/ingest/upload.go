package ingest

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/fleetdocs/fleetdocs/constants"
)

// File is a document file as received from a client, before it is assigned
// an object key.
type File struct {
	Filename string
	Content  []byte
}

// BuildUpload validates the file extension and assigns the file an object
// key under scope, e.g. trucks/MH20EE1234/fitness-1b9f0c2a.pdf.
func BuildUpload(scope string, dt constants.DocumentType, f File) (Upload, error) {
	ext := constants.NormalizeExt(filepath.Ext(f.Filename))
	if _, ok := constants.AllowedExtensions[ext]; !ok {
		return Upload{}, fmt.Errorf("unsupported file extension %q", filepath.Ext(f.Filename))
	}
	key := fmt.Sprintf("%s/%s-%s.%s", scope, dt, uuid.NewString()[:8], ext)
	return Upload{Key: key, Body: f.Content, ContentType: constants.ContentTypes[ext]}, nil
}
