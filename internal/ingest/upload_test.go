package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetdocs/fleetdocs/constants"
)

func TestBuildUpload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		filename    string
		wantErr     bool
		contentType string
	}{
		{name: "pdf", filename: "fitness.pdf", contentType: "application/pdf"},
		{name: "uppercase extension", filename: "FITNESS.PDF", contentType: "application/pdf"},
		{name: "jpeg", filename: "scan.jpeg", contentType: "image/jpeg"},
		{name: "png", filename: "scan.png", contentType: "image/png"},
		{name: "executable rejected", filename: "payload.exe", wantErr: true},
		{name: "no extension rejected", filename: "fitness", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			up, err := BuildUpload("trucks/MH20EE1234", constants.DocTypeFitness, File{
				Filename: tt.filename,
				Content:  []byte("file-bytes"),
			})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(up.Key, "trucks/MH20EE1234/fitness-"), "key %q", up.Key)
			assert.Equal(t, tt.contentType, up.ContentType)
			assert.Equal(t, []byte("file-bytes"), up.Body)
		})
	}
}

func TestBuildUploadKeysAreUnique(t *testing.T) {
	t.Parallel()

	a, err := BuildUpload("extract", constants.DocTypeRC, File{Filename: "rc.pdf"})
	require.NoError(t, err)
	b, err := BuildUpload("extract", constants.DocTypeRC, File{Filename: "rc.pdf"})
	require.NoError(t, err)
	assert.NotEqual(t, a.Key, b.Key)
}
