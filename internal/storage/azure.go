// Package storage stages local input files in Azure Blob Storage so the
// generation APIs can fetch them by URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"

	"firefly/internal/config"
)

// DefaultSASExpiry is the read-access lifetime of staged blobs.
const DefaultSASExpiry = time.Hour

// Uploader stages files in a blob container and hands out read-only
// SAS URLs.
type Uploader struct {
	client     *azblob.Client
	credential *azblob.SharedKeyCredential
	account    string
	container  string
	expiry     time.Duration

	now func() time.Time
}

// NewUploader constructs an uploader from shared-key credentials. A
// non-positive expiry selects the default.
func NewUploader(creds config.StorageCredentials, expiry time.Duration) (*Uploader, error) {
	credential, err := azblob.NewSharedKeyCredential(creds.Account, creds.Key)
	if err != nil {
		return nil, fmt.Errorf("storage credential: %w", err)
	}
	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", creds.Account)
	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	if expiry <= 0 {
		expiry = DefaultSASExpiry
	}
	return &Uploader{
		client:     client,
		credential: credential,
		account:    creds.Account,
		container:  creds.Container,
		expiry:     expiry,
		now:        time.Now,
	}, nil
}

// Upload stages a local file and returns a read-only SAS URL for it.
// Existing blobs with the same name are overwritten.
func (u *Uploader) Upload(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open input file: %w", err)
	}
	defer file.Close()

	blobName := filepath.Base(path)
	options := &azblob.UploadFileOptions{}
	if contentType := mime.TypeByExtension(filepath.Ext(path)); contentType != "" {
		options.HTTPHeaders = &blob.HTTPHeaders{BlobContentType: &contentType}
	}
	if _, err := u.client.UploadFile(ctx, u.container, blobName, file, options); err != nil {
		return "", classifyUploadError(blobName, err)
	}
	return u.signedURL(blobName)
}

// classifyUploadError tags service responses with their retry class so
// throttled or faulting uploads get the same retry treatment as API calls.
func classifyUploadError(blobName string, err error) error {
	wrapped := fmt.Errorf("upload %s: %w", blobName, err)
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return &UploadError{err: wrapped, StatusCode: respErr.StatusCode}
	}
	return wrapped
}

// UploadError is a blob upload failure carrying the service status code.
type UploadError struct {
	err        error
	StatusCode int
}

func (e *UploadError) Error() string { return e.err.Error() }

func (e *UploadError) Unwrap() error { return e.err }

// Transient reports whether the upload is worth retrying. Throttling,
// timeouts, and server faults are; other client errors are not.
func (e *UploadError) Transient() bool {
	switch {
	case e.StatusCode == http.StatusRequestTimeout:
		return true
	case e.StatusCode == http.StatusTooManyRequests:
		return true
	case e.StatusCode >= 500:
		return true
	}
	return false
}

// signedURL builds a read-only SAS URL for a staged blob.
func (u *Uploader) signedURL(blobName string) (string, error) {
	permissions := sas.BlobPermissions{Read: true}
	values := sas.BlobSignatureValues{
		Protocol:      sas.ProtocolHTTPS,
		ExpiryTime:    u.now().UTC().Add(u.expiry),
		Permissions:   permissions.String(),
		ContainerName: u.container,
		BlobName:      blobName,
	}
	params, err := values.SignWithSharedKey(u.credential)
	if err != nil {
		return "", fmt.Errorf("sign blob url: %w", err)
	}
	return fmt.Sprintf("https://%s.blob.core.windows.net/%s/%s?%s", u.account, u.container, blobName, params.Encode()), nil
}
