package storage

import (
	"context"
	"fmt"
	"io"
)

// UploadResult describes a stored object. Location is the public URL
// clients embed directly, for example as a user's avatar source.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader stores user-submitted media. The only producer today is
// the avatar flow; keys follow AvatarKey so a re-upload overwrites the
// previous image instead of accumulating objects.
type FileUploader interface {
	// Upload writes the object under key with the given content type.
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	// Delete removes the object. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// GetPublicURL resolves key against the bucket's public base URL.
	GetPublicURL(key string) string
}

// AvatarKey is the canonical object key for a user's avatar. One key per
// user keeps the bucket bounded by the user count.
func AvatarKey(userID int, ext string) string {
	return fmt.Sprintf("avatars/%d%s", userID, ext)
}
