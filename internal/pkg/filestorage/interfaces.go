package filestorage

import "mime/multipart"

// PhotoStorage is the storage collaborator for attendance and credential
// photos. The application only keeps the returned reference; image content
// is never interpreted beyond presence.
type PhotoStorage interface {
	// SavePhoto stores an uploaded photo under a subdirectory and returns
	// the stable reference to persist.
	SavePhoto(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeletePhoto removes a stored photo. Deleting a missing photo is not
	// an error.
	DeletePhoto(photoPath string) error

	// FullPath returns the filesystem path backing a stored reference.
	FullPath(photoPath string) string
}
