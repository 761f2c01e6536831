package media

import (
	"net/url"
	"strings"
	"time"
)

// Folder groups uploaded media by the entity it illustrates.
type Folder string

const (
	FolderEvents         Folder = "Events"
	FolderOrganizers     Folder = "Organizers"
	FolderCustomizations Folder = "Customizations"
	FolderLandingPages   Folder = "LandingPages"
)

var folders = []Folder{FolderEvents, FolderOrganizers, FolderCustomizations, FolderLandingPages}

// ParseFolder matches a folder name case-insensitively.
func ParseFolder(s string) (Folder, bool) {
	for _, f := range folders {
		if strings.EqualFold(string(f), strings.TrimSpace(s)) {
			return f, true
		}
	}
	return "", false
}

type Type string

const TypeImage Type = "Image"

// State is the lifecycle of one upload.
type State string

const (
	StateRequested State = "requested" // slot granted, id is provisional
	StateUploading State = "uploading"
	StateConfirmed State = "confirmed"
	StateFinalized State = "finalized"
	StateAbandoned State = "abandoned" // never confirmed before its slot expired
)

// Pending reports whether the upload still holds only a provisional id.
func (s State) Pending() bool {
	return s == StateRequested || s == StateUploading
}

// Record is the journal row of an upload, keyed by the provisional id.
type Record struct {
	ProvisionalID string    `json:"provisionalId"`
	FinalID       string    `json:"finalId,omitempty"`
	State         State     `json:"state"`
	FileName      string    `json:"fileName"`
	ContentType   string    `json:"contentType"`
	Size          int64     `json:"size"`
	Folder        Folder    `json:"folder"`
	ExpiresAt     string    `json:"expiresAt,omitempty"`
	URL           string    `json:"url,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PermanentURL builds the public URL of a finalized image.
//
// The backend does not return this URL; it is derived from the storage naming convention
// {base}/{folder}/images/{id}_{filename}. If that convention changes on the server side the
// URL will be wrong while the upload itself still succeeds.
func PermanentURL(base string, folder Folder, id, fileName string) string {
	return strings.TrimRight(base, "/") + "/" + strings.ToLower(string(folder)) + "/images/" +
		url.PathEscape(id) + "_" + url.PathEscape(fileName)
}
