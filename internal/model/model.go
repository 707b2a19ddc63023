// Package model provides data-structs for internal app-usage
package model

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// Image is the persisted metadata record of one uploaded file.
// Filename is the unique storage key without extension; the byte blob
// on disk is named Filename + FileType.
type Image struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	Size         int64     `json:"size"`
	FileType     string    `json:"file_type"`
	UploadTime   time.Time `json:"upload_time"`
}

// IncomingFile carries one file extracted from a multipart request.
type IncomingFile struct {
	Name string // client-supplied name, truncated to MaxOriginalNameLen
	Data []byte
	Size int64
}

// Listing is the response shape of the paginated images list.
type Listing struct {
	Files      []string `json:"files"`
	TotalPages int      `json:"total_pages"`
}

//--------------------

const (
	// MaxOriginalNameLen bounds the client-supplied filename before the
	// storage key is derived from it.
	MaxOriginalNameLen = 100

	// DefaultMaxFileSize limits upload size to 5 MiB unless configured.
	DefaultMaxFileSize int64 = 5 << 20
)

// SupportedFormats is the allow-set of file extensions, lower-cased,
// including the dot.
var SupportedFormats = map[string]bool{
	".jpg": true,
	".png": true,
	".gif": true,
}

// SupportedFormatsList renders the allow-set for error messages.
func SupportedFormatsList() string {
	exts := make([]string, 0, len(SupportedFormats))
	for ext := range SupportedFormats {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}

//--------------------

var (
	ErrCommon500         error = errors.New("something went wrong. Try again later")     // 500
	ErrBadContentType    error = errors.New("Bad Request: Expected multipart/form-data") // 400
	ErrNoFileUploaded    error = errors.New("No file was uploaded.")                     // 400
	ErrMultipleFiles     error = errors.New("only one file can be uploaded per request") // 400
	ErrMaxSizeExceeded   error = errors.New("file exceeds the maximum allowed size")     // 400
	ErrUnsupportedFormat error = errors.New("unsupported file format")                   // 400
	ErrImageNotFound     error = errors.New("specified image doesn't exist")             // 404

	ErrInvalidPage         error = errors.New("invalid page number")          // 400
	ErrInvalidPerPage      error = errors.New("invalid per_page value")       // 400
	ErrPerPageNotAvailable error = errors.New("per_page value not available") // 400
	ErrInvalidSortParam    error = errors.New("invalid sort_param")           // 400
	ErrInvalidSortValue    error = errors.New("invalid sort_value")           // 400

	ErrEntityCreation error = errors.New("failed to create image record") // 500
	ErrEntityDeletion error = errors.New("failed to delete image record") // 500
	ErrQueryExecution error = errors.New("failed to execute query")       // 500
)
