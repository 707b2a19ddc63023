package service

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"

	"github.com/UnendingLoop/UploadServer/internal/model"
)

// ParseUpload extracts exactly one file from a multipart/form-data body.
// Plain form fields are ignored; a second file part aborts parsing
// immediately without buffering anything further. The file is read through
// a limit of maxFileSize+1 bytes so an oversize upload is detectable
// without buffering its tail.
func (s *ImageService) ParseUpload(contentType string, body io.Reader) (*model.IncomingFile, error) {
	mediaType, mtParams, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "multipart/form-data" {
		return nil, model.ErrBadContentType
	}
	boundary := mtParams["boundary"]
	if boundary == "" {
		return nil, model.ErrBadContentType
	}

	reader := multipart.NewReader(body, boundary)

	var file *model.IncomingFile
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrBadContentType, err)
		}

		if part.FileName() == "" {
			// NextPart discards the rest of the previous part, so plain
			// fields need no draining.
			continue
		}

		if file != nil {
			return nil, model.ErrMultipleFiles
		}

		data, err := io.ReadAll(io.LimitReader(part, s.maxFileSize+1))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrBadContentType, err)
		}

		name := part.FileName()
		if len(name) > model.MaxOriginalNameLen {
			name = name[:model.MaxOriginalNameLen]
		}

		file = &model.IncomingFile{
			Name: name,
			Data: data,
			Size: int64(len(data)),
		}
	}

	if file == nil {
		return nil, model.ErrNoFileUploaded
	}

	return file, nil
}
