package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	docmodels "dochub/internal/documents/models"
	id "dochub/pkg/domain"
	dErrors "dochub/pkg/domain-errors"
	"dochub/pkg/platform/httputil"
)

type SelectServiceRequest struct {
	Service string `json:"service"`
}

type CreateApplicationRequest struct {
	Service string `json:"service"`
}

type RenameRequest struct {
	Title string `json:"title"`
}

type TransitionRequest struct {
	Reason string `json:"reason"`
}

// decodeOptional decodes a JSON body when one is present.
func decodeOptional(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	return httputil.DecodeJSON(r, v)
}

// confirmed reads the confirm query parameter. Anything but a true boolean
// counts as unconfirmed.
func confirmed(r *http.Request) bool {
	ok, err := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return err == nil && ok
}

const (
	filesField       = "files"
	applicationField = "applicationId"
	maxFieldBytes    = 128
)

// readUploads streams a multipart body and returns the metadata of every
// part in the files field. File contents are counted and discarded.
func readUploads(w http.ResponseWriter, r *http.Request, maxBytes int64) (id.ApplicationID, []docmodels.Upload, error) {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	reader, err := r.MultipartReader()
	if err != nil {
		return id.ApplicationID{}, nil, dErrors.New(dErrors.CodeBadRequest, "multipart form required")
	}

	var (
		appID   id.ApplicationID
		uploads []docmodels.Upload
	)
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return appID, nil, uploadError(err)
		}
		switch part.FormName() {
		case filesField:
			up, err := readFilePart(part)
			if err != nil {
				return appID, nil, uploadError(err)
			}
			if up.Name != "" {
				uploads = append(uploads, up)
			}
		case applicationField:
			raw, err := io.ReadAll(io.LimitReader(part, maxFieldBytes))
			if err != nil {
				return appID, nil, uploadError(err)
			}
			if v := strings.TrimSpace(string(raw)); v != "" {
				parsed, err := id.ParseApplicationID(v)
				if err != nil {
					return appID, nil, dErrors.New(dErrors.CodeBadRequest, "invalid application id")
				}
				appID = parsed
			}
		}
		_ = part.Close()
	}
	return appID, uploads, nil
}

func readFilePart(part *multipart.Part) (docmodels.Upload, error) {
	n, err := io.Copy(io.Discard, part)
	if err != nil {
		return docmodels.Upload{}, err
	}
	return docmodels.Upload{
		Name:        part.FileName(),
		ContentType: part.Header.Get("Content-Type"),
		SizeBytes:   n,
	}, nil
}

func uploadError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return dErrors.New(dErrors.CodeValidation, "upload too large")
	}
	return dErrors.New(dErrors.CodeBadRequest, "malformed multipart body")
}
