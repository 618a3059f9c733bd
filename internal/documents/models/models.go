// Package models defines uploaded document metadata. File contents are
// never stored.
package models

import (
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	id "dochub/pkg/domain"
)

// Document is the metadata of one uploaded file.
type Document struct {
	ID            id.DocumentID
	OwnerID       id.UserID
	ApplicationID id.ApplicationID
	Name          string
	ContentType   string
	Type          string
	SizeBytes     int64
	UploadedAt    time.Time
}

// Upload is what the transport layer reads from one multipart part.
type Upload struct {
	Name        string
	ContentType string
	SizeBytes   int64
}

// New builds a document record from upload metadata.
func New(ownerID id.UserID, appID id.ApplicationID, up Upload, now time.Time) *Document {
	name := filepath.Base(strings.TrimSpace(up.Name))
	if name == "." || name == "/" {
		name = ""
	}
	contentType := up.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(name))
	}
	return &Document{
		ID:            id.DocumentID(uuid.New()),
		OwnerID:       ownerID,
		ApplicationID: appID,
		Name:          name,
		ContentType:   contentType,
		Type:          TypeFor(contentType, name),
		SizeBytes:     up.SizeBytes,
		UploadedAt:    now,
	}
}

// Size renders SizeBytes for display, e.g. "2.4 MB".
func (d *Document) Size() string {
	if d.SizeBytes < 0 {
		return humanize.Bytes(0)
	}
	return humanize.Bytes(uint64(d.SizeBytes))
}

// TypeFor derives the short display type from the MIME type, falling back to
// the file extension.
func TypeFor(contentType, name string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(contentType)
	}
	switch {
	case strings.Contains(mediaType, "pdf"):
		return "PDF"
	case strings.Contains(mediaType, "jpeg"):
		return "JPG"
	case strings.Contains(mediaType, "png"):
		return "PNG"
	case strings.Contains(mediaType, "word"):
		return "DOC"
	}
	if ext := strings.TrimPrefix(filepath.Ext(name), "."); ext != "" {
		return strings.ToUpper(ext)
	}
	return "FILE"
}
