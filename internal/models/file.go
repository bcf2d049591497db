package models

import (
	"path/filepath"
	"strings"
	"time"
)

// FileType classifies a file for display and filtering purposes.
type FileType string

const (
	TypeDocument    FileType = "document"
	TypeImage       FileType = "image"
	TypePDF         FileType = "pdf"
	TypeAudio       FileType = "audio"
	TypeVideo       FileType = "video"
	TypeSpreadsheet FileType = "spreadsheet"
	TypeText        FileType = "text"
	TypeOther       FileType = "other"
)

// FileRecord represents a file in the hierarchy.
// ParentID is nil for files at the root. Content, Size and URL are optional:
// locally created text files carry Content, uploaded files carry Size and URL.
type FileRecord struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       FileType  `json:"type"`
	ParentID   *string   `json:"parentId"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
	Content    string    `json:"content,omitempty"`
	Size       int64     `json:"size,omitempty"`
	URL        string    `json:"url,omitempty"`
	Starred    bool      `json:"starred,omitempty"`
	Shared     bool      `json:"shared,omitempty"`
}

// FolderRecord represents a folder in the hierarchy.
// Children are never stored inline; membership is derived by scanning for
// matching ParentID values.
type FolderRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parentId"`
	CreatedAt time.Time `json:"createdAt"`
	Starred   bool      `json:"starred,omitempty"`
	Shared    bool      `json:"shared,omitempty"`
}

// Breadcrumb is one element of the root-to-cursor path.
type Breadcrumb struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RootBreadcrumb is the synthetic entry every breadcrumb path starts with.
// The root folder is virtual: it has no FolderRecord.
var RootBreadcrumb = Breadcrumb{ID: "root", Name: "Home"}

// FileUpdate carries the fields UpdateFile may merge into a FileRecord.
// Nil pointers mean "leave unchanged".
type FileUpdate struct {
	Name    *string
	Type    *FileType
	Content *string
	Size    *int64
	URL     *string
}

// TypeFromExtension infers a FileType from a file name's extension.
func TypeFromExtension(name string) FileType {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))

	switch ext {
	case "jpg", "jpeg", "png", "gif", "webp", "svg":
		return TypeImage
	case "pdf":
		return TypePDF
	case "mp3", "wav", "ogg":
		return TypeAudio
	case "mp4", "webm", "mov":
		return TypeVideo
	case "xlsx", "xls", "csv":
		return TypeSpreadsheet
	case "txt", "md":
		return TypeText
	case "doc", "docx":
		return TypeDocument
	}

	return TypeOther
}

// TypeFromContentType buckets a MIME content type the way uploads are
// registered: anything image/* is an image, everything else a document.
func TypeFromContentType(contentType string) FileType {
	if strings.Contains(contentType, "image") {
		return TypeImage
	}
	return TypeDocument
}
