package models

import (
	"path/filepath"
	"strings"
	"time"
)

type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeTXT FileType = "txt"
	FileTypeCSV FileType = "csv"
)

// FileTypes lists the selectable types in display order.
var FileTypes = []FileType{FileTypePDF, FileTypeTXT, FileTypeCSV}

func (t FileType) Known() bool {
	switch t {
	case FileTypePDF, FileTypeTXT, FileTypeCSV:
		return true
	}
	return false
}

// Accept returns the extension hint for the file picker, e.g. ".pdf".
func (t FileType) Accept() string {
	if t == "" {
		return ""
	}
	return "." + string(t)
}

// ContentType returns the MIME type the prediction service expects for t.
func (t FileType) ContentType() string {
	switch t {
	case FileTypePDF:
		return "application/pdf"
	case FileTypeTXT:
		return "text/plain"
	case FileTypeCSV:
		return "text/csv"
	}
	return "application/octet-stream"
}

// Label is the name shown in the type selector.
func (t FileType) Label() string {
	return strings.ToUpper(string(t))
}

// FileTypeFromName guesses the type from a filename extension.
func FileTypeFromName(name string) FileType {
	t := FileType(strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), "."))
	if t.Known() {
		return t
	}
	return ""
}

type File struct {
	Name        string
	ContentType string
	Content     []byte
}

func (f *File) Size() int64 {
	return int64(len(f.Content))
}

type PredictResponse struct {
	Result *string `json:"result"`
}

type Submission struct {
	ID          string    `json:"id" db:"id"`
	Filename    string    `json:"filename" db:"filename"`
	FileSize    int64     `json:"file_size" db:"file_size"`
	ContentType string    `json:"content_type" db:"content_type"`
	FileType    string    `json:"file_type" db:"file_type"`
	Query       string    `json:"query" db:"query"`
	Result      string    `json:"result" db:"result"`
	S3Key       *string   `json:"s3_key,omitempty" db:"s3_key"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
