package formdata

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/elnormous/contenttype"
	"github.com/gabriel-vasile/mimetype"
)

// File is any file-like attachment. Filename returns the explicit filename,
// or "" when the form name should be used to derive one.
type File interface {
	Filename() string
	MimeType() string
	Data() []byte
}

// MemoryFile is a File held in memory.
type MemoryFile struct {
	name     string
	mimeType string
	data     []byte
}

func (f *MemoryFile) Filename() string { return f.name }
func (f *MemoryFile) MimeType() string { return f.mimeType }
func (f *MemoryFile) Data() []byte     { return f.data }

// NewFile creates a file without an explicit filename.
func NewFile(data []byte, mimeType string) *MemoryFile {
	return &MemoryFile{mimeType: mimeType, data: data}
}

// NewNamedFile creates a file with an explicit filename.
func NewNamedFile(name string, data []byte, mimeType string) *MemoryFile {
	return &MemoryFile{name: name, mimeType: mimeType, data: data}
}

// NewFileFromPath reads path into memory. The filename is the base name of
// path and the MIME type is detected from the content, falling back to the
// extension.
func NewFileFromPath(path string) (*MemoryFile, error) {
	if path == "" {
		return nil, fmt.Errorf("file path is empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path %q is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &MemoryFile{
		name:     filepath.Base(path),
		mimeType: getMIMEType(path, data),
		data:     data,
	}, nil
}

// NewFileFromReader drains r into memory. An empty mimeType is detected from
// the content.
func NewFileFromReader(name string, r io.Reader, mimeType string) (*MemoryFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if mimeType == "" {
		mimeType = detectMIMEType(data)
	}
	return &MemoryFile{name: name, mimeType: mimeType, data: data}, nil
}

// detectMIMEType sniffs data and drops parameters such as charset.
func detectMIMEType(data []byte) string {
	return bareMIME(mimetype.Detect(data).String())
}

// bareMIME reduces a media type to "type/subtype", or "" if it does not parse.
func bareMIME(s string) string {
	mt := contenttype.NewMediaType(s)
	if mt.Type == "" || mt.Subtype == "" {
		return ""
	}
	return mt.Type + "/" + mt.Subtype
}

// getMIMEType detects the MIME type from data and falls back to the
// extension of path when the content is not recognised.
func getMIMEType(path string, data []byte) string {
	if detected := detectMIMEType(data); detected != "" && detected != defaultFileContentType {
		return detected
	}
	return mimeTypeFromExtension(path)
}

func mimeTypeFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return "text/plain"
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".json":
		return "application/json"
	case ".csv":
		return "text/csv"
	case ".xml":
		return "application/xml"
	case ".html", ".htm":
		return "text/html"
	case ".zip":
		return "application/zip"
	default:
		return "application/octet-stream"
	}
}
