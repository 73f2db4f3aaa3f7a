package formdata

import (
	"bytes"
	"strings"
)

// PartKind tells field parts and file parts apart.
type PartKind string

const (
	FieldPart PartKind = "field"
	FilePart  PartKind = "file"
)

// defaultFileContentType is used for file parts without a MIME type (RFC 7578 §4.4).
const defaultFileContentType = "application/octet-stream"

// Part is one rendered section of a multipart body.
type Part struct {
	Kind     PartKind
	Name     string
	Filename string // file parts only
	MimeType string // file parts only
	Body     []byte
}

// Line breaks are percent-encoded the way browsers encode form names; quotes
// and backslashes are escaped as mime/multipart does.
var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"", "\r", "%0D", "\n", "%0A")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// validMIMEType reports whether s can be written as a header value.
func validMIMEType(s string) bool {
	for i := 0; i < len(s); i++ {
		if c := s[i]; (c < 0x20 && c != '\t') || c == 0x7f {
			return false
		}
	}
	return true
}

// header renders the part headers followed by the blank separator line.
func (p *Part) header() string {
	var sb strings.Builder
	sb.WriteString(`Content-Disposition: form-data; name="`)
	sb.WriteString(escapeQuotes(p.Name))
	sb.WriteString(`"`)
	if p.Kind == FilePart {
		sb.WriteString(`; filename="`)
		sb.WriteString(escapeQuotes(p.Filename))
		sb.WriteString(`"`)
		sb.WriteString("\r\nContent-Type: ")
		sb.WriteString(p.MimeType)
	}
	sb.WriteString("\r\n\r\n")
	return sb.String()
}

// size is the number of bytes writeTo emits for this part.
func (p *Part) size(boundary string) int64 {
	return int64(len(boundary)+4) + int64(len(p.header())) + int64(len(p.Body)) + 2
}

func (p *Part) writeTo(buf *bytes.Buffer, boundary string) {
	buf.WriteString("--")
	buf.WriteString(boundary)
	buf.WriteString("\r\n")
	buf.WriteString(p.header())
	buf.Write(p.Body)
	buf.WriteString("\r\n")
}

// closeDelimiter terminates the body.
func closeDelimiter(boundary string) string {
	return "--" + boundary + "--\r\n"
}
