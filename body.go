package formdata

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
)

// Body is an encoded multipart/form-data payload and the boundary it was
// framed with.
type Body struct {
	Boundary string
	Data     []byte
	Parts    []*Part
}

// ContentType is the header value the caller must send with Data.
func (b *Body) ContentType() string { return contentType(b.Boundary) }

func (b *Body) ContentLength() int64 { return int64(len(b.Data)) }

// Reader returns a fresh reader over Data.
func (b *Body) Reader() io.Reader { return bytes.NewReader(b.Data) }

// Header returns the Content-Type and Content-Length headers for Data.
func (b *Body) Header() http.Header {
	h := make(http.Header)
	h.Set("Content-Type", b.ContentType())
	h.Set("Content-Length", strconv.FormatInt(b.ContentLength(), 10))
	return h
}

// WriteTo implements io.WriterTo.
func (b *Body) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.Data)
	return int64(n), err
}
