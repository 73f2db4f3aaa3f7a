package formdata

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"
)

// Builder encodes objects and file attachments into multipart/form-data
// bodies. A Builder holds no per-build state and is safe for concurrent use.
type Builder struct {
	log      *slog.Logger
	defaults []func(*Options)
}

// New returns a Builder that logs with slog.Default(). The options apply to
// every build and can be overridden per call.
func New(optFns ...func(*Options)) *Builder {
	return NewWithLogger(slog.Default(), optFns...)
}

// NewWithLogger lets the caller supply their own logger.
func NewWithLogger(log *slog.Logger, optFns ...func(*Options)) *Builder {
	if log == nil {
		log = slog.Default()
	}
	return &Builder{log: log, defaults: optFns}
}

// Encode builds a body with a default Builder and returns its boundary and
// bytes.
func Encode(object any, files *Files, optFns ...func(*Options)) (string, []byte, error) {
	body, err := New().Build(object, files, optFns...)
	if err != nil {
		return "", nil, err
	}
	return body.Boundary, body.Data, nil
}

// Build flattens object into field parts, appends one part per file, and
// frames everything with a boundary. Fields come first, then files in the
// order they were added to files.
func (b *Builder) Build(object any, files *Files, optFns ...func(*Options)) (*Body, error) {
	opts := b.options(optFns)

	boundary, err := resolveBoundary(opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	parts, err := b.parts(object, files, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	if err := checkCollision(parts, boundary); err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	var size int64
	for _, p := range parts {
		size += p.size(boundary)
	}
	size += int64(len(closeDelimiter(boundary)))

	var buf bytes.Buffer
	buf.Grow(int(size))
	for _, p := range parts {
		p.writeTo(&buf, boundary)
	}
	buf.WriteString(closeDelimiter(boundary))

	b.log.Debug("Built multipart body",
		"boundary", boundary,
		"part_count", len(parts),
		"content_length", buf.Len())

	return &Body{Boundary: boundary, Data: buf.Bytes(), Parts: parts}, nil
}

func (b *Builder) options(optFns []func(*Options)) *Options {
	var opts Options
	for _, fn := range b.defaults {
		fn(&opts)
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Namer == nil {
		opts.Namer = ExtensionNamer{}
	}
	return &opts
}

// parts resolves every field and file into a Part without framing.
func (b *Builder) parts(object any, files *Files, opts *Options) ([]*Part, error) {
	fields, err := flatten(object, b.log)
	if err != nil {
		b.log.Debug("Object flattening failed", "error", err)
		return nil, err
	}
	b.log.Debug("Flattened object", "type", typeName(object), "field_count", len(fields))

	parts := make([]*Part, 0, len(fields)+files.Len())
	for _, f := range fields {
		parts = append(parts, &Part{Kind: FieldPart, Name: f.Name, Body: []byte(f.Value)})
	}

	for _, key := range files.Keys() {
		a, _ := files.Get(key)
		if a.IsNone() {
			b.log.Debug("Skipping absent attachment", "key", key)
			continue
		}

		for i, file := range a.Files() {
			ref := FileRef{Key: key, Index: -1, Name: key}
			if a.IsMany() {
				ref.Index = i
				ref.Name = key + "[" + strconv.Itoa(i) + "]"
			}

			p, err := b.filePart(ref, file, opts)
			if err != nil {
				return nil, err
			}
			parts = append(parts, p)
		}
	}
	return parts, nil
}

func (b *Builder) filePart(ref FileRef, file File, opts *Options) (*Part, error) {
	filename, err := opts.Namer.Filename(ref, file)
	if err != nil {
		return nil, fmt.Errorf("filename for %q: %w", ref.Name, err)
	}

	data := file.Data()
	mimeType := file.MimeType()
	if mimeType == "" && opts.SniffContentType {
		mimeType = detectMIMEType(data)
		b.log.Debug("Sniffed content type", "name", ref.Name, "mime_type", mimeType)
	}
	if mimeType == "" {
		mimeType = defaultFileContentType
	}
	if !validMIMEType(mimeType) {
		return nil, &EncodingError{Key: ref.Name, Err: fmt.Errorf("%w %q", ErrInvalidMIMEType, mimeType)}
	}

	b.log.Debug("Resolved file part",
		"name", ref.Name,
		"filename", filename,
		"mime_type", mimeType,
		"size", len(data))

	return &Part{
		Kind:     FilePart,
		Name:     ref.Name,
		Filename: filename,
		MimeType: mimeType,
		Body:     data,
	}, nil
}
