package formdata

import (
	"fmt"
	"mime"
	"strings"

	"github.com/elnormous/contenttype"
	"github.com/gabriel-vasile/mimetype"
	"github.com/tyler-sommer/stick"
)

// FileRef identifies the part a file is rendered into. Index is -1 for a
// single attachment.
type FileRef struct {
	Key   string
	Index int
	Name  string // form name: Key or Key[Index]
}

// Namer resolves the filename written into a file part's Content-Disposition.
type Namer interface {
	Filename(ref FileRef, file File) (string, error)
}

// ExtensionNamer uses the explicit filename when there is one, otherwise the
// form name plus an extension guessed from the MIME type.
type ExtensionNamer struct{}

func (ExtensionNamer) Filename(ref FileRef, file File) (string, error) {
	if name := file.Filename(); name != "" {
		return name, nil
	}
	return ref.Name + GuessExtension(file.MimeType()), nil
}

// GuessExtension returns the extension, with a leading dot, for mimeType.
// The subtype is used as is when it is itself a registered extension of the
// type ("image/jpeg" gives ".jpeg"); otherwise the canonical extension of the
// type is used ("text/plain" gives ".txt"). Empty or unknown types give "".
func GuessExtension(mimeType string) string {
	mt := contenttype.NewMediaType(strings.ToLower(strings.TrimSpace(mimeType)))
	if mt.Type == "" || mt.Subtype == "" || mt.Type == "*" || mt.Subtype == "*" {
		return ""
	}
	full := mt.Type + "/" + mt.Subtype

	known := mimetype.Lookup(full)
	if known == nil {
		return ""
	}
	if isExtensionToken(mt.Subtype) {
		if t := mime.TypeByExtension("." + mt.Subtype); t != "" && known.Is(t) {
			return "." + mt.Subtype
		}
	}
	return known.Extension()
}

func isExtensionToken(s string) bool {
	for _, c := range s {
		if 'a' <= c && c <= 'z' || '0' <= c && c <= '9' {
			continue
		}
		return false
	}
	return s != ""
}

// TemplateNamer renders filenames from a Twig template. Explicit filenames
// still win, and an empty render falls back to ExtensionNamer.
//
// Available variables: key, index, name, mime, ext (without dot) and
// extension (with dot).
type TemplateNamer struct {
	env      *stick.Env
	template string
	vars     map[string]interface{}
}

// TemplateOption configures a TemplateNamer.
type TemplateOption func(*TemplateNamer) error

// WithTemplateVar adds a variable that will be available to the template.
func WithTemplateVar(key string, value interface{}) TemplateOption {
	return func(t *TemplateNamer) error {
		if key == "" {
			return fmt.Errorf("template variable name is empty")
		}
		t.vars[key] = value
		return nil
	}
}

// NewTemplateNamer builds a namer for tpl.
func NewTemplateNamer(tpl string, opts ...TemplateOption) (*TemplateNamer, error) {
	if strings.TrimSpace(tpl) == "" {
		return nil, fmt.Errorf("filename template is empty")
	}
	t := &TemplateNamer{
		env:      stick.New(nil),
		template: tpl,
		vars:     make(map[string]interface{}),
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *TemplateNamer) Filename(ref FileRef, file File) (string, error) {
	if name := file.Filename(); name != "" {
		return name, nil
	}

	ext := GuessExtension(file.MimeType())
	templateCtx := make(map[string]stick.Value)
	for k, v := range t.vars {
		templateCtx[k] = v
	}
	templateCtx["key"] = ref.Key
	templateCtx["index"] = ref.Index
	templateCtx["name"] = ref.Name
	templateCtx["mime"] = file.MimeType()
	templateCtx["ext"] = strings.TrimPrefix(ext, ".")
	templateCtx["extension"] = ext

	var out strings.Builder
	if err := t.env.Execute(t.template, &out, templateCtx); err != nil {
		return "", fmt.Errorf("execute filename template for %q: %w", ref.Name, err)
	}
	if name := strings.TrimSpace(out.String()); name != "" {
		return name, nil
	}
	return ExtensionNamer{}.Filename(ref, file)
}
