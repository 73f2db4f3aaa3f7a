package formdata

// Options controls a single build.
type Options struct {
	Boundary         string        // fixed boundary; "" → BoundaryFunc
	BoundaryFunc     func() string // nil → NewBoundary
	Namer            Namer         // nil → ExtensionNamer
	SniffContentType bool          // detect empty file MIME types from content
}

// Functional option constructors
func WithBoundary(b string) func(*Options) {
	return func(o *Options) { o.Boundary = b }
}

func WithBoundaryFunc(fn func() string) func(*Options) {
	return func(o *Options) {
		o.Boundary = ""
		o.BoundaryFunc = fn
	}
}

func WithNamer(n Namer) func(*Options) {
	return func(o *Options) { o.Namer = n }
}

// WithFilenameTemplate is a shortcut for WithNamer(NewTemplateNamer(tpl)).
// An invalid template surfaces as an error from Build.
func WithFilenameTemplate(tpl string) func(*Options) {
	return func(o *Options) {
		n, err := NewTemplateNamer(tpl)
		if err != nil {
			o.Namer = failingNamer{err: err}
			return
		}
		o.Namer = n
	}
}

// WithContentSniffing detects the Content-Type of files without a MIME type
// from their bytes. Filenames are not affected.
func WithContentSniffing() func(*Options) {
	return func(o *Options) { o.SniffContentType = true }
}

type failingNamer struct{ err error }

func (f failingNamer) Filename(FileRef, File) (string, error) { return "", f.err }
