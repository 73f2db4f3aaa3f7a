package formdata

import (
	"reflect"
	"sort"
)

// Attachment is what a files key holds: nothing, a single file, or a
// collection of files rendered as key[0], key[1], ...
type Attachment struct {
	files []File
	many  bool
}

// None is an absent attachment; it produces no part.
func None() Attachment { return Attachment{} }

// Single wraps one file. A nil file is the same as None.
func Single(f File) Attachment {
	if isNilFile(f) {
		return Attachment{}
	}
	return Attachment{files: []File{f}}
}

// Many wraps a collection. Nil elements are dropped, so indices stay
// contiguous.
func Many(files ...File) Attachment {
	kept := make([]File, 0, len(files))
	for _, f := range files {
		if !isNilFile(f) {
			kept = append(kept, f)
		}
	}
	return Attachment{files: kept, many: true}
}

func (a Attachment) IsNone() bool  { return len(a.files) == 0 }
func (a Attachment) IsMany() bool  { return a.many }
func (a Attachment) Files() []File { return a.files }

// Files is an insertion-ordered set of named attachments. The zero value is
// an empty collection ready to use.
type Files struct {
	keys    []string
	entries map[string]Attachment
}

// NewFiles returns an empty collection.
func NewFiles() *Files {
	return &Files{entries: make(map[string]Attachment)}
}

// FilesFromMap builds a collection from m with keys in sorted order.
func FilesFromMap(m map[string]Attachment) *Files {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	f := NewFiles()
	for _, k := range keys {
		f.Set(k, m[k])
	}
	return f
}

// Set stores a under key. Replacing an existing key keeps its position.
func (f *Files) Set(key string, a Attachment) *Files {
	if f.entries == nil {
		f.entries = make(map[string]Attachment)
	}
	if _, ok := f.entries[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.entries[key] = a
	return f
}

// Add stores a single file under key.
func (f *Files) Add(key string, file File) *Files { return f.Set(key, Single(file)) }

// AddMany stores a collection under key.
func (f *Files) AddMany(key string, files ...File) *Files { return f.Set(key, Many(files...)) }

// Get returns the attachment stored under key.
func (f *Files) Get(key string) (Attachment, bool) {
	if f == nil {
		return Attachment{}, false
	}
	a, ok := f.entries[key]
	return a, ok
}

// Keys returns keys in insertion order.
func (f *Files) Keys() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.keys...)
}

func (f *Files) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// isNilFile also catches typed nil pointers stored in the interface.
func isNilFile(f File) bool {
	if f == nil {
		return true
	}
	v := reflect.ValueOf(f)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
