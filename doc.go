// Package formdata encodes structured payloads and file attachments into
// multipart/form-data request bodies (RFC 7578).
//
// # Basic Usage
//
// Any value that encodes to a flat JSON object becomes a set of field parts;
// files are attached by key:
//
//	type Profile struct {
//	    Name  string  `json:"name"`
//	    Age   int     `json:"age"`
//	    Email *string `json:"email"` // nil → no part
//	}
//
//	files := formdata.NewFiles().
//	    Add("avatar", formdata.NewFile(jpegBytes, "image/jpeg")).
//	    AddMany("gallery", first, second)
//
//	body, err := formdata.New().Build(Profile{Name: "Jane", Age: 31}, files)
//	req.Header.Set("Content-Type", body.ContentType())
//
// The body holds, in order, the name and age fields, then an "avatar" part
// with filename "avatar.jpeg", then "gallery[0]" and "gallery[1]".
//
// # Filenames
//
// An explicit filename always wins. Otherwise the form name is combined with
// an extension guessed from the MIME type ("image/jpeg" → ".jpeg",
// "text/plain" → ".txt"). Empty or unknown MIME types leave the form name
// without an extension. Custom schemes plug in through the Namer interface,
// or as a Twig template:
//
//	body, err := b.Build(obj, files,
//	    formdata.WithFilenameTemplate("{{ key }}-{{ index }}{{ extension }}"))
//
// # Attachments
//
// Each key holds an Attachment: None() produces nothing, Single(f) produces
// one part named after the key, and Many(fs...) produces key[0], key[1], ...
//
// # Errors
//
// An object that does not flatten into scalar fields, or a file whose MIME
// type cannot be written as a header, is reported as *EncodingError wrapping
// ErrNotObject, ErrNotScalar, ErrInvalidMIMEType or the underlying JSON
// error. A boundary that occurs inside a part body fails with
// ErrInvalidBoundary. No partial body is returned.
//
// # Transport
//
// Client posts bodies with context cancellation and optional retries of
// transport errors and 5xx responses. LoadFiles reads attachments from disk
// concurrently.
package formdata
