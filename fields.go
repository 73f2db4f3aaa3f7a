package formdata

import (
	"bytes"
	"encoding/json"
	"log/slog"
)

// Field is a single name/value pair rendered as a form-data field part.
type Field struct {
	Name  string
	Value string
}

// Flatten encodes object as JSON and turns its top-level members into
// fields, in encoded order. Null members are skipped. A []Field is returned
// as is.
func Flatten(object any) ([]Field, error) {
	return flatten(object, slog.Default())
}

func flatten(object any, log *slog.Logger) ([]Field, error) {
	switch v := object.(type) {
	case nil:
		return nil, nil
	case []Field:
		return v, nil
	}

	raw, err := json.Marshal(object)
	if err != nil {
		return nil, &EncodingError{Err: err}
	}
	log.Debug("Encoded object", "type", typeName(object), "length", len(raw))

	if bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, &EncodingError{Err: err}
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, &EncodingError{Err: ErrNotObject}
	}

	var fields []Field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &EncodingError{Err: err}
		}
		key, _ := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, &EncodingError{Key: key, Err: err}
		}

		s, ok, err := scalarString(value)
		if err != nil {
			return nil, &EncodingError{Key: key, Err: err}
		}
		if !ok {
			log.Debug("Skipping null field", "key", key)
			continue
		}
		fields = append(fields, Field{Name: key, Value: s})
	}
	return fields, nil
}

// scalarString renders a JSON scalar as text. ok is false for null.
func scalarString(raw json.RawMessage) (s string, ok bool, err error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false, nil
	}
	switch raw[0] {
	case 'n':
		return "", false, nil
	case '"':
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false, err
		}
		return s, true, nil
	case '{', '[':
		return "", false, ErrNotScalar
	default:
		// numbers and booleans keep their literal form
		return string(raw), true, nil
	}
}
