package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vivaneiona/formdata"
	"gopkg.in/yaml.v3"
)

// parseAssignment splits "key=value".
func parseAssignment(s string) (string, string, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return "", "", fmt.Errorf("expected key=value, got %q", s)
	}
	return key, value, nil
}

// readFieldsFile loads a flat YAML or JSON mapping. Keys are sorted so the
// resulting body is stable.
func readFieldsFile(path string) ([]formdata.Field, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fields file: %w", err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse fields file %s: %w", path, err)
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]formdata.Field, 0, len(m))
	for _, k := range keys {
		v := m[k]
		switch v.(type) {
		case nil:
			continue
		case map[string]any, []any:
			return nil, &formdata.EncodingError{Key: k, Err: formdata.ErrNotScalar}
		}
		fields = append(fields, formdata.Field{Name: k, Value: scalarText(v)})
	}
	return fields, nil
}

// scalarText renders a decoded YAML scalar the way it would appear in JSON.
func scalarText(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// collectFields merges the fields file with --field flags. Flags win.
func collectFields(fieldsFile string, assignments []string) ([]formdata.Field, error) {
	var fields []formdata.Field
	if fieldsFile != "" {
		f, err := readFieldsFile(fieldsFile)
		if err != nil {
			return nil, err
		}
		fields = f
	}

	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.Name] = i
	}
	for _, a := range assignments {
		k, v, err := parseAssignment(a)
		if err != nil {
			return nil, fmt.Errorf("--field: %w", err)
		}
		if i, ok := index[k]; ok {
			fields[i].Value = v
			continue
		}
		index[k] = len(fields)
		fields = append(fields, formdata.Field{Name: k, Value: v})
	}
	return fields, nil
}

// collectFiles loads --file key=path and --gallery key=p1,p2 flags.
func collectFiles(ctx context.Context, singles, galleries []string) (*formdata.Files, error) {
	files := formdata.NewFiles()

	for _, a := range singles {
		k, path, err := parseAssignment(a)
		if err != nil {
			return nil, fmt.Errorf("--file: %w", err)
		}
		f, err := formdata.NewFileFromPath(path)
		if err != nil {
			return nil, err
		}
		files.Add(k, f)
	}

	for _, a := range galleries {
		k, list, err := parseAssignment(a)
		if err != nil {
			return nil, fmt.Errorf("--gallery: %w", err)
		}
		var paths []string
		for _, p := range strings.Split(list, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		loaded, err := formdata.LoadFiles(ctx, paths)
		if err != nil {
			return nil, err
		}
		files.AddMany(k, loaded...)
	}
	return files, nil
}
