package directive

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeDependencies decodes and validates a dependency directive.
// source names the file for error messages and may be empty.
func DecodeDependencies(source string, data []byte) (*DependencyDirective, error) {
	d := decoder{source: source}

	obj, err := d.object(data, "")
	if err != nil {
		return nil, err
	}

	deps, err := d.stringArrayField(obj, "", "dependencies")
	if err != nil {
		return nil, err
	}
	devDeps, err := d.stringArrayField(obj, "", "devDependencies")
	if err != nil {
		return nil, err
	}

	return &DependencyDirective{
		Dependencies:    deps,
		DevDependencies: devDeps,
	}, nil
}

// DecodeInserts decodes and validates an insert directive.
// Positions are only checked for presence here; unknown values are rejected
// when the insert is executed.
func DecodeInserts(source string, data []byte) (InsertDirective, error) {
	d := decoder{source: source}

	entries, err := d.array(data, "")
	if err != nil {
		return nil, err
	}

	specs := make(InsertDirective, 0, len(entries))
	for i, raw := range entries {
		path := fmt.Sprintf("[%d]", i)

		obj, err := d.object(raw, path)
		if err != nil {
			return nil, err
		}

		file, err := d.stringField(obj, path, "file")
		if err != nil {
			return nil, err
		}

		insertsPath := join(path, "inserts")
		insertsRaw, err := d.field(obj, path, "inserts")
		if err != nil {
			return nil, err
		}
		rawOps, err := d.array(insertsRaw, insertsPath)
		if err != nil {
			return nil, err
		}

		ops := make([]InsertOp, 0, len(rawOps))
		for j, rawOp := range rawOps {
			opPath := fmt.Sprintf("%s[%d]", insertsPath, j)
			op, err := d.insertOp(rawOp, opPath)
			if err != nil {
				return nil, err
			}
			ops = append(ops, op)
		}

		specs = append(specs, FileInsertSpec{File: file, Inserts: ops})
	}

	return specs, nil
}

func (d decoder) insertOp(raw json.RawMessage, path string) (InsertOp, error) {
	obj, err := d.object(raw, path)
	if err != nil {
		return InsertOp{}, err
	}

	position, err := d.stringField(obj, path, "position")
	if err != nil {
		return InsertOp{}, err
	}
	search, err := d.stringField(obj, path, "search")
	if err != nil {
		return InsertOp{}, err
	}
	content, err := d.stringField(obj, path, "content")
	if err != nil {
		return InsertOp{}, err
	}

	return InsertOp{
		Position: Position(position),
		Search:   search,
		Content:  content,
	}, nil
}

// decoder walks raw JSON and reports the first offending field.
type decoder struct {
	source string
}

func (d decoder) fail(path, format string, args ...any) error {
	return &ValidationError{
		Source: d.source,
		Path:   path,
		Reason: fmt.Sprintf(format, args...),
	}
}

func (d decoder) object(raw []byte, path string) (map[string]json.RawMessage, error) {
	if kind(raw) != '{' {
		return nil, d.fail(path, "expected object, got %s", describe(raw))
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, d.fail(path, "malformed JSON: %v", err)
	}
	return obj, nil
}

func (d decoder) array(raw []byte, path string) ([]json.RawMessage, error) {
	if kind(raw) != '[' {
		return nil, d.fail(path, "expected array, got %s", describe(raw))
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, d.fail(path, "malformed JSON: %v", err)
	}
	return items, nil
}

func (d decoder) field(obj map[string]json.RawMessage, path, key string) (json.RawMessage, error) {
	raw, ok := obj[key]
	if !ok {
		return nil, d.fail(join(path, key), "required field missing")
	}
	return raw, nil
}

func (d decoder) stringField(obj map[string]json.RawMessage, path, key string) (string, error) {
	raw, err := d.field(obj, path, key)
	if err != nil {
		return "", err
	}
	return d.nonEmptyString(raw, join(path, key))
}

func (d decoder) nonEmptyString(raw json.RawMessage, path string) (string, error) {
	s, err := d.str(raw, path)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", d.fail(path, "must not be empty")
	}
	return s, nil
}

func (d decoder) str(raw json.RawMessage, path string) (string, error) {
	if kind(raw) != '"' {
		return "", d.fail(path, "expected string, got %s", describe(raw))
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", d.fail(path, "malformed JSON: %v", err)
	}
	return s, nil
}

func (d decoder) stringArrayField(obj map[string]json.RawMessage, path, key string) ([]string, error) {
	raw, err := d.field(obj, path, key)
	if err != nil {
		return nil, err
	}
	fieldPath := join(path, key)

	items, err := d.array(raw, fieldPath)
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(items))
	for i, item := range items {
		s, err := d.str(item, fmt.Sprintf("%s[%d]", fieldPath, i))
		if err != nil {
			return nil, err
		}
		values = append(values, s)
	}
	return values, nil
}

// kind returns the first significant byte of a JSON value, or 0 if empty.
func kind(raw []byte) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

func describe(raw []byte) string {
	switch c := kind(raw); {
	case c == 0:
		return "nothing"
	case c == '{':
		return "object"
	case c == '[':
		return "array"
	case c == '"':
		return "string"
	case c == 'n':
		return "null"
	case c == 't' || c == 'f':
		return "boolean"
	default:
		return "number"
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
