package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
)

const domainSuffix = "_rules.json"

var errUnsupportedTopLevel = errors.New("top-level value must be an object or an array")

// field and object keep JSON object members in file order.
type field struct {
	key   string
	value any
}

type object []field

// DomainFor derives the domain tag of a knowledge file from its name.
func DomainFor(filename string) string {
	base := filepath.Base(filename)
	if strings.HasSuffix(base, domainSuffix) {
		return strings.TrimSuffix(base, domainSuffix)
	}
	return strings.TrimSuffix(base, ".json")
}

// Flatten turns one knowledge file into documents: one per top-level key of an
// object, or one per element of an array. Ids are left for the caller to assign.
func Flatten(data []byte, filename string) ([]commonModels.Document, error) {
	root, err := decodeOrdered(data)
	if err != nil {
		return nil, err
	}

	source := filepath.Base(filename)
	meta := func(key string) commonModels.Metadata {
		return commonModels.Metadata{Domain: DomainFor(filename), Source: source, Key: key}
	}

	var docs []commonModels.Document
	switch v := root.(type) {
	case object:
		for _, f := range v {
			text := stringify(f.value)
			if obj, ok := f.value.(object); ok {
				text = formatContent(obj, f.key)
			}
			docs = append(docs, commonModels.Document{Content: text, Metadata: meta(f.key)})
		}
	case []any:
		for _, item := range v {
			text := stringify(item)
			if obj, ok := item.(object); ok {
				text = formatContent(obj, "")
			}
			docs = append(docs, commonModels.Document{Content: text, Metadata: meta("")})
		}
	default:
		return nil, errUnsupportedTopLevel
	}
	return docs, nil
}

// formatContent renders an object as indented "key: value" lines, headed by
// "key:" when key is set.
func formatContent(obj object, key string) string {
	var lines []string
	if key != "" {
		lines = append(lines, key+":")
	}
	for _, f := range obj {
		switch v := f.value.(type) {
		case object:
			lines = append(lines, "  "+f.key+":")
			for _, sub := range v {
				lines = append(lines, "    "+sub.key+": "+stringify(sub.value))
			}
		case []any:
			items := make([]string, len(v))
			for i, item := range v {
				items[i] = stringify(item)
			}
			lines = append(lines, "  "+f.key+": "+strings.Join(items, ", "))
		default:
			lines = append(lines, "  "+f.key+": "+stringify(v))
		}
	}
	return strings.Join(lines, "\n")
}

// stringify renders scalars as plain text and containers as compact JSON.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	case nil:
		return "null"
	default:
		var b strings.Builder
		writeCompact(&b, v)
		return b.String()
	}
}

func writeCompact(b *strings.Builder, v any) {
	switch t := v.(type) {
	case object:
		b.WriteByte('{')
		for i, f := range t {
			if i > 0 {
				b.WriteString(", ")
			}
			writeQuoted(b, f.key)
			b.WriteString(": ")
			writeCompact(b, f.value)
		}
		b.WriteByte('}')
	case []any:
		b.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				b.WriteString(", ")
			}
			writeCompact(b, item)
		}
		b.WriteByte(']')
	case string:
		writeQuoted(b, t)
	default:
		b.WriteString(stringify(t))
	}
}

func writeQuoted(b *strings.Builder, s string) {
	q, _ := json.Marshal(s)
	b.Write(q)
}

func decodeOrdered(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		var obj object
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key is %T", keyTok)
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj = append(obj, field{key: key, value: val})
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		if obj == nil {
			obj = object{}
		}
		return obj, nil
	case '[':
		list := []any{}
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			list = append(list, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return list, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %v", delim)
	}
}
