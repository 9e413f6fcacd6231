// Package sqlscript renders exercise records as a PostgreSQL seed script.
package sqlscript

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

var simpleIdent = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// QuoteString returns s as a SQL string literal with embedded quotes doubled.
func QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// QuoteIdent returns name as a double-quoted identifier. A name that already
// carries surrounding double quotes is unwrapped first.
func QuoteIdent(name string) string {
	if len(name) >= 2 && strings.HasPrefix(name, `"`) && strings.HasSuffix(name, `"`) {
		name = strings.ReplaceAll(name[1:len(name)-1], `""`, `"`)
	}
	return pgx.Identifier{name}.Sanitize()
}

// qualify joins namespace and table. Plain lowercase namespaces are left bare.
func qualify(namespace, table string) string {
	if namespace == "" {
		return QuoteIdent(table)
	}
	ns := namespace
	if !simpleIdent.MatchString(ns) {
		ns = QuoteIdent(ns)
	}
	return ns + "." + QuoteIdent(table)
}

// ArrayLiteral renders items as a TEXT[] constructor, preserving order.
func ArrayLiteral(items []string) string {
	if len(items) == 0 {
		return "ARRAY[]::TEXT[]"
	}
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = QuoteString(item)
	}
	return "ARRAY[" + strings.Join(quoted, ", ") + "]"
}

// BoolLiteral renders b as an unquoted lowercase boolean.
func BoolLiteral(b bool) string {
	return strconv.FormatBool(b)
}

// NumericLiteral returns the number exactly as it appeared in the source document.
func NumericLiteral(n json.Number) (string, error) {
	s := n.String()
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", fmt.Errorf("numeric literal %q: %w", s, err)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "", fmt.Errorf("numeric literal %q is not finite", s)
	}
	return s, nil
}

// JSONLiteral serialises raw with ", " and ": " separators, keeping object key
// order, and quotes the result as a string literal suitable for a JSONB column.
func JSONLiteral(raw json.RawMessage) (string, error) {
	text, err := FormatJSON(raw)
	if err != nil {
		return "", err
	}
	return QuoteString(text), nil
}

// FormatJSON re-encodes a JSON document in the spaced single-line layout used
// by the seed scripts.
func FormatJSON(raw json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var buf bytes.Buffer
	if err := writeJSONValue(dec, &buf); err != nil {
		return "", fmt.Errorf("format json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return "", errors.New("format json: trailing data after document")
	}
	return buf.String(), nil
}

func writeJSONValue(dec *json.Decoder, buf *bytes.Buffer) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			buf.WriteByte('{')
			for first := true; dec.More(); first = false {
				if !first {
					buf.WriteString(", ")
				}
				key, err := dec.Token()
				if err != nil {
					return err
				}
				if err := writeJSONString(buf, key.(string)); err != nil {
					return err
				}
				buf.WriteString(": ")
				if err := writeJSONValue(dec, buf); err != nil {
					return err
				}
			}
			buf.WriteByte('}')
		case '[':
			buf.WriteByte('[')
			for first := true; dec.More(); first = false {
				if !first {
					buf.WriteString(", ")
				}
				if err := writeJSONValue(dec, buf); err != nil {
					return err
				}
			}
			buf.WriteByte(']')
		default:
			return fmt.Errorf("unexpected delimiter %q", v)
		}
		// Consume the closing delimiter.
		if _, err := dec.Token(); err != nil {
			return err
		}
	case string:
		return writeJSONString(buf, v)
	case json.Number:
		buf.WriteString(v.String())
	case bool:
		buf.WriteString(strconv.FormatBool(v))
	case nil:
		buf.WriteString("null")
	default:
		return fmt.Errorf("unexpected token %T", tok)
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
