package img2adofai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/tidwall/jsonc"
)

// ParseStage identifies which repair stage produced a parsed document.
type ParseStage int

const (
	// StageStrict: the input parsed once non-printable characters were
	// dropped.
	StageStrict ParseStage = iota + 1
	// StageRepaired: trailing commas removed and open brackets closed.
	StageRepaired
	// StageAggressive: whitespace stripped and comma runs collapsed.
	StageAggressive
)

func (s ParseStage) String() string {
	switch s {
	case StageStrict:
		return "strict"
	case StageRepaired:
		return "repaired"
	case StageAggressive:
		return "aggressive"
	}
	return fmt.Sprintf("ParseStage(%d)", int(s))
}

// Reader parses level JSON that may have been hand edited or truncated.
// The zero value is ready to use.
type Reader struct {
	Logger *slog.Logger
}

// Parse parses raw with a default Reader.
func Parse(raw string) (any, error) {
	var r Reader
	return r.Parse(raw)
}

// Parse runs the repair chain and returns the first document that
// parses. Objects decode to *OrderedMap, arrays to []any, numbers to
// json.Number.
func (r *Reader) Parse(raw string) (any, error) {
	v, stage, err := ParseWithStage(raw)
	logger := loggerOrDiscard(r.Logger)
	if err != nil {
		logger.Error("level json could not be repaired", "error", err)
		return nil, err
	}
	if stage != StageStrict {
		logger.Warn("level json needed repair", "stage", stage)
	}
	return v, nil
}

// ParseWithStage applies the repair stages least destructive first and
// stops at the first success:
//
//  1. drop non-printable characters and a leading BOM, parse;
//  2. remove trailing commas, close every bracket left open, parse;
//  3. strip all whitespace, collapse ",,", drop commas before closers
//     and insert the missing comma in `]"`, parse.
//
// When all stages fail the error wraps ErrJSONRepairFailed and the last
// parser diagnostic.
func ParseWithStage(raw string) (any, ParseStage, error) {
	text := printable(raw)

	v, err := decodeOrdered(text)
	if err == nil {
		return v, StageStrict, nil
	}

	repaired := printable(string(jsonc.ToJSON([]byte(raw))))
	repaired = closeBrackets(repaired)
	repaired = string(jsonc.ToJSON([]byte(repaired)))
	v, err = decodeOrdered(repaired)
	if err == nil {
		return v, StageRepaired, nil
	}

	aggressive := strings.NewReplacer("\n", "", " ", "", "\t", "").Replace(text)
	for _, r := range [][2]string{
		{",,", ","},
		{",]", "]"},
		{",}", "}"},
		{`]"`, `],"`},
	} {
		aggressive = strings.ReplaceAll(aggressive, r[0], r[1])
	}
	v, err = decodeOrdered(aggressive)
	if err == nil {
		return v, StageAggressive, nil
	}

	return nil, 0, &JSONRepairError{Err: err}
}

// printable drops every non-printable character, which includes line
// breaks, tabs and the byte order mark.
func printable(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, s)
	return strings.TrimPrefix(s, "\ufeff")
}

// closeBrackets appends the closers for every bracket still open at the
// end of s, innermost first. A closer that does not match the innermost
// open bracket is ignored. Brackets inside string literals do not count,
// and a string cut off mid-way is terminated first.
func closeBrackets(s string) string {
	var stack []byte
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) > 0 && stack[len(stack)-1] == c {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if len(stack) == 0 && !inString {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(stack) + 2)
	b.WriteString(s)
	if inString {
		if escaped {
			b.WriteByte('\\')
		}
		b.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteByte(stack[i])
	}
	return b.String()
}

// decodeOrdered strictly parses a single JSON value.
func decodeOrdered(text string) (any, error) {
	var probe json.RawMessage
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(probe))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewOrderedMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, not string", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			arr := []any{}
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	default:
		return t, nil
	}
}
