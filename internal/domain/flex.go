package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Flex holds a JSON value that is either absent, a scalar, or a sequence.
// It only lives at the search boundary; the normalizer collapses it.
type Flex struct {
	set   bool
	list  bool
	items []any
}

// Scalar wraps a single value.
func Scalar(v any) Flex {
	if v == nil {
		return Flex{}
	}
	return Flex{set: true, items: []any{v}}
}

// List wraps a sequence of values.
func List(vs ...any) Flex {
	return Flex{set: true, list: true, items: vs}
}

func (f *Flex) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*f = Flex{}
	case []any:
		*f = List(t...)
	default:
		*f = Scalar(t)
	}
	return nil
}

func (f Flex) MarshalJSON() ([]byte, error) {
	switch {
	case !f.set:
		return []byte("null"), nil
	case f.list:
		return json.Marshal(f.items)
	default:
		return json.Marshal(f.items[0])
	}
}

func (f Flex) Absent() bool { return !f.set }
func (f Flex) IsList() bool { return f.set && f.list }
func (f Flex) Len() int     { return len(f.items) }

// First returns the first leaf as a string, descending into nested sequences.
func (f Flex) First() (string, bool) {
	if len(f.items) == 0 {
		return "", false
	}
	return leafString(f.items[0])
}

// Strings returns every element rendered as a string, skipping blanks.
func (f Flex) Strings() []string {
	out := make([]string, 0, len(f.items))
	for _, it := range f.items {
		if s, ok := leafString(it); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

// Float returns the first leaf as a number. Strings like "4,5" are accepted.
func (f Flex) Float() (float64, bool) {
	n, ok := f.float()
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func (f Flex) float() (float64, bool) {
	if len(f.items) == 0 {
		return 0, false
	}
	v := f.items[0]
	for {
		l, ok := v.([]any)
		if !ok {
			break
		}
		if len(l) == 0 {
			return 0, false
		}
		v = l[0]
	}
	switch t := v.(type) {
	case json.Number:
		n, err := t.Float64()
		return n, err == nil
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(t, ",", "."))
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		return n, err == nil
	}
	return 0, false
}

func leafString(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case []any:
		if len(t) == 0 {
			return "", false
		}
		return leafString(t[0])
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	}
	return "", false
}
