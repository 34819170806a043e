package settings

import (
	"errors"
	"fmt"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ParseError reports a malformed settings document. Line and Column are
// 1-based and zero when the position is unknown.
type ParseError struct {
	Line   int
	Column int
	Msg    string
	err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("settings parse error at line %d, column %d: %s", e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("settings parse error: %s", e.Msg)
}

func (e *ParseError) Unwrap() error { return e.err }

// Parse reads a TOML document into a settings tree. The root value is
// always a table on success. Malformed syntax yields a *ParseError
// carrying the offending position; parsing has no side effects and
// performs no semantic validation.
func Parse(src []byte) (Value, error) {
	var raw map[string]any
	if err := toml.Unmarshal(src, &raw); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Value{}, &ParseError{Line: row, Column: col, Msg: derr.Error(), err: err}
		}
		return Value{}, &ParseError{Msg: err.Error(), err: err}
	}
	return fromTable(raw), nil
}

func fromTable(raw map[string]any) Value {
	table := make(map[string]Value, len(raw))
	for key, entry := range raw {
		table[key] = fromAny(entry)
	}
	return Value{kind: KindTable, table: table}
}

func fromAny(raw any) Value {
	switch v := raw.(type) {
	case string:
		return Value{kind: KindString, str: v}
	case bool:
		return Value{kind: KindBool, boolean: v}
	case int64:
		return Value{kind: KindInteger, integer: v}
	case uint64:
		return Value{kind: KindInteger, integer: int64(v)}
	case float64:
		return Value{kind: KindFloat, float: v}
	case time.Time:
		return Value{kind: KindDatetime, datetime: v}
	case toml.LocalDateTime:
		// A local datetime without an offset is taken as UTC.
		return Value{kind: KindDatetime, datetime: v.AsTime(time.UTC)}
	case toml.LocalDate:
		return Value{kind: KindDatetime, datetime: v.AsTime(time.UTC), dateOnly: true}
	case toml.LocalTime:
		// A bare clock time has no timestamp meaning here; surface it as
		// its literal text so the normalizer reports a type mismatch.
		return Value{kind: KindString, str: v.String()}
	case []any:
		arr := make([]Value, len(v))
		for i, entry := range v {
			arr[i] = fromAny(entry)
		}
		return Value{kind: KindArray, array: arr}
	case map[string]any:
		return fromTable(v)
	default:
		return Value{kind: KindString, str: fmt.Sprint(v)}
	}
}
