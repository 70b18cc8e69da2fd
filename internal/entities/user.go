package entities

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// User is one row of the Users table. Its columns change at runtime, so the
// row is kept as parallel column/value slices in table order.
type User struct {
	Columns []string
	Values  []interface{}
}

// NewUser builds a row from scanned values, converting driver byte slices to strings.
func NewUser(columns []string, values []interface{}) User {
	row := User{Columns: columns, Values: make([]interface{}, len(values))}
	for i, v := range values {
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		row.Values[i] = v
	}
	return row
}

// NewUserWithTypes is NewUser for drivers that return numbers as text, such as
// MySQL's. types holds the database type name of each column; integer and
// floating point columns are decoded as numbers. DECIMAL and NUMERIC stay
// strings so no precision is lost.
func NewUserWithTypes(columns, types []string, values []interface{}) User {
	row := NewUser(columns, values)
	for i, v := range row.Values {
		s, ok := v.(string)
		if !ok || i >= len(types) {
			continue
		}
		row.Values[i] = decodeNumber(types[i], s)
	}
	return row
}

func decodeNumber(typeName, s string) interface{} {
	t := strings.ToUpper(typeName)
	switch {
	case strings.HasSuffix(t, "INT") || t == "INTEGER" || t == "YEAR" || t == "SERIAL":
		if strings.HasPrefix(t, "UNSIGNED") {
			if n, err := strconv.ParseUint(s, 10, 64); err == nil {
				return n
			}
			return s
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	case t == "FLOAT" || t == "DOUBLE" || t == "REAL" || t == "FLOAT4" || t == "FLOAT8":
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

// Get returns the value of a column by exact name.
func (u User) Get(column string) (interface{}, bool) {
	for i, c := range u.Columns {
		if c == column {
			return u.Values[i], true
		}
	}
	return nil, false
}

// MarshalJSON encodes the row as an object whose keys keep the column order.
func (u User) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range u.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		var v interface{}
		if i < len(u.Values) {
			v = u.Values[i]
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
