// Package idlist provides an ordered, duplicate-free list of entity IDs that
// persists as a JSON column. User and Project aggregates use it for their
// project-reference and member-reference sets.
package idlist

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// List is an ordered sequence of IDs with no duplicates. The zero value is
// usable; an empty list and an absent column are the same state.
type List []uuid.UUID

// Contains reports whether id is present in the list.
func (l List) Contains(id uuid.UUID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Append returns the list with id appended, or unchanged if already present.
func (l List) Append(id uuid.UUID) List {
	if l.Contains(id) {
		return l
	}
	return append(l, id)
}

// Remove returns the list with id removed, preserving order of the rest.
func (l List) Remove(id uuid.UUID) List {
	out := make(List, 0, len(l))
	for _, v := range l {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Subtract returns the elements of l not present in other, preserving order.
func (l List) Subtract(other List) List {
	out := make(List, 0, len(l))
	for _, v := range l {
		if !other.Contains(v) {
			out = append(out, v)
		}
	}
	return out
}

// Value implements driver.Valuer, serializing the list as a JSON array.
func (l List) Value() (driver.Value, error) {
	if l == nil {
		l = List{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner. NULL scans as an empty list.
func (l *List) Scan(src interface{}) error {
	if src == nil {
		*l = List{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("idlist: cannot scan %T", src)
	}

	if len(data) == 0 {
		*l = List{}
		return nil
	}

	var out List
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("idlist: %w", err)
	}
	if out == nil {
		out = List{}
	}
	*l = out
	return nil
}

// GormDataType tells GORM to store the list as text.
func (List) GormDataType() string {
	return "text"
}
