package user

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Role is a closed enumeration of the roles a user may hold. Stored
// representations are normalized through ParseRole so that legacy spellings
// ("ADMIN", "Client") compare by value.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole maps a stored role representation to its Role variant.
// The second return value is false for unknown representations.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, true
	case "user", "client":
		return RoleUser, true
	default:
		return "", false
	}
}

// RoleList is the set of roles held by a user, persisted as a JSON column.
type RoleList []Role

// Has reports whether the list contains the given role. Stored values are
// normalized before comparison.
func (l RoleList) Has(role Role) bool {
	for _, r := range l {
		if parsed, ok := ParseRole(string(r)); ok && parsed == role {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer.
func (l RoleList) Value() (driver.Value, error) {
	if l == nil {
		l = RoleList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner. Unknown stored roles are preserved as-is and
// simply never match a known variant.
func (l *RoleList) Scan(src interface{}) error {
	if src == nil {
		*l = RoleList{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("role list: cannot scan %T", src)
	}

	if len(data) == 0 {
		*l = RoleList{}
		return nil
	}

	var out RoleList
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("role list: %w", err)
	}
	if out == nil {
		out = RoleList{}
	}
	*l = out
	return nil
}

// GormDataType tells GORM to store the list as text.
func (RoleList) GormDataType() string {
	return "text"
}
