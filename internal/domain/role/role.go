package role

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Role is the closed set of user roles. The zero value is not a valid role.
type Role uint8

const (
	Customer Role = iota + 1
	Worker
	Owner
)

// All lists every valid role, in declaration order.
var All = []Role{Customer, Worker, Owner}

func (r Role) String() string {
	switch r {
	case Customer:
		return "customer"
	case Worker:
		return "worker"
	case Owner:
		return "salon_owner"
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

func (r Role) Valid() bool {
	return r >= Customer && r <= Owner
}

// Parse maps the stored/wire name of a role back to the variant.
func Parse(s string) (Role, error) {
	switch s {
	case "customer":
		return Customer, nil
	case "worker":
		return Worker, nil
	case "salon_owner":
		return Owner, nil
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", uint8(r))
	}
	return r.String(), nil
}

func (r *Role) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into role", src)
	}

	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
