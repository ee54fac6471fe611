package store

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Base is embedded by every persisted entity. The identifier is assigned by
// the database on insert and the timestamps are stamped by the unit of work
// at commit time; callers never write these fields themselves.
type Base struct {
	ID           uuid.UUID    `db:"id"`
	CreationDate time.Time    `db:"creation_date"`
	UpdatedDate  sql.NullTime `db:"updated_date"`
}

func (b *Base) EntityBase() *Base { return b }

// Deletable extends Base with logical deletion. Rows are never physically
// removed; DataContext.Delete flips the flags at commit time and every query
// hides flagged rows unless IgnoreQueryFilters is requested.
type Deletable struct {
	Base
	IsDeleted   bool         `db:"is_deleted"`
	DeletedDate sql.NullTime `db:"deleted_date"`
}

func (d *Deletable) DeletableBase() *Deletable { return d }

// Entity is satisfied by any struct embedding Base.
type Entity interface {
	EntityBase() *Base
}

// SoftDeletable is satisfied by any struct embedding Deletable.
type SoftDeletable interface {
	Entity
	DeletableBase() *Deletable
}

// TrimmedString is the only permitted shape for non-nullable string columns.
// It trims surrounding whitespace on both write and read, so the database
// never sees an untrimmed value and never hands one back.
type TrimmedString string

func (s TrimmedString) Value() (driver.Value, error) {
	return strings.TrimSpace(string(s)), nil
}

func (s *TrimmedString) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = ""
	case string:
		*s = TrimmedString(strings.TrimSpace(v))
	case []byte:
		*s = TrimmedString(strings.TrimSpace(string(v)))
	default:
		return fmt.Errorf("store: cannot scan %T into TrimmedString", src)
	}
	return nil
}

func (s TrimmedString) String() string {
	return strings.TrimSpace(string(s))
}

// NullString is the nullable counterpart of TrimmedString.
type NullString struct {
	sql.NullString
}

func NewNullString(s string) NullString {
	return NullString{sql.NullString{String: s, Valid: true}}
}

func (ns NullString) Value() (driver.Value, error) {
	if !ns.Valid {
		return nil, nil
	}
	return strings.TrimSpace(ns.String), nil
}

func (ns *NullString) Scan(src any) error {
	if err := ns.NullString.Scan(src); err != nil {
		return err
	}
	ns.String = strings.TrimSpace(ns.String)
	return nil
}
