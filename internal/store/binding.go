package store

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Binding pins an entity shape to its table. Columns lists the payload
// columns in declaration order; the audit and deletion columns are owned by
// the base shapes and must not be re-declared.
type Binding struct {
	Table   string
	Columns []string
}

type binding struct {
	table     string
	deletable bool
	columns   []string
	selectSQL string
	insertSQL string
	updateSQL string
	deleteSQL string
}

var (
	registryMu sync.RWMutex
	registry   = map[reflect.Type]*binding{}
)

var (
	trimmedStringType = reflect.TypeOf(TrimmedString(""))
	rawNullStringType = reflect.TypeOf(NullString{}.NullString)
	baseType          = reflect.TypeOf(Base{})
	deletableType     = reflect.TypeOf(Deletable{})
)

var baseColumns = []string{"id", "creation_date", "updated_date"}

var deletionColumns = []string{"is_deleted", "deleted_date"}

// Register adds an entity binding to the model. It is meant to be called
// from an init function of the package declaring the entity, so the full
// model is assembled before any DataContext is built. Registration validates
// the shape once, with reflection, and panics on a malformed binding: a
// missing base shape, an undeclared column, or a raw string field that
// bypasses the trimming types.
func Register[E any, PE interface {
	Entity
	*E
}](b Binding) {
	t := reflect.TypeOf((*E)(nil)).Elem()

	var p PE
	_, deletable := any(p).(SoftDeletable)

	if err := validateShape(t, b, deletable); err != nil {
		panic(fmt.Sprintf("store: register %s: %v", t, err))
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[t]; ok {
		panic(fmt.Sprintf("store: register %s: already registered", t))
	}
	registry[t] = newBinding(b, deletable)
}

func bindingFor(t reflect.Type) (*binding, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	b, ok := registry[t]
	if !ok {
		return nil, fmt.Errorf("store: no binding registered for %s", t)
	}
	return b, nil
}

func bindingForEntity(e Entity) (*binding, error) {
	return bindingFor(reflect.TypeOf(e).Elem())
}

func validateShape(t reflect.Type, b Binding, deletable bool) error {
	if t.Kind() != reflect.Struct {
		return fmt.Errorf("entity must be a struct, got %s", t.Kind())
	}
	if b.Table == "" {
		return fmt.Errorf("binding has no table")
	}

	declared := map[string]bool{}
	for _, c := range b.Columns {
		declared[c] = true
	}

	embedded := false
	seen := 0
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)

		if f.Anonymous && (f.Type == baseType || f.Type == deletableType) {
			if deletable != (f.Type == deletableType) {
				return fmt.Errorf("embedded shape %s does not match binding", f.Type)
			}
			embedded = true
			continue
		}

		tag := f.Tag.Get("db")
		if tag == "" || tag == "-" {
			return fmt.Errorf("field %s has no db tag", f.Name)
		}
		if !declared[tag] {
			return fmt.Errorf("column %q is not declared in the binding", tag)
		}
		seen++

		if f.Type.Kind() == reflect.String && f.Type != trimmedStringType {
			return fmt.Errorf("string field %s must be store.TrimmedString", f.Name)
		}
		if f.Type == rawNullStringType {
			return fmt.Errorf("field %s must be store.NullString", f.Name)
		}
	}

	if !embedded {
		return fmt.Errorf("entity does not embed store.Base or store.Deletable")
	}
	if seen != len(b.Columns) {
		return fmt.Errorf("binding declares %d columns, entity has %d", len(b.Columns), seen)
	}
	return nil
}

func newBinding(b Binding, deletable bool) *binding {
	audit := append([]string{}, baseColumns...)
	if deletable {
		audit = append(audit, deletionColumns...)
	}
	all := append(audit, b.Columns...)

	// Insert never carries the id; the database assigns it.
	insertCols := all[1:]
	placeholders := make([]string, len(insertCols))
	for i, c := range insertCols {
		placeholders[i] = ":" + c
	}

	// Update never touches id or creation_date.
	updateCols := all[2:]
	assignments := make([]string, len(updateCols))
	for i, c := range updateCols {
		assignments[i] = c + " = :" + c
	}

	return &binding{
		table:     b.Table,
		deletable: deletable,
		columns:   append([]string{}, b.Columns...),
		selectSQL: strings.Join(all, ", "),
		insertSQL: fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES (%s) RETURNING id",
			b.Table, strings.Join(insertCols, ", "), strings.Join(placeholders, ", "),
		),
		updateSQL: fmt.Sprintf(
			"UPDATE %s SET %s WHERE id = :id",
			b.Table, strings.Join(assignments, ", "),
		),
		deleteSQL: fmt.Sprintf("DELETE FROM %s WHERE id = $1", b.Table),
	}
}
