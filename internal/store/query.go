package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"
)

const notDeleted = "is_deleted = FALSE AND deleted_date IS NULL"

// QueryOption adjusts how a query handle materializes rows.
type QueryOption func(*queryOptions)

type queryOptions struct {
	ignoreFilters bool
	tracking      bool
}

// IgnoreQueryFilters makes logically deleted rows visible to this query.
func IgnoreQueryFilters() QueryOption {
	return func(o *queryOptions) { o.ignoreFilters = true }
}

// TrackChanges attaches materialized rows to the unit of work, so mutations
// made to them are picked up by the next Save. The default is detached.
func TrackChanges() QueryOption {
	return func(o *queryOptions) { o.tracking = true }
}

type condition struct {
	expr string
	args []any
}

// Query is a lazy handle over one entity's table. Nothing touches the
// database until Count, All or First runs.
type Query[E any, PE interface {
	Entity
	*E
}] struct {
	dc     *DataContext
	b      *binding
	err    error
	opts   queryOptions
	conds  []condition
	order  string
	limit  int
	offset int
}

// Data returns a query handle over E. Soft-deletable entities are filtered
// to visible rows unless IgnoreQueryFilters is passed.
func Data[E any, PE interface {
	Entity
	*E
}](dc *DataContext, opts ...QueryOption) *Query[E, PE] {
	q := &Query[E, PE]{dc: dc, limit: -1, offset: -1}
	q.b, q.err = bindingFor(reflect.TypeOf((*E)(nil)).Elem())
	for _, opt := range opts {
		opt(&q.opts)
	}
	return q
}

// Where adds a conjunct. expr uses ? placeholders.
func (q *Query[E, PE]) Where(expr string, args ...any) *Query[E, PE] {
	q.conds = append(q.conds, condition{expr: expr, args: args})
	return q
}

func (q *Query[E, PE]) OrderBy(expr string) *Query[E, PE] {
	q.order = expr
	return q
}

func (q *Query[E, PE]) Limit(n int) *Query[E, PE] {
	q.limit = n
	return q
}

func (q *Query[E, PE]) Offset(n int) *Query[E, PE] {
	q.offset = n
	return q
}

// Count returns the number of rows satisfying the query before pagination.
func (q *Query[E, PE]) Count(ctx context.Context) (int64, error) {
	if q.err != nil {
		return 0, q.err
	}
	query, args := q.build("SELECT COUNT(*) FROM "+q.b.table, false)

	var count int64
	row := q.dc.ext().QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", q.b.table, err)
	}
	return count, nil
}

// All materializes every matching row. Within one call, rows sharing a
// primary key resolve to the same instance.
func (q *Query[E, PE]) All(ctx context.Context) ([]PE, error) {
	if q.err != nil {
		return nil, q.err
	}
	query, args := q.build("SELECT "+q.b.selectSQL+" FROM "+q.b.table, true)

	rows, err := q.dc.ext().QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.b.table, err)
	}
	defer rows.Close()

	var result []PE
	seen := map[uuid.UUID]PE{}
	for rows.Next() {
		e := PE(new(E))
		if err := rows.StructScan(e); err != nil {
			return nil, fmt.Errorf("scan %s: %w", q.b.table, err)
		}
		id := e.EntityBase().ID

		if prior, ok := seen[id]; ok {
			result = append(result, prior)
			continue
		}
		if q.opts.tracking {
			if en := q.dc.findTracked(q.b, id); en != nil {
				e = en.entity.(PE)
			} else {
				q.dc.attach(e, q.b, stateUnchanged)
			}
		}
		seen[id] = e
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", q.b.table, err)
	}
	return result, nil
}

// First returns the first matching row, or nil when none is visible.
func (q *Query[E, PE]) First(ctx context.Context) (PE, error) {
	items, err := q.Limit(1).All(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0], nil
}

func (q *Query[E, PE]) build(head string, paged bool) (string, []any) {
	var sb strings.Builder
	sb.WriteString(head)

	var args []any
	var conjuncts []string
	if q.b.deletable && !q.opts.ignoreFilters {
		conjuncts = append(conjuncts, notDeleted)
	}
	for _, c := range q.conds {
		conjuncts = append(conjuncts, "("+c.expr+")")
		args = append(args, c.args...)
	}
	if len(conjuncts) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conjuncts, " AND "))
	}

	if paged {
		if q.order != "" {
			sb.WriteString(" ORDER BY ")
			sb.WriteString(q.order)
		}
		if q.limit >= 0 {
			sb.WriteString(" LIMIT ?")
			args = append(args, q.limit)
		}
		if q.offset >= 0 {
			sb.WriteString(" OFFSET ?")
			args = append(args, q.offset)
		}
	}

	return q.dc.db.Rebind(sb.String()), args
}

// Get returns the visible row with that identifier, or nil. The returned
// entity is detached; use Data with TrackChanges to mutate and save.
func Get[E any, PE interface {
	Entity
	*E
}](ctx context.Context, dc *DataContext, id uuid.UUID) (PE, error) {
	return Data[E, PE](dc).Where("id = ?", id).First(ctx)
}

// Exists reports whether a visible row with that identifier exists.
func Exists[E any, PE interface {
	Entity
	*E
}](ctx context.Context, dc *DataContext, id uuid.UUID) (bool, error) {
	return ExistsWhere[E, PE](ctx, dc, "id = ?", id)
}

// ExistsWhere reports whether any visible row satisfies the predicate.
func ExistsWhere[E any, PE interface {
	Entity
	*E
}](ctx context.Context, dc *DataContext, expr string, args ...any) (bool, error) {
	q := Data[E, PE](dc).Where(expr, args...)
	if q.err != nil {
		return false, q.err
	}
	query, qargs := q.build("SELECT 1 FROM "+q.b.table, false)
	query = "SELECT EXISTS (" + query + ")"

	var exists bool
	row := q.dc.ext().QueryRowxContext(ctx, query, qargs...)
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("exists %s: %w", q.b.table, err)
	}
	return exists, nil
}
