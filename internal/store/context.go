package store

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/google/uuid"
)

type entityState int

const (
	stateUnchanged entityState = iota
	stateAdded
	stateModified
	stateDeleted
)

type entry struct {
	entity   Entity
	binding  *binding
	state    entityState
	snapshot any
}

// DataContext is one unit of work: staged writes accumulate here and commit
// atomically on Save. It is not safe for concurrent use; the host scopes one
// instance per request.
type DataContext struct {
	db       *sqlx.DB
	tx       *sqlx.Tx
	strategy *ExecutionStrategy
	entries  []*entry
	tracked  map[Entity]*entry
}

type ContextOption func(*DataContext)

func WithExecutionStrategy(s *ExecutionStrategy) ContextOption {
	return func(dc *DataContext) { dc.strategy = s }
}

func NewDataContext(db *sqlx.DB, opts ...ContextOption) *DataContext {
	dc := &DataContext{
		db:       db,
		strategy: DefaultStrategy(),
		tracked:  map[Entity]*entry{},
	}
	for _, opt := range opts {
		opt(dc)
	}
	return dc
}

func (dc *DataContext) ext() sqlx.ExtContext {
	if dc.tx != nil {
		return dc.tx
	}
	return dc.db
}

// Create stages e for insertion. The entity must not already be attached.
func (dc *DataContext) Create(e Entity) error {
	b, err := bindingForEntity(e)
	if err != nil {
		return err
	}
	if _, ok := dc.tracked[e]; ok {
		return ErrAlreadyTracked
	}
	dc.attach(e, b, stateAdded)
	return nil
}

// Delete stages e for removal. For a soft-deletable entity the commit hook
// rewrites the removal into a logical delete; everything else is physically
// deleted. Deleting a freshly created, uncommitted entity just detaches it.
func (dc *DataContext) Delete(e Entity) error {
	b, err := bindingForEntity(e)
	if err != nil {
		return err
	}
	if en, ok := dc.tracked[e]; ok {
		if en.state == stateAdded {
			dc.detach(en)
			return nil
		}
		en.state = stateDeleted
		return nil
	}
	dc.attach(e, b, stateDeleted)
	return nil
}

// DeleteAll stages every entity in the batch.
func (dc *DataContext) DeleteAll(entities ...Entity) error {
	for _, e := range entities {
		if err := dc.Delete(e); err != nil {
			return err
		}
	}
	return nil
}

func (dc *DataContext) attach(e Entity, b *binding, state entityState) *entry {
	en := &entry{entity: e, binding: b, state: state, snapshot: snapshotOf(e)}
	dc.entries = append(dc.entries, en)
	dc.tracked[e] = en
	return en
}

func (dc *DataContext) detach(target *entry) {
	delete(dc.tracked, target.entity)
	for i, en := range dc.entries {
		if en == target {
			dc.entries = append(dc.entries[:i], dc.entries[i+1:]...)
			return
		}
	}
}

func (dc *DataContext) findTracked(b *binding, id uuid.UUID) *entry {
	for _, en := range dc.entries {
		if en.binding == b && en.entity.EntityBase().ID == id {
			return en
		}
	}
	return nil
}

func snapshotOf(e Entity) any {
	return reflect.ValueOf(e).Elem().Interface()
}

// Save commits the staged change-set. Outside ExecuteTransaction it opens
// its own transaction so the whole change-set lands atomically; inside one
// it flushes into the ambient transaction.
func (dc *DataContext) Save(ctx context.Context) error {
	if dc.tx != nil {
		if err := dc.flush(ctx, dc.tx); err != nil {
			return err
		}
		dc.acknowledge()
		return nil
	}

	tx, err := dc.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := dc.flush(ctx, tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	dc.acknowledge()
	return nil
}

func (dc *DataContext) flush(ctx context.Context, tx *sqlx.Tx) error {
	// One instant for everything in this commit.
	dc.prepare(time.Now().UTC())

	for _, en := range dc.entries {
		var err error
		switch en.state {
		case stateAdded:
			err = dc.insert(ctx, tx, en)
		case stateModified:
			err = dc.update(ctx, tx, en)
		case stateDeleted:
			err = dc.remove(ctx, tx, en)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// prepare is the pre-commit pass: it promotes tracked entities whose values
// drifted from their snapshot to modified, then stamps every staged entry
// with the same instant.
func (dc *DataContext) prepare(now time.Time) {
	for _, en := range dc.entries {
		if en.state == stateUnchanged && !reflect.DeepEqual(en.snapshot, snapshotOf(en.entity)) {
			en.state = stateModified
		}
	}
	for _, en := range dc.entries {
		en.stamp(now)
	}
}

// stamp applies the pre-commit lifecycle rules. The only legitimate path to
// the deleted state is Delete: a caller flipping IsDeleted by hand gets the
// flags reset on the next commit.
func (en *entry) stamp(now time.Time) {
	base := en.entity.EntityBase()
	del, deletable := en.entity.(SoftDeletable)

	switch en.state {
	case stateAdded:
		if deletable {
			d := del.DeletableBase()
			d.IsDeleted = false
			d.DeletedDate = sql.NullTime{}
		}
		base.CreationDate = now
		base.UpdatedDate = sql.NullTime{}

	case stateModified:
		if deletable {
			d := del.DeletableBase()
			d.IsDeleted = false
			d.DeletedDate = sql.NullTime{}
		}
		base.UpdatedDate = sql.NullTime{Time: now, Valid: true}

	case stateDeleted:
		if deletable {
			d := del.DeletableBase()
			d.IsDeleted = true
			d.DeletedDate = sql.NullTime{Time: now, Valid: true}
			en.state = stateModified
		}
	}
}

func (dc *DataContext) insert(ctx context.Context, tx *sqlx.Tx, en *entry) error {
	rows, err := sqlx.NamedQueryContext(ctx, tx, en.binding.insertSQL, en.entity)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", en.binding.table, err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&en.entity.EntityBase().ID); err != nil {
			return fmt.Errorf("scan generated id: %w", err)
		}
	}
	return rows.Err()
}

func (dc *DataContext) update(ctx context.Context, tx *sqlx.Tx, en *entry) error {
	if _, err := sqlx.NamedExecContext(ctx, tx, en.binding.updateSQL, en.entity); err != nil {
		return fmt.Errorf("update %s: %w", en.binding.table, err)
	}
	return nil
}

func (dc *DataContext) remove(ctx context.Context, tx *sqlx.Tx, en *entry) error {
	if _, err := tx.ExecContext(ctx, en.binding.deleteSQL, en.entity.EntityBase().ID); err != nil {
		return fmt.Errorf("delete from %s: %w", en.binding.table, err)
	}
	return nil
}

func (dc *DataContext) acknowledge() {
	kept := dc.entries[:0]
	for _, en := range dc.entries {
		if en.state == stateDeleted {
			delete(dc.tracked, en.entity)
			continue
		}
		en.state = stateUnchanged
		en.snapshot = snapshotOf(en.entity)
		kept = append(kept, en)
	}
	dc.entries = kept
}

// ExecuteTransaction runs action under the retry strategy. Every attempt
// opens a fresh transaction and starts from the change-set as it was staged
// before the first attempt, so the action must be restartable: it may run
// more than once, and only the attempt that commits leaves any effect.
func (dc *DataContext) ExecuteTransaction(ctx context.Context, action func(context.Context) error) error {
	return dc.strategy.Execute(ctx, func(ctx context.Context) error {
		return dc.runInTransaction(ctx, action)
	})
}

func (dc *DataContext) runInTransaction(ctx context.Context, action func(context.Context) error) (err error) {
	staged := dc.stashEntries()

	tx, err := dc.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	dc.tx = tx
	defer func() {
		dc.tx = nil
		if err != nil {
			tx.Rollback()
			dc.restoreEntries(staged)
		}
	}()

	if err = action(ctx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		err = fmt.Errorf("commit transaction: %w", err)
	}
	return err
}

func (dc *DataContext) stashEntries() []entry {
	stash := make([]entry, len(dc.entries))
	for i, en := range dc.entries {
		stash[i] = *en
	}
	return stash
}

func (dc *DataContext) restoreEntries(stash []entry) {
	dc.entries = make([]*entry, len(stash))
	dc.tracked = make(map[Entity]*entry, len(stash))
	for i := range stash {
		en := stash[i]
		dc.entries[i] = &en
		dc.tracked[en.entity] = &en
	}
}
