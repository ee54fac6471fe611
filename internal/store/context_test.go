package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext() *DataContext {
	// Staging never touches the database, so a nil handle is fine here.
	return NewDataContext(nil)
}

func TestCreateRejectsAttachedEntity(t *testing.T) {
	dc := newTestContext()
	g := &gadget{Name: "one"}

	require.NoError(t, dc.Create(g))
	assert.ErrorIs(t, dc.Create(g), ErrAlreadyTracked)
}

func TestCreateRequiresBinding(t *testing.T) {
	type orphan struct {
		Base
	}
	dc := newTestContext()
	assert.Error(t, dc.Create(&orphan{}))
}

func TestDeleteOfFreshlyCreatedDetaches(t *testing.T) {
	dc := newTestContext()
	g := &gadget{Name: "one"}

	require.NoError(t, dc.Create(g))
	require.NoError(t, dc.Delete(g))

	assert.Empty(t, dc.entries)
	assert.Empty(t, dc.tracked)
}

func TestDeleteAttachesDetachedEntity(t *testing.T) {
	dc := newTestContext()
	g := &gadget{Name: "one"}

	require.NoError(t, dc.Delete(g))
	require.Len(t, dc.entries, 1)
	assert.Equal(t, stateDeleted, dc.entries[0].state)
}

func TestStampOnInsert(t *testing.T) {
	now := time.Now().UTC()
	g := &gadget{Name: "one"}
	// Whatever the caller smuggled in is discarded on insert.
	g.IsDeleted = true
	g.DeletedDate = sql.NullTime{Time: now, Valid: true}
	g.UpdatedDate = sql.NullTime{Time: now, Valid: true}

	en := &entry{entity: g, state: stateAdded}
	en.stamp(now)

	assert.Equal(t, stateAdded, en.state)
	assert.Equal(t, now, g.CreationDate)
	assert.False(t, g.UpdatedDate.Valid)
	assert.False(t, g.IsDeleted)
	assert.False(t, g.DeletedDate.Valid)
}

func TestStampOnModify(t *testing.T) {
	created := time.Now().UTC().Add(-time.Hour)
	now := time.Now().UTC()

	g := &gadget{Name: "one"}
	g.CreationDate = created
	g.IsDeleted = true

	en := &entry{entity: g, state: stateModified}
	en.stamp(now)

	assert.Equal(t, created, g.CreationDate)
	assert.Equal(t, now, g.UpdatedDate.Time)
	assert.True(t, g.UpdatedDate.Valid)
	// A hand-flipped delete flag is reverted; Delete is the only way out.
	assert.False(t, g.IsDeleted)
	assert.False(t, g.DeletedDate.Valid)
}

func TestStampRewritesDeleteOfDeletable(t *testing.T) {
	now := time.Now().UTC()
	g := &gadget{Name: "one"}

	en := &entry{entity: g, state: stateDeleted}
	en.stamp(now)

	assert.Equal(t, stateModified, en.state)
	assert.True(t, g.IsDeleted)
	assert.Equal(t, now, g.DeletedDate.Time)
	assert.False(t, g.UpdatedDate.Valid)
}

func TestStampKeepsPhysicalDeleteForPlainEntity(t *testing.T) {
	now := time.Now().UTC()
	s := &sticker{Code: "x"}

	en := &entry{entity: s, state: stateDeleted}
	en.stamp(now)

	assert.Equal(t, stateDeleted, en.state)
}

func TestPrepareDetectsDriftedSnapshots(t *testing.T) {
	dc := newTestContext()
	b, err := bindingForEntity(&gadget{})
	require.NoError(t, err)

	clean := &gadget{Name: "same"}
	dirty := &gadget{Name: "before"}
	dc.attach(clean, b, stateUnchanged)
	dc.attach(dirty, b, stateUnchanged)

	dirty.Name = "after"
	dc.prepare(time.Now().UTC())

	assert.Equal(t, stateUnchanged, dc.tracked[Entity(clean)].state)
	assert.Equal(t, stateModified, dc.tracked[Entity(dirty)].state)
	assert.True(t, dirty.UpdatedDate.Valid)
	assert.False(t, clean.UpdatedDate.Valid)
}

func TestPrepareStampsOneInstant(t *testing.T) {
	dc := newTestContext()
	first := &gadget{Name: "a"}
	second := &gadget{Name: "b"}
	third := &sticker{Code: "c"}

	require.NoError(t, dc.Create(first))
	require.NoError(t, dc.Create(second))
	require.NoError(t, dc.Create(third))

	now := time.Now().UTC()
	dc.prepare(now)

	assert.Equal(t, now, first.CreationDate)
	assert.Equal(t, now, second.CreationDate)
	assert.Equal(t, now, third.CreationDate)
}

func TestStashRestoreEntries(t *testing.T) {
	dc := newTestContext()
	g := &gadget{Name: "one"}
	require.NoError(t, dc.Create(g))

	stash := dc.stashEntries()

	s := &sticker{Code: "x"}
	require.NoError(t, dc.Create(s))
	dc.tracked[Entity(g)].state = stateModified

	dc.restoreEntries(stash)

	require.Len(t, dc.entries, 1)
	assert.Equal(t, stateAdded, dc.entries[0].state)
	assert.Same(t, Entity(g), dc.entries[0].entity)
	_, tracked := dc.tracked[Entity(s)]
	assert.False(t, tracked)
}

func TestAcknowledge(t *testing.T) {
	dc := newTestContext()
	b, err := bindingForEntity(&gadget{})
	require.NoError(t, err)
	sb, err := bindingForEntity(&sticker{})
	require.NoError(t, err)

	added := &gadget{Name: "added"}
	removed := &sticker{Code: "gone"}
	dc.attach(added, b, stateAdded)
	dc.attach(removed, sb, stateDeleted)

	dc.acknowledge()

	require.Len(t, dc.entries, 1)
	assert.Equal(t, stateUnchanged, dc.entries[0].state)
	_, tracked := dc.tracked[Entity(removed)]
	assert.False(t, tracked)
}
