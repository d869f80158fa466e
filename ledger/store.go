/*
store.go - Snapshot persistence adapter

PURPOSE:
  Saves and loads the whole Ledger as one serialized snapshot under a single
  well-known key of an opaque key-value store. Every save is a full overwrite;
  there are no incremental writes.

FAILURE POLICY:
  Storage failures never reach the caller. Save logs and returns; Load logs and
  reports "no data". The in-memory ledger is always the source of truth for the
  running session.

IMPLEMENTATIONS OF KVStore:
  - ledger/store/memory.go: In-memory, for tests and ephemeral runs
  - store/sqlite/sqlite.go: SQLite file on the local device

SEE ALSO:
  - snapshot.go: Wire format of the stored value
  - session/session.go: Calls Save after each successful transition
*/
package ledger

import (
	"context"

	"github.com/sirupsen/logrus"
)

// DefaultStorageKey is the key the snapshot is stored under.
const DefaultStorageKey = "expenses-tracker-data"

// =============================================================================
// KV STORE - Opaque local key-value storage
// =============================================================================

// KVStore is a local key-value store holding opaque byte values.
type KVStore interface {
	// Get returns the value for key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Put overwrites the value for key.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// =============================================================================
// PERSISTER - Best-effort snapshot save/load
// =============================================================================

type Persister struct {
	Store KVStore
	Key   string
	Log   logrus.FieldLogger
}

// NewPersister returns a Persister using DefaultStorageKey.
func NewPersister(store KVStore, log logrus.FieldLogger) *Persister {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Persister{Store: store, Key: DefaultStorageKey, Log: log}
}

// Save overwrites the stored snapshot with l. An uninitialized ledger removes
// the snapshot so the next Load starts from scratch. Failures are logged only.
func (p *Persister) Save(ctx context.Context, l Ledger) {
	if err := p.save(ctx, l); err != nil {
		p.Log.WithError(err).WithFields(logrus.Fields{
			"key":          p.Key,
			"transactions": l.Len(),
		}).Error("failed to save ledger snapshot")
	}
}

func (p *Persister) save(ctx context.Context, l Ledger) error {
	if !l.IsInitialized() {
		if err := p.Store.Delete(ctx, p.Key); err != nil {
			return &PersistenceError{Op: "delete", Key: p.Key, Err: err}
		}
		return nil
	}

	data, err := EncodeSnapshot(l)
	if err != nil {
		return &PersistenceError{Op: "encode", Key: p.Key, Err: err}
	}
	if err := p.Store.Put(ctx, p.Key, data); err != nil {
		return &PersistenceError{Op: "save", Key: p.Key, Err: err}
	}
	return nil
}

// Load returns the stored ledger. ok is false when nothing is stored or the
// stored value cannot be read; the reason is logged.
func (p *Persister) Load(ctx context.Context) (Ledger, bool) {
	l, ok, err := p.load(ctx)
	if err != nil {
		p.Log.WithError(err).WithField("key", p.Key).Error("failed to load ledger snapshot")
		return New(), false
	}
	if !ok {
		return New(), false
	}
	if err := l.Verify(); err != nil {
		p.Log.WithError(err).WithField("key", p.Key).Warn("stored ledger balance does not match its transactions")
	}
	return l, true
}

func (p *Persister) load(ctx context.Context) (Ledger, bool, error) {
	data, found, err := p.Store.Get(ctx, p.Key)
	if err != nil {
		return Ledger{}, false, &PersistenceError{Op: "load", Key: p.Key, Err: err}
	}
	if !found || len(data) == 0 {
		return Ledger{}, false, nil
	}
	l, err := DecodeSnapshot(data)
	if err != nil {
		return Ledger{}, false, &PersistenceError{Op: "decode", Key: p.Key, Err: err}
	}
	return l, true, nil
}
