package store

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
)

// snapshotKey is the fixed key the whole store is serialized under.
var snapshotKey = []byte("linkdeck-storage")

// Snapshot is the persisted form of the store: the three containers
// serialized as one JSON blob.
type Snapshot struct {
	Links   []Link   `json:"links"`
	Folders []Folder `json:"folders"`
	Tags    []Tag    `json:"tags"`
}

// BadgerRepository persists snapshots in a local BadgerDB.
type BadgerRepository struct {
	db  *badger.DB
	log logrus.FieldLogger
}

// NewBadgerRepository opens the database at the given path.
func NewBadgerRepository(dbPath string, logger logrus.FieldLogger) (*BadgerRepository, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = &badgerLogger{logger.WithField("component", "badgerdb")}

	db, err := badger.Open(opts)
	if err != nil {
		logger.WithError(err).Error("Failed to open BadgerDB")
		return nil, fmt.Errorf("failed to open badger db at %s: %w", dbPath, err)
	}

	return &BadgerRepository{
		db:  db,
		log: logger.WithField("component", "repository"),
	}, nil
}

// Close closes the underlying database.
func (r *BadgerRepository) Close() error {
	if err := r.db.Close(); err != nil {
		r.log.WithError(err).Error("Error closing BadgerDB")
		return err
	}
	return nil
}

// Save writes the snapshot under the fixed storage key, replacing any
// previous snapshot.
func (r *BadgerRepository) Save(snapshot *Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snapshotKey, data)
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// Load reads the snapshot. Returns (nil, nil) when no snapshot has been
// written yet.
func (r *BadgerRepository) Load() (*Snapshot, error) {
	var snapshot *Snapshot

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			snapshot = &Snapshot{}
			return json.Unmarshal(val, snapshot)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	return snapshot, nil
}

// badgerLogger adapts logrus.FieldLogger to Badger's logger interface.
type badgerLogger struct {
	logger logrus.FieldLogger
}

func (l *badgerLogger) Errorf(f string, v ...interface{}) {
	l.logger.Errorf(f, v...)
}
func (l *badgerLogger) Warningf(f string, v ...interface{}) {
	l.logger.Warningf(f, v...)
}
func (l *badgerLogger) Infof(f string, v ...interface{}) {
	l.logger.Infof(f, v...)
}
func (l *badgerLogger) Debugf(f string, v ...interface{}) {
	l.logger.Debugf(f, v...)
}
