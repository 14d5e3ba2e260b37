package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/voltlab/regen2go/internal/simulation"
	"github.com/voltlab/regen2go/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketRuns = "runs"
)

// RunRecord is a recorded simulation run. Since runs are deterministic,
// a stored record doubles as a regression baseline for replays.
type RunRecord struct {
	Id        string            `json:"id"`
	CreatedAt time.Time         `json:"createdAt"`
	Result    simulation.Result `json:"result"`
}

type Persistence interface {
	Init() error

	SaveRun(record RunRecord) error
	LoadRun(id string) (RunRecord, error)
	ListRuns() ([]RunRecord, error)
	DeleteRun(id string) error
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// SaveRun stores the given run record, overwriting any previous record
// with the same id.
func (p persistence) SaveRun(record RunRecord) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketRuns))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		err = b.Put([]byte(record.Id), data)
		return err
	})
}

// LoadRun loads a single run record by id.
func (p persistence) LoadRun(id string) (RunRecord, error) {
	db, err := p.openPersistence()
	if err != nil {
		return RunRecord{}, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var record RunRecord
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketRuns))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(id))
		if v == nil {
			return os.ErrNotExist
		}

		err := json.Unmarshal(v, &record)
		if err != nil {
			// if we cannot read the saved data, delete it
			ui.Warning("Unable to unmarshal saved run data for %s: %v", id, err)
			err := b.Delete([]byte(id))
			if err != nil {
				ui.Error("Unable to delete corrupt data key %s: %v", id, err)
			}
			return os.ErrNotExist
		}

		return nil
	})

	return record, err
}

// ListRuns returns all stored run records.
func (p persistence) ListRuns() ([]RunRecord, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var records []RunRecord
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketRuns))
		if b == nil {
			// no runs recorded yet
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var record RunRecord
			if err := json.Unmarshal(v, &record); err != nil {
				ui.Warning("Skipping corrupt run record %s: %v", string(k), err)
				return nil
			}
			records = append(records, record)
			return nil
		})
	})

	return records, err
}

func (p persistence) DeleteRun(id string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketRuns))
		if b == nil {
			// no run bucket yet
			return nil
		}
		v := b.Get([]byte(id))
		if v == nil {
			// no data for given key
			return nil
		}

		return b.Delete([]byte(id))
	})
}
