package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/evolvelab/gopop/pkg/errors"
	"github.com/evolvelab/gopop/pkg/logging"
)

// SQLiteStore archives run records in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string

	initialized sync.Once
}

// NewSQLiteStore opens or creates the archive at path. If path is ":memory:",
// the archive lives in memory.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to open results database"),
			errors.Fields{"path": path},
		)
	}

	store := &SQLiteStore{
		db:   db,
		path: path,
	}
	if err := store.ensureInitialized(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) ensureInitialized() error {
	var initErr error
	s.initialized.Do(func() {
		// WAL keeps readers usable while a benchmark is still inserting.
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			initErr = errors.Wrap(err, errors.StorageFailed, "failed to enable WAL mode")
			return
		}

		query := `
        CREATE TABLE IF NOT EXISTS runs (
            id TEXT PRIMARY KEY,
            experiment TEXT NOT NULL,
            optimizer TEXT NOT NULL,
            problem TEXT NOT NULL,
            dim INTEGER NOT NULL,
            seed INTEGER NOT NULL,
            repetition INTEGER NOT NULL,
            best_y REAL NOT NULL,
            best_x TEXT NOT NULL,
            evaluations INTEGER NOT NULL,
            generations INTEGER NOT NULL,
            restarts INTEGER NOT NULL,
            runtime_ns INTEGER NOT NULL,
            termination TEXT NOT NULL,
            created_at DATETIME NOT NULL
        );

        CREATE INDEX IF NOT EXISTS idx_runs_experiment ON runs(experiment);
        CREATE INDEX IF NOT EXISTS idx_runs_pair ON runs(optimizer, problem);
        `

		if _, err := s.db.Exec(query); err != nil {
			initErr = errors.WithFields(
				errors.Wrap(err, errors.StorageFailed, "failed to initialize results schema"),
				errors.Fields{"query": query},
			)
			return
		}
	})
	return initErr
}

// Insert archives one run record. The fitness trajectory is not stored; see
// ExportTrajectories.
func (s *SQLiteStore) Insert(ctx context.Context, rec RunRecord) error {
	if err := s.ensureInitialized(); err != nil {
		return err
	}

	bestX, err := json.Marshal(rec.BestX)
	if err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to marshal best candidate"),
			errors.Fields{"run_id": rec.ID},
		)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to begin transaction"),
			errors.Fields{"run_id": rec.ID},
		)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			logging.GetLogger().Error(context.Background(), "failed to rollback transaction: %v", err)
		}
	}()

	query := `
    INSERT INTO runs (
        id, experiment, optimizer, problem, dim, seed, repetition,
        best_y, best_x, evaluations, generations, restarts,
        runtime_ns, termination, created_at
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	_, err = tx.ExecContext(ctx, query,
		rec.ID, rec.Experiment, rec.Optimizer, rec.Problem, rec.Dim, rec.Seed, rec.Repetition,
		rec.BestY, string(bestX), rec.Evaluations, rec.Generations, rec.Restarts,
		int64(rec.Runtime), rec.Termination, rec.CreatedAt)
	if err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to insert run record"),
			errors.Fields{"run_id": rec.ID},
		)
	}

	if err = tx.Commit(); err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to commit transaction"),
			errors.Fields{"run_id": rec.ID},
		)
	}

	return nil
}

// Runs returns the archived records of one experiment in insertion order.
func (s *SQLiteStore) Runs(ctx context.Context, experiment string) ([]RunRecord, error) {
	if err := s.ensureInitialized(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
    SELECT id, experiment, optimizer, problem, dim, seed, repetition,
           best_y, best_x, evaluations, generations, restarts,
           runtime_ns, termination, created_at
    FROM runs WHERE experiment = ? ORDER BY rowid
    `

	rows, err := s.db.QueryContext(ctx, query, experiment)
	if err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to query run records")
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		rec, err := scanRunRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "error iterating run records")
	}

	return records, nil
}

// Experiments lists the distinct experiment names in the archive.
func (s *SQLiteStore) Experiments(ctx context.Context) ([]string, error) {
	if err := s.ensureInitialized(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT experiment FROM runs ORDER BY experiment")
	if err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to list experiments")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, errors.StorageFailed, "failed to scan experiment name")
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "error iterating experiments")
	}

	return names, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		return errors.Wrap(err, errors.StorageFailed, "failed to close results database")
	}
	return nil
}

func scanRunRecord(rows *sql.Rows) (RunRecord, error) {
	var (
		rec       RunRecord
		bestX     string
		runtimeNS int64
	)
	if err := rows.Scan(
		&rec.ID, &rec.Experiment, &rec.Optimizer, &rec.Problem, &rec.Dim, &rec.Seed, &rec.Repetition,
		&rec.BestY, &bestX, &rec.Evaluations, &rec.Generations, &rec.Restarts,
		&runtimeNS, &rec.Termination, &rec.CreatedAt,
	); err != nil {
		return RunRecord{}, errors.Wrap(err, errors.StorageFailed, "failed to scan run record")
	}

	rec.Runtime = time.Duration(runtimeNS)
	if err := json.Unmarshal([]byte(bestX), &rec.BestX); err != nil {
		return RunRecord{}, errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to unmarshal best candidate"),
			errors.Fields{"run_id": rec.ID},
		)
	}
	return rec, nil
}
