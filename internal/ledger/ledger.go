// Package ledger persists decided match outcomes in SQLite.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Iron-Ham/arbiter/internal/conditions"
	"github.com/Iron-Ham/arbiter/internal/errors"
	"github.com/Iron-Ham/arbiter/internal/ledger/migrations"
	"github.com/Iron-Ham/arbiter/internal/team"
	_ "modernc.org/sqlite"
)

// TeamRecord is the final state of one team.
type TeamRecord struct {
	Index        int
	Slots        []int
	State        string
	LastActivity time.Duration
}

// Record is one recorded match.
type Record struct {
	ID         int64
	Scenario   string
	RecordedAt time.Time
	EndedAt    time.Duration // Simulation time the run stopped
	Decided    bool
	Draw       bool
	Winner     int // -1 unless decided with a winner
	Teams      []TeamRecord
}

// NewRecord builds a record from a finished run. outcome may be nil when the
// run stopped undecided.
func NewRecord(scenario string, endedAt time.Duration, outcome *conditions.Outcome, teams []team.Status) Record {
	rec := Record{
		Scenario: scenario,
		EndedAt:  endedAt,
		Winner:   -1,
	}
	if outcome != nil {
		rec.Decided = true
		rec.Draw = outcome.Draw
		rec.Winner = outcome.Winner
	}
	for _, st := range teams {
		slots := make([]int, len(st.Slots))
		for i, s := range st.Slots {
			slots[i] = int(s)
		}
		rec.Teams = append(rec.Teams, TeamRecord{
			Index:        st.Index,
			Slots:        slots,
			State:        st.State.String(),
			LastActivity: st.LastActivity,
		})
	}
	return rec
}

// Store persists outcome records in SQLite.
type Store struct {
	mu    sync.RWMutex
	sqlDB *sql.DB
}

// Open opens a SQLite ledger at path, creating it if needed, and applies the
// embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.NewStorageError("open", fmt.Errorf("ledger path is required"))
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, errors.NewStorageError("open", err)
	}
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.NewStorageError("open", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, errors.NewStorageError("ping", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, errors.NewStorageError("migrate", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the database. Further calls return ErrLedgerClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sqlDB == nil {
		return nil
	}
	err := s.sqlDB.Close()
	s.sqlDB = nil
	return err
}

func (s *Store) db() (*sql.DB, error) {
	if s.sqlDB == nil {
		return nil, errors.ErrLedgerClosed
	}
	return s.sqlDB, nil
}

// Record stores rec and returns its ID. RecordedAt defaults to now.
func (s *Store) Record(ctx context.Context, rec Record) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	db, err := s.db()
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(rec.Scenario) == "" {
		return 0, errors.NewStorageError("record", fmt.Errorf("scenario name is required"))
	}
	recordedAt := rec.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.NewStorageError("record", err)
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO outcomes (scenario, recorded_at, ended_at_ms, decided, draw, winner)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Scenario,
		recordedAt.UTC().UnixMilli(),
		rec.EndedAt.Milliseconds(),
		boolInt(rec.Decided),
		boolInt(rec.Draw),
		rec.Winner,
	)
	if err != nil {
		_ = tx.Rollback()
		return 0, errors.NewStorageError("record", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, errors.NewStorageError("record", err)
	}
	for _, t := range rec.Teams {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO outcome_teams (outcome_id, team_index, slots, state, last_activity_ms)
			 VALUES (?, ?, ?, ?, ?)`,
			id, t.Index, joinSlots(t.Slots), t.State, t.LastActivity.Milliseconds(),
		); err != nil {
			_ = tx.Rollback()
			return 0, errors.NewStorageError("record", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, errors.NewStorageError("record", err)
	}
	return id, nil
}

// List returns the most recent records first. A non-positive limit returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	db, err := s.db()
	if err != nil {
		return nil, err
	}

	query := `SELECT id, scenario, recorded_at, ended_at_ms, decided, draw, winner
	          FROM outcomes ORDER BY recorded_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewStorageError("list", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, errors.NewStorageError("list", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError("list", err)
	}

	for i := range out {
		teams, err := loadTeams(ctx, db, out[i].ID)
		if err != nil {
			return nil, errors.NewStorageError("list", err)
		}
		out[i].Teams = teams
	}
	return out, nil
}

// Get returns one record by ID.
func (s *Store) Get(ctx context.Context, id int64) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	db, err := s.db()
	if err != nil {
		return Record{}, err
	}

	row := db.QueryRowContext(ctx,
		`SELECT id, scenario, recorded_at, ended_at_ms, decided, draw, winner
		 FROM outcomes WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return Record{}, errors.NewStorageError("get", errors.ErrRecordNotFound)
	}
	if err != nil {
		return Record{}, errors.NewStorageError("get", err)
	}
	rec.Teams, err = loadTeams(ctx, db, rec.ID)
	if err != nil {
		return Record{}, errors.NewStorageError("get", err)
	}
	return rec, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec                   Record
		recordedAt, endedAtMs int64
		decided, draw         int
	)
	if err := row.Scan(&rec.ID, &rec.Scenario, &recordedAt, &endedAtMs, &decided, &draw, &rec.Winner); err != nil {
		return Record{}, err
	}
	rec.RecordedAt = time.UnixMilli(recordedAt).UTC()
	rec.EndedAt = time.Duration(endedAtMs) * time.Millisecond
	rec.Decided = decided != 0
	rec.Draw = draw != 0
	return rec, nil
}

func loadTeams(ctx context.Context, db *sql.DB, id int64) ([]TeamRecord, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT team_index, slots, state, last_activity_ms
		 FROM outcome_teams WHERE outcome_id = ? ORDER BY team_index`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []TeamRecord
	for rows.Next() {
		var (
			t          TeamRecord
			slots      string
			lastActive int64
		)
		if err := rows.Scan(&t.Index, &slots, &t.State, &lastActive); err != nil {
			return nil, err
		}
		t.Slots, err = splitSlots(slots)
		if err != nil {
			return nil, err
		}
		t.LastActivity = time.Duration(lastActive) * time.Millisecond
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func joinSlots(slots []int) string {
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ",")
}

func splitSlots(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid slot list %q: %w", s, err)
		}
		out[i] = n
	}
	return out, nil
}
