package planner

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeDB and fakeTx stand in for *pgxpool.Pool so the transactional
// create/update flows run against canned rows instead of Postgres.

var conflictColumns = []string{"id", "title", "start_time", "end_time"}

var blockColumns = []string{
	"id", "title", "description", "start_time", "end_time", "color",
	"user_id", "task_id", "version", "last_synced", "created_at", "updated_at",
}

type fakeDB struct {
	tx *fakeTx
}

func (db *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	return db.tx, nil
}

type fakeTx struct {
	pgx.Tx

	conflicts []ConflictSummary
	existing  *TimeBlock

	committed  bool
	rolledBack bool
	queries    []string
}

func (tx *fakeTx) Commit(ctx context.Context) error {
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(ctx context.Context) error {
	if !tx.committed {
		tx.rolledBack = true
	}
	return nil
}

func (tx *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	tx.queries = append(tx.queries, sql)

	switch sql {
	case queryFindConflictsSQL:
		excludeID, _ := args[3].(string)
		rows := [][]any{}
		for _, conflict := range tx.conflicts {
			if excludeID != "" && conflict.ID == excludeID {
				continue
			}
			rows = append(rows, []any{conflict.ID, conflict.Title, conflict.StartTime, conflict.EndTime})
		}
		return &fakeRows{columns: conflictColumns, rows: rows}, nil

	case queryCreateTimeBlockSQL:
		now := args[8].(time.Time)
		return &fakeRows{columns: blockColumns, rows: [][]any{{
			args[0].(string), args[1].(string), args[2].(*string),
			args[3].(time.Time), args[4].(time.Time), args[5].(*string),
			args[6].(string), args[7].(*string), 1, (*time.Time)(nil), now, now,
		}}}, nil

	case queryGetTimeBlockForUpdateSQL:
		if tx.existing == nil {
			return &fakeRows{columns: blockColumns}, nil
		}
		b := *tx.existing
		return &fakeRows{columns: blockColumns, rows: [][]any{{
			b.ID, b.Title, b.Description, b.StartTime, b.EndTime, b.Color,
			b.UserID, b.TaskID, b.Version, b.LastSynced, b.CreatedAt, b.UpdatedAt,
		}}}, nil

	case queryUpdateTimeBlockSQL:
		return &fakeRows{columns: blockColumns, rows: [][]any{{
			args[0].(string), args[2].(string), args[3].(*string),
			args[4].(time.Time), args[5].(time.Time), args[6].(*string),
			args[1].(string), args[7].(*string), tx.existing.Version + 1,
			args[8].(*time.Time), tx.existing.CreatedAt, args[9].(time.Time),
		}}}, nil
	}

	return nil, fmt.Errorf("unexpected query: %s", sql)
}

func (tx *fakeTx) ran(sql string) bool {
	for _, q := range tx.queries {
		if q == sql {
			return true
		}
	}
	return false
}

type fakeRows struct {
	columns []string
	rows    [][]any
	idx     int
}

func (r *fakeRows) Close() {}

func (r *fakeRows) Err() error { return nil }

func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (r *fakeRows) RawValues() [][]byte { return nil }

func (r *fakeRows) Conn() *pgx.Conn { return nil }

func (r *fakeRows) Values() ([]any, error) { return r.rows[r.idx-1], nil }

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	fields := make([]pgconn.FieldDescription, len(r.columns))
	for i, name := range r.columns {
		fields[i] = pgconn.FieldDescription{Name: name}
	}
	return fields
}

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx <= len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.idx-1]
	if len(dest) != len(row) {
		return fmt.Errorf("expected %d destinations, got %d", len(row), len(dest))
	}
	for i, d := range dest {
		dv := reflect.ValueOf(d).Elem()
		sv := reflect.ValueOf(row[i])
		if !sv.IsValid() {
			dv.Set(reflect.Zero(dv.Type()))
			continue
		}
		dv.Set(sv)
	}
	return nil
}
