package store

import (
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

/* ---------- 假實作 ---------- */

// fakeRow 實作 pgx.Row，依序把 vals 指派給 Scan 的目的指標
type fakeRow struct {
	vals    []any
	scanErr error
}

func assign(dest []any, vals []any) {
	if len(dest) != len(vals) {
		panic("fakeRow.Scan: unexpected number of dest")
	}
	for i, v := range vals {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	assign(dest, r.vals)
	return nil
}

// fakeRows 實作 pgx.Rows，每列同 fakeRow
type fakeRows struct {
	data    [][]any
	idx     int
	scanErr error
	err     error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Next() bool                                   { return r.idx < len(r.data) }
func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	assign(dest, r.data[r.idx])
	r.idx++
	return nil
}
func (r *fakeRows) Values() ([]any, error) { return nil, nil }
func (r *fakeRows) RawValues() [][]byte    { return nil }
func (r *fakeRows) Conn() *pgx.Conn        { return nil }

func tag(s string) pgconn.CommandTag { return pgconn.NewCommandTag(s) }
