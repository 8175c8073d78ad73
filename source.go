package nivesh

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// DirSource loads ledger tables from CSV files in a local directory. It
// stands in for whatever object store actually holds the ledger: the
// engine only ever sees the Table it returns.
type DirSource struct {
	Dir string
}

// Load reads the named CSV file. The first record is the header. Duplicate
// rows are collapsed keeping first occurrence order, and blank records are
// dropped, so the table is a set of field tuples in stable order.
func (s DirSource) Load(name string) (Table, error) {
	f, err := os.Open(filepath.Join(s.Dir, name))
	if err != nil {
		return Table{}, fmt.Errorf("cannot open ledger %q: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // rows may omit trailing optional columns
	records, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("cannot read ledger %q: %w", name, err)
	}
	if len(records) == 0 {
		return Table{}, nil
	}

	t := Table{Header: records[0]}
	seen := make(map[string]bool)
	for _, row := range records[1:] {
		if isBlank(row) {
			continue
		}
		key := fmt.Sprintf("%q", row)
		if seen[key] {
			continue
		}
		seen[key] = true
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// MemSource serves in-memory tables, keyed by name. Used in tests.
type MemSource map[string]Table

func (s MemSource) Load(name string) (Table, error) {
	t, ok := s[name]
	if !ok {
		return Table{}, fmt.Errorf("no such ledger %q", name)
	}
	return t, nil
}
