package nivesh

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	content := `symbol,name,date,price,units,side,kind
A,Alpha,01-01-2023,100,10,buy,mutual_fund
B,Beta,01-02-2023,200,5,buy,indian_equity

A,Alpha,01-01-2023,100,10,buy,mutual_fund
C,Gamma,01-03-2023,50,20
`
	if err := os.WriteFile(filepath.Join(dir, "transactions.csv"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := DirSource{Dir: dir}.Load("transactions.csv")
	if err != nil {
		t.Fatal(err)
	}

	wantHeader := []string{"symbol", "name", "date", "price", "units", "side", "kind"}
	if diff := cmp.Diff(wantHeader, table.Header); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	// the duplicate A row collapses, the blank line disappears, and the
	// short C row (optional columns omitted) survives
	if len(table.Rows) != 3 {
		t.Fatalf("rows = %d, want 3: %v", len(table.Rows), table.Rows)
	}
	if table.Rows[0][0] != "A" || table.Rows[1][0] != "B" || table.Rows[2][0] != "C" {
		t.Errorf("rows out of first-occurrence order: %v", table.Rows)
	}

	if _, err := (DirSource{Dir: dir}).Load("missing.csv"); err == nil {
		t.Error("want error for a missing ledger file")
	}
}

func TestDirSourceFeedsDecodeLedger(t *testing.T) {
	dir := t.TempDir()
	content := "symbol,name,date,price,units\nA,Alpha,01-01-2023,100,10\n"
	if err := os.WriteFile(filepath.Join(dir, "t.csv"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := DirSource{Dir: dir}.Load("t.csv")
	if err != nil {
		t.Fatal(err)
	}
	ledger, err := DecodeLedger(table)
	if err != nil {
		t.Fatal(err)
	}
	tx := ledger.Transactions("A")[0]
	// side and kind columns absent entirely: defaults apply
	if tx.Side != Buy || tx.Kind != MutualFund {
		t.Errorf("defaults: side=%v kind=%v, want buy mutual_fund", tx.Side, tx.Kind)
	}
}

func TestMemSource(t *testing.T) {
	src := MemSource{"a.csv": {Header: []string{"symbol"}}}
	if _, err := src.Load("a.csv"); err != nil {
		t.Errorf("Load(a.csv) = %v", err)
	}
	if _, err := src.Load("b.csv"); err == nil {
		t.Error("want error for unknown table name")
	}
}
