package capmarshal

import "testing"

func TestEncodeIbidTableAssignsOnce(t *testing.T) {
	tbl := newEncodeIbidTable()
	a := Record{"x": 1}

	if _, found := tbl.positionOf(a); found {
		t.Fatal("fresh table should report no position for an unseen value")
	}

	idx := tbl.assign(a)
	if idx != 0 {
		t.Fatalf("first assign should be 0, got %d", idx)
	}

	got, found := tbl.positionOf(a)
	if !found || got != 0 {
		t.Fatalf("positionOf after assign = (%d, %v), want (0, true)", got, found)
	}

	b := Record{"y": 2}
	idx2 := tbl.assign(b)
	if idx2 != 1 {
		t.Fatalf("second distinct assign should be 1, got %d", idx2)
	}
}

func TestEncodeIbidTablePrimitivesUntracked(t *testing.T) {
	tbl := newEncodeIbidTable()
	if _, found := tbl.positionOf("a string"); found {
		t.Error("strings must never be ibid-tracked")
	}
	if idx := tbl.assign(42); idx != -1 {
		t.Errorf("assigning a primitive should be a no-op, got %d", idx)
	}
}

func TestSlotTableDedup(t *testing.T) {
	tbl := newSlotTable()
	r, err := Remotable("Remotable", nil)
	if err != nil {
		t.Fatalf("Remotable: %v", err)
	}

	idx1 := tbl.assign(r, "handle-1")
	if idx1 != 0 {
		t.Fatalf("first slot assign should be 0, got %d", idx1)
	}

	idx2, found := tbl.indexOf(r)
	if !found || idx2 != 0 {
		t.Fatalf("indexOf for the same remote should return (0, true), got (%d, %v)", idx2, found)
	}
}

func TestDecodeIbidTableStartFinish(t *testing.T) {
	tbl := newDecodeIbidTable()
	idx := tbl.start()
	if idx != 0 {
		t.Fatalf("start should return 0, got %d", idx)
	}

	if _, err := tbl.lookup(idx, ForbidCycles); err == nil {
		t.Fatal("lookup on an unfinished entry under ForbidCycles should fail")
	}

	tbl.finish(idx, Array{1, 2})
	v, err := tbl.lookup(idx, ForbidCycles)
	if err != nil {
		t.Fatalf("lookup after finish: %v", err)
	}
	if arr, ok := v.(Array); !ok || len(arr) != 2 {
		t.Errorf("lookup returned %#v, want the finished Array", v)
	}
}

func TestDecodeIbidTableCyclePolicies(t *testing.T) {
	tbl := newDecodeIbidTable()
	idx := tbl.start()

	if _, err := tbl.lookup(idx, AllowCycles); err != nil {
		t.Errorf("AllowCycles should tolerate an in-construction reference: %v", err)
	}
	if _, err := tbl.lookup(idx, WarnOfCycles); err != nil {
		t.Errorf("WarnOfCycles should tolerate an in-construction reference: %v", err)
	}
	if _, err := tbl.lookup(idx, ForbidCycles); err == nil {
		t.Error("ForbidCycles should reject an in-construction reference")
	}
}

func TestDecodeIbidTableOutOfRange(t *testing.T) {
	tbl := newDecodeIbidTable()
	if _, err := tbl.lookup(5, AllowCycles); err == nil {
		t.Error("expected an out-of-range lookup to fail")
	}
}
