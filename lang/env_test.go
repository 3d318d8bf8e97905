package lang

import "testing"

func TestEnvDefineShadows(t *testing.T) {
	root := NewEnv()
	root.Define("x", Number(1))

	child := root.Child()
	child.Define("x", Number(2))

	if v, _ := child.Get("x"); v.Num() != 2 {
		t.Errorf("expected child to see 2, got %v", v)
	}

	if v, _ := root.Get("x"); v.Num() != 1 {
		t.Errorf("expected root to keep 1, got %v", v)
	}
}

func TestEnvGetChainsOutward(t *testing.T) {
	root := NewEnv()
	root.Define("x", String("outer"))

	inner := root.Child().Child()

	v, ok := inner.Get("x")
	if !ok {
		t.Fatal("expected x to resolve through the chain")
	}

	if v.Str() != "outer" {
		t.Errorf("expected outer, got %q", v.Str())
	}
}

func TestEnvGetUnbound(t *testing.T) {
	env := NewEnv()

	if _, ok := env.Get("missing"); ok {
		t.Error("expected unbound name to fail")
	}
}

func TestEnvSetRebindsNearest(t *testing.T) {
	root := NewEnv()
	root.Define("x", Number(1))

	child := root.Child()

	if !child.Set("x", Number(9)) {
		t.Fatal("expected set to find the outer binding")
	}

	if v, _ := root.Get("x"); v.Num() != 9 {
		t.Errorf("expected root binding updated to 9, got %v", v)
	}
}

func TestEnvSetNeverDefines(t *testing.T) {
	env := NewEnv()

	if env.Set("x", Number(1)) {
		t.Error("expected set of unbound name to fail")
	}

	if _, ok := env.Get("x"); ok {
		t.Error("set must not create a binding")
	}
}

func TestEnvSnapshotCopiesScalars(t *testing.T) {
	root := NewEnv()
	root.Define("x", Number(1))

	child := root.Child()
	child.Define("y", Number(2))

	snap := child.Snapshot()

	// Later mutation of the original is invisible to the snapshot.
	root.Define("x", Number(100))

	if v, _ := snap.Get("x"); v.Num() != 1 {
		t.Errorf("expected snapshot to keep 1, got %v", v)
	}

	if v, _ := snap.Get("y"); v.Num() != 2 {
		t.Errorf("expected snapshot to flatten the chain, got %v", v)
	}
}

func TestEnvSnapshotInnerShadowsOuter(t *testing.T) {
	root := NewEnv()
	root.Define("x", Number(1))

	child := root.Child()
	child.Define("x", Number(2))

	snap := child.Snapshot()

	if v, _ := snap.Get("x"); v.Num() != 2 {
		t.Errorf("expected inner binding to win, got %v", v)
	}
}

func TestEnvSnapshotSharesArrays(t *testing.T) {
	root := NewEnv()

	arr := NewArray(2)
	root.Define("mem", ArrayOf(arr))

	snap := root.Snapshot()

	arr.Set(0, Number(7))

	v, _ := snap.Get("mem")
	if v.Kind() != ValueArray {
		t.Fatalf("expected array, got %s", v.Kind())
	}

	elem, _ := v.Arr().Get(0)
	if elem.Num() != 7 {
		t.Errorf("expected shared array write to be visible, got %v", elem)
	}
}
