package infinity

import (
	"errors"
	"testing"
)

func TestInsertMergesSharedPrefixes(t *testing.T) {
	ec := mustClass(t, "Ec")
	root := NewObject()
	if err := Insert(root, false, ec, String("x"), Long(1)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := Insert(root, false, ec, String("y")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	want, err := Parse(`{ "_Ec": { "x": { "_1": null }, "y": null } }`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !Equal(root, want) {
		t.Errorf("tree = %v, want %v", root, want)
	}
}

func TestInsertCompactTips(t *testing.T) {
	root := NewObject()
	name := mustAttribute(t, "name")
	if err := Insert(root, true, name, String("Ada")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	child, found := root.Get(name)
	if !found {
		t.Fatal("name key missing")
	}
	v, ok := child.(Value)
	if !ok || !v.C.Equal(String("Ada")) {
		t.Errorf("compact tip = %v, want value Ada", child)
	}
}

func TestInsertBuildsLists(t *testing.T) {
	root := NewObject()
	tags := mustAttribute(t, "tags")
	for i, s := range []string{"a", "b"} {
		ix := mustIndex(t, int64(i))
		if err := Insert(root, false, tags, ix, String(s)); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	want, err := Parse(`{ "tags": [ { "a": null }, { "b": null } ] }`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !Equal(root, want) {
		t.Errorf("tree = %v, want %v", root, want)
	}
}

func TestInsertIntoValueFails(t *testing.T) {
	root := NewObject()
	if err := Insert(root, true, String("k"), Long(1)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	// The compact tip is a Value; descending through it is structural misuse.
	err := Insert(root, false, String("k"), Long(1), Long(2))
	if !errors.Is(err, ErrStructure) {
		t.Errorf("err = %v, want ErrStructure", err)
	}
}

func TestFlattenScenario(t *testing.T) {
	e, err := Parse(`{ "a": { "_5": null }, "b": [ true ] }`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	paths := FlattenToList(e)
	if len(paths) != 2 {
		t.Fatalf("got %d paths, want 2: %v", len(paths), paths)
	}
	wantFirst := []Component{String("a"), Long(5)}
	wantSecond := []Component{String("b"), mustIndex(t, 0), Bool(true)}
	for i, want := range [][]Component{wantFirst, wantSecond} {
		got := paths[i]
		if len(got) != len(want) {
			t.Fatalf("path %d = %v, want %v", i, got, want)
		}
		for j := range want {
			if !got[j].Equal(want[j]) {
				t.Errorf("path %d component %d = %v, want %v", i, j, got[j], want[j])
			}
		}
	}
}

func TestFlattenDropsEmptyContainers(t *testing.T) {
	e, err := Parse(`{ "a": { }, "b": 1 }`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	paths := FlattenToList(e)
	if len(paths) != 1 {
		t.Fatalf("got %d paths, want 1: %v", len(paths), paths)
	}
}

// Flatten then unflatten reproduces any tree built by Insert.
func TestFlattenUnflattenInverse(t *testing.T) {
	inputs := []struct {
		in          string
		compactTips bool
	}{
		{`{ "_Ec": { "x": { "_1": null, "_2": null }, "y": null } }`, false},
		{`[ { "a": null }, { "b": null } ]`, false},
		{`{ "k": "v" }`, true}, // a leaf value is a compact tip
	}
	for _, tt := range inputs {
		in := tt.in
		e, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		back, err := UnflattenFromList(tt.compactTips, FlattenToList(e))
		if err != nil {
			t.Fatalf("UnflattenFromList(%q): %v", in, err)
		}
		if !Equal(e, back) {
			t.Errorf("flatten/unflatten changed %q into %v", in, back)
		}
	}
}

func TestUnflattenRootList(t *testing.T) {
	paths := [][]Component{
		{mustIndex(t, 0), String("a")},
		{mustIndex(t, 1), String("b")},
	}
	e, err := UnflattenFromList(false, paths)
	if err != nil {
		t.Fatalf("UnflattenFromList: %v", err)
	}
	if !e.IsList() {
		t.Fatalf("root is %T, want *List", e)
	}
	if e.(*List).Len() != 2 {
		t.Errorf("Len = %d, want 2", e.(*List).Len())
	}
}
