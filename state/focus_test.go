// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

package state

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/wusyong/corgo/dom"
)

// focusTree builds root -> {2, 3 -> {4}, 5} where 2, 4 and 5 are
// Focusable and 3 is Programmatic.
func focusTree(t *testing.T) *dom.Tree[NodeState] {
	t.Helper()
	tr := dom.NewTree[NodeState]()
	tr.Apply([]dom.Mutation{
		dom.CreateElement{ID: 2, Tag: "button"},
		dom.CreateElement{ID: 3, Tag: "div"},
		dom.CreateElement{ID: 4, Tag: "button"},
		dom.CreateElement{ID: 5, Tag: "button"},
		dom.AppendChildren{Parent: 3, Children: []dom.NodeID{4}},
		dom.AppendChildren{Parent: dom.RootID, Children: []dom.NodeID{2, 3, 5}},
	})
	setFocus := func(id dom.NodeID, level FocusLevel) {
		n, _ := tr.Get(id)
		n.State.Focus = level
	}
	setFocus(2, Focusable)
	setFocus(3, Programmatic)
	setFocus(4, Focusable)
	setFocus(5, Focusable)
	return tr
}

func TestProgressForwardWraps(t *testing.T) {
	tr := focusTree(t)
	var f FocusState

	// Tab order is document order over Focusable nodes: 2, 4, 5.
	want := []dom.NodeID{2, 4, 5, 2}
	for i, w := range want {
		if !f.Progress(tr, true) {
			t.Fatalf("step %d: no focus change", i)
		}
		if f.Last() != w {
			t.Fatalf("step %d: focused %d, want %d", i, f.Last(), w)
		}
	}
}

func TestProgressBackwardWraps(t *testing.T) {
	tr := focusTree(t)
	var f FocusState

	want := []dom.NodeID{5, 4, 2, 5}
	for i, w := range want {
		f.Progress(tr, false)
		if f.Last() != w {
			t.Fatalf("step %d: focused %d, want %d", i, f.Last(), w)
		}
	}
}

func TestProgressSkipsProgrammatic(t *testing.T) {
	tr := focusTree(t)
	var f FocusState
	f.Set(tr, 2)
	f.Progress(tr, true)
	if f.Last() != 4 {
		t.Errorf("focused %d, want 4 (programmatic node 3 must be skipped)", f.Last())
	}
}

func TestProgressEmptyTree(t *testing.T) {
	tr := dom.NewTree[NodeState]()
	var f FocusState
	if f.Progress(tr, true) {
		t.Error("progress on an unfocusable tree reported a change")
	}
	if f.Last() != 0 {
		t.Errorf("focused %d, want unfocused", f.Last())
	}
}

func TestProgressClearsWhenNothingFocusable(t *testing.T) {
	tr := focusTree(t)
	var f FocusState
	f.Set(tr, 2)

	for _, id := range []dom.NodeID{2, 4, 5} {
		n, _ := tr.Get(id)
		n.State.Focus = Unfocusable
	}
	if !f.Progress(tr, true) {
		t.Fatal("expected a change to unfocused")
	}
	if f.Last() != 0 {
		t.Errorf("focused %d, want unfocused", f.Last())
	}
	n, _ := tr.Get(2)
	if n.State.Focused {
		t.Error("previous target still flagged focused")
	}
}

func TestSetProgrammatic(t *testing.T) {
	tr := focusTree(t)
	var f FocusState

	if !f.Set(tr, 3) {
		t.Fatal("set to programmatic node reported no change")
	}
	if f.Last() != 3 {
		t.Errorf("focused %d, want 3", f.Last())
	}
	// Same target again: no change, no dirty.
	f.Clean()
	if f.Set(tr, 3) {
		t.Error("re-setting the same target reported a change")
	}
	if f.Clean() {
		t.Error("re-setting the same target marked focus dirty")
	}
}

func TestSetStaleOrUnfocusableClears(t *testing.T) {
	tr := focusTree(t)
	var f FocusState
	f.Set(tr, 2)

	if !f.Set(tr, 99) {
		t.Fatal("stale handle did not clear focus")
	}
	if f.Last() != 0 {
		t.Errorf("focused %d, want unfocused", f.Last())
	}

	f.Set(tr, 2)
	n, _ := tr.Get(5)
	n.State.Focus = Unfocusable
	f.Set(tr, 5)
	if f.Last() != 0 {
		t.Errorf("focused %d after targeting unfocusable node, want 0", f.Last())
	}
}

func TestPruneOnSubtreeRemoval(t *testing.T) {
	tr := focusTree(t)
	var f FocusState
	f.Set(tr, 4)
	f.Clean()

	// Removing node 3 destroys the focused node 4 underneath it.
	f.Prune(dom.Remove{ID: 3}, tr)
	if f.Last() != 0 {
		t.Errorf("focused %d after ancestor removal, want 0", f.Last())
	}
	if !f.Clean() {
		t.Error("prune did not mark focus dirty")
	}
	n, _ := tr.Get(4)
	if n.State.Focused {
		t.Error("pruned node still flagged focused")
	}
}

func TestPruneUnrelatedSubtree(t *testing.T) {
	tr := focusTree(t)
	var f FocusState
	f.Set(tr, 5)
	f.Clean()

	f.Prune(dom.Remove{ID: 3}, tr)
	if f.Last() != 5 {
		t.Errorf("focused %d, want 5 (unrelated removal must not clear)", f.Last())
	}
	if f.Clean() {
		t.Error("unrelated removal marked focus dirty")
	}
}

func TestCleanResets(t *testing.T) {
	tr := focusTree(t)
	var f FocusState
	f.Set(tr, 2)
	if !f.Clean() {
		t.Error("first clean after a change must report dirty")
	}
	if f.Clean() {
		t.Error("second clean must report clean")
	}
}

// TestFocusSingleOwner drives the machine with random operations and
// checks that at most one node is ever flagged focused, and that the
// flag always agrees with Last.
func TestFocusSingleOwner(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tr := dom.NewTree[NodeState]()
		n := rapid.IntRange(1, 8).Draw(rt, "nodes")
		ids := make([]dom.NodeID, n)
		var muts []dom.Mutation
		for i := range ids {
			ids[i] = dom.NodeID(i + 2)
			muts = append(muts, dom.CreateElement{ID: ids[i], Tag: "div"})
		}
		muts = append(muts, dom.AppendChildren{Parent: dom.RootID, Children: ids})
		tr.Apply(muts)
		for _, id := range ids {
			node, _ := tr.Get(id)
			node.State.Focus = FocusLevel(rapid.IntRange(0, 2).Draw(rt, "level"))
		}

		var f FocusState
		steps := rapid.IntRange(1, 20).Draw(rt, "steps")
		for s := 0; s < steps; s++ {
			switch rapid.IntRange(0, 2).Draw(rt, "op") {
			case 0:
				f.Progress(tr, true)
			case 1:
				f.Progress(tr, false)
			case 2:
				f.Set(tr, ids[rapid.IntRange(0, n-1).Draw(rt, "target")])
			}

			focused := 0
			tr.WalkDepthFirst(func(node *dom.Node[NodeState]) {
				if node.State.Focused {
					focused++
					if node.ID != f.Last() {
						rt.Fatalf("node %d flagged focused but Last() = %d", node.ID, f.Last())
					}
				}
			})
			if focused > 1 {
				rt.Fatalf("%d nodes flagged focused", focused)
			}
			if f.Last() != 0 && focused == 0 {
				rt.Fatalf("Last() = %d but no node flagged focused", f.Last())
			}
		}
	})
}

// TestProgressRoundTrip checks that one step forward then one step
// backward returns to the starting target whenever focus is held.
func TestProgressRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tr := dom.NewTree[NodeState]()
		n := rapid.IntRange(2, 8).Draw(rt, "nodes")
		ids := make([]dom.NodeID, n)
		var muts []dom.Mutation
		for i := range ids {
			ids[i] = dom.NodeID(i + 2)
			muts = append(muts, dom.CreateElement{ID: ids[i], Tag: "div"})
		}
		muts = append(muts, dom.AppendChildren{Parent: dom.RootID, Children: ids})
		tr.Apply(muts)
		for _, id := range ids {
			node, _ := tr.Get(id)
			if rapid.Bool().Draw(rt, "focusable") {
				node.State.Focus = Focusable
			}
		}

		var f FocusState
		f.Progress(tr, true)
		start := f.Last()
		if start == 0 {
			return // nothing focusable
		}
		f.Progress(tr, true)
		f.Progress(tr, false)
		if f.Last() != start {
			rt.Fatalf("round trip ended at %d, started at %d", f.Last(), start)
		}
	})
}
