// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

package trace

import (
	"testing"

	json "github.com/goccy/go-json"

	"github.com/wusyong/corgo/dom"
)

func TestEncodeBatch(t *testing.T) {
	b, err := EncodeBatch([]dom.Mutation{
		dom.CreateElement{ID: 2, Tag: "div"},
		dom.SetAttribute{ID: 2, Name: "background", Value: "red"},
		dom.AppendChildren{Parent: dom.RootID, Children: []dom.NodeID{2}},
		dom.Remove{ID: 2},
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var ops []map[string]any
	if err := json.Unmarshal(b, &ops); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(ops) != 4 {
		t.Fatalf("encoded %d ops, want 4", len(ops))
	}
	want := []string{"create_element", "set_attribute", "append_children", "remove"}
	for i, w := range want {
		if ops[i]["op"] != w {
			t.Errorf("op[%d] = %v, want %q", i, ops[i]["op"], w)
		}
	}
	if ops[1]["value"] != "red" {
		t.Errorf("attribute value = %v", ops[1]["value"])
	}
}

func TestEncodeEmptyBatch(t *testing.T) {
	b, err := EncodeBatch(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(b) != "[]" {
		t.Errorf("empty batch = %s, want []", b)
	}
}
