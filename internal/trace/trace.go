// Copyright 2026 The corgo Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package trace serializes mutation batches for debug logging. The
// encoding is diagnostic output only, not a wire format.
package trace

import (
	json "github.com/goccy/go-json"

	"github.com/wusyong/corgo/dom"
)

// EncodeBatch renders a mutation batch as a JSON array of tagged
// operations.
func EncodeBatch(batch []dom.Mutation) ([]byte, error) {
	ops := make([]map[string]any, 0, len(batch))
	for _, m := range batch {
		switch m := m.(type) {
		case dom.CreateElement:
			ops = append(ops, map[string]any{"op": "create_element", "id": m.ID, "tag": m.Tag})
		case dom.CreateText:
			ops = append(ops, map[string]any{"op": "create_text", "id": m.ID, "text": m.Text})
		case dom.AppendChildren:
			ops = append(ops, map[string]any{"op": "append_children", "parent": m.Parent, "children": m.Children})
		case dom.ReplaceWith:
			ops = append(ops, map[string]any{"op": "replace_with", "id": m.ID, "nodes": m.Nodes})
		case dom.Remove:
			ops = append(ops, map[string]any{"op": "remove", "id": m.ID})
		case dom.SetAttribute:
			ops = append(ops, map[string]any{"op": "set_attribute", "id": m.ID, "name": m.Name, "value": m.Value})
		case dom.RemoveAttribute:
			ops = append(ops, map[string]any{"op": "remove_attribute", "id": m.ID, "name": m.Name})
		case dom.SetText:
			ops = append(ops, map[string]any{"op": "set_text", "id": m.ID, "text": m.Text})
		default:
			ops = append(ops, map[string]any{"op": "unknown"})
		}
	}
	return json.Marshal(ops)
}
