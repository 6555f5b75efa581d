// Package treeio provides JSON import and export for syntax forests.
//
// # Overview
//
// This package serializes the full forest state, positions included, so a
// laid-out forest survives a save/load cycle exactly. It complements the
// bracket codec: bracket notation is the compact structural exchange format,
// treeio JSON is the lossless one.
//
// # JSON Format
//
// The format has two top-level arrays:
//
//	{
//	  "nodes": [
//	    {"id": 1, "label": "NP", "kind": "category", "x": 400, "y": 100},
//	    {"id": 2, "label": "dog", "kind": "terminal", "x": 400, "y": 170}
//	  ],
//	  "edges": [
//	    {"id": 1, "parent": 1, "child": 2}
//	  ]
//	}
//
// Node and edge ids are preserved on import and the forest's id counters
// resume past the largest imported id, so nodes created after a load can
// never collide with loaded ones.
package treeio
