// Package pkg provides the core libraries for syntree.
//
// # Overview
//
// Syntree builds rooted, labeled linguistic forests and exchanges them with
// the bracket notation used in corpus linguistics ("[NP [Det the] [N dog]]").
// The pkg directory is organized into five main areas:
//
//  1. [forest] - The mutable forest store (nodes, edges, ancestry queries)
//  2. [bracket] - Bracket-notation tokenizer, parser, and serializer
//  3. [layout] - Deterministic structural tree layout
//  4. [pipeline] - Orchestration (parse → layout → render) with caching
//  5. [treeio] - JSON serialization of forests for files and the API
//
// # Architecture
//
// The typical data flow through syntree:
//
//	Bracket notation text
//	         ↓
//	bracket.Parse → bracket.Rebuild
//	         ↓
//	forest.Forest (in-memory store)
//	         ↓
//	layout.Apply (2-D coordinates)
//	         ↓
//	render.ToDOT / treeio.Write / bracket.Serialize
//
// Supporting packages: [render] for DOT/SVG/PNG output, [cache] for
// derived-artifact caching, [errors] for coded errors shared by CLI and
// API, [observability] for optional hooks, and [buildinfo] for build-time
// version information.
package pkg
