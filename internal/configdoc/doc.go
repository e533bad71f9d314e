// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package configdoc generates the construct.yaml reference document.
//
// Generation is a one-way pipeline run once per invocation:
//   - Collector gathers the ordered key descriptors, the selector namespace
//     for a target platform, and the supported/unsupported platform lists
//   - Renderer binds them into a pongo2 (Jinja2-dialect) template
//   - Writer writes the identical document to every destination
//
// Key descriptors come from a FieldSource. The construct package ships the
// canonical key registry; StructSource derives descriptors from a Go struct
// definition with yaml tags.
package configdoc
