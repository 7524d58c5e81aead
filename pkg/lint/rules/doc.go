// Package rules provides the built-in lint rules for gopylint.
//
// # Rules
//
//   - PY001: line-style - Line length, indentation width, tabs and trailing whitespace
//   - PY100: naming-convention - snake_case functions and variables, PascalCase classes
//   - PY200: unused-import - Module-level imports that are never referenced
//
// PY001 reads only the raw source, so it also runs on files that fail to
// parse. The other rules need the syntax tree.
//
// # Registration
//
// Rules are registered with the default registry via RegisterAll, in the
// order above. That order is the order their diagnostics appear per file.
package rules
