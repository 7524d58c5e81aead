// Package pyast defines the immutable syntax tree handed to lint rules.
//
// The tree is a typed, lossy view of a Python module: statements keep the
// structure rules need (definitions, assignments, imports, nested blocks)
// and expressions keep names, attribute chains and calls. Constructs no rule
// inspects are preserved as Generic nodes so their children stay reachable.
//
// All positions are 1-based; columns count characters, not bytes.
package pyast
