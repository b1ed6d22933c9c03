// Package rules implements the declarative rule engine: a registry
// of Rule records, each with an ordered list of Conditions, evaluated
// against a transaction's semantic tree.
//
// A transaction tree (e.g. *transaction.T835) is never walked via
// reflection. Instead it is round-tripped through its existing JSON
// encoding into a generic map[string]interface{}/[]interface{} tree,
// and conditions are evaluated against that tree using the same path
// grammar diagnostics use (x12.Path). This keeps one field-addressing
// scheme for both diagnostics and rule conditions, and keeps rule
// evaluation decoupled from the concrete Go types of each transaction.
//
// Built-in rule sets (basic, business, hipaa, hipaa-advanced,
// enhanced-business, comprehensive) are ordinary []Rule values assembled
// in Go; a YAML file loaded with Load produces the identical []Rule
// shape, so a built-in set and a loaded file are interchangeable once in
// memory.
package rules
