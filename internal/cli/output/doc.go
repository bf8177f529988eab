// Package output renders gamesdk command results as a table, JSON or
// YAML.
//
// Table output is derived by reflection: a struct becomes a FIELD/VALUE
// listing, a slice of structs becomes one row per element, and a map
// becomes KEY/VALUE rows sorted by key. Column names come from json tags.
package output
