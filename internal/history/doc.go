// Package history persists session summaries in a local SQLite database so
// past runs can be listed and compared.
package history
