// Package enrichment resolves a candidate word into a flashcard by asking a
// dictionary for its definition and a translator for its meaning, and merges
// both outcomes. A cycle is all-or-nothing: either a complete result or one
// error is returned.
package enrichment
