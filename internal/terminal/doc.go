// Package terminal renders flashcard snapshots as text and drives a view
// model from line-based keyboard input.
package terminal
