// Package viewmodel owns the current flashcard snapshot and runs fetch
// cycles against a word source and an enricher.
//
// Every cycle publishes a Loading snapshot followed by exactly one terminal
// snapshot. Starting a new cycle supersedes the one in flight: its context
// is canceled and whatever it produces afterwards is dropped, so a slow
// earlier cycle never overwrites a newer one. Subscribers are notified from
// a single dispatcher goroutine, in commit order and outside the lock, which
// makes it safe for a subscriber to call FetchNextWord.
package viewmodel
