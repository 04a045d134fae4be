// Package words provides the candidate word list for flashcards. It picks
// one word uniformly at random per request and can load the list from a
// plain text file.
package words
