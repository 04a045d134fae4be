// Package processor wires the configured word source, dictionary,
// translator and view model together and runs the voca commands on top of
// them. It is the main coordinator between all other components.
package processor
