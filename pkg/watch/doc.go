// Package watch re-runs a callback whenever a single file changes.
//
// The FileWatcher watches the file's parent directory so that editors which
// save by writing a temporary file and renaming it over the original are
// still detected. Bursts of events are collapsed by a Debouncer and the
// callback always runs on the watch loop goroutine, so two callbacks never
// overlap. A failing callback is logged and watching continues.
package watch
