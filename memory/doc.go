// Package memory holds the conversation log and its persistence.
//
// Log is append-only: turns are never edited, reordered or removed once added.
// Stores persist a whole log snapshot; JSONStore writes one indented JSON file,
// SQLiteStore keeps one row per turn.
package memory
