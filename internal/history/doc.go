// Package history keeps the record of every file shroud has locked.
//
// Each lock appends one Record mapping the original file name to the
// identifier of the container that now hides it. Without the log, the only
// way back from a container to its contents is unlocking it.
//
// # Log Format
//
// The log is a single JSON array, rewritten in full on every append:
//
//	[
//	    {
//	        "original_name": "notes.txt",
//	        "encrypted_name": "Xq3vB0fT9kLmPz2RwY7a"
//	    }
//	]
//
// A missing file is an empty log. Records are never removed or edited.
//
// # Concurrency
//
// JSONFile takes an in-process mutex and an advisory file lock
// (github.com/gofrs/flock) around each read-modify-write, so concurrent
// shroud processes sharing one log do not lose records.
package history
