// Package hotresque provides a small FIFO queue built on a Redis list.
//
// It consumes jobs in the Resque envelope shape:
//
//	{"class": "MyJob", "args": ["{\"id\": 1}"]}
//
// Get pops one entry, decodes it with the configured Serializer and then
// decodes args[0] as JSON. Put pushes payloads as given (after encoding);
// it never builds the envelope. Use NewEnvelope to produce one.
//
// It uses:
// - RPUSH to enqueue
// - LPOP / BLPOP to dequeue
// - LLEN and DEL for length and clear
package hotresque
