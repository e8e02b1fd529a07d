// Package msgs defines the messages exchanged with a remote board bridge.
//
// Every message travels in a Typed envelope carrying a type ID and a
// sequence number. A reply carries the sequence of its command, while
// events published by the bridge use sequence 0.
package msgs
