// Package message defines the transient value shapes exchanged with the
// message backend. None of them are persisted client-side: an Outgoing value
// lives for the duration of a submit, Stored and Retrieved values only long
// enough to be rendered into the display region.
package message
