// Package dispatcher keeps a name-keyed registry of executors and forwards
// requests to the named one, returning its result unmodified. It adds no
// timeout, retry, or wrapping of its own.
package dispatcher
