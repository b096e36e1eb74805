// Package log defines the leveled logging contract used across the execution
// core. Components receive a Logger at construction time; GoLogger writes
// through the standard library logger and NoneLogger discards everything,
// which keeps tests quiet. A zap-backed implementation lives in the zap
// package.
package log
