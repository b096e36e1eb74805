// Package circuitbreaker isolates chronically failing agents behind a
// closed/open/half-open state machine built on sony/gobreaker. A Manager
// keeps one breaker per agent name and notifies registered listeners of
// state transitions.
package circuitbreaker
