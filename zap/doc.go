// Package zap provides a go.uber.org/zap backed implementation of the
// log.Logger interface used by the execution core.
package zap
