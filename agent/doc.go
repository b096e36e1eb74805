// Package agent defines the contracts shared by the execution core: the
// Agent unit-of-work interface, the ExecutionRequest and Result shapes, the
// retry policy, and the error taxonomy with its classification rules.
package agent
