// Package security detects sensitive field names and redacts them from
// request payloads before they reach logs or lifecycle events.
package security
