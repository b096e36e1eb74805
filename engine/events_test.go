package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/Punky2280/cartita-mcdaniels-sub003/log"
	"github.com/stretchr/testify/assert"
)

func TestLoggingObserver(t *testing.T) {
	observer := LoggingObserver{Logger: &log.NoneLogger{}}

	assert.NotPanics(t, func() {
		observer.OnExecutionStarted(StartedEvent{
			AgentName:   "echo",
			ExecutionID: "id-1",
			Priority:    "normal",
			Timestamp:   time.Now(),
		})
		observer.OnExecutionCompleted(CompletedEvent{
			AgentName:     "echo",
			ExecutionID:   "id-1",
			Outcome:       "success",
			ExecutionTime: time.Millisecond,
			Attempt:       1,
			Timestamp:     time.Now(),
		})
		observer.OnExecutionError(ErrorEvent{
			AgentName:   "echo",
			ExecutionID: "id-1",
			Err:         errors.New("boom"),
			Attempt:     1,
			Retryable:   true,
			Timestamp:   time.Now(),
		})
	})
}
