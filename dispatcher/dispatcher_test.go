package dispatcher

import (
	"context"
	"testing"
	"time"

	"github.com/Punky2280/cartita-mcdaniels-sub003/agent"
	"github.com/Punky2280/cartita-mcdaniels-sub003/engine"
	"github.com/Punky2280/cartita-mcdaniels-sub003/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubExecutor returns a fixed result and counts invocations.
type stubExecutor struct {
	name   string
	result agent.Result
	calls  int
}

func (s *stubExecutor) Name() string { return s.name }

func (s *stubExecutor) Execute(_ context.Context, _ agent.ExecutionRequest) agent.Result {
	s.calls++
	return s.result
}

func TestDelegate_AgentNotFound(t *testing.T) {
	d := New(&log.NoneLogger{})

	stub := &stubExecutor{name: "present"}
	d.Register(stub)

	result := d.Delegate(context.Background(), "absent", agent.ExecutionRequest{})

	require.False(t, result.IsSuccess())
	assert.Equal(t, "AGENT_NOT_FOUND", result.Err.Code)
	assert.Equal(t, agent.CategoryValidation, result.Err.Category)
	assert.False(t, result.Err.Retryable)
	assert.ErrorIs(t, result.Err, ErrAgentNotFound)
	assert.Zero(t, stub.calls, "no executor may be invoked for an unknown name")
}

func TestDelegate_PassesResultThroughUnmodified(t *testing.T) {
	want := agent.Result{
		Data:            "payload",
		ExecutionTimeMs: 42,
		Attempts:        2,
		Metadata:        map[string]string{agent.MetadataExecutionID: "id-9"},
	}

	stub := &stubExecutor{name: "worker", result: want}

	d := New(&log.NoneLogger{})
	d.Register(stub)

	got := d.Delegate(context.Background(), "worker", agent.ExecutionRequest{})

	assert.Equal(t, want, got)
	assert.Equal(t, 1, stub.calls)
}

func TestRegister_OverwriteReported(t *testing.T) {
	d := New(&log.NoneLogger{})

	first := &stubExecutor{name: "worker", result: agent.Result{Data: "first"}}
	second := &stubExecutor{name: "worker", result: agent.Result{Data: "second"}}

	assert.False(t, d.Register(first))
	assert.True(t, d.Register(second), "re-registration must report the replacement")

	result := d.Delegate(context.Background(), "worker", agent.ExecutionRequest{})
	assert.Equal(t, "second", result.Data)
	assert.Zero(t, first.calls)
}

func TestRegister_RejectsNilAndUnnamed(t *testing.T) {
	d := New(&log.NoneLogger{})

	assert.False(t, d.Register(nil))
	assert.False(t, d.Register(&stubExecutor{name: ""}))
	assert.Empty(t, d.Names())
}

func TestDeregister(t *testing.T) {
	d := New(&log.NoneLogger{})
	d.Register(&stubExecutor{name: "worker"})

	assert.True(t, d.Deregister("worker"))
	assert.False(t, d.Deregister("worker"))

	result := d.Delegate(context.Background(), "worker", agent.ExecutionRequest{})
	assert.Equal(t, "AGENT_NOT_FOUND", result.Err.Code)
}

func TestNames_Sorted(t *testing.T) {
	d := New(&log.NoneLogger{})

	d.Register(&stubExecutor{name: "zeta"})
	d.Register(&stubExecutor{name: "alpha"})
	d.Register(&stubExecutor{name: "mid"})

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, d.Names())
}

func TestDelegate_WithEngine(t *testing.T) {
	a := agent.Func{
		AgentName: "echo",
		Fn: func(_ context.Context, req agent.ExecutionRequest) (any, error) {
			return req.Payload["message"], nil
		},
	}

	e, err := engine.New(a, engine.Config{DefaultTimeout: time.Second}, &log.NoneLogger{})
	require.NoError(t, err)

	d := New(&log.NoneLogger{})
	d.Register(e)

	result := d.Delegate(context.Background(), "echo", agent.ExecutionRequest{
		Payload: map[string]any{"message": "routed"},
	})

	require.True(t, result.IsSuccess())
	assert.Equal(t, "routed", result.Data)
	assert.NotEmpty(t, result.ExecutionID())
}
