package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Punky2280/cartita-mcdaniels-sub003/agent"
	"github.com/Punky2280/cartita-mcdaniels-sub003/backoff"
	"github.com/Punky2280/cartita-mcdaniels-sub003/circuitbreaker"
	"github.com/Punky2280/cartita-mcdaniels-sub003/log"
	"github.com/Punky2280/cartita-mcdaniels-sub003/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrNilAgent indicates that no agent was supplied to New.
var ErrNilAgent = errors.New("engine: agent must not be nil")

// ErrEmptyAgentName indicates the supplied agent has no name.
var ErrEmptyAgentName = errors.New("engine: agent name must not be empty")

// DefaultTimeout bounds one attempt when neither the request nor the config
// specifies a budget.
const DefaultTimeout = 30 * time.Second

// Config configures an Engine.
type Config struct {
	// DefaultTimeout bounds each attempt when the request carries none.
	// Zero means DefaultTimeout.
	DefaultTimeout time.Duration

	// RetryPolicy applies when the request carries no override. The zero
	// value means agent.DefaultRetryPolicy.
	RetryPolicy agent.RetryPolicy

	// Breaker configures this agent's circuit breaker.
	Breaker circuitbreaker.Config

	// Breakers optionally shares a breaker registry across engines so the
	// embedding service can observe every agent in one place. Nil means
	// the engine owns a private registry.
	Breakers circuitbreaker.Manager

	// MetricsWindowSize is the rolling latency window capacity.
	// Zero means metrics.DefaultWindowSize.
	MetricsWindowSize int

	// Observer receives lifecycle events. Nil means NopObserver.
	Observer Observer
}

// Engine composes circuit breaking, metrics, timeout enforcement and retry
// into a single Execute contract for one agent.
type Engine struct {
	name           string
	agent          agent.Agent
	breaker        circuitbreaker.CircuitBreaker
	collector      *metrics.Collector
	policy         agent.RetryPolicy
	defaultTimeout time.Duration
	observer       Observer
	logger         log.Logger
	tracer         trace.Tracer
	startedAt      time.Time
}

// New builds an Engine around the given agent.
func New(a agent.Agent, cfg Config, logger log.Logger) (*Engine, error) {
	if a == nil {
		return nil, ErrNilAgent
	}

	if a.Name() == "" {
		return nil, ErrEmptyAgentName
	}

	if logger == nil {
		logger = &log.NoneLogger{}
	}

	policy := cfg.RetryPolicy
	if isZeroPolicy(policy) {
		policy = agent.DefaultRetryPolicy()
	}

	if err := policy.Validate(); err != nil {
		return nil, err
	}

	timeout := cfg.DefaultTimeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	breakers := cfg.Breakers
	if breakers == nil {
		breakers = circuitbreaker.NewManager(logger)
	}

	breaker := breakers.GetOrCreate(a.Name(), cfg.Breaker)

	observer := cfg.Observer
	if observer == nil {
		observer = NopObserver{}
	}

	return &Engine{
		name:           a.Name(),
		agent:          a,
		breaker:        breaker,
		collector:      metrics.NewCollector(cfg.MetricsWindowSize),
		policy:         policy,
		defaultTimeout: timeout,
		observer:       observer,
		logger:         logger,
		tracer:         otel.Tracer("github.com/Punky2280/cartita-mcdaniels-sub003/engine"),
		startedAt:      time.Now(),
	}, nil
}

// isZeroPolicy detects a config that never set a policy. An explicit
// single-attempt policy (agent.NoRetryPolicy) has a non-zero multiplier and
// is not mistaken for the zero value.
func isZeroPolicy(p agent.RetryPolicy) bool {
	return p.MaxRetries == 0 && p.BackoffMultiplier == 0 &&
		p.InitialDelay == 0 && p.MaxDelay == 0 && p.RetryableErrors == nil
}

// Name returns the wrapped agent's name.
func (e *Engine) Name() string { return e.name }

// Execute runs the agent with retry, timeout and circuit-breaker protection.
// It never panics: every outcome is normalized into a tagged Result.
func (e *Engine) Execute(ctx context.Context, req agent.ExecutionRequest) (result agent.Result) {
	if ctx == nil {
		ctx = context.Background()
	}

	execCtx := newExecutionContext(req)

	policy := e.policy
	if req.RetryPolicy != nil {
		if err := req.RetryPolicy.Validate(); err != nil {
			invalid := agent.WrapError("INVALID_RETRY_POLICY", err.Error(), agent.ClassificationValidation, err)

			return agent.Failure(invalid, time.Since(execCtx.StartedAt), 0, e.resultMetadata(execCtx))
		}

		policy = *req.RetryPolicy
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = e.defaultTimeout
	}

	priority := req.EffectivePriority()

	ctx, span := e.tracer.Start(ctx, "engine.execute", trace.WithAttributes(
		attribute.String("agent.name", e.name),
		attribute.String("execution.id", execCtx.ID),
		attribute.String("execution.priority", string(priority)),
	))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			e.logger.Errorf("Execution panic for agent %s (execution %s): %v", e.name, execCtx.ID, r)

			err := agent.NewError("EXECUTION_PANIC",
				fmt.Sprintf("agent %s panicked: %v", e.name, r), agent.ClassificationUnknown)
			result = agent.Failure(err, time.Since(execCtx.StartedAt), 0, e.resultMetadata(execCtx))
		}
	}()

	e.emitStarted(execCtx, string(priority), req.Payload)

	attempts := policy.MaxRetries + 1
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		attemptStart := time.Now()
		data, err := e.attempt(ctx, req, timeout)
		elapsed := time.Since(attemptStart)

		if err == nil {
			e.collector.Record(elapsed, true)

			total := time.Since(execCtx.StartedAt)
			e.emitCompleted(execCtx, total, attempt+1)
			span.SetAttributes(attribute.Int("execution.attempts", attempt+1))

			return agent.Success(data, total, attempt+1, e.resultMetadata(execCtx))
		}

		e.collector.Record(elapsed, false)

		classification := e.classify(err)
		retryable := policy.IsRetryable(classification)
		lastAttempt := attempt == attempts-1

		e.emitError(execCtx, err, attempt+1, retryable, lastAttempt)

		if !retryable || lastAttempt {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(classification))
			span.SetAttributes(attribute.Int("execution.attempts", attempt+1))

			return e.failure(execCtx, err, classification, retryable, attempt+1)
		}

		delay := backoff.Delay(policy.InitialDelay, policy.BackoffMultiplier, attempt, policy.MaxDelay)
		if policy.Jitter {
			delay = backoff.FullJitter(delay)
		}

		if sleepErr := backoff.SleepWithContext(ctx, delay); sleepErr != nil {
			// Caller cancelled during backoff; no further attempts.
			span.RecordError(sleepErr)
			span.SetStatus(codes.Error, "cancelled")

			return e.failure(execCtx, sleepErr, agent.Classify(sleepErr), false, attempt+1)
		}
	}

	// Unreachable: the loop always returns on the last attempt.
	return result
}

type attemptOutcome struct {
	data any
	err  error
}

// attempt races one breaker-wrapped invocation of the agent against the
// attempt timeout. The deadline is propagated into the unit of work via its
// context; work that ignores cancellation is abandoned, and its eventual
// outcome still reaches the breaker whenever it completes.
func (e *Engine) attempt(ctx context.Context, req agent.ExecutionRequest, timeout time.Duration) (any, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	outcomeCh := make(chan attemptOutcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				outcomeCh <- attemptOutcome{err: fmt.Errorf("agent %s panicked: %v", e.name, r)}
			}
		}()

		data, err := e.breaker.Execute(func() (any, error) {
			return e.agent.Run(attemptCtx, req)
		})
		outcomeCh <- attemptOutcome{data: data, err: err}
	}()

	select {
	case outcome := <-outcomeCh:
		return outcome.data, outcome.err
	case <-attemptCtx.Done():
		if ctx.Err() != nil {
			return nil, fmt.Errorf("execution cancelled: %w", ctx.Err())
		}

		return nil, fmt.Errorf("agent %s attempt exceeded %s budget: %w", e.name, timeout, context.DeadlineExceeded)
	}
}

// classify resolves the failure classification, recognizing breaker
// fast-fail sentinels before falling back to the shared rules.
func (e *Engine) classify(err error) agent.Classification {
	if circuitbreaker.IsRejection(err) {
		return agent.ClassificationCircuitBreaker
	}

	return agent.Classify(err)
}

// failure normalizes any error into a tagged error result. Pre-classified
// agent errors keep their code and message; plain errors get a code derived
// from the classification.
func (e *Engine) failure(execCtx ExecutionContext, cause error, classification agent.Classification, retryable bool, attempts int) agent.Result {
	var agentErr *agent.Error

	if errors.As(cause, &agentErr) {
		normalized := *agentErr
		if normalized.Classification == "" {
			normalized.Classification = classification
		}

		normalized.Category = normalized.Classification.Category()
		normalized.Retryable = retryable
		agentErr = &normalized
	} else {
		agentErr = agent.WrapError(errorCode(classification), cause.Error(), classification, cause)
		agentErr.Retryable = retryable
	}

	return agent.Failure(agentErr, time.Since(execCtx.StartedAt), attempts, e.resultMetadata(execCtx))
}

// resultMetadata tags a result with the execution id, the breaker state at
// completion, and any trace identifiers carried by the request.
func (e *Engine) resultMetadata(execCtx ExecutionContext) map[string]string {
	metadata := map[string]string{
		agent.MetadataExecutionID:  execCtx.ID,
		agent.MetadataBreakerState: string(e.breaker.State()),
	}

	if execCtx.TraceID != "" {
		metadata[agent.MetadataTraceID] = execCtx.TraceID
	}

	if execCtx.CorrelationID != "" {
		metadata[agent.MetadataCorrelationID] = execCtx.CorrelationID
	}

	return metadata
}

func errorCode(classification agent.Classification) string {
	switch classification {
	case agent.ClassificationValidation:
		return "VALIDATION_ERROR"
	case agent.ClassificationTimeout:
		return "EXECUTION_TIMEOUT"
	case agent.ClassificationNetwork:
		return "NETWORK_ERROR"
	case agent.ClassificationRateLimit:
		return "RATE_LIMITED"
	case agent.ClassificationCircuitBreaker:
		return "CIRCUIT_BREAKER_OPEN"
	case agent.ClassificationTemporary:
		return "TEMPORARY_FAILURE"
	default:
		return "EXECUTION_ERROR"
	}
}
