package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Punky2280/cartita-mcdaniels-sub003/agent"
	"github.com/Punky2280/cartita-mcdaniels-sub003/log"
)

// ErrAgentNotFound indicates that no executor is registered under the
// requested name.
var ErrAgentNotFound = errors.New("dispatcher: agent not found")

// Executor is what the dispatcher delegates to. An engine.Engine satisfies
// it; so does anything else exposing the same execute contract.
type Executor interface {
	Name() string
	Execute(ctx context.Context, req agent.ExecutionRequest) agent.Result
}

// Dispatcher routes requests to executors by name. Safe for concurrent use.
type Dispatcher struct {
	mu        sync.RWMutex
	executors map[string]Executor
	logger    log.Logger
}

// New creates an empty dispatcher.
func New(logger log.Logger) *Dispatcher {
	if logger == nil {
		logger = &log.NoneLogger{}
	}

	return &Dispatcher{
		executors: make(map[string]Executor),
		logger:    logger,
	}
}

// Register inserts the executor under its name. Re-registering an existing
// name overwrites the prior entry; the returned flag reports whether an
// entry was replaced, and a warning is logged so redeploy-time hot swaps
// stay visible.
func (d *Dispatcher) Register(executor Executor) (replaced bool) {
	if executor == nil || executor.Name() == "" {
		d.logger.Warnf("Ignored registration of nil or unnamed executor")

		return false
	}

	name := executor.Name()

	d.mu.Lock()
	defer d.mu.Unlock()

	_, replaced = d.executors[name]
	d.executors[name] = executor

	if replaced {
		d.logger.Warnf("Agent %s re-registered, previous entry overwritten", name)
	} else {
		d.logger.Infof("Agent %s registered", name)
	}

	return replaced
}

// Deregister removes the named executor. Reports whether it was present.
func (d *Dispatcher) Deregister(name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.executors[name]; !ok {
		return false
	}

	delete(d.executors, name)
	d.logger.Infof("Agent %s deregistered", name)

	return true
}

// Delegate forwards the request to the named executor and returns its result
// unmodified. An unknown name yields a typed not-found error result with no
// side effects.
func (d *Dispatcher) Delegate(ctx context.Context, name string, req agent.ExecutionRequest) agent.Result {
	d.mu.RLock()
	executor, ok := d.executors[name]
	d.mu.RUnlock()

	if !ok {
		notFound := agent.WrapError("AGENT_NOT_FOUND",
			fmt.Sprintf("agent %q is not registered", name),
			agent.ClassificationValidation, ErrAgentNotFound)

		return agent.Result{Err: notFound}
	}

	return executor.Execute(ctx, req)
}

// Names returns the registered agent names in sorted order.
func (d *Dispatcher) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.executors))
	for name := range d.executors {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
