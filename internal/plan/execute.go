package plan

import (
	"context"
	"fmt"
	"sync"

	"github.com/packplan/packplan/internal/config"
	"github.com/packplan/packplan/internal/ctxlog"
	"github.com/packplan/packplan/internal/dag"
	"github.com/packplan/packplan/internal/registry"
	"github.com/packplan/packplan/internal/render"
)

// Executor drives the render-and-emit pass over a validated module set.
type Executor struct {
	registry *registry.Registry
	renderer *render.Renderer
	workers  int
	outDir   string
}

// NewExecutor creates an executor. workers bounds the number of modules
// processed concurrently; values below 1 are clamped to 1.
func NewExecutor(reg *registry.Registry, renderer *render.Renderer, workers int, outDir string) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{
		registry: reg,
		renderer: renderer,
		workers:  workers,
		outDir:   outDir,
	}
}

// nodeState tracks one module through the pass.
type nodeState struct {
	mod       *config.Module
	status    Status
	remaining int
	err       error
}

// run is the mutable state of a single Execute call.
type run struct {
	exec   *Executor
	graph  *dag.Graph
	nodes  map[string]*nodeState
	ready  chan *nodeState
	wg     sync.WaitGroup
	cancel context.CancelFunc

	mu       sync.Mutex
	plan     *Plan
	firstErr error
	skipped  int
}

// Execute renders and emits every module in dependency order, returning
// the completed plan. The first failure cancels the pass; modules
// downstream of a failure are skipped, never half-built.
func (e *Executor) Execute(ctx context.Context, model *config.Model, graph *dag.Graph) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)

	order, err := graph.TopologicalSort()
	if err != nil {
		return nil, err
	}
	logger.Debug("Execution order computed.", "module_count", len(order))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r := &run{
		exec:   e,
		graph:  graph,
		nodes:  make(map[string]*nodeState, len(model.Modules)),
		ready:  make(chan *nodeState, len(model.Modules)),
		cancel: cancel,
		plan:   newPlan(order),
	}
	for _, mod := range model.Modules {
		deps, err := graph.Dependencies(mod.ID)
		if err != nil {
			return nil, err
		}
		r.nodes[mod.ID] = &nodeState{mod: mod, remaining: len(deps)}
	}

	r.wg.Add(len(model.Modules))
	// Seed in topological order so the zero-dependency prefix enters the
	// queue deterministically.
	for _, id := range order {
		if n := r.nodes[id]; n.remaining == 0 {
			r.ready <- n
		}
	}

	for i := 0; i < e.workers; i++ {
		go r.worker(ctx, i)
	}

	r.wg.Wait()
	close(r.ready)

	// Modules skipped without a recorded failure mean the pass was
	// cancelled from outside; an empty plan must not look like success.
	if r.firstErr == nil && r.skipped > 0 {
		if err := ctx.Err(); err != nil {
			r.firstErr = err
		} else {
			r.firstErr = fmt.Errorf("%d module(s) skipped before building", r.skipped)
		}
	}

	if r.firstErr != nil {
		return nil, r.firstErr
	}
	return r.plan, nil
}

// worker is the processing loop for a single concurrent worker.
func (r *run) worker(ctx context.Context, workerID int) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	for n := range r.ready {
		workerLogger := logger.With("workerID", workerID, "module", n.mod.ID)

		if !r.transition(n, StatusPending, StatusRunning) {
			// Already skipped by an upstream failure.
			continue
		}
		if ctx.Err() != nil {
			r.transition(n, StatusRunning, StatusSkipped)
			r.skipDependents(n)
			r.wg.Done()
			continue
		}

		workerLogger.Debug("Worker picked up module.")
		if err := r.process(ctx, n); err != nil {
			workerLogger.Error("Module build failed.", "error", err)
			r.fail(n, err)
			r.skipDependents(n)
			r.wg.Done()
			continue
		}

		workerLogger.Debug("Module built.")
		r.setStatus(n, StatusBuilt)
		r.unlockDependents(n)
		r.wg.Done()
	}
	logger.Debug("Worker finished.", "workerID", workerID)
}

// process renders one module and hands it to its kind's emitter.
func (r *run) process(ctx context.Context, n *nodeState) error {
	rendered, err := r.exec.renderer.Render(n.mod)
	if err != nil {
		return err
	}

	emitter, ok := r.exec.registry.Emitter(n.mod.Kind)
	if !ok {
		// The validator guarantees known kinds; reaching this means the
		// pipeline was wired wrong.
		return fmt.Errorf("module %q: no emitter for kind %q", n.mod.ID, n.mod.Kind)
	}

	path, err := emitter.Emit(ctx, rendered, r.exec.outDir)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.plan.Artifacts[n.mod.ID] = path
	r.mu.Unlock()
	return nil
}

// unlockDependents queues every dependent whose dependencies are now all
// built.
func (r *run) unlockDependents(n *nodeState) {
	dependents, err := r.graph.Dependents(n.mod.ID)
	if err != nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, depID := range dependents {
		dep := r.nodes[depID]
		dep.remaining--
		if dep.remaining == 0 {
			r.ready <- dep
		}
	}
}

// skipDependents marks everything downstream of a failed module as
// skipped, transitively. Each skipped module releases its wait-group
// slot exactly once.
func (r *run) skipDependents(n *nodeState) {
	dependents, err := r.graph.Dependents(n.mod.ID)
	if err != nil {
		return
	}
	for _, depID := range dependents {
		dep := r.nodes[depID]
		if r.transition(dep, StatusPending, StatusSkipped) {
			r.wg.Done()
			r.skipDependents(dep)
		}
	}
}

// fail records the failure and cancels the pass.
func (r *run) fail(n *nodeState, err error) {
	r.mu.Lock()
	n.status = StatusFailed
	n.err = err
	if r.firstErr == nil {
		r.firstErr = err
	}
	r.mu.Unlock()
	r.cancel()
}

func (r *run) setStatus(n *nodeState, s Status) {
	r.mu.Lock()
	n.status = s
	r.mu.Unlock()
}

// transition moves a node from one status to another atomically,
// reporting whether the move happened. Skips are counted so the pass
// can tell an externally cancelled run from a successful one.
func (r *run) transition(n *nodeState, from, to Status) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.status != from {
		return false
	}
	if to == StatusSkipped {
		r.skipped++
	}
	n.status = to
	return true
}
