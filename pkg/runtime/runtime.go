package runtime

import (
	"context"
	"fmt"
	"sync"

	"github.com/vessel-labs/vessel/pkg/condition"
	"github.com/vessel-labs/vessel/pkg/env"
	"github.com/vessel-labs/vessel/pkg/event"
	"github.com/vessel-labs/vessel/pkg/lifecycle"
	"github.com/vessel-labs/vessel/pkg/log"
	"github.com/vessel-labs/vessel/pkg/registry"
)

// Runtime is an embeddable inversion-of-control container. Definitions
// are registered through condition-gated admission, started and stopped
// through the phased lifecycle orchestrator, and notified through the
// event bus.
//
// Use New() to create an instance, Register() to add components, then
// Start()/Stop() to drive the coordinated lifecycle.
type Runtime struct {
	cfg         Config
	opts        options
	logger      log.Logger
	environment *env.Environment
	registry    *registry.Registry
	bus         *event.Bus
	orch        *lifecycle.Orchestrator
	condctx     *condition.Context

	mu sync.Mutex
}

// New creates a runtime with the given configuration. The instance is
// idle; call Start() to run coordinated startup. Returns an error if the
// configuration is invalid or module versions are incompatible.
func New(cfg Config, opts ...Option) (*Runtime, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger

	environment := o.environment
	if environment == nil {
		environment = env.New()
		for _, path := range cfg.PropertyFiles {
			if err := environment.LoadFile(path); err != nil {
				return nil, err
			}
		}
		if cfg.EnvPrefix != "" {
			environment.LoadEnviron(cfg.EnvPrefix)
		}
	}
	environment.ActivateProfiles(cfg.Profiles...)

	resources := o.resources
	if resources == nil {
		resources = env.NewFileResources(cfg.ResourceBase)
	}

	runtimeInfo := o.runtimeInfo
	if runtimeInfo == nil {
		if cfg.RuntimeVersion != "" {
			info, err := env.NewInfo(cfg.RuntimeVersion)
			if err != nil {
				return nil, err
			}
			runtimeInfo = info
		} else {
			runtimeInfo = env.InfoFromBuildInfo()
		}
	}

	expressions := o.expressions
	if expressions == nil {
		expressions = env.NewPlaceholderEvaluator()
	}

	evaluator := condition.NewEvaluator(logger)
	reg := registry.New(evaluator, logger)
	bus := event.NewBus(reg, logger)
	for _, l := range o.listeners {
		bus.AddListener(l)
	}

	r := &Runtime{
		cfg:         cfg,
		opts:        o,
		logger:      logger,
		environment: environment,
		registry:    reg,
		bus:         bus,
		condctx: &condition.Context{
			Environment: environment,
			Registry:    reg,
			Resources:   resources,
			Runtime:     runtimeInfo,
			Expressions: expressions,
		},
	}
	r.orch = lifecycle.NewOrchestrator(reg, lifecycle.Config{StopTimeout: cfg.StopTimeout},
		logger, &busEmitter{source: r, bus: bus, logger: logger})
	return r, nil
}

// Register runs the definition through condition evaluation and admits it
// into the registry. Admitted components with the listener capability are
// added to the event bus under the definition's name and ordering.
// Reports whether the definition was admitted; evaluation errors are
// fatal to this one candidate and propagate.
func (r *Runtime) Register(def *registry.Definition) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	admitted, err := r.registry.Register(def, r.condctx)
	if err != nil || !admitted {
		return admitted, err
	}

	if l, ok := def.Listener(); ok {
		r.bus.AddListener(event.Registration{
			Listener: l,
			Name:     def.Name,
			Order:    def.Order,
			Priority: def.Priority,
		})
	}
	return true, nil
}

// RegisterAll registers definitions in order, stopping at the first
// error. Rejected definitions are skipped silently; the returned count is
// the number admitted.
func (r *Runtime) RegisterAll(defs ...*registry.Definition) (int, error) {
	admitted := 0
	for _, def := range defs {
		ok, err := r.Register(def)
		if err != nil {
			return admitted, err
		}
		if ok {
			admitted++
		}
	}
	return admitted, nil
}

// Start publishes the setup event and drives coordinated startup. On
// failure the failed event is published and the error returned.
func (r *Runtime) Start(ctx context.Context) error {
	if err := r.bus.Publish(SetupEvent{Base: event.NewBase(r)}); err != nil {
		return fmt.Errorf("runtime: setup listener: %w", err)
	}

	if err := r.orch.Refresh(ctx); err != nil {
		if perr := r.bus.Publish(FailedEvent{Base: event.NewBase(r), Reason: err}); perr != nil {
			r.logger.Error("failed event listener failed", log.Err(perr))
		}
		return err
	}

	if err := r.bus.Publish(StartedEvent{Base: event.NewBase(r)}); err != nil {
		return fmt.Errorf("runtime: started listener: %w", err)
	}
	r.logger.Info("container started", log.String("name", r.cfg.Name),
		log.Int("components", r.registry.Len()))
	return nil
}

// Stop publishes the stopped event, drives coordinated shutdown in
// reverse order, and publishes the closed event. Calling Stop when the
// container is not running is a no-op.
func (r *Runtime) Stop(ctx context.Context) error {
	if r.orch.State() != lifecycle.StateRunning {
		return nil
	}

	if err := r.bus.Publish(StoppedEvent{Base: event.NewBase(r)}); err != nil {
		r.logger.Error("stopped event listener failed", log.Err(err))
	}

	err := r.orch.Close(ctx)

	if perr := r.bus.Publish(ClosedEvent{Base: event.NewBase(r)}); perr != nil {
		r.logger.Error("closed event listener failed", log.Err(perr))
	}
	r.logger.Info("container closed", log.String("name", r.cfg.Name))
	return err
}

// Status returns the orchestrator's lifecycle state.
// Safe to call concurrently from any goroutine.
func (r *Runtime) Status() lifecycle.State {
	return r.orch.State()
}

// Name returns the container name.
func (r *Runtime) Name() string { return r.cfg.Name }

// Bus returns the event bus for runtime publication and listener
// management.
func (r *Runtime) Bus() *event.Bus { return r.bus }

// Registry returns the component registry.
func (r *Runtime) Registry() *registry.Registry { return r.registry }

// Environment returns the property environment.
func (r *Runtime) Environment() *env.Environment { return r.environment }

// ConditionContext returns the context definitions are evaluated against.
func (r *Runtime) ConditionContext() *condition.Context { return r.condctx }
