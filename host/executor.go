package host

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/multierr"

	"github.com/reglet-dev/vecbridge/domain/entities"
	"github.com/reglet-dev/vecbridge/host/memhost"
	vecwazero "github.com/reglet-dev/vecbridge/infrastructure/wazero"
	"github.com/reglet-dev/vecbridge/internal/abi"
)

// Executor manages a wazero runtime wired to one memhost.Runtime.
type Executor struct {
	runtime   wazero.Runtime
	host      *memhost.Runtime
	logger    *slog.Logger
	instances []*Instance
}

// NewExecutor creates a new executor with the given options.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	e := &Executor{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	if e.host == nil {
		e.host = memhost.New()
	}

	rt := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	e.runtime = rt

	if err := vecwazero.RegisterWithRuntime(ctx, rt, e.host, vecwazero.WithLogger(e.logger)); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to register host functions: %w", err)
	}

	return e, nil
}

// Host returns the runtime guest calls operate on.
func (e *Executor) Host() *memhost.Runtime {
	return e.host
}

// Close releases every loaded module and the runtime.
func (e *Executor) Close(ctx context.Context) error {
	var err error
	for _, inst := range e.instances {
		err = multierr.Append(err, inst.Close(ctx))
	}
	e.instances = nil
	return multierr.Append(err, e.runtime.Close(ctx))
}

// Instance is an instantiated guest module.
type Instance struct {
	module api.Module
	host   *memhost.Runtime
}

// LoadModule instantiates a guest module. Reactor modules have their
// _initialize export called once.
func (e *Executor) LoadModule(ctx context.Context, wasmBytes []byte) (*Instance, error) {
	cfg := wazero.NewModuleConfig().WithName("guest-" + uuid.NewString())
	mod, err := e.runtime.InstantiateWithConfig(ctx, wasmBytes, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate module: %w", err)
	}

	if init := mod.ExportedFunction("_initialize"); init != nil {
		if _, err := init.Call(ctx); err != nil {
			_ = mod.Close(ctx)
			return nil, fmt.Errorf("failed to call _initialize: %w", err)
		}
	}

	inst := &Instance{module: mod, host: e.host}
	e.instances = append(e.instances, inst)
	return inst, nil
}

// Has reports whether the guest exports name.
func (i *Instance) Has(name string) bool {
	return i.module.ExportedFunction(name) != nil
}

// Call invokes the guest export name on arg through the host trampoline.
// A tagged result becomes a *errors.HostCallError; a trap (including a host
// fault raised inside a vec_host function) is returned as is.
func (i *Instance) Call(ctx context.Context, name string, arg entities.Handle) (entities.Handle, error) {
	fn := i.module.ExportedFunction(name)
	if fn == nil {
		return entities.NullHandle, fmt.Errorf("export %q not found", name)
	}

	var trap error
	entry := func(x entities.Handle) entities.Handle {
		results, err := fn.Call(vecwazero.WithEntryName(ctx, name), abi.HandleToWire(x))
		if err != nil {
			trap = fmt.Errorf("%s: %w", name, err)
			return i.host.Null()
		}
		if len(results) != 1 {
			trap = fmt.Errorf("%s: expected 1 result, got %d", name, len(results))
			return i.host.Null()
		}
		h, err := abi.HandleFromWire(results[0])
		if err != nil {
			trap = fmt.Errorf("%s: %w", name, err)
			return i.host.Null()
		}
		return h
	}

	out, err := i.host.Call(name, entry, arg)
	if trap != nil {
		if out != entities.NullHandle {
			i.host.Release(out)
		}
		return entities.NullHandle, multierr.Append(trap, err)
	}
	return out, err
}

// Close releases the guest module.
func (i *Instance) Close(ctx context.Context) error {
	return i.module.Close(ctx)
}
