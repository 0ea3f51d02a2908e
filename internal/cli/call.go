package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/vecbridge/domain/entities"
	"github.com/reglet-dev/vecbridge/host"
	"github.com/reglet-dev/vecbridge/host/memhost"
)

// CallOptions holds flags for the call command.
type CallOptions struct {
	*RootOptions
	As        string
	WasmPath  string
	GCTorture bool
}

// CallResult is the JSON form of a successful call.
type CallResult struct {
	Entry  string   `json:"entry"`
	Type   string   `json:"type"`
	Values []string `json:"values"`
}

// NewCallCommand creates the call command.
func NewCallCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CallOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "call <entry> [values...]",
		Short: "Call an entry point on a vector built from the arguments",
		Long: `Call an entry point on a vector built from the arguments.

The input vector takes the entry point's declared input type unless --as
names another one, which is how type mismatches are exercised.

Example:
  vecbridge call to_upper abc Déf
  vecbridge call times_two_integer 1 2 3
  vecbridge call times_two_real 1.5 --as integer
  vecbridge call to_upper abc --wasm vecguest.wasm`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, opts, args[0], args[1:])
		},
	}

	cmd.Flags().StringVar(&opts.As, "as", "", "input element type (character|integer|double|NULL)")
	cmd.Flags().StringVar(&opts.WasmPath, "wasm", "", "run the entry point inside this WASM guest module")
	cmd.Flags().BoolVar(&opts.GCTorture, "gc-torture", false, "collect garbage before every host allocation")

	return cmd
}

func runCall(cmd *cobra.Command, opts *CallOptions, name string, values []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var extra []memhost.Option
	if opts.GCTorture {
		extra = append(extra, memhost.WithGCTorture(true))
	}
	s, err := newSession(opts.RootOptions, cmd.ErrOrStderr(), extra...)
	if err != nil {
		return err
	}

	inputType, err := resolveInputType(s, opts.As, name)
	if err != nil {
		return err
	}
	in, err := buildVector(s.runtime, inputType, values)
	if err != nil {
		return err
	}

	var out entities.Handle
	if opts.WasmPath != "" {
		out, err = callWasm(ctx, s, opts.WasmPath, name, in)
	} else {
		out, err = s.runtime.Call(name, s.catalog.Bind(ctx, name), in)
	}
	s.runtime.Release(in)
	if err != nil {
		return err
	}
	defer s.runtime.Release(out)

	return writeResult(cmd.OutOrStdout(), opts.Format, s, name, out)
}

func resolveInputType(s *session, as, name string) (entities.ElementType, error) {
	if as != "" {
		return entities.ParseElementType(as)
	}
	ep, ok := s.catalog.Lookup(name)
	if !ok {
		// The catalog reports unknown names itself.
		return entities.TypeText, nil
	}
	return ep.Input, nil
}

func callWasm(ctx context.Context, s *session, path, name string, in entities.Handle) (entities.Handle, error) {
	wasmBytes, err := os.ReadFile(path)
	if err != nil {
		return entities.NullHandle, fmt.Errorf("failed to read module: %w", err)
	}

	executor, err := host.NewExecutor(ctx, host.WithRuntime(s.runtime), host.WithLogger(s.logger))
	if err != nil {
		return entities.NullHandle, err
	}
	defer func() {
		if cerr := executor.Close(ctx); cerr != nil {
			s.logger.WarnContext(ctx, "cli: failed to close executor", "error", cerr)
		}
	}()

	inst, err := executor.LoadModule(ctx, wasmBytes)
	if err != nil {
		return entities.NullHandle, err
	}
	return inst.Call(ctx, name, in)
}

func writeResult(w io.Writer, format string, s *session, name string, out entities.Handle) error {
	values, err := readVector(s.runtime, out)
	if err != nil {
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(CallResult{Entry: name, Type: s.runtime.TypeOf(out).String(), Values: values})
	}
	for _, v := range values {
		if _, err := fmt.Fprintln(w, v); err != nil {
			return err
		}
	}
	return nil
}
