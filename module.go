package anyconf

import (
	"log/slog"

	"github.com/0xalexb/anyconf/processor"

	"go.uber.org/fx"
)

type loaderParams struct {
	fx.In

	Logger *slog.Logger `optional:"true"`
}

// NewModule creates an Fx module providing a *Loader and its
// *processor.Registry. The container's *slog.Logger is used when present
// and WithLogger was not given.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(opts ...Option) fx.Option {
	return fx.Module("anyconf",
		fx.Provide(func(params loaderParams) (*Loader, error) {
			loaderOpts := opts
			if params.Logger != nil {
				loaderOpts = append([]Option{WithLogger(params.Logger)}, opts...)
			}

			return New(loaderOpts...)
		}),
		fx.Provide(func(loader *Loader) *processor.Registry {
			return loader.Registry()
		}),
	)
}
