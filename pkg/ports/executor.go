package ports

import (
	"context"

	"github.com/aretw0/webterm/pkg/domain"
)

// Executor forwards a remote command to the execution service.
// A returned error means the service could not be reached or answered
// with something other than a CommandResult.
type Executor interface {
	Execute(ctx context.Context, req domain.CommandRequest) (domain.CommandResult, error)
}

// VersionSource reports the build identity of the execution service.
type VersionSource interface {
	Version(ctx context.Context) (string, error)
}

// Provider is the external data source used by the weather command.
// Implementations return domain.ErrUpstreamUnavailable (wrapped) on timeout or connection failure.
type Provider interface {
	Lookup(ctx context.Context, location string) (string, error)
}
