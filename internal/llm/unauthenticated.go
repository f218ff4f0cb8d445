package llm

import "context"

// UnauthenticatedProvider stands in when no credential is configured.
// Every call fails immediately with *ErrAuthentication instead of reaching
// the network.
type UnauthenticatedProvider struct {
	provider string
	reason   error
}

// Unauthenticated returns a provider that rejects every request.
func Unauthenticated(provider string, reason error) *UnauthenticatedProvider {
	return &UnauthenticatedProvider{provider: provider, reason: reason}
}

func (u *UnauthenticatedProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, &ErrAuthentication{Provider: u.provider, Err: u.reason}
}

func (u *UnauthenticatedProvider) ModelID() string {
	return u.provider + " (no credential)"
}
