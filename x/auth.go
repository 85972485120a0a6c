package x

import "github.com/iov-one/kitties/weave"

// Authenticator tells which addresses signed the transaction in ctx.
// Handlers take one as a parameter instead of asking x/caller directly.
type Authenticator interface {
	// GetAddresses returns every address that authorized the
	// transaction, without duplicates.
	GetAddresses(weave.Context) []weave.Address
	HasAddress(weave.Context, weave.Address) bool
}

// MultiAuth accepts the signers of any of its authenticators.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth{}

// ChainAuth combines the authenticators. The addresses of the first one
// come first.
func ChainAuth(auths ...Authenticator) MultiAuth {
	return MultiAuth(auths)
}

func (m MultiAuth) GetAddresses(ctx weave.Context) []weave.Address {
	var all []weave.Address
	seen := make(map[string]bool)
	for _, auth := range m {
		for _, addr := range auth.GetAddresses(ctx) {
			if !seen[string(addr)] {
				seen[string(addr)] = true
				all = append(all, addr)
			}
		}
	}
	return all
}

func (m MultiAuth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	for _, auth := range m {
		if auth.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first signer or nil. The kitties handlers act on
// behalf of this address.
func MainSigner(ctx weave.Context, auth Authenticator) weave.Address {
	if all := auth.GetAddresses(ctx); len(all) != 0 {
		return all[0]
	}
	return nil
}
