package authc

import (
	"context"

	"github.com/axent-pl/security/common"
)

// SchemeProviderSet merges the schemes of several providers, one per realm.
// It fails only when no provider returned a scheme and at least one failed.
type SchemeProviderSet struct {
	Providers []SchemeProvider
}

func (s *SchemeProviderSet) Schemes(ctx context.Context, in common.Credentials) ([]common.Scheme, error) {
	var lastErr error
	var schemes []common.Scheme = make([]common.Scheme, 0)
	for _, p := range s.Providers {
		providerSchemes, err := p.Schemes(ctx, in)
		if err == nil {
			schemes = append(schemes, providerSchemes...)
		} else {
			lastErr = err
		}
	}
	if len(schemes) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return schemes, nil
}
