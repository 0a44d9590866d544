package checker

import (
	"context"
	"errors"

	"checker/pkg/domain"
	"checker/pkg/logger"
	"checker/pkg/provider"
	"checker/pkg/serrors"

	"go.uber.org/zap"
)

// validate confirms the credential identifies an active principal. It applies
// the shared retry discipline to transient failures and refreshes the
// anti-forgery token exactly once on a 403. The returned auth material is
// reused for the enrichment fanout.
func (c *checker) validate(ctx context.Context, credential string) (domain.Identity, provider.RequestAuth, error) {
	auth := provider.RequestAuth{Credential: credential}

	principal, err := c.whoAmI(ctx, auth)
	if errors.Is(err, serrors.ErrForbidden) {
		// a stale or missing anti-forgery token also presents as 403; a
		// fresh token gets one retry, then the rejection is terminal
		token, tokenErr := c.client.AcquireToken(ctx, credential)
		if tokenErr == nil && token != "" {
			auth = auth.WithToken(token)
			principal, err = c.whoAmI(ctx, auth)
		}
	}
	if err != nil {
		return domain.Identity{}, auth, err
	}

	identity := domain.Identity{
		ID:          principal.ID,
		Name:        principal.Name,
		DisplayName: principal.DisplayName,
	}

	// the creation timestamp lives on the public profile; the lookup is
	// best-effort and degrades to an unknown age downstream
	details, err := c.client.UserDetails(ctx, auth, principal.ID)
	if err != nil {
		logger.Warn(ctx, "user details lookup failed", zap.Int64("userID", principal.ID), zap.Error(err))

		return identity, auth, nil
	}
	if created, ok := parseCreated(details.Created); ok {
		identity.CreatedAt = created
	}

	return identity, auth, nil
}

// whoAmI performs the who-am-i call under the retry policy.
func (c *checker) whoAmI(ctx context.Context, auth provider.RequestAuth) (*provider.Principal, error) {
	var principal *provider.Principal
	err := c.retry.do(ctx, func() error {
		p, err := c.client.Authenticated(ctx, auth)
		if err != nil {
			return err
		}
		principal = p

		return nil
	})

	return principal, err
}
