package checker

import (
	"context"

	"checker/pkg/domain"
	"checker/pkg/logger"
	"checker/pkg/provider"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// enrich issues the five enrichment sections concurrently for a validated
// identity. Every lookup is single-attempt and degrades to its documented
// default on failure; a section failure never reaches the caller, so the
// returned set is always complete. Each goroutine writes a distinct field,
// no section ever reads another's in-progress state.
func (c *checker) enrich(ctx context.Context, auth provider.RequestAuth, userID int64) domain.Sections {
	var sections domain.Sections
	var g errgroup.Group

	warn := func(section string, err error) {
		logger.Warn(ctx, "enrichment section degraded to default",
			zap.String("section", section), zap.Int64("userID", userID), zap.Error(err))
	}

	g.Go(func() error {
		balance, err := c.client.Currency(ctx, auth)
		if err != nil {
			warn("balance", err)

			return nil
		}
		sections.Balance = domain.Balance{
			Total:   balance.Primary + balance.Pending,
			Pending: balance.Pending,
		}

		return nil
	})

	g.Go(func() error {
		premium, err := c.client.PremiumStatus(ctx, auth, userID)
		if err != nil {
			warn("membership", err)
			premium = false
		}
		sections.Membership = domain.Membership{
			Active: premium,
			Status: domain.MembershipStatus(premium),
		}

		return nil
	})

	// the three social counts are independent lookups: one timing out must
	// not blank the others
	g.Go(func() error {
		count, err := c.client.FriendsCount(ctx, auth, userID)
		if err != nil {
			warn("social.friends", err)

			return nil
		}
		sections.Social.Friends = count

		return nil
	})
	g.Go(func() error {
		count, err := c.client.FollowersCount(ctx, auth, userID)
		if err != nil {
			warn("social.followers", err)

			return nil
		}
		sections.Social.Followers = count

		return nil
	})
	g.Go(func() error {
		count, err := c.client.FollowingCount(ctx, auth, userID)
		if err != nil {
			warn("social.following", err)

			return nil
		}
		sections.Social.Following = count

		return nil
	})

	g.Go(func() error {
		enabled, err := c.client.TwoFactorEnabled(ctx, auth, userID)
		if err != nil {
			warn("security", err)

			return nil
		}
		sections.Security.TwoFactorEnabled = enabled

		return nil
	})

	g.Go(func() error {
		items, err := c.client.Collectibles(ctx, auth, userID, c.options.CollectiblesPageSize)
		if err != nil {
			warn("inventory", err)

			return nil
		}
		var total float64
		for _, item := range items {
			total += item.RecentAveragePrice
		}
		sections.InventoryValue = total

		return nil
	})

	_ = g.Wait()

	return sections
}
