package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"basegraph.app/backoffice/internal/model"
)

const defaultLastLoginWorkers = 8

// withLastLogin fills LastLoginAt from the identity provider. Lookups run in
// parallel; a failed lookup keeps the stored value.
func (s *accountService) withLastLogin(ctx context.Context, accounts []model.Account) []model.Account {
	type result struct {
		id uuid.UUID
		at *time.Time
	}

	results := make([]result, len(accounts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.lastLoginWorkers)

	for i := range accounts {
		if accounts[i].IdentityUserID == nil {
			continue
		}
		accountID := accounts[i].ID
		userID := *accounts[i].IdentityUserID
		g.Go(func() error {
			user, err := s.identity.GetUser(gctx, userID)
			if err != nil {
				slog.WarnContext(gctx, "failed to fetch last sign-in", "error", err, "account_id", accountID)
				return nil
			}
			results[i] = result{id: accountID, at: user.LastSignInAt}
			return nil
		})
	}
	_ = g.Wait()

	byID := make(map[uuid.UUID]*time.Time, len(results))
	for _, r := range results {
		if r.at != nil {
			byID[r.id] = r.at
		}
	}

	for i := range accounts {
		if at, ok := byID[accounts[i].ID]; ok {
			accounts[i].LastLoginAt = at
		}
	}
	return accounts
}
