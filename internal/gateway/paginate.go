package gateway

import (
	"context"

	"github.com/sirupsen/logrus"
)

// fetchAllPages retrieves every page of a resource collection. Page numbers
// ascend from 1 and fetching stops at the first empty page, so providers that
// do not announce a total up front are handled. Every page call goes through
// the rate-limit guard and the retry wrapper. Items keep the server-returned
// order across pages and are not deduplicated.
//
// On an unrecoverable page failure the items accumulated so far are returned
// together with the error; the caller decides whether a partial result is
// acceptable.
func fetchAllPages[T any](ctx context.Context, guard *rateLimitGuard, logger *logrus.Logger, sleep sleepFunc, fetch func(page int) ([]T, error)) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		guard.ensureCapacity(ctx)
		items, err := withRetry(logger, sleep, func() ([]T, error) {
			return fetch(page)
		})
		if err != nil {
			return all, err
		}
		if len(items) == 0 {
			return all, nil
		}
		all = append(all, items...)
		logger.Debugf("fetched page %d (%d items, %d total)", page, len(items), len(all))
	}
}
