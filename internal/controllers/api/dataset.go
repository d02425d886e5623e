package api

import (
	"context"

	"github.com/district-ledger/backend/internal/aggregate"
	"github.com/district-ledger/backend/internal/store"
	"golang.org/x/sync/errgroup"
)

// dataset loads all service, tithe and offering reports matching the
// filter. The collections are queried concurrently.
func (co Controller) dataset(ctx context.Context, f store.Filter) (aggregate.Dataset, error) {
	var d aggregate.Dataset
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.Sunday, err = co.Store.Sunday.All(ctx, f)
		return
	})

	g.Go(func() (err error) {
		d.Midweek, err = co.Store.Midweek.All(ctx, f)
		return
	})

	g.Go(func() (err error) {
		d.Special, err = co.Store.Special.All(ctx, f)
		return
	})

	g.Go(func() (err error) {
		d.Tithes, err = co.Store.Tithes.All(ctx, f)
		return
	})

	g.Go(func() (err error) {
		d.Offerings, err = co.Store.Offerings.All(ctx, f)
		return
	})

	if err := g.Wait(); err != nil {
		return aggregate.Dataset{}, err
	}
	return d, nil
}
