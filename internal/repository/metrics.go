package repository

import "github.com/greenhouse-labs/catalog/pkg/metrics"

func observeList(store metrics.MetricsStore, entity string, err error) {
	if store != nil {
		store.ObserveListQuery(entity, err)
	}
}
