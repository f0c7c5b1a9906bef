package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"soccer-science/config"
	"soccer-science/dataset"
	"soccer-science/store"
)

// loadDataset builds the process-wide snapshot. A populated snapshot store
// wins over the CSV; a fresh CSV load refreshes the store when one is set.
func loadDataset(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*dataset.Dataset, error) {
	var snap *store.Store
	if cfg.SnapshotDSN != "" {
		var err error
		snap, err = store.Open(cfg.SnapshotDSN)
		if err != nil {
			return nil, err
		}
		defer snap.Close()
		if err := snap.Init(ctx); err != nil {
			return nil, fmt.Errorf("init snapshot: %w", err)
		}
		n, err := snap.Count(ctx)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			records, err := snap.LoadMatches(ctx)
			if err != nil {
				return nil, fmt.Errorf("read snapshot: %w", err)
			}
			data := dataset.New(records)
			log.WithField("rows", data.Len()).Info("📦 Loaded dataset from snapshot")
			return data, nil
		}
	}

	data, err := readSource(ctx, cfg.DatasetPath)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"source": cfg.DatasetPath,
		"read":   data.RowsRead(),
		"kept":   data.Len(),
	}).Info("📊 Loaded match dataset")

	if snap != nil {
		if err := snap.SaveMatches(ctx, data.Records()); err != nil {
			return nil, fmt.Errorf("write snapshot: %w", err)
		}
		log.WithField("rows", data.Len()).Info("✅ Snapshot saved")
	}
	return data, nil
}

// readSource loads the CSV from a local path or an http(s) URL.
func readSource(ctx context.Context, src string) (*dataset.Dataset, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		return dataset.LoadCSV(src)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, &dataset.LoadError{Err: err}
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, &dataset.LoadError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &dataset.LoadError{Err: fmt.Errorf("fetch %s: %s", src, resp.Status)}
	}
	return dataset.ReadCSV(resp.Body)
}
