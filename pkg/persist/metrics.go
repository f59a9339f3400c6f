package persist

import "github.com/VictoriaMetrics/metrics"

// Counters for the persistence pipelines. Exposed through the default
// VictoriaMetrics registry; hosts that serve metrics can write them out with
// metrics.WritePrometheus.
var (
	savesTotal       = metrics.NewCounter(`persist_saves_total`)
	savedKeysTotal   = metrics.NewCounter(`persist_saved_keys_total`)
	removedKeysTotal = metrics.NewCounter(`persist_stale_keys_removed_total`)
	saveErrorsTotal  = metrics.NewCounter(`persist_save_errors_total`)

	loadsTotal       = metrics.NewCounter(`persist_loads_total`)
	missingKeysTotal = metrics.NewCounter(`persist_load_missing_keys_total`)
	loadErrorsTotal  = metrics.NewCounter(`persist_load_errors_total`)

	clearsTotal      = metrics.NewCounter(`persist_clears_total`)
	clearedKeysTotal = metrics.NewCounter(`persist_cleared_keys_total`)
)
