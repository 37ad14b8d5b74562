// Package beanmetrics generates a sales-vs-weather report for a single
// coffee shop location.
//
// The pipeline is linear: load pipe-delimited transactions, fetch daily
// weather history from the Open-Meteo archive, left-join the two on calendar
// date, aggregate, and emit a console report plus chart and CSV artifacts.
//
//	txns, _ := dataset.LoadTransactions(path, cfg.StoreLocation)
//	days, _ := openmeteo.New().DailyHistory(ctx, query)
//	rep := report.Build(cfg, dataset.Join(txns, days))
//	rep.WriteText(os.Stdout)
//
// The report package never touches the network, the filesystem, or any
// rendering library — all computation is local and testable in isolation.
package beanmetrics
