// Package analysis decodes the precomputed poll summaries and shapes them
// into chart-ready series.
//
// The JSON documents are produced by an external aggregation pipeline; this
// package only reads them. A decoded Results value is treated as immutable
// and is passed explicitly to every consumer.
//
//	res, err := analysis.Load("analysis_results.json")
//	weekly, err := res.WeeklySeries(analysis.MetricPolls)
//	authors, err := res.PollsterSeries(analysis.MetricCumulativePolls)
//	mood, err := res.MoodSeries()
//
// Labels or dates that cannot be resolved are skipped; the views return the
// partial result together with an error describing what was dropped.
// Missing per-author weeks are gaps, never zeros.
package analysis
