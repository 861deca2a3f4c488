// Package polldash renders a static analytics dashboard for a group poll
// dataset.
//
// The input is two JSON documents produced by an external aggregation step:
// analysis_results.json (weekly, daily and hourly activity, cumulative
// per-author statistics, daily mood averages, identikits and rankings) and
// unanimous_polls.json (polls where everybody picked the same answer).
//
// # Packages
//
//   - isoweek: resolves "YYYY-WW" week labels to the Monday that starts them
//   - timeseries: gap-aware series, centered and trailing moving averages, CSV
//   - stats: linear and power-law least-squares fits
//   - analysis: decoding of the JSON documents and chart-ready views
//   - dashboard: YAML layouts, panel building, HTML and static images
//   - quiz: the unanimous-poll quiz
//   - config, logging: environment settings and structured logging
//
// # Quick Start
//
// Render the default page:
//
//	res, _ := analysis.Load("analysis_results.json")
//	page := dashboard.NewBuilder(dashboard.DefaultLayout()).Build(res)
//	err := dashboard.WriteSite("site", page, dashboard.FormatSVG)
//
// Smooth a daily series:
//
//	mood, _ := res.MoodSeries()
//	weekly, _ := mood.MovingAverage(7)
//
// Fit a power law:
//
//	fit, _ := stats.FitPowerLaw(points)
//	y := fit.PowerAt(x)
//
// # Missing Data
//
// An absent observation is carried as NaN (timeseries.Missing). Smoothing and
// fitting skip it and charts draw it as a gap; it is never read as zero.
//
// The cmd/polldash command wires everything together.
package polldash
