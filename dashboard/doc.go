// Package dashboard turns analysis results into a static web page.
//
// A Layout lists the panels of the page. Each panel has a kind (summary,
// period, pollster, mood, powerlaw, ranking or identikits) and a few
// kind-specific options. Layouts are written in YAML:
//
//	title: Analisi Sondaggi
//	mood_window: 7
//	smoothing: centered
//	panels:
//	  - id: weekly
//	    kind: period
//	    period: week
//	  - id: mood
//	    kind: mood
//	    window: 5
//
// A Builder builds the panels of a layout from *analysis.Results into a Page
// of renderer-neutral Figures and Tables. Panels are built independently and
// a failing panel is recorded in Page.Failures without affecting the others:
//
//	page := dashboard.NewBuilder(layout, dashboard.WithLogger(logger)).Build(res)
//	if err := dashboard.WriteSite("site", page, dashboard.FormatSVG); err != nil {
//		log.Println(err)
//	}
//
// RenderHTML embeds figures as ECharts charts; RenderImage draws a single
// figure as SVG or PNG.
package dashboard
