// Package isoweek maps "year-week" labels to calendar dates.
//
// Weekly aggregates arrive keyed by labels such as "2024-07". To place them
// on a time axis each label is resolved to the Monday that starts its ISO
// week, where week 1 is the week containing the year's first Thursday.
//
// # Resolving a label
//
//	start, err := isoweek.ResolveStart("2024-01")
//	// start == 2024-01-01 00:00 local time (a Monday)
//
// # Working with Label values
//
//	l, err := isoweek.ParseLabel("2023-52")
//	monday := l.Start(time.UTC)
//	next := isoweek.LabelOf(monday.AddDate(0, 0, 7))
//
// Week numbers are not checked against the number of ISO weeks in the year:
// week 53 of a 52-week year resolves to the first Monday of the next year.
package isoweek
