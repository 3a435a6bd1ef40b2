// Package recruitment submits the Boubli Club recruitment form to a
// spreadsheet webhook.
//
// The form runs on a dispatcher.Form: a local check requires at least one
// interest, then a single JSON POST is sent whose answer is ignored. The
// payload carries the interests joined with ", " and a timestamp in the
// configured time zone.
package recruitment
