// Package table implements a generic, server-side paginated table.
//
// A Table holds the pagination state for one view (page index, page size,
// search string, and the rows of the last successful fetch) and talks to a
// data source through a FetchFunc. Every state change dispatches exactly one
// fetch. Fetches are tagged with a sequence number taken under the table
// mutex, and a result is only applied when no newer fetch has been issued
// since, so overlapping requests resolve to the most recently triggered one.
//
// Fetch failures never reach the caller: the rows are cleared, the error is
// logged and kept for display, and the observer is notified.
package table
