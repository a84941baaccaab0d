// Package query holds the query state that drives every user-list request.
//
// The state is a plain comparable struct owned by a single writer (the explorer
// model). Changes are expressed as intents and applied with State.Apply, which
// is pure: it returns the next state and the side effect the caller must run.
//   - Filter, search, sort, and page-size changes reset the page to 1
//   - Page changes never touch any other field
//   - Unchanged values are no-ops and never trigger a fetch
package query
