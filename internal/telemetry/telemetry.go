package telemetry

// API is what components report through instead of logging directly, so
// tests can hand them a Recorder and assert on what happened.
//
// Ids are lowercase, underscores separate words of a component and dashes
// separate the operation, ex. `scraper.scrape-trait`. The id names the
// component that broke, the cause goes into the params.
//
// Params are either key/value pairs (string keys at even positions) or
// plain values that get numbered.
type API interface {
	// ReportBroken reports something that failed and should be looked at.
	ReportBroken(id string, params ...any)
	// ReportWarning reports something unexpected that was worked around,
	// like a record that was dropped.
	ReportWarning(id string, params ...any)
	// ReportDebug is hidden unless verbose.
	ReportDebug(msg string, params ...any)
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id with a dotted scope.
type ScopedAPI struct {
	scope string
	inner API
}

// Scope wraps inner so its ids read `<name>: <id>`, scoping an already
// scoped API nests the names as `outer.name: <id>`.
func Scope(inner API, name string) ScopedAPI {
	if s, ok := inner.(ScopedAPI); ok {
		return ScopedAPI{scope: s.scope + "." + name, inner: s.inner}
	}
	return ScopedAPI{scope: name, inner: inner}
}

func (s ScopedAPI) id(id string) string {
	return s.scope + ": " + id
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(s.id(id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(s.id(id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(s.id(msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(s.id(id), count)
}
