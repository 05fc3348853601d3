package calendar

import "errors"

// Calendar failures fall into three classes. Network and format errors
// are recoverable through the cache's stale-data fallback; ErrNoData
// means every source came up empty and the scheduler should fall back
// to session timing.
var (
	ErrNetwork = errors.New("calendar: network failure")
	ErrFormat  = errors.New("calendar: unparseable payload")
	ErrNoData  = errors.New("calendar: no event data available")
)
