package application

import "expvar"

// Counters published on /debug/vars under "todo_api".
var counters = expvar.NewMap("todo_api")

const (
	metricSignups      = "signups"
	metricLoginsOK     = "logins_ok"
	metricLoginsFailed = "logins_failed"
	metricTodosCreated = "todos_created"
	metricTodosDeleted = "todos_deleted"
	metricIndexErrors  = "index_errors"
)
