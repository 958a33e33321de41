package dml

import "github.com/lyraproj/issue/issue"

type (
	LogLevel string

	Logger interface {
		Log(level LogLevel, args ...Value)

		Logf(level LogLevel, format string, args ...interface{})

		LogIssue(i issue.Reported)
	}
)

const (
	ALERT   = LogLevel(`alert`)
	CRIT    = LogLevel(`crit`)
	DEBUG   = LogLevel(`debug`)
	EMERG   = LogLevel(`emerg`)
	ERR     = LogLevel(`err`)
	INFO    = LogLevel(`info`)
	NOTICE  = LogLevel(`notice`)
	WARNING = LogLevel(`warning`)
)

var LogLevels = []LogLevel{ALERT, CRIT, DEBUG, EMERG, ERR, INFO, NOTICE, WARNING}

// ParseLogLevel returns the LogLevel with the given name
func ParseLogLevel(name string) (LogLevel, bool) {
	for _, l := range LogLevels {
		if string(l) == name {
			return l, true
		}
	}
	return ``, false
}
