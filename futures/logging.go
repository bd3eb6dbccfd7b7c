package futures

import "github.com/sirupsen/logrus"

// logger receives diagnostics that are not part of the value/error channel:
// default-executor lifecycle events and recovered task/continuation panics.
// Library code never logs on the normal value-producing path.
var logger logrus.FieldLogger = logrus.StandardLogger()

// SetLogger overrides the package logger. Passing nil is a no-op.
func SetLogger(l logrus.FieldLogger) {
	if l != nil {
		logger = l
	}
}
