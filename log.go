package dnp3

import "github.com/sirupsen/logrus"

var _lg = func() *logrus.Logger {
	lg := logrus.New()
	lg.SetLevel(logrus.InfoLevel)
	return lg
}()

// SetLogger replaces the package logger used for decoded-object emission.
// Passing nil keeps the current logger.
func SetLogger(lg *logrus.Logger) {
	if lg != nil {
		_lg = lg
	}
}
