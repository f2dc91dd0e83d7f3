// Package obslog constructs the process-wide zap logger.
package obslog

import "go.uber.org/zap"

// New builds a production (JSON) logger, or a development (console,
// debug-level) logger when dev is true.
func New(dev bool) (*zap.SugaredLogger, error) {
	var l *zap.Logger
	var err error
	if dev {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}
