// Package logger provides structured logging for mrq using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields. The Nop logger is the
// library default, so mrq is silent unless a caller opts in:
//
//	log := logger.NewFromEnv("mrq")
//	resp, err := mrq.Get(url).WithLogger(log).Send()
package logger
