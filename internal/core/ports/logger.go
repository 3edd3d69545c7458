package ports

import "io"

// Logger is the ambient logging port every layer above adapters uses.
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(err error)
	SetOutput(w io.Writer)
	SetJSON(enable bool)
}
