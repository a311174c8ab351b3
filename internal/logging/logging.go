package logging

import (
	"io"
	"log"
	"os"
	"strings"
)

var (
	Debug = log.New(io.Discard, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	Info  = log.New(os.Stderr, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	Error = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
)

// Setup настраивает уровни логирования. Уровень ERROR глушит INFO, DEBUG включает всё.
func Setup(level string, out io.Writer) {
	if out == nil {
		out = os.Stderr
	}

	Error.SetOutput(out)
	Info.SetOutput(out)
	Debug.SetOutput(io.Discard)

	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		Debug.SetOutput(out)
	case "ERROR":
		Info.SetOutput(io.Discard)
	}
}
