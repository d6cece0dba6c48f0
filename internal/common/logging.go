package common

import (
	"io"
	"log"
)

func InitLogging(out io.Writer) {
	log.SetOutput(out)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}
