package services

import (
	"log"
	"sync/atomic"
)

var debugMode atomic.Bool

func SetDebug(enable bool) {
	debugMode.Store(enable)
}

func DebugEnabled() bool {
	return debugMode.Load()
}

func debugf(format string, v ...interface{}) {
	if debugMode.Load() {
		log.Printf("[DEBUG] "+format, v...)
	}
}
