package common

import "fmt"

type LogLevel int32

const (
	DEBUG_INFO_DETAIL     LogLevel = 1
	DEBUG_INFO            LogLevel = 2
	CACHE_OUT_IN_INFO     LogLevel = 4
	BUFFER_INTERNAL_STATE LogLevel = 8
	DEBUGGING             LogLevel = 16
	INFO                  LogLevel = 32
	WARN                  LogLevel = 64
	ERROR                 LogLevel = 128
	FATAL                 LogLevel = 256
)

func ShPrintf(logLevel LogLevel, fmtStl string, a ...interface{}) {
	if logLevel&LogLevelSetting > 0 {
		fmt.Printf(fmtStl, a...)
	}
}

func IsLogLevelActive(logLevel LogLevel) bool {
	return logLevel&LogLevelSetting > 0
}
