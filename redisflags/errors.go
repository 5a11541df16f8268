package redisflags

import "errors"

var (
	ErrParseConnString = errors.New("redisflags: failed to parse redis connection string")
	ErrNotReady        = errors.New("redisflags: redis did not become ready within the given time period")
)
