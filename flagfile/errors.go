package flagfile

import "errors"

var (
	ErrReadFlagFile  = errors.New("flagfile: failed to read flag file")
	ErrParseFlagFile = errors.New("flagfile: failed to parse flag file")
)
