package envflags

import "errors"

var (
	ErrParseConfig = errors.New("envflags: failed to parse environment config")
	ErrLoadDotenv  = errors.New("envflags: failed to load dotenv file")
)
