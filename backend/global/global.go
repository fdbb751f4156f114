package global

import "github.com/rs/zerolog"

// Logger is replaced by initialize at process start.
var Logger = zerolog.Nop()
