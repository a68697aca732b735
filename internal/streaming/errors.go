package streaming

import "errors"

var (
	errMissingChunk = errors.New("streaming: chunk not resident")
	errPanic        = errors.New("streaming: worker panic")
)
