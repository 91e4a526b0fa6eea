package rag

import "errors"

// ErrEmptyDocument marks an upload whose extracted text carried no
// meaningful content after cleaning. Handlers map it to a 400, not a 500:
// the file itself is the problem.
var ErrEmptyDocument = errors.New("document contains no meaningful text content")
