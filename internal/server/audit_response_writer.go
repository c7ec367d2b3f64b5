package server

import (
	"bytes"
	"net/http"
)

// auditBodyLimit bounds how much of a response body is retained for audit;
// order listings can run long and the audit trail only needs the head.
const auditBodyLimit = 4096

type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
	buffer       bytes.Buffer
}

func newResponseWriterWrapper(w http.ResponseWriter) *responseWriterWrapper {
	return &responseWriterWrapper{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriterWrapper) Write(b []byte) (int, error) {
	if remaining := auditBodyLimit - w.buffer.Len(); remaining > 0 {
		if len(b) > remaining {
			w.buffer.Write(b[:remaining])
		} else {
			w.buffer.Write(b)
		}
	}
	w.bytesWritten += len(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriterWrapper) GetStatusCode() int {
	return w.statusCode
}

// GetBody returns the captured response body, truncated at auditBodyLimit.
func (w *responseWriterWrapper) GetBody() []byte {
	return w.buffer.Bytes()
}

// GetBytesWritten returns the full response size, including anything beyond
// the captured prefix.
func (w *responseWriterWrapper) GetBytesWritten() int {
	return w.bytesWritten
}
