package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/protocol"
)

var (
	// The counters for error codes
	counters = make(map[counterKey]int64)
	// For this case, mutex is simpler than channels
	mutex = &sync.Mutex{}
)

// AppError encapsulates an error with the http status and the code location
// that raised it, so transaction end logs can isolate the failing handler.
type AppError struct {
	Code   int
	Error  error
	Msg    string
	File   string
	Line   int
	Fields []zap.Field
}

// NewAppError constructs an application error
func NewAppError(code int, err error, msg string, fields ...zap.Field) *AppError {
	_, file, line, _ := runtime.Caller(1)
	return &AppError{
		Code:   code,
		Error:  err,
		Msg:    msg,
		File:   file,
		Line:   line,
		Fields: fields,
	}
}

func countOKResponse(logger *zap.Logger) {
	sendErrorResponseRaw(logger, nil, nil)
}

func sendErrorResponse(logger *zap.Logger, w *http.ResponseWriter, code int, err error, msg string, fields ...zap.Field) {
	_, file, line, _ := runtime.Caller(1)
	sendErrorResponseRaw(logger, w, &AppError{code, err, msg, file, line, fields})
}

func sendAppErrorResponse(logger *zap.Logger, w *http.ResponseWriter, herr *AppError) {
	sendErrorResponseRaw(logger, w, herr)
}

// sendErrorResponseRaw logs the transaction end, bumps the counter keyed by
// code and raise location, and writes the error body when a writer is given.
func sendErrorResponseRaw(logger *zap.Logger, w *http.ResponseWriter, herr *AppError) {
	if herr != nil {
		var herrString string
		if herr.Error != nil {
			herrString = herr.Error.Error()
		}
		var fields []zap.Field
		fields = append(fields, zap.Int("status", herr.Code))
		fields = append(fields, zap.String("message", herr.Msg))
		fields = append(fields, zap.String("err", herrString))
		fields = append(fields, zap.String("file", herr.File))
		fields = append(fields, zap.Int("line", herr.Line))
		fields = append(fields, herr.Fields...)
		if herr.Code < 400 {
			logger.Info("transaction end", fields...)
		} else if herr.Code < 500 {
			logger.Warn("transaction end", fields...)
		} else {
			logger.Error("transaction end", fields...)
		}
		mutex.Lock()
		counters[counterKey{herr.Code, herr.File, herr.Line}]++
		mutex.Unlock()
		if w != nil {
			(*w).Header().Set("Content-Type", "application/json")
			(*w).WriteHeader(herr.Code)
			body, _ := json.MarshalIndent(protocol.ErrorResponse{Error: herr.Msg}, "", "  ")
			(*w).Write(body)
		}
	} else {
		logger.Info("transaction end", zap.Int("status", 200))
		mutex.Lock()
		counters[counterKey{200, "", 0}]++
		mutex.Unlock()
	}
}

// We key counters by code and raise location. file:line isolates exactly which
// code location produced the error.
type counterKey struct {
	Code int
	File string
	Line int
}
