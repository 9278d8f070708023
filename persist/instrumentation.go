package persist

import (
	"math"
	"time"
)

const (
	logMsgLoaded       = "persisted value loaded"
	logMsgSaved        = "persisted value saved"
	logMsgDeleted      = "persisted value deleted"
	logMsgLoadFailed   = "loading persisted value failed"
	logMsgSaveFailed   = "saving persisted value failed"
	logMsgDeleteFailed = "deleting persisted value failed"
	logAttrKey         = "key"
	logAttrError       = "error"
	logAttrDurationMS  = "duration_ms"
)

func (c *Cell[T]) logDebug(msg string, start time.Time) {
	if c.logger == nil {
		return
	}

	duration := time.Since(start)
	c.logger.Debug(msg, logAttrKey, c.key, logAttrDurationMS, math.Round(float64(duration.Nanoseconds())/1e3)/1e3)
}

func (c *Cell[T]) logError(msg string, err error) {
	if c.logger == nil {
		return
	}

	c.logger.Error(msg, logAttrKey, c.key, logAttrError, err.Error())
}
