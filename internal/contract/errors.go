package contract

import (
	"errors"

	"github.com/fermata-energy/fermata/schema"
)

// Sentinel errors for per-building failures. Wrap them with fmt.Errorf("...: %w").
var (
	ErrMissingSource      = errors.New("missing source file")
	ErrMissingColumn      = errors.New("missing required column")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	ErrEmptyMerge         = errors.New("merge produced no rows")
	ErrOutput             = errors.New("failed to write output")
)

// Classify maps a per-building error onto the status and kind recorded for it.
// A nil error is ok.
func Classify(err error) (schema.BuildingStatus, schema.ErrorKind) {
	switch {
	case err == nil:
		return schema.OKStatus, schema.NoErrorKind
	case errors.Is(err, ErrMissingSource):
		return schema.SkippedStatus, schema.MissingSourceKind
	case errors.Is(err, ErrMissingColumn):
		return schema.FailedStatus, schema.MissingColumnKind
	case errors.Is(err, ErrMalformedTimestamp):
		return schema.EmptyStatus, schema.MalformedTimestampKind
	case errors.Is(err, ErrEmptyMerge):
		return schema.EmptyStatus, schema.EmptyMergeKind
	case errors.Is(err, ErrOutput):
		return schema.FailedStatus, schema.OutputKind
	default:
		return schema.FailedStatus, schema.UnknownKind
	}
}
