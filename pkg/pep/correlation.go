package pep

import (
	"strconv"
	"sync/atomic"
)

// CorrelationID is the opaque per-call handle linking an in-flight
// evaluation to its registered request context. It is only meaningful
// within one evaluation's lifetime and is never persisted.
type CorrelationID int64

// String serializes the id for transport inside a decision request.
func (c CorrelationID) String() string {
	return strconv.FormatInt(int64(c), 10)
}

// ParseCorrelationID parses a serialized correlation id.
func ParseCorrelationID(s string) (CorrelationID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return CorrelationID(n), nil
}

// correlationSource mints monotonically increasing correlation ids. The
// 63-bit space makes wraparound within any realistic concurrent population
// a non-concern; ids are not unique across process restarts and do not need
// to be.
type correlationSource struct {
	n atomic.Int64
}

// next returns the next correlation id.
func (s *correlationSource) next() CorrelationID {
	return CorrelationID(s.n.Add(1))
}
