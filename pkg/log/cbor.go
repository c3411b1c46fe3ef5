package log

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Decoding limits. Events are flat records, so anything deeper or wider
// than this is a corrupt or foreign file.
const (
	maxNestedLevels  = 8
	maxArrayElements = 256
	maxMapPairs      = 64
)

// Log files use canonical encoding with RFC 3339 nanosecond timestamps so
// that identical events always produce identical bytes.
var (
	logEncMode = mustEncMode(cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	})

	logDecMode = mustDecMode(cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyQuiet,
		IndefLength:      cbor.IndefLengthAllowed,
		MaxNestedLevels:  maxNestedLevels,
		MaxArrayElements: maxArrayElements,
		MaxMapPairs:      maxMapPairs,
	})
)

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	em, err := opts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("log: invalid CBOR encoder options: %v", err))
	}
	return em
}

func mustDecMode(opts cbor.DecOptions) cbor.DecMode {
	dm, err := opts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("log: invalid CBOR decoder options: %v", err))
	}
	return dm
}

// EncodeEvent encodes an Event with integer map keys.
func EncodeEvent(event Event) ([]byte, error) {
	return logEncMode.Marshal(event)
}

// DecodeEvent decodes a single Event.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	err := logDecMode.Unmarshal(data, &event)
	return event, err
}

// NewEncoder returns a streaming event encoder writing to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return logEncMode.NewEncoder(w)
}

// NewDecoder returns a streaming event decoder reading from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return logDecMode.NewDecoder(r)
}
