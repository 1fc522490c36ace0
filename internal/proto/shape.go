package proto

import "fmt"

// Shape declares how the data lines of a response are interpreted.
// Every request carries exactly one shape; the shape never changes
// while a response is in flight.
type Shape int

const (
	// Raw appends each data line verbatim.
	Raw Shape = iota

	// KeyValuePairs splits each line on the first ": " and appends the
	// field and the value as two consecutive entries.
	KeyValuePairs

	// SingleFieldStripped splits each line on the first ": " and keeps
	// only the value.
	SingleFieldStripped

	// StructuredRecords groups lines into records: a record-start field
	// (file, directory, playlist) opens a new record, every other field
	// is set on the record currently open.
	StructuredRecords
)

// String returns the shape name for logging.
func (s Shape) String() string {
	switch s {
	case Raw:
		return "raw"
	case KeyValuePairs:
		return "key_value_pairs"
	case SingleFieldStripped:
		return "single_field_stripped"
	case StructuredRecords:
		return "structured_records"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// Record is one structured entity parsed from a response, keyed by
// canonical field name.
type Record map[string]string

// recordStartFields are the canonical field names that open a new
// record in StructuredRecords mode. These match the entity types the
// MPD database protocol interleaves in listings.
var recordStartFields = map[string]bool{
	"file":      true,
	"directory": true,
	"playlist":  true,
}

// Accumulator collects the data lines of one in-flight response under a
// fixed shape. It is not safe for concurrent use; the session feeds it
// from a single goroutine.
type Accumulator struct {
	shape   Shape
	values  []string
	records []Record

	// current indexes the open record in records, -1 when none. Kept as
	// an index rather than a pointer so records stays append-only.
	current int
}

// NewAccumulator returns an empty accumulator for the given shape.
func NewAccumulator(shape Shape) *Accumulator {
	return &Accumulator{shape: shape, current: -1}
}

// Shape returns the shape this accumulator was built for.
func (a *Accumulator) Shape() Shape { return a.shape }

// Add folds one data line into the accumulator under its shape.
//
// Lines without a ": " separator are tolerated: the whole line is
// treated as the field name with an empty value. MPD does not emit such
// lines for the commands this client issues, but a lenient reader keeps
// one malformed line from wedging the whole response.
func (a *Accumulator) Add(raw string) {
	switch a.shape {
	case Raw:
		a.values = append(a.values, raw)

	case KeyValuePairs:
		field, value, _ := SplitField(raw)
		a.values = append(a.values, field, value)

	case SingleFieldStripped:
		_, value, _ := SplitField(raw)
		a.values = append(a.values, value)

	case StructuredRecords:
		field, value, _ := SplitField(raw)
		field = CanonicalField(field)
		if recordStartFields[field] {
			a.records = append(a.records, Record{field: value})
			a.current = len(a.records) - 1
			return
		}
		if a.current < 0 {
			// Field arrived before any record-start field. The server
			// should not do this; tolerate it by opening an empty
			// record rather than dropping the field.
			a.records = append(a.records, Record{})
			a.current = 0
		}
		a.records[a.current][field] = value
	}
}

// Values returns the accumulated flat values. Meaningful for every
// shape except StructuredRecords.
func (a *Accumulator) Values() []string { return a.values }

// Records returns the accumulated records. Meaningful only for
// StructuredRecords.
func (a *Accumulator) Records() []Record { return a.records }

// Len reports how many entries have been accumulated.
func (a *Accumulator) Len() int {
	if a.shape == StructuredRecords {
		return len(a.records)
	}
	return len(a.values)
}
