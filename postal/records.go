package postal

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"operation-history/internal/common"
	"operation-history/primitive"
)

var ErrOperDate = errors.New("malformed operation date")

// Latest returns the most recent record. The service lists records oldest first.
func (d OperationHistoryData) Latest() (OperationHistoryRecord, bool) {
	return common.Last(d.HistoryRecord)
}

// ByOperation returns the records whose operation type is labelled operType, in order.
func (d OperationHistoryData) ByOperation(operType string) []OperationHistoryRecord {
	var out []OperationHistoryRecord

	for _, r := range d.HistoryRecord {
		if r.OperationParameters.OperType.Name == operType {
			out = append(out, r)
		}
	}

	return out
}

// IsDelivered reports whether the item was handed over to its recipient.
func (d OperationHistoryData) IsDelivered() bool {
	return !common.IsEmpty(d.ByOperation(OperationDelivery))
}

// AwaitsPickup reports whether the latest record says the item arrived at its delivery point.
func (d OperationHistoryData) AwaitsPickup() bool {
	last, ok := d.Latest()
	return ok && last.OperationParameters.OperAttr.Name == OperationAttrDelivered
}

var timeType = reflect.TypeFor[time.Time]()

// OperTime parses OperDate. An empty date is the zero time.
func (p OperationParameters) OperTime() (time.Time, error) {
	v, exact, err := primitive.Coerce(p.OperDate, timeType, primitive.CategoryDatetime)
	if err != nil {
		return time.Time{}, err
	}

	if !exact {
		return time.Time{}, fmt.Errorf("%w: %q", ErrOperDate, p.OperDate)
	}

	return v.Interface().(time.Time), nil
}
