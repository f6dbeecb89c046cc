package models

// Column describes one projected table column: a header plus either a field
// name or an accessor function. When Func is set it wins over Field.
type Column struct {
	Header string
	Field  string
	Func   func(record Record, rowIndex int) string
}

// Value resolves the column's cell for a record. Missing values render as
// the empty string.
func (c Column) Value(record Record, rowIndex int) string {
	if c.Func != nil {
		return c.Func(record, rowIndex)
	}
	return record.String(c.Field)
}
