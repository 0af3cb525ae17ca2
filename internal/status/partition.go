package status

import "math"

// bandShare is the fraction of rows given to each of the PENDING and CLOSED
// bands. The product is floored as a float; n/3 yields different band sizes.
const bandShare = 0.33

// Bands returns the sizes of the PENDING and CLOSED bands for n rows. The
// OPEN band takes the remaining n-pending-closed rows.
func Bands(n int) (pending, closed int) {
	pending = int(math.Floor(float64(n) * bandShare))
	closed = int(math.Floor(float64(n) * bandShare))
	return pending, closed
}

// Partition overwrites the status cell of every row by position: the first
// band is PENDING, the second CLOSED and the rest OPEN. A document without
// column is returned as an unchanged copy.
func Partition(d *Document, column string) *Document {
	out := d.Clone()
	col := out.Column(column)
	if col < 0 {
		return out
	}
	pending, closed := Bands(out.Len())
	for i, r := range out.Rows {
		switch {
		case i < pending:
			r[col] = string(Pending)
		case i < pending+closed:
			r[col] = string(Closed)
		default:
			r[col] = string(Open)
		}
	}
	return out
}
