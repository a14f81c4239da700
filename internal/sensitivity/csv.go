package sensitivity

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV writes s in long format: one row per cell with the columns
// growth, required_return and value. Undefined values are left empty.
func WriteCSV(w io.Writer, s Surface) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"growth", "required_return", "value"}); err != nil {
		return err
	}
	for i, y := range s.Returns {
		for j, g := range s.Growth {
			value := ""
			if v, ok := s.At(i, j).Value(); ok {
				value = strconv.FormatFloat(v, 'f', 6, 64)
			}
			rec := []string{
				strconv.FormatFloat(g, 'f', 6, 64),
				strconv.FormatFloat(y, 'f', 6, 64),
				value,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
