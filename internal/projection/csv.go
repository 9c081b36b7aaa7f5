package projection

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// WriteBandsCSV writes the percentile bands of rs to path.
func WriteBandsCSV(path string, rs *ResultSet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteBands(f, rs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteBands writes one row per month: month,p10,median,p90.
func WriteBands(out io.Writer, rs *ResultSet) error {
	if rs == nil {
		return fmt.Errorf("result set is nil")
	}
	w := csv.NewWriter(out)
	if err := w.Write([]string{"month", "p10", "median", "p90"}); err != nil {
		return err
	}
	for m := range rs.MedianPath {
		row := []string{
			strconv.Itoa(m),
			fmtFloat(rs.P10Path[m]),
			fmtFloat(rs.MedianPath[m]),
			fmtFloat(rs.P90Path[m]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
