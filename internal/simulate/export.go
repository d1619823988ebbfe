package simulate

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/dennisdiepolder/monti/dashboard/internal/loader"
	"github.com/dennisdiepolder/monti/dashboard/internal/types"
)

// ExportOffset is appended to every timestamp, as the export system does
const ExportOffset = "-05:00"

const exportLayout = "2006-01-02T15:04:05"

// WriteCSV writes records in the export layout that loader.Parse reads
func WriteCSV(w io.Writer, records []types.IntervalRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(loader.RequiredColumns); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.Agent,
			r.StartTime.Format(exportLayout) + ExportOffset,
			r.EndTime.Format(exportLayout) + ExportOffset,
			FormatDuration(r.Available),
			FormatDuration(r.Handling),
			FormatDuration(r.WrapUp),
			FormatDuration(r.WorkingOffline),
			FormatDuration(r.OnBreak),
			FormatDuration(r.Busy),
			FormatDuration(r.LoggedIn),
			FormatDuration(r.Offering),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("error writing CSV: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// FormatDuration renders d as HH:MM:SS, truncated to whole seconds
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, secs/3600, secs/60%60, secs%60)
}
