package flat

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/strollnet/paceline/types/detection"
)

// TimestampLayout is the detection-log timestamp format, millisecond
// precision.
const TimestampLayout = "2006-01-02 15:04:05.000"

var detectionLogHeader = []string{
	"Timestamp", "Walker_ID", "Hashed_ID", "Detector_ID", "Sequence_Number",
}

var annotatedLogHeader = append(detectionLogHeader[:len(detectionLogHeader):len(detectionLogHeader)],
	"Is_Judged", "Cluster_ID")

// WriteDetectionLog writes records as a detection-log CSV.
func WriteDetectionLog(path string, records []*detection.Record) error {
	return writeLog(path, records, false)
}

// WriteAnnotatedLog writes records with their judged/cluster annotations,
// the residual artifact downstream diagnostics read.
func WriteAnnotatedLog(path string, records []*detection.Record) error {
	return writeLog(path, records, true)
}

func writeLog(path string, records []*detection.Record, annotated bool) error {
	w, err := NewWriter(path)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)

	header := detectionLogHeader
	if annotated {
		header = annotatedLogHeader
	}
	if err := cw.Write(header); err != nil {
		_ = w.Close()
		return err
	}
	for _, r := range records {
		row := []string{
			r.Time.Format(TimestampLayout),
			r.WalkerID,
			r.GroupKey,
			r.DetectorID,
			strconv.Itoa(r.Seq),
		}
		if annotated {
			row = append(row, strconv.FormatBool(r.Judged), r.ClusterID)
		}
		if err := cw.Write(row); err != nil {
			_ = w.Close()
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// ReadDetectionLog reads a detection-log CSV, plain or annotated.
func ReadDetectionLog(path string) ([]*detection.Record, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	cr := csv.NewReader(rc)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read detection log %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	records := make([]*detection.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) < len(detectionLogHeader) {
			return nil, fmt.Errorf("detection log %s: row %d has %d fields", path, i+2, len(row))
		}
		t, err := time.Parse(TimestampLayout, row[0])
		if err != nil {
			return nil, fmt.Errorf("detection log %s: row %d: %w", path, i+2, err)
		}
		seq, err := strconv.Atoi(row[4])
		if err != nil {
			return nil, fmt.Errorf("detection log %s: row %d: %w", path, i+2, err)
		}
		rec := &detection.Record{
			Time:       t,
			WalkerID:   row[1],
			GroupKey:   row[2],
			DetectorID: row[3],
			Seq:        seq,
		}
		if len(row) >= len(annotatedLogHeader) {
			rec.Judged, _ = strconv.ParseBool(row[5])
			rec.ClusterID = row[6]
		}
		records = append(records, rec)
	}
	detection.SortByTime(records)
	return records, nil
}
