package display

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gnomegl/commitmonth/internal/models"
)

var csvHeader = []string{"date", "repo", "branch", "message", "commit url"}

// CSVWriter streams commit records to a CSV report. Every row is flushed as
// it is written, so a run that fails part way leaves the rows it had.
type CSVWriter struct {
	w      *csv.Writer
	closer io.Closer
	rows   int
}

// CreateCSV truncates or creates path and writes the header row.
func CreateCSV(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	cw, err := NewCSVWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	cw.closer = f
	return cw, nil
}

func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := &CSVWriter{w: csv.NewWriter(w)}
	if err := cw.write(csvHeader); err != nil {
		return nil, fmt.Errorf("error writing CSV header: %w", err)
	}
	return cw, nil
}

func (c *CSVWriter) Write(rec models.CommitRecord) error {
	if err := c.write(rec.CSVRow()); err != nil {
		return fmt.Errorf("error writing CSV row for %s: %w", rec.URL, err)
	}
	c.rows++
	return nil
}

func (c *CSVWriter) write(row []string) error {
	if err := c.w.Write(row); err != nil {
		return err
	}
	c.w.Flush()
	return c.w.Error()
}

// Rows is the number of records written, header excluded.
func (c *CSVWriter) Rows() int {
	return c.rows
}

func (c *CSVWriter) Close() error {
	c.w.Flush()
	err := c.w.Error()
	if c.closer != nil {
		if cerr := c.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
