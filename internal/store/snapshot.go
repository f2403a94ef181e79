package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"BitcoinTracker/internal/model"
)

var snapshotTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ReadSnapshotCSV loads a CSV snapshot with a Timestamp and Price_USD header.
// A Currency column is optional and defaults to USD.
func ReadSnapshotCSV(path string) ([]model.PriceSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()
	return ParseSnapshotCSV(f)
}

// ParseSnapshotCSV is ReadSnapshotCSV over an arbitrary reader.
func ParseSnapshotCSV(r io.Reader) ([]model.PriceSample, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("snapshot: empty file")
		}
		return nil, fmt.Errorf("snapshot header: %w", err)
	}
	tsCol, priceCol, curCol := -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "timestamp":
			tsCol = i
		case "price_usd":
			priceCol = i
		case "currency":
			curCol = i
		}
	}
	if tsCol < 0 || priceCol < 0 {
		return nil, fmt.Errorf("snapshot: header %v must name Timestamp and Price_USD", header)
	}

	var samples []model.PriceSample
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("snapshot line %d: %w", line, err)
		}
		ts, err := parseSnapshotTime(rec[tsCol])
		if err != nil {
			return nil, fmt.Errorf("snapshot line %d: %w", line, err)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(rec[priceCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("snapshot line %d: price: %w", line, err)
		}
		s := model.PriceSample{Timestamp: ts, PriceUSD: price, Currency: model.CurrencyUSD}
		if curCol >= 0 && rec[curCol] != "" {
			s.Currency = rec[curCol]
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func parseSnapshotTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range snapshotTimeLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", v)
}
