package planner

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"sort"
)

// mobileWeekLimit caps week-view payloads for mobile clients. The cap is
// deliberately lossy: ordering is preserved, the tail is dropped.
const mobileWeekLimit = 50

// optimizeForMobile strips the description from each projection for mobile
// clients; everything else passes through intact.
func optimizeForMobile(blocks []TimeBlockView, isMobile bool) []TimeBlockView {
	if !isMobile {
		return blocks
	}
	out := make([]TimeBlockView, len(blocks))
	for i, b := range blocks {
		b.Description = nil
		out[i] = b
	}
	return out
}

// reduceResolution applies the view-specific mobile reductions: month views
// collapse to one "N events" summary per calendar day, week views truncate to
// the first mobileWeekLimit entries. Non-mobile input passes through.
func reduceResolution(blocks []TimeBlockView, viewType ViewType, isMobile bool) []TimeBlockView {
	if !isMobile {
		return blocks
	}

	switch viewType {
	case ViewTypeMonth:
		return summarizeByDay(blocks)
	case ViewTypeWeek:
		if len(blocks) > mobileWeekLimit {
			return blocks[:mobileWeekLimit]
		}
		return blocks
	default:
		return blocks
	}
}

// summarizeByDay merges same-day blocks into a single entry spanning the
// day's earliest start and latest end, titled by the merged count.
func summarizeByDay(blocks []TimeBlockView) []TimeBlockView {
	type daySummary struct {
		entry TimeBlockView
		count int
	}
	buckets := map[string]*daySummary{}
	for _, b := range blocks {
		day := b.StartTime.Format("2006-01-02")
		row, ok := buckets[day]
		if !ok {
			buckets[day] = &daySummary{
				entry: TimeBlockView{
					ID:        day,
					StartTime: b.StartTime,
					EndTime:   b.EndTime,
				},
				count: 1,
			}
			continue
		}
		row.count++
		if b.StartTime.Before(row.entry.StartTime) {
			row.entry.StartTime = b.StartTime
		}
		if b.EndTime.After(row.entry.EndTime) {
			row.entry.EndTime = b.EndTime
		}
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	out := make([]TimeBlockView, 0, len(days))
	for _, day := range days {
		row := buckets[day]
		row.entry.Title = fmt.Sprintf("%d events", row.count)
		out = append(out, row.entry)
	}
	return out
}

// optimizeForLowMemory truncates to maxItems and strips every field except
// id, title, times, color, task reference and task title. Last-resort minimal
// payload for memory-constrained clients.
func optimizeForLowMemory(blocks []TimeBlockView, maxItems int) []TimeBlockView {
	if maxItems < 0 {
		maxItems = 0
	}
	if len(blocks) > maxItems {
		blocks = blocks[:maxItems]
	}
	out := make([]TimeBlockView, len(blocks))
	for i, b := range blocks {
		out[i] = TimeBlockView{
			ID:        b.ID,
			Title:     b.Title,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Color:     b.Color,
			TaskID:    b.TaskID,
			TaskTitle: b.TaskTitle,
		}
	}
	return out
}

// CompressBlocks serializes a block list to gzip-wrapped JSON. Timestamps
// transit in RFC 3339 form and parse back to the identical instant. The
// calendar endpoint serves this form to clients requesting a compressed
// payload; offline consumers restore it with DecompressBlocks.
func CompressBlocks(blocks []TimeBlockView) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if err := json.NewEncoder(zw).Encode(blocks); err != nil {
		return nil, fmt.Errorf("failed to encode blocks: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish compression: %w", err)
	}
	return buf.Bytes(), nil
}

// DecompressBlocks restores a list produced by CompressBlocks.
func DecompressBlocks(data []byte) ([]TimeBlockView, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open compressed blocks: %w", err)
	}
	defer func() {
		_ = zr.Close()
	}()

	blocks := []TimeBlockView{}
	if err := json.NewDecoder(zr).Decode(&blocks); err != nil {
		return nil, fmt.Errorf("failed to decode blocks: %w", err)
	}
	return blocks, nil
}
