package planner

import (
	"fmt"
	"testing"
	"time"
)

func blockAt(id string, start time.Time, duration time.Duration) TimeBlockView {
	return TimeBlockView{
		ID:        id,
		Title:     "Block " + id,
		StartTime: start,
		EndTime:   start.Add(duration),
	}
}

func TestAggregateBlocksOrdering(t *testing.T) {
	base := time.Date(2023, 6, 15, 9, 0, 0, 0, time.UTC)
	blocks := []TimeBlockView{
		blockAt("c", base.Add(2*time.Hour), time.Hour),
		blockAt("a", base, time.Hour),
		blockAt("b", base.Add(time.Hour), time.Hour),
	}

	got := aggregateBlocks(blocks)

	if len(got) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(got))
	}
	for i, id := range []string{"a", "b", "c"} {
		if got[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
	// Input must not be reordered in place.
	if blocks[0].ID != "c" {
		t.Errorf("input slice was mutated")
	}
}

func TestPaginateBlocks(t *testing.T) {
	base := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	blocks := make([]TimeBlockView, 0, 250)
	for i := 0; i < 250; i++ {
		blocks = append(blocks, blockAt(fmt.Sprintf("blk-%03d", i), base.Add(time.Duration(i)*time.Hour), 30*time.Minute))
	}

	tests := []struct {
		name               string
		page               int
		pageSize           int
		expectedItems      int
		expectedPage       int
		expectedTotalPages int
	}{
		{
			name: "first page full",
			page: 1, pageSize: 100,
			expectedItems: 100, expectedPage: 1, expectedTotalPages: 3,
		},
		{
			name: "last page partial",
			page: 3, pageSize: 100,
			expectedItems: 50, expectedPage: 3, expectedTotalPages: 3,
		},
		{
			name: "page past the end is empty, not an error",
			page: 9, pageSize: 100,
			expectedItems: 0, expectedPage: 9, expectedTotalPages: 3,
		},
		{
			name: "page below one clamps to first",
			page: 0, pageSize: 100,
			expectedItems: 100, expectedPage: 1, expectedTotalPages: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, info := paginateBlocks(blocks, tt.page, tt.pageSize)

			if len(items) != tt.expectedItems {
				t.Errorf("expected %d items, got %d", tt.expectedItems, len(items))
			}
			if info.Total != 250 {
				t.Errorf("expected total 250, got %d", info.Total)
			}
			if info.Page != tt.expectedPage {
				t.Errorf("expected page %d, got %d", tt.expectedPage, info.Page)
			}
			if info.TotalPages != tt.expectedTotalPages {
				t.Errorf("expected %d total pages, got %d", tt.expectedTotalPages, info.TotalPages)
			}
		})
	}
}

func TestPaginateBlocksPreservesOrdering(t *testing.T) {
	base := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	blocks := []TimeBlockView{
		blockAt("late", base.Add(48*time.Hour), time.Hour),
		blockAt("early", base, time.Hour),
		blockAt("middle", base.Add(24*time.Hour), time.Hour),
	}

	items, _ := paginateBlocks(blocks, 1, 2)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "early" || items[1].ID != "middle" {
		t.Errorf("expected [early middle], got [%s %s]", items[0].ID, items[1].ID)
	}
}
