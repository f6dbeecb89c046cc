package services

import (
	"fmt"
	"reflect"
	"testing"

	"handyhub/backend/models"
)

func makeRecords(n int) []models.Record {
	records := make([]models.Record, n)
	for i := range records {
		records[i] = models.Record{"id": fmt.Sprintf("r%02d", i+1)}
	}
	return records
}

func TestPaginateTwelveRecordsPageSizeFive(t *testing.T) {
	records := makeRecords(12)

	page1 := Paginate(records, 5, 1)
	if page1.PageCount != 3 {
		t.Errorf("Expected 3 pages, got %d", page1.PageCount)
	}
	if len(page1.Records) != 5 || page1.Records[0].ID() != "r01" || page1.Records[4].ID() != "r05" {
		t.Errorf("Page 1 should hold records 1-5, got %v", page1.Records)
	}

	page3 := Paginate(records, 5, 3)
	if len(page3.Records) != 2 || page3.Records[0].ID() != "r11" || page3.Records[1].ID() != "r12" {
		t.Errorf("Page 3 should hold records 11-12, got %v", page3.Records)
	}
}

func TestPaginateCoverage(t *testing.T) {
	for _, pageSize := range []int{1, 3, 5, 12, 20} {
		records := makeRecords(12)
		first := Paginate(records, pageSize, 1)

		var rebuilt []models.Record
		for p := 1; p <= first.PageCount; p++ {
			rebuilt = append(rebuilt, Paginate(records, pageSize, p).Records...)
		}

		if !reflect.DeepEqual(rebuilt, records) {
			t.Errorf("pageSize %d: concatenated pages do not reconstruct the input", pageSize)
		}
	}
}

func TestPaginateClamping(t *testing.T) {
	records := makeRecords(12)

	for _, pageNumber := range []int{-3, 0, 1, 3, 4, 99} {
		page := Paginate(records, 5, pageNumber)
		if page.Number < 1 || page.Number > page.PageCount {
			t.Errorf("Page number %d clamped to %d, outside [1, %d]", pageNumber, page.Number, page.PageCount)
		}
	}

	if got := Paginate(records, 5, 99).Number; got != 3 {
		t.Errorf("Expected page 99 clamped to 3, got %d", got)
	}
	if got := Paginate(records, 5, 0).Number; got != 1 {
		t.Errorf("Expected page 0 clamped to 1, got %d", got)
	}
}

func TestPaginateEmptyCollection(t *testing.T) {
	page := Paginate(nil, 5, 1)
	if page.PageCount != 0 {
		t.Errorf("Expected PageCount 0 for empty input, got %d", page.PageCount)
	}
	if len(page.Records) != 0 {
		t.Errorf("Expected no records, got %d", len(page.Records))
	}
	if page.Number != 1 {
		t.Errorf("Expected clamped page 1, got %d", page.Number)
	}
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		pageCount int
		current   int
		want      []int
	}{
		{0, 1, nil},
		{1, 1, []int{1}},
		{5, 3, []int{1, 2, 3, 4, 5}},
		{10, 1, []int{1, 2, 3, Ellipsis, 10}},
		{10, 5, []int{1, Ellipsis, 3, 4, 5, 6, 7, Ellipsis, 10}},
		{10, 10, []int{1, Ellipsis, 8, 9, 10}},
		{10, 99, []int{1, Ellipsis, 8, 9, 10}}, // out of range clamps
	}

	for _, tt := range tests {
		got := PageWindow(tt.pageCount, tt.current)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("PageWindow(%d, %d) = %v, want %v", tt.pageCount, tt.current, got, tt.want)
		}
	}
}
