package sorter_test

import (
	"testing"
	"time"

	"exifsort/internal/sorter"
)

func TestDestinationResolver_Resolve(t *testing.T) {
	afternoon := time.Date(2023, 6, 15, 14, 30, 5, 0, time.UTC)
	midnight := time.Date(2021, 1, 2, 0, 4, 9, 0, time.UTC)

	tests := []struct {
		name    string
		hours   sorter.HourFormat
		by      sorter.Disambiguator
		taken   time.Time
		size    int64
		ext     string
		ordinal int
		want    string
	}{
		{
			name:  "size disambiguator on 12-hour clock",
			taken: afternoon, size: 921600, ext: ".jpg",
			want: "/out/2023/2023-06-June/2023-06-15/2023-06-15-02-30-05-921600.jpg",
		},
		{
			name:  "24-hour clock",
			hours: sorter.Hour24,
			taken: afternoon, size: 921600, ext: ".jpg",
			want: "/out/2023/2023-06-June/2023-06-15/2023-06-15-14-30-05-921600.jpg",
		},
		{
			name:  "ordinal disambiguator",
			by:    sorter.ByOrdinal,
			taken: afternoon, size: 921600, ext: ".jpg", ordinal: 4512,
			want: "/out/2023/2023-06-June/2023-06-15/2023-06-15-02-30-05-4512.jpg",
		},
		{
			name:  "midnight hour is 12 on 12-hour clock",
			taken: midnight, size: 10, ext: ".nef",
			want: "/out/2021/2021-01-January/2021-01-02/2021-01-02-12-04-09-10.nef",
		},
		{
			name:  "extension case is preserved",
			taken: afternoon, size: 7, ext: ".JPG",
			want: "/out/2023/2023-06-June/2023-06-15/2023-06-15-02-30-05-7.JPG",
		},
		{
			name:  "missing extension",
			taken: afternoon, size: 7, ext: "",
			want: "/out/2023/2023-06-June/2023-06-15/2023-06-15-02-30-05-7",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := sorter.NewDestinationResolver(tt.hours, tt.by)
			got := r.Resolve(tt.taken, tt.size, tt.ext, tt.ordinal).Path("/out")
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDestinationResolver_Deterministic(t *testing.T) {
	r := sorter.NewDestinationResolver(sorter.Hour12, sorter.BySize)
	taken := time.Date(2019, 12, 31, 23, 59, 59, 0, time.UTC)

	first := r.Resolve(taken, 123, ".cr2", 9)
	for i := 0; i < 100; i++ {
		if got := r.Resolve(taken, 123, ".cr2", 9); got != first {
			t.Fatalf("Resolve() call %d = %+v, want %+v", i, got, first)
		}
	}

	if first.Year != "2019" || first.Month != "2019-12-December" || first.Day != "2019-12-31" {
		t.Errorf("directories = %s/%s/%s", first.Year, first.Month, first.Day)
	}
}

func TestParseHourFormat(t *testing.T) {
	for _, in := range []string{"", "12h", "24h"} {
		if _, err := sorter.ParseHourFormat(in); err != nil {
			t.Errorf("ParseHourFormat(%q) error = %v", in, err)
		}
	}
	if _, err := sorter.ParseHourFormat("am/pm"); err == nil {
		t.Error("ParseHourFormat(am/pm) expected error")
	}
}

func TestParseDisambiguator(t *testing.T) {
	got, err := sorter.ParseDisambiguator("")
	if err != nil || got != sorter.BySize {
		t.Errorf("ParseDisambiguator(\"\") = %q, %v; want size", got, err)
	}
	got, err = sorter.ParseDisambiguator("ordinal")
	if err != nil || got != sorter.ByOrdinal {
		t.Errorf("ParseDisambiguator(ordinal) = %q, %v", got, err)
	}
	if _, err := sorter.ParseDisambiguator("random"); err == nil {
		t.Error("ParseDisambiguator(random) expected error")
	}
}

func TestCaptureMetadata_Ordinal(t *testing.T) {
	tests := []struct {
		name string
		meta sorter.CaptureMetadata
		want int
	}{
		{"shutter count wins", sorter.CaptureMetadata{ShutterCount: 5, SequenceNumber: 7}, 5},
		{"sequence when no shutter", sorter.CaptureMetadata{SequenceNumber: 7}, 7},
		{"fallback when neither", sorter.CaptureMetadata{}, 3},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.meta.Ordinal(3); got != tt.want {
				t.Errorf("Ordinal(3) = %d, want %d", got, tt.want)
			}
		})
	}
}
