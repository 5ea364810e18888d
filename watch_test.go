package main

import "testing"

func TestIsImageFile(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"struk.png", true},
		{"STRUK.JPG", true},
		{"belanja.jpeg", true},
		{"nota.webp", true},
		{"scan.gif", true},
		{"receipt.ocr.png", true},
		{"catatan.txt", false},
		{"backup.json", false},
		{"struk.png.part", false},
	}
	for _, tc := range cases {
		if got := isImageFile(tc.name); got != tc.want {
			t.Errorf("isImageFile(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
