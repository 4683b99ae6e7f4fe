package main

import (
	"os"
	"path/filepath"
	"testing"

	domain "optionsdesk/internal/domain/entity/underlyings"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "underlyings.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadUnderlyings(t *testing.T) {
	path := writeFile(t, `{"underlyings":[
		{"symbol":" nifty ","kind":"INDEX"},
		{"symbol":"NIFTY","exchange":"nse","kind":"index"},
		{"symbol":"SBIN","exchange":"BSE","kind":"equity","active":false}
	]}`)

	list, err := readUnderlyings(path)
	if err != nil {
		t.Fatalf("readUnderlyings: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2 (duplicate dropped)", len(list))
	}
	if list[0].ScanTicker() != "NSE:NIFTY" || list[0].Kind != domain.KindIndex || !list[0].Active {
		t.Errorf("first = %+v", list[0])
	}
	if list[1].ScanTicker() != "BSE:SBIN" || list[1].Active {
		t.Errorf("second = %+v", list[1])
	}
}

func TestReadUnderlyingsErrors(t *testing.T) {
	tests := map[string]string{
		"bad kind":     `{"underlyings":[{"symbol":"X","kind":"bond"}]}`,
		"empty symbol": `{"underlyings":[{"symbol":" ","kind":"index"}]}`,
		"empty list":   `{"underlyings":[]}`,
		"not json":     `[`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := readUnderlyings(writeFile(t, body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestBundledUnderlyingsFile(t *testing.T) {
	list, err := readUnderlyings("underlyings.json")
	if err != nil {
		t.Fatalf("readUnderlyings: %v", err)
	}
	if len(list) == 0 {
		t.Fatal("bundled list is empty")
	}
}
