package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTestFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{
		Customers: writeTestFile(t, dir, "customers.csv", "1,Alice,pw1\n2,Bob,pw2,oops\n3,Carol,pw3\n"),
		Concerts: writeTestFile(t, dir, "concerts.csv",
			"1,2024-10-12,1930,Artist One,MCG,VIP:50.0:60.0:70.0,SEATING:30.0:35.0:40.0,STANDING:10.0:15.0:20.0\n"+
				"2,2024-11-01,2000,Artist Two,Default Hall,STANDING:1.0:2.0:3.0,SEATING:4.0:5.0:6.0,VIP:7.0:8.0:9.5\n"),
		Bookings: writeTestFile(t, dir, "bookings.csv", "1,1,Alice,1,2,1,1,1,VIP,50.0,2,1,2,VIP,50.0\n1,3,Carol,1,1,1,2,9,SEATING,40.0\n"),
		Venues:   []string{writeTestFile(t, dir, "venue_mcg.txt", sampleVenue)},
	}

	catalog, err := Load(paths, discardLogger())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(catalog.Customers) != 2 {
		t.Fatalf("expected malformed customer to be skipped, got %+v", catalog.Customers)
	}
	if len(catalog.Concerts) != 2 || len(catalog.Bookings) != 2 || len(catalog.Venues) != 1 {
		t.Fatalf("unexpected catalog sizes: %d concerts, %d bookings, %d venues", len(catalog.Concerts), len(catalog.Bookings), len(catalog.Venues))
	}

	if err := Save(paths, catalog, discardLogger()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	customers, err := os.ReadFile(paths.Customers)
	if err != nil {
		t.Fatalf("read customers: %v", err)
	}
	if string(customers) != "1,Alice,pw1\n3,Carol,pw3\n" {
		t.Fatalf("unexpected saved customers: %q", customers)
	}
	concerts, err := os.ReadFile(paths.Concerts)
	if err != nil {
		t.Fatalf("read concerts: %v", err)
	}
	wantConcerts := "1,2024-10-12,1930,Artist One,MCG,STANDING:10.0:15.0:20.0,SEATING:30.0:35.0:40.0,VIP:50.0:60.0:70.0\n" +
		"2,2024-11-01,2000,Artist Two,Default Hall,STANDING:1.0:2.0:3.0,SEATING:4.0:5.0:6.0,VIP:7.0:8.0:9.5\n"
	if string(concerts) != wantConcerts {
		t.Fatalf("unexpected saved concerts:\n%s", concerts)
	}

	reloaded, err := Load(paths, discardLogger())
	if err != nil {
		t.Fatalf("expected nil error on reload, got %v", err)
	}
	for i := range catalog.Bookings {
		if FormatBooking(reloaded.Bookings[i]) != FormatBooking(catalog.Bookings[i]) {
			t.Fatalf("booking %d changed across save: %+v vs %+v", i, reloaded.Bookings[i], catalog.Bookings[i])
		}
	}
	for i := range catalog.Concerts {
		if reloaded.Concerts[i] != catalog.Concerts[i] {
			t.Fatalf("concert %d changed across save: %+v vs %+v", i, reloaded.Concerts[i], catalog.Concerts[i])
		}
	}
}

func TestLoad_MissingCustomerFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(Paths{Customers: filepath.Join(dir, "nope.csv")}, discardLogger())
	if !errors.Is(err, ErrMissingCustomers) {
		t.Fatalf("expected ErrMissingCustomers, got %v", err)
	}
}

func TestLoad_MissingOptionalFiles(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{
		Customers: writeTestFile(t, dir, "customers.csv", "1,Alice,pw1\n"),
		Concerts:  filepath.Join(dir, "concerts.csv"),
		Bookings:  filepath.Join(dir, "bookings.csv"),
		Venues:    []string{filepath.Join(dir, "venue_default.txt")},
	}
	catalog, err := Load(paths, discardLogger())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(catalog.Concerts) != 0 || len(catalog.Bookings) != 0 || len(catalog.Venues) != 0 {
		t.Fatalf("expected empty catalog, got %+v", catalog)
	}

	if err := Save(paths, catalog, discardLogger()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if data, err := os.ReadFile(paths.Bookings); err != nil || len(data) != 0 {
		t.Fatalf("expected empty bookings file, got %q (%v)", data, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".csv" {
			t.Fatalf("unexpected leftover file %s", e.Name())
		}
	}
}
