package store

import (
	"io"
	"strings"

	"concert-booking-cli/model"
)

// ParseCustomer reads a "customerId,customerName,password" record.
func ParseCustomer(line string) (model.Customer, error) {
	parts := splitFields(line)
	if len(parts) != 3 {
		return model.Customer{}, malformedLine("customer record needs 3 fields, got %d", len(parts))
	}
	if !isDigits(parts[0]) {
		return model.Customer{}, malformedValue("customer id %q is not numeric", parts[0])
	}
	return model.Customer{ID: parts[0], Name: parts[1], Password: parts[2]}, nil
}

// ReadCustomers parses every customer record of r, returning skipped lines
// separately.
func ReadCustomers(r io.Reader, path string) ([]model.Customer, []error, error) {
	return scanRecords(r, path, ParseCustomer)
}

func FormatCustomer(c model.Customer) string {
	return strings.Join([]string{c.ID, c.Name, c.Password}, ",")
}
