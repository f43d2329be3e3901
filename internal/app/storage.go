package app

import (
	"fmt"
	"io"
	"log"
	"os"
)

// LoadHolidayFile loads the holiday table from a JSON data file
func LoadHolidayFile(filename string) (*HolidayTable, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("Error closing holiday file: %v", err)
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	table, err := ParseHolidays(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filename, err)
	}
	return table, nil
}

// LoadHolidays loads the table from filename, or from the embedded default
// when filename is empty
func LoadHolidays(filename string, embedded []byte) (*HolidayTable, error) {
	if filename == "" {
		table, err := ParseHolidays(embedded)
		if err != nil {
			return nil, fmt.Errorf("failed to load embedded holidays: %w", err)
		}
		return table, nil
	}
	return LoadHolidayFile(filename)
}
