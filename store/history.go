package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

const maxRecentConcerts = 8

// RecentConcert is a concert the user opened in an earlier session. Entries
// are scoped to the concert file they came from.
type RecentConcert struct {
	ConcertsFile string `json:"concerts_file"`
	ConcertID    string `json:"concert_id"`
	Artist       string `json:"artist"`
}

type concertHistory struct {
	Concerts []RecentConcert `json:"concerts"`
}

// LoadRecentConcerts returns the remembered concerts of one concert file,
// most recent first.
func LoadRecentConcerts(concertsFile string) ([]RecentConcert, error) {
	history, err := loadConcertHistory()
	if err != nil {
		return nil, err
	}
	key := historyKey(concertsFile)
	var out []RecentConcert
	for _, c := range history.Concerts {
		if c.ConcertsFile == key {
			out = append(out, c)
		}
	}
	return out, nil
}

// RememberConcert moves the concert to the front of the history.
func RememberConcert(concertsFile string, concertID string, artist string) error {
	if concertID == "" {
		return errors.New("concert id is required")
	}
	history, _ := loadConcertHistory()
	key := historyKey(concertsFile)
	next := []RecentConcert{{ConcertsFile: key, ConcertID: concertID, Artist: artist}}

	kept := 1
	for _, existing := range history.Concerts {
		if existing.ConcertsFile == key && existing.ConcertID == concertID {
			continue
		}
		if existing.ConcertsFile == key {
			if kept >= maxRecentConcerts {
				continue
			}
			kept++
		}
		next = append(next, existing)
	}
	return saveConcertHistory(concertHistory{Concerts: next})
}

func loadConcertHistory() (concertHistory, error) {
	path, err := configPath("history.json")
	if err != nil {
		return concertHistory{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return concertHistory{}, nil
		}
		return concertHistory{}, err
	}
	var history concertHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return concertHistory{}, errors.New("invalid concert history format")
	}
	return history, nil
}

func saveConcertHistory(history concertHistory) error {
	path, err := configPath("history.json")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func historyKey(concertsFile string) string {
	if abs, err := filepath.Abs(concertsFile); err == nil {
		return abs
	}
	return filepath.Clean(concertsFile)
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "concert-booking-cli", name), nil
}
