package storage

import (
	"fmt"
	"sort"
	"strings"
)

// Words returns the word pool for a theme, in insertion order.
// An unknown theme yields an empty pool.
func (s *Store) Words(theme string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT word FROM words WHERE theme = ? ORDER BY id`,
		theme,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query words: %w", err)
	}
	defer rows.Close()

	words := []string{}
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("storage: cannot scan word: %w", err)
		}
		words = append(words, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return words, nil
}

// AddWords adds words to a theme. Blank words and words already in the
// theme are skipped. Returns the number of words inserted.
func (s *Store) AddWords(theme string, words []string) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO words (theme, word) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		res, err := stmt.Exec(theme, w)
		if err != nil {
			return 0, fmt.Errorf("storage: cannot insert word %q: %w", w, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			added += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit words: %w", err)
	}
	return added, nil
}

// SeedWords fills themes that have no words yet. Themes that already have
// words are left alone, so seeding twice changes nothing.
func (s *Store) SeedWords(pools map[string][]string) (int, error) {
	themes := make([]string, 0, len(pools))
	for t := range pools {
		themes = append(themes, t)
	}
	sort.Strings(themes)

	total := 0
	for _, theme := range themes {
		var count int
		if err := s.db.QueryRow(`SELECT COUNT(*) FROM words WHERE theme = ?`, theme).Scan(&count); err != nil {
			return total, fmt.Errorf("storage: cannot count words: %w", err)
		}
		if count > 0 {
			continue
		}
		n, err := s.AddWords(theme, pools[theme])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// RemoveWord deletes a word from a theme.
func (s *Store) RemoveWord(theme, word string) error {
	_, err := s.db.Exec(`DELETE FROM words WHERE theme = ? AND word = ?`, theme, word)
	if err != nil {
		return fmt.Errorf("storage: cannot remove word: %w", err)
	}
	return nil
}

// Themes lists every theme that has at least one word, sorted by name.
func (s *Store) Themes() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT theme FROM words ORDER BY theme`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query themes: %w", err)
	}
	defer rows.Close()

	var themes []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("storage: cannot scan theme: %w", err)
		}
		themes = append(themes, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return themes, nil
}
