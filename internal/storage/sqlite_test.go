package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save some scores
	_, err = store.SaveScore("wordfall", 100)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("wordfall", 50)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("wordfall", 200)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Different game
	_, err = store.SaveScore("sprint", 500)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Retrieve top scores for wordfall
	scores, err := store.TopScores("wordfall", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 {
		t.Errorf("Expected highest score to be 200, got %d", scores[0].Score)
	}
	if scores[1].Score != 100 {
		t.Errorf("Expected second score to be 100, got %d", scores[1].Score)
	}
	if scores[2].Score != 50 {
		t.Errorf("Expected third score to be 50, got %d", scores[2].Score)
	}

	// Retrieve top scores for sprint
	sprintScores, err := store.TopScores("sprint", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(sprintScores) != 1 {
		t.Errorf("Expected 1 sprint score, got %d", len(sprintScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save 5 scores
	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No scores yet
	high, err := store.HighScore("wordfall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	// Add scores
	store.SaveScore("wordfall", 100)
	store.SaveScore("wordfall", 300)
	store.SaveScore("wordfall", 200)

	high, err = store.HighScore("wordfall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveScore("wordfall", 100)
	store.SaveScore("wordfall", 200)
	store.SaveScore("sprint", 300)

	// Clear only wordfall scores
	err = store.ClearScores("wordfall")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	// Wordfall should be empty
	wordfallScores, _ := store.TopScores("wordfall", 10)
	if len(wordfallScores) != 0 {
		t.Errorf("Expected 0 wordfall scores after clear, got %d", len(wordfallScores))
	}

	// Sprint should still have scores
	sprintScores, _ := store.TopScores("sprint", 10)
	if len(sprintScores) != 1 {
		t.Errorf("Sprint scores should not be affected by clearing wordfall")
	}
}

func TestStoreAllScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Add many scores
	for i := 0; i < 20; i++ {
		store.SaveScore("test", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Test that ~ expansion works (we won't actually write to home)
	// Just verify the function doesn't crash
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSaveResult(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveResult(Result{GameID: "wordfall", Player: "ann", Score: 120, Difficulty: "Hard", Theme: "Anime", CorrectWords: 9})
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	store.SaveResult(Result{GameID: "wordfall", Player: "bob", Score: 80, Difficulty: "Easy", Theme: "History", CorrectWords: 4})

	scores, err := store.TopScores("wordfall", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("Expected 2 scores, got %d", len(scores))
	}
	top := scores[0]
	if top.Player != "ann" || top.Difficulty != "Hard" || top.Theme != "Anime" || top.CorrectWords != 9 {
		t.Errorf("Unexpected top entry: %+v", top)
	}
	if top.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	hard, err := store.TopScoresFor("wordfall", "Easy", 10)
	if err != nil {
		t.Fatalf("TopScoresFor() failed: %v", err)
	}
	if len(hard) != 1 || hard[0].Player != "bob" {
		t.Errorf("Difficulty filter returned %+v", hard)
	}
}

func TestStoreNegativeScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("wordfall", -30)
	store.SaveScore("wordfall", -10)

	high, err := store.HighScore("wordfall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != -10 {
		t.Errorf("Expected high score of -10, got %d", high)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult(Result{GameID: "wordfall", Score: 100, CorrectWords: 5})
	store.SaveResult(Result{GameID: "wordfall", Score: 50, CorrectWords: 2})
	store.SaveScore("sprint", 10)

	stats, err := store.GetGameStats("wordfall")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 100 || stats.TotalScore != 150 || stats.CorrectWords != 7 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 75 {
		t.Errorf("Expected average 75, got %v", stats.AvgScore)
	}

	empty, err := store.GetGameStats("nothing")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Unexpected stats for unplayed game: %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["sprint"].HighScore != 10 {
		t.Errorf("Unexpected all stats: %+v", all)
	}
}

func TestStoreWords(t *testing.T) {
	store := openTestStore(t)

	n, err := store.AddWords("History", []string{"empire", "treaty", " ", "empire"})
	if err != nil {
		t.Fatalf("AddWords() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 words added, got %d", n)
	}

	words, err := store.Words("History")
	if err != nil {
		t.Fatalf("Words() failed: %v", err)
	}
	if len(words) != 2 || words[0] != "empire" || words[1] != "treaty" {
		t.Errorf("Words() = %v", words)
	}

	none, err := store.Words("Unknown")
	if err != nil {
		t.Fatalf("Words() failed: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("Unknown theme should give an empty pool, got %v", none)
	}

	if err := store.RemoveWord("History", "empire"); err != nil {
		t.Fatalf("RemoveWord() failed: %v", err)
	}
	words, _ = store.Words("History")
	if len(words) != 1 {
		t.Errorf("Expected 1 word after removal, got %v", words)
	}
}

func TestStoreSeedWordsIsIdempotent(t *testing.T) {
	store := openTestStore(t)

	pools := map[string][]string{
		"Fillers": {"the", "and"},
		"Anime":   {"mecha"},
	}
	n, err := store.SeedWords(pools)
	if err != nil {
		t.Fatalf("SeedWords() failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Expected 3 seeded words, got %d", n)
	}

	// A theme with words is not reseeded, even with a different pool.
	pools["Anime"] = []string{"isekai"}
	n, err = store.SeedWords(pools)
	if err != nil {
		t.Fatalf("SeedWords() failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Second seed added %d words", n)
	}

	themes, err := store.Themes()
	if err != nil {
		t.Fatalf("Themes() failed: %v", err)
	}
	if len(themes) != 2 || themes[0] != "Anime" || themes[1] != "Fillers" {
		t.Errorf("Themes() = %v", themes)
	}
}
