package helpers

import (
	"testing"
	"time"

	"github.com/Zero-for-One/TatiBot/models"
)

func TestExportGuildData(t *testing.T) {
	SetDataDir(t.TempDir())
	guildID := "300"

	_, err := AddGame(guildID, models.Game{Name: "Mario Kart", MinPlayers: 2, MaxPlayers: 8})
	if err != nil {
		t.Fatalf("AddGame() failed: %v", err)
	}
	if err = SetRating(guildID, "1", "alice", "mario kart", 5); err != nil {
		t.Fatalf("SetRating() failed: %v", err)
	}
	if _, err = AddSchedule(guildID, time.Now().Add(24*time.Hour), "kart night"); err != nil {
		t.Fatalf("AddSchedule() failed: %v", err)
	}

	bundle, err := ExportGuildData(guildID)
	if err != nil {
		t.Fatalf("ExportGuildData() failed: %v", err)
	}

	if bundle.GuildID != guildID {
		t.Fatalf("bundle guild id = %q, want %q", bundle.GuildID, guildID)
	}
	if len(bundle.SharedGames) != 1 || len(bundle.GameList) != 1 {
		t.Fatal("bundle misses the game catalog")
	}
	if len(bundle.Votes) != 1 {
		t.Fatal("bundle misses the votes")
	}
	if len(bundle.Schedules) != 1 {
		t.Fatal("bundle misses the schedules")
	}
	if bundle.Config == nil {
		t.Fatal("bundle misses the config")
	}
}

func TestImportOverwriteReplacesEverything(t *testing.T) {
	SetDataDir(t.TempDir())
	guildID := "301"

	if err := SetRating(guildID, "1", "alice", "old game", 2); err != nil {
		t.Fatalf("SetRating() failed: %v", err)
	}

	bundle := models.ExportBundle{
		SharedGames: map[string]models.Game{
			"valheim": {ID: 1, Name: "Valheim", MinPlayers: 1, MaxPlayers: 10},
		},
		GameList: []string{"valheim"},
		Votes: models.VoteMap{
			"2": {Username: "bob", Votes: map[string]int{"valheim": 4}},
		},
	}

	result, err := ImportGuildData(guildID, bundle, true)
	if err != nil {
		t.Fatalf("ImportGuildData() failed: %v", err)
	}
	if result.Games != 1 || result.Votes != 1 {
		t.Fatalf("unexpected import result: %+v", result)
	}

	votes, _ := LoadVotes(guildID)
	if _, ok := votes["1"]; ok {
		t.Fatal("overwrite import kept the old voter")
	}
	if votes["2"].Votes["valheim"] != 4 {
		t.Fatal("overwrite import lost the new voter")
	}
}

func TestImportMergeExistingWins(t *testing.T) {
	SetDataDir(t.TempDir())
	guildID := "302"

	_, err := AddGame(guildID, models.Game{Name: "Valheim", MinPlayers: 1, MaxPlayers: 10})
	if err != nil {
		t.Fatalf("AddGame() failed: %v", err)
	}
	if err = SetRating(guildID, "1", "alice", "valheim", 5); err != nil {
		t.Fatalf("SetRating() failed: %v", err)
	}

	bundle := models.ExportBundle{
		SharedGames: map[string]models.Game{
			// same key with different definition, existing must win
			"valheim":    {ID: 9, Name: "Valheim Clone", MinPlayers: 2, MaxPlayers: 4},
			"mario kart": {ID: 2, Name: "Mario Kart", MinPlayers: 2, MaxPlayers: 8},
		},
		Votes: models.VoteMap{
			"1": {Username: "impostor", Votes: map[string]int{"valheim": 1}},
			"2": {Username: "bob", Votes: map[string]int{"valheim": 3}},
		},
	}

	_, err = ImportGuildData(guildID, bundle, false)
	if err != nil {
		t.Fatalf("ImportGuildData() failed: %v", err)
	}

	shared, _ := LoadSharedGames()
	if shared["valheim"].Name != "Valheim" {
		t.Fatalf("merge overwrote the existing catalog entry with %q", shared["valheim"].Name)
	}
	if _, ok := shared["mario kart"]; !ok {
		t.Fatal("merge did not add the new catalog entry")
	}

	votes, _ := LoadVotes(guildID)
	if votes["1"].Username != "alice" || votes["1"].Votes["valheim"] != 5 {
		t.Fatal("merge overwrote the existing voter")
	}
	if votes["2"].Votes["valheim"] != 3 {
		t.Fatal("merge did not add the new voter")
	}
}

func TestImportMergeDeduplicatesSchedules(t *testing.T) {
	SetDataDir(t.TempDir())
	guildID := "303"

	at := time.Date(2026, 9, 4, 20, 0, 0, 0, time.UTC)
	id, err := AddSchedule(guildID, at, "existing")
	if err != nil {
		t.Fatalf("AddSchedule() failed: %v", err)
	}

	bundle := models.ExportBundle{
		Schedules: []models.Schedule{
			{ID: id, Datetime: at, Description: "duplicate"},
			{ID: at.Add(time.Hour).Unix(), Datetime: at.Add(time.Hour), Description: "new"},
		},
	}

	result, err := ImportGuildData(guildID, bundle, false)
	if err != nil {
		t.Fatalf("ImportGuildData() failed: %v", err)
	}
	if result.SchedulesAdded != 1 {
		t.Fatalf("merge added %d schedules, want 1", result.SchedulesAdded)
	}

	schedules, _ := LoadSchedules(guildID)
	if len(schedules) != 2 {
		t.Fatalf("%d schedules after merge, want 2", len(schedules))
	}
	if schedules[0].Description != "existing" {
		t.Fatal("merge replaced the existing schedule")
	}
}

func TestImportReadsLegacyGamesField(t *testing.T) {
	SetDataDir(t.TempDir())
	guildID := "304"

	bundle := models.ExportBundle{
		LegacyGames: map[string]models.Game{
			"mario kart": {ID: 1, Name: "Mario Kart", MinPlayers: 2, MaxPlayers: 8},
		},
	}

	result, err := ImportGuildData(guildID, bundle, false)
	if err != nil {
		t.Fatalf("ImportGuildData() failed: %v", err)
	}
	if result.Games != 1 {
		t.Fatalf("legacy import counted %d games, want 1", result.Games)
	}

	shared, _ := LoadSharedGames()
	if _, ok := shared["mario kart"]; !ok {
		t.Fatal("legacy games field was ignored")
	}
}
