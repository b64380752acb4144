package helpers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetRatingMarksAvailable(t *testing.T) {
	SetDataDir(t.TempDir())
	guildID := "100"

	err := SetAvailability(guildID, "1", "alice", true)
	if err != nil {
		t.Fatalf("SetAvailability() failed: %v", err)
	}

	err = SetRating(guildID, "1", "alice", "mario kart", 4)
	if err != nil {
		t.Fatalf("SetRating() failed: %v", err)
	}

	votes, err := LoadVotes(guildID)
	if err != nil {
		t.Fatalf("LoadVotes() failed: %v", err)
	}

	entry := votes["1"]
	if entry.Votes["mario kart"] != 4 {
		t.Fatalf("rating = %d, want 4", entry.Votes["mario kart"])
	}
	if entry.Unavailable {
		t.Fatal("voting did not mark the user available")
	}
	if entry.Username != "alice" {
		t.Fatalf("username = %q, want alice", entry.Username)
	}
}

func TestSetRatingRejectsOutOfRange(t *testing.T) {
	SetDataDir(t.TempDir())

	for _, rating := range []int{0, -1, 6, 100} {
		if err := SetRating("100", "1", "alice", "mario kart", rating); err == nil {
			t.Fatalf("SetRating() accepted rating %d", rating)
		}
	}
}

func TestSetAvailabilityAlreadyInState(t *testing.T) {
	SetDataDir(t.TempDir())
	guildID := "101"

	err := SetAvailability(guildID, "1", "alice", true)
	if err != nil {
		t.Fatalf("SetAvailability() failed: %v", err)
	}

	err = SetAvailability(guildID, "1", "alice", true)
	if err != ErrAlreadyInState {
		t.Fatalf("SetAvailability() twice returned %v, want ErrAlreadyInState", err)
	}

	err = SetAvailability(guildID, "1", "alice", false)
	if err != nil {
		t.Fatalf("toggling back failed: %v", err)
	}
}

func TestBackupAndClearVotes(t *testing.T) {
	SetDataDir(t.TempDir())
	guildID := "102"

	err := SetRating(guildID, "1", "alice", "mario kart", 5)
	if err != nil {
		t.Fatalf("SetRating() failed: %v", err)
	}

	backup, err := BackupVotes(guildID)
	if err != nil {
		t.Fatalf("BackupVotes() failed: %v", err)
	}
	if backup == "" {
		t.Fatal("BackupVotes() returned no filename for non-empty votes")
	}

	if _, err := os.Stat(filepath.Join(GuildDir(guildID), backup)); err != nil {
		t.Fatalf("backup file missing: %v", err)
	}

	err = ClearVotes(guildID)
	if err != nil {
		t.Fatalf("ClearVotes() failed: %v", err)
	}

	votes, err := LoadVotes(guildID)
	if err != nil {
		t.Fatalf("LoadVotes() failed: %v", err)
	}
	if len(votes) != 0 {
		t.Fatalf("votes not cleared, %d entries left", len(votes))
	}
}

func TestBackupVotesSkipsEmpty(t *testing.T) {
	SetDataDir(t.TempDir())

	backup, err := BackupVotes("103")
	if err != nil {
		t.Fatalf("BackupVotes() failed: %v", err)
	}
	if backup != "" {
		t.Fatalf("BackupVotes() wrote %q for an empty vote map", backup)
	}
}

func TestRestoreFromBackupFiltersDisabledGames(t *testing.T) {
	SetDataDir(t.TempDir())
	guildID := "104"

	err := SetRating(guildID, "1", "alice", "mario kart", 5)
	if err != nil {
		t.Fatalf("SetRating() failed: %v", err)
	}
	err = SetRating(guildID, "1", "alice", "removed game", 3)
	if err != nil {
		t.Fatalf("SetRating() failed: %v", err)
	}

	if _, err = BackupVotes(guildID); err != nil {
		t.Fatalf("BackupVotes() failed: %v", err)
	}
	if err = ClearVotes(guildID); err != nil {
		t.Fatalf("ClearVotes() failed: %v", err)
	}

	restored, date, err := RestoreFromBackup(guildID, "1", "alice", []string{"mario kart"})
	if err != nil {
		t.Fatalf("RestoreFromBackup() failed: %v", err)
	}
	if restored != 1 {
		t.Fatalf("RestoreFromBackup() applied %d ratings, want 1", restored)
	}
	if date == "" {
		t.Fatal("RestoreFromBackup() returned no backup date")
	}

	votes, err := LoadVotes(guildID)
	if err != nil {
		t.Fatalf("LoadVotes() failed: %v", err)
	}

	entry := votes["1"]
	if entry.Votes["mario kart"] != 5 {
		t.Fatalf("restored rating = %d, want 5", entry.Votes["mario kart"])
	}
	if _, ok := entry.Votes["removed game"]; ok {
		t.Fatal("rating for a disabled game was restored")
	}
}

func TestRestoreFromBackupLeavesOtherUsersAlone(t *testing.T) {
	SetDataDir(t.TempDir())
	guildID := "108"

	err := SetRating(guildID, "1", "alice", "mario kart", 5)
	if err != nil {
		t.Fatalf("SetRating() failed: %v", err)
	}
	if _, err = BackupVotes(guildID); err != nil {
		t.Fatalf("BackupVotes() failed: %v", err)
	}
	if err = ClearVotes(guildID); err != nil {
		t.Fatalf("ClearVotes() failed: %v", err)
	}

	// bob votes in the new period before alice restores hers
	err = SetRating(guildID, "2", "bob", "valheim", 3)
	if err != nil {
		t.Fatalf("SetRating() failed: %v", err)
	}

	restored, _, err := RestoreFromBackup(guildID, "1", "alice", []string{"mario kart", "valheim"})
	if err != nil {
		t.Fatalf("RestoreFromBackup() failed: %v", err)
	}
	if restored != 1 {
		t.Fatalf("RestoreFromBackup() applied %d ratings, want 1", restored)
	}

	votes, err := LoadVotes(guildID)
	if err != nil {
		t.Fatalf("LoadVotes() failed: %v", err)
	}
	if votes["2"].Votes["valheim"] != 3 {
		t.Fatalf("bob's current vote was destroyed by alice's restore: %+v", votes["2"])
	}
	if votes["1"].Votes["mario kart"] != 5 {
		t.Fatal("alice's rating was not restored")
	}
}

func TestRestoreFromBackupRequiresUserInSnapshot(t *testing.T) {
	SetDataDir(t.TempDir())
	guildID := "109"

	err := SetRating(guildID, "1", "alice", "mario kart", 5)
	if err != nil {
		t.Fatalf("SetRating() failed: %v", err)
	}
	if _, err = BackupVotes(guildID); err != nil {
		t.Fatalf("BackupVotes() failed: %v", err)
	}
	if err = ClearVotes(guildID); err != nil {
		t.Fatalf("ClearVotes() failed: %v", err)
	}

	_, _, err = RestoreFromBackup(guildID, "2", "bob", []string{"mario kart"})
	if err == nil {
		t.Fatal("RestoreFromBackup() restored for a user absent from every snapshot")
	}

	votes, _ := LoadVotes(guildID)
	if len(votes) != 0 {
		t.Fatalf("restore for an absent user changed the vote map: %+v", votes)
	}
}

func TestRestoreFromBackupSkipsCorruptFiles(t *testing.T) {
	SetDataDir(t.TempDir())
	guildID := "105"

	err := SetRating(guildID, "1", "alice", "mario kart", 2)
	if err != nil {
		t.Fatalf("SetRating() failed: %v", err)
	}
	if _, err = BackupVotes(guildID); err != nil {
		t.Fatalf("BackupVotes() failed: %v", err)
	}

	// a newer but corrupt snapshot must be skipped, not fatal
	corrupt := filepath.Join(GuildDir(guildID), "votes.old.2999-01-01.json")
	if err = os.WriteFile(corrupt, []byte("{not json"), 0644); err != nil {
		t.Fatalf("writing corrupt backup failed: %v", err)
	}

	if err = ClearVotes(guildID); err != nil {
		t.Fatalf("ClearVotes() failed: %v", err)
	}

	restored, _, err := RestoreFromBackup(guildID, "1", "alice", []string{"mario kart"})
	if err != nil {
		t.Fatalf("RestoreFromBackup() failed: %v", err)
	}
	if restored != 1 {
		t.Fatalf("RestoreFromBackup() applied %d ratings, want 1", restored)
	}
}

func TestRestoreFromBackupNoBackups(t *testing.T) {
	SetDataDir(t.TempDir())

	_, _, err := RestoreFromBackup("106", "1", "alice", nil)
	if err == nil {
		t.Fatal("RestoreFromBackup() succeeded with no backups on disk")
	}
}

func TestUserLanguageRoundTrip(t *testing.T) {
	SetDataDir(t.TempDir())
	guildID := "107"

	if lang := GetUserLanguage(guildID, "1"); lang != "" {
		t.Fatalf("GetUserLanguage() = %q before any choice, want empty", lang)
	}

	err := SetUserLanguage(guildID, "1", "alice", "fr")
	if err != nil {
		t.Fatalf("SetUserLanguage() failed: %v", err)
	}

	if lang := GetUserLanguage(guildID, "1"); lang != "fr" {
		t.Fatalf("GetUserLanguage() = %q, want fr", lang)
	}

	// language choice must not clobber existing ratings
	err = SetRating(guildID, "1", "alice", "mario kart", 3)
	if err != nil {
		t.Fatalf("SetRating() failed: %v", err)
	}
	err = SetUserLanguage(guildID, "1", "alice", "en")
	if err != nil {
		t.Fatalf("SetUserLanguage() failed: %v", err)
	}

	votes, _ := LoadVotes(guildID)
	if votes["1"].Votes["mario kart"] != 3 {
		t.Fatal("changing language dropped the stored ratings")
	}
}
