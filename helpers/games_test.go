package helpers

import (
	"testing"

	"github.com/Zero-for-One/TatiBot/models"
)

func TestAddGameAssignsIDs(t *testing.T) {
	SetDataDir(t.TempDir())
	guildID := "200"

	key, err := AddGame(guildID, models.Game{Name: "Mario Kart", MinPlayers: 2, MaxPlayers: 8})
	if err != nil {
		t.Fatalf("AddGame() failed: %v", err)
	}
	if key != "mario kart" {
		t.Fatalf("AddGame() key = %q, want mario kart", key)
	}

	_, err = AddGame(guildID, models.Game{Name: "Valheim", MinPlayers: 1, MaxPlayers: 10})
	if err != nil {
		t.Fatalf("AddGame() failed: %v", err)
	}

	shared, err := LoadSharedGames()
	if err != nil {
		t.Fatalf("LoadSharedGames() failed: %v", err)
	}

	if shared["mario kart"].ID != 1 {
		t.Fatalf("first game id = %d, want 1", shared["mario kart"].ID)
	}
	if shared["valheim"].ID != 2 {
		t.Fatalf("second game id = %d, want 2", shared["valheim"].ID)
	}
	if shared["mario kart"].Emoji != models.DefaultGameEmoji {
		t.Fatalf("default emoji = %q, want %q", shared["mario kart"].Emoji, models.DefaultGameEmoji)
	}
}

func TestAddGameRejectsDuplicates(t *testing.T) {
	SetDataDir(t.TempDir())
	guildID := "201"

	_, err := AddGame(guildID, models.Game{Name: "Mario Kart", MinPlayers: 2, MaxPlayers: 8})
	if err != nil {
		t.Fatalf("AddGame() failed: %v", err)
	}

	// name collision is case-insensitive
	_, err = AddGame(guildID, models.Game{Name: "MARIO kart", MinPlayers: 1, MaxPlayers: 4})
	if err != ErrGameExists {
		t.Fatalf("AddGame() duplicate returned %v, want ErrGameExists", err)
	}
}

func TestAddGameSharedAcrossGuilds(t *testing.T) {
	SetDataDir(t.TempDir())

	_, err := AddGame("202", models.Game{Name: "Valheim", MinPlayers: 1, MaxPlayers: 10})
	if err != nil {
		t.Fatalf("AddGame() failed: %v", err)
	}

	// second guild picks up the existing definition, no new id
	_, err = AddGame("203", models.Game{Name: "Valheim", MinPlayers: 1, MaxPlayers: 10})
	if err != nil {
		t.Fatalf("AddGame() on second guild failed: %v", err)
	}

	shared, _ := LoadSharedGames()
	if len(shared) != 1 {
		t.Fatalf("shared catalog has %d games, want 1", len(shared))
	}

	games, err := LoadGames("203")
	if err != nil {
		t.Fatalf("LoadGames() failed: %v", err)
	}
	if _, ok := games["valheim"]; !ok {
		t.Fatal("second guild does not see the shared game")
	}
}

func TestNextGameID(t *testing.T) {
	games := map[string]models.Game{
		"a": {ID: 1},
		"b": {ID: 7},
		"c": {ID: 3},
	}
	if id := NextGameID(games); id != 8 {
		t.Fatalf("NextGameID() = %d, want 8", id)
	}
	if id := NextGameID(nil); id != 1 {
		t.Fatalf("NextGameID(nil) = %d, want 1", id)
	}
}

func TestLoadServerGameListMigratesLegacyFormat(t *testing.T) {
	SetDataDir(t.TempDir())
	guildID := "204"

	// pre-existing data in the old full-dict shape
	legacy := map[string]models.Game{
		"mario kart": {ID: 1, Name: "Mario Kart", MinPlayers: 2, MaxPlayers: 8},
		"valheim":    {ID: 2, Name: "Valheim", MinPlayers: 1, MaxPlayers: 10},
	}
	if err := WriteJSON(guildGamesPath(guildID), legacy); err != nil {
		t.Fatalf("writing legacy file failed: %v", err)
	}

	keys, err := LoadServerGameList(guildID)
	if err != nil {
		t.Fatalf("LoadServerGameList() failed: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("migrated %d keys, want 2", len(keys))
	}

	// the file must now hold the new shape
	var migrated []string
	if err := ReadJSON(guildGamesPath(guildID), &migrated); err != nil {
		t.Fatalf("reading migrated file failed: %v", err)
	}
	if len(migrated) != 2 {
		t.Fatalf("migrated file has %d keys, want 2", len(migrated))
	}
}

func TestResolveGameNumericIsIDOnly(t *testing.T) {
	games := map[string]models.Game{
		"mario kart": {ID: 1, Name: "Mario Kart"},
		"7 wonders":  {ID: 2, Name: "7 Wonders"},
	}

	key, _, err := ResolveGame(games, "2")
	if err != nil {
		t.Fatalf("ResolveGame() by id failed: %v", err)
	}
	if key != "7 wonders" {
		t.Fatalf("ResolveGame(2) = %q, want 7 wonders", key)
	}

	// a numeric argument that matches no id must not fall back to names
	_, _, err = ResolveGame(games, "7")
	if err != ErrGameNotFound {
		t.Fatalf("ResolveGame(7) = %v, want ErrGameNotFound", err)
	}

	key, _, err = ResolveGame(games, "Mario KART")
	if err != nil {
		t.Fatalf("ResolveGame() by name failed: %v", err)
	}
	if key != "mario kart" {
		t.Fatalf("ResolveGame by name = %q, want mario kart", key)
	}
}

func TestUpdateGameReportsChangedFields(t *testing.T) {
	SetDataDir(t.TempDir())
	guildID := "205"

	_, err := AddGame(guildID, models.Game{Name: "Mario Kart", MinPlayers: 2, MaxPlayers: 8})
	if err != nil {
		t.Fatalf("AddGame() failed: %v", err)
	}

	min := 1
	emoji := "🏎️"
	changed, err := UpdateGame(guildID, "mario kart", GameUpdate{MinPlayers: &min, Emoji: &emoji})
	if err != nil {
		t.Fatalf("UpdateGame() failed: %v", err)
	}
	if len(changed) != 2 {
		t.Fatalf("UpdateGame() changed %v, want two fields", changed)
	}

	// same values again, nothing to report
	changed, err = UpdateGame(guildID, "mario kart", GameUpdate{MinPlayers: &min})
	if err != nil {
		t.Fatalf("UpdateGame() failed: %v", err)
	}
	if len(changed) != 0 {
		t.Fatalf("UpdateGame() with no changes reported %v", changed)
	}
}

func TestUpdateGameRenameMovesKeyEverywhere(t *testing.T) {
	SetDataDir(t.TempDir())
	guildID := "206"

	_, err := AddGame(guildID, models.Game{Name: "Mario Kart", MinPlayers: 2, MaxPlayers: 8})
	if err != nil {
		t.Fatalf("AddGame() failed: %v", err)
	}
	if err = SetRating(guildID, "1", "alice", "mario kart", 5); err != nil {
		t.Fatalf("SetRating() failed: %v", err)
	}

	name := "Mario Kart 8"
	changed, err := UpdateGame(guildID, "mario kart", GameUpdate{Name: &name})
	if err != nil {
		t.Fatalf("UpdateGame() rename failed: %v", err)
	}
	if len(changed) != 1 || changed[0] != "name" {
		t.Fatalf("UpdateGame() changed %v, want [name]", changed)
	}

	shared, _ := LoadSharedGames()
	if _, ok := shared["mario kart"]; ok {
		t.Fatal("old catalog key survived the rename")
	}
	if shared["mario kart 8"].Name != "Mario Kart 8" {
		t.Fatal("new catalog key missing after rename")
	}

	keys, _ := LoadServerGameList(guildID)
	if len(keys) != 1 || keys[0] != "mario kart 8" {
		t.Fatalf("guild game list after rename = %v", keys)
	}

	votes, _ := LoadVotes(guildID)
	if votes["1"].Votes["mario kart 8"] != 5 {
		t.Fatal("vote key did not follow the rename")
	}
}

func TestRemoveGameFromServerKeepsSharedDefinition(t *testing.T) {
	SetDataDir(t.TempDir())
	guildID := "207"

	_, err := AddGame(guildID, models.Game{Name: "Valheim", MinPlayers: 1, MaxPlayers: 10})
	if err != nil {
		t.Fatalf("AddGame() failed: %v", err)
	}

	if err = RemoveGameFromServer(guildID, "valheim"); err != nil {
		t.Fatalf("RemoveGameFromServer() failed: %v", err)
	}

	games, _ := LoadGames(guildID)
	if len(games) != 0 {
		t.Fatalf("guild still sees %d games", len(games))
	}

	shared, _ := LoadSharedGames()
	if _, ok := shared["valheim"]; !ok {
		t.Fatal("shared definition was deleted")
	}

	if err = RemoveGameFromServer(guildID, "valheim"); err != ErrGameNotFound {
		t.Fatalf("second removal returned %v, want ErrGameNotFound", err)
	}
}

func TestSuggestGame(t *testing.T) {
	games := map[string]models.Game{
		"mario kart": {ID: 1, Name: "Mario Kart"},
		"valheim":    {ID: 2, Name: "Valheim"},
	}

	if got := SuggestGame(games, "mario"); got != "Mario Kart" {
		t.Fatalf("SuggestGame(mario) = %q, want Mario Kart", got)
	}
	if got := SuggestGame(games, "zzzzzz"); got != "" {
		t.Fatalf("SuggestGame(zzzzzz) = %q, want empty", got)
	}
}
