package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/league-engine/internal/league"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	// Create four dummy players to use in matches
	dummyPlayers := []league.Player{
		{ID: "player-1", Name: "Seeder Player A", Gender: league.Male},
		{ID: "player-2", Name: "Seeder Player B", Gender: league.Male},
		{ID: "player-3", Name: "Seeder Player C", Gender: league.Female},
		{ID: "player-4", Name: "Seeder Player D", Gender: league.Female},
	}

	for _, p := range dummyPlayers {
		_, err := db.Exec("INSERT OR IGNORE INTO players (id, name, gender, skill) VALUES (?, ?, ?, ?)", p.ID, p.Name, string(p.Gender), 3.0)
		if err != nil {
			log.Fatalf("Failed to insert dummy player %s: %s", p.Name, err)
		}
	}
	log.Info("Ensured dummy players exist.")

	if _, err := db.Exec("INSERT OR IGNORE INTO events (id, season_id) VALUES (?, ?)", "seed-event", "seed-season"); err != nil {
		log.Fatalf("Failed to insert seed event: %s", err)
	}
	for _, p := range dummyPlayers {
		if _, err := db.Exec("INSERT OR IGNORE INTO signups (event_id, player_id) VALUES (?, ?)", "seed-event", p.ID); err != nil {
			log.Fatalf("Failed to insert seed signup: %s", err)
		}
	}

	const batchSize = 100 // Insert 100 matches at a time
	const numMatches = 10000

	log.Info("Preparing to insert dummy matches...", "total", numMatches, "batch_size", batchSize)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	teamA, _ := json.Marshal([]string{dummyPlayers[0].ID, dummyPlayers[2].ID})
	teamB, _ := json.Marshal([]string{dummyPlayers[1].ID, dummyPlayers[3].ID})
	winnerIDsA, _ := json.Marshal([]string{dummyPlayers[0].ID, dummyPlayers[2].ID})
	winnerIDsB, _ := json.Marshal([]string{dummyPlayers[1].ID, dummyPlayers[3].ID})

	matchValues := make([]string, 0, batchSize)
	matchArgs := make([]interface{}, 0, batchSize*8)
	resultValues := make([]string, 0, batchSize)
	resultArgs := make([]interface{}, 0, batchSize*5)

	flush := func(done int) {
		matchStmt := fmt.Sprintf(`
			INSERT INTO matches (id, event_id, season_id, category, team_a_json, team_b_json, status, created_at)
			VALUES %s;`, strings.Join(matchValues, ","))
		if _, err := tx.Exec(matchStmt, matchArgs...); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to execute match batch insert: %s", err)
		}
		resultStmt := fmt.Sprintf(`
			INSERT INTO results (match_id, sets_json, winner, winner_ids_json, entered_at)
			VALUES %s;`, strings.Join(resultValues, ","))
		if _, err := tx.Exec(resultStmt, resultArgs...); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to execute result batch insert: %s", err)
		}

		matchValues = matchValues[:0]
		matchArgs = matchArgs[:0]
		resultValues = resultValues[:0]
		resultArgs = resultArgs[:0]
		log.Info("Inserted batch", "completed", done, "total", numMatches)
	}

	for i := 0; i < numMatches; i++ {
		matchTime := time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour)
		matchID := uuid.NewString()

		gamesA := 4 + rand.Intn(3)
		gamesB := 4 + rand.Intn(3)
		sets, _ := json.Marshal([]league.SetScore{{GamesA: gamesA, GamesB: gamesB}})

		winner := string(league.WinnerTeamA)
		winnerIDs := winnerIDsA
		if gamesB > gamesA {
			winner = string(league.WinnerTeamB)
			winnerIDs = winnerIDsB
		}

		matchValues = append(matchValues, "(?, ?, ?, ?, ?, ?, ?, ?)")
		matchArgs = append(matchArgs,
			matchID,
			"seed-event",
			"seed-season",
			string(league.CategoryMixedDoubles),
			string(teamA),
			string(teamB),
			string(league.StatusCompleted),
			matchTime.Unix(),
		)
		resultValues = append(resultValues, "(?, ?, ?, ?, ?)")
		resultArgs = append(resultArgs,
			matchID,
			string(sets),
			winner,
			string(winnerIDs),
			matchTime.Add(90*time.Minute).Unix(),
		)

		if (i+1)%batchSize == 0 || (i+1) == numMatches {
			flush(i + 1)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all dummy matches.", "duration", duration)
}
