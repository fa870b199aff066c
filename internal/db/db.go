package db

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

// The schema owns every consistency rule the services rely on: the partial
// unique indexes on applications enforce the one-live-bid-per-(match,
// player/team) rule, and the unique index on the chat room identifying tuple
// serializes concurrent resolve-or-create calls.
func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS players (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL,
            name TEXT NOT NULL,
            sport_type TEXT NOT NULL,
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE INDEX IF NOT EXISTS idx_players_user ON players(user_id);`,
		`CREATE TABLE IF NOT EXISTS teams (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            sport_type TEXT NOT NULL,
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS team_members (
            team_id INT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
            player_id INT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
            role TEXT NOT NULL DEFAULT 'MEMBER',
            PRIMARY KEY (team_id, player_id)
        );`,
		`CREATE TABLE IF NOT EXISTS matches (
            id SERIAL PRIMARY KEY,
            host_user_id BIGINT NOT NULL,
            sport_type TEXT NOT NULL,
            home_player_id INT REFERENCES players(id),
            home_team_id INT REFERENCES teams(id),
            away_player_id INT REFERENCES players(id),
            away_team_id INT REFERENCES teams(id),
            match_date TIMESTAMPTZ NOT NULL,
            location TEXT NOT NULL DEFAULT '',
            details JSONB NOT NULL DEFAULT '{}',
            status TEXT NOT NULL DEFAULT 'OPEN',
            created_at TIMESTAMPTZ DEFAULT NOW(),
            updated_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE INDEX IF NOT EXISTS idx_matches_status_sport ON matches(status, sport_type);`,
		`CREATE TABLE IF NOT EXISTS applications (
            id SERIAL PRIMARY KEY,
            match_id INT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
            applicant_user_id BIGINT NOT NULL,
            applicant_player_id INT REFERENCES players(id),
            applicant_team_id INT REFERENCES teams(id),
            weight_class TEXT,
            participant_count INT,
            uniform_color TEXT,
            message TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL DEFAULT 'PENDING',
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_applications_live_player
            ON applications(match_id, applicant_player_id)
            WHERE status <> 'REJECTED' AND applicant_player_id IS NOT NULL;`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_applications_live_team
            ON applications(match_id, applicant_team_id)
            WHERE status <> 'REJECTED' AND applicant_team_id IS NOT NULL;`,
		`CREATE INDEX IF NOT EXISTS idx_applications_match_status ON applications(match_id, status);`,
		`CREATE TABLE IF NOT EXISTS chat_rooms (
            id SERIAL PRIMARY KEY,
            match_id INT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
            host_id BIGINT NOT NULL,
            applicant_user_id BIGINT NOT NULL,
            applicant_player_id INT,
            applicant_team_id INT,
            host_out BOOLEAN NOT NULL DEFAULT FALSE,
            applicant_out BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_chat_rooms_identity
            ON chat_rooms(match_id, host_id, applicant_user_id,
                COALESCE(applicant_player_id, 0), COALESCE(applicant_team_id, 0));`,
		`CREATE TABLE IF NOT EXISTS messages (
            id SERIAL PRIMARY KEY,
            chat_room_id INT NOT NULL REFERENCES chat_rooms(id) ON DELETE CASCADE,
            sender_id BIGINT NOT NULL,
            kind TEXT NOT NULL DEFAULT 'user',
            content TEXT NOT NULL,
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE INDEX IF NOT EXISTS idx_messages_room_created ON messages(chat_room_id, created_at, id);`,
		`CREATE TABLE IF NOT EXISTS notifications (
            id SERIAL PRIMARY KEY,
            receiver_id BIGINT NOT NULL,
            type TEXT NOT NULL,
            content TEXT NOT NULL DEFAULT '',
            redirect_url TEXT NOT NULL DEFAULT '',
            is_read BOOLEAN NOT NULL DEFAULT FALSE,
            metadata JSONB NOT NULL DEFAULT '{}',
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_receiver ON notifications(receiver_id, is_read);`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}
	log.Println("database migrations applied")
	return nil
}
