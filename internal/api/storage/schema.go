package storage

import (
	"context"
	"fmt"

	"github.com/cuongbtq/jobboard/shared/database"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS jobs (
	id               BIGSERIAL PRIMARY KEY,
	title            TEXT NOT NULL,
	company          TEXT NOT NULL,
	location         TEXT NOT NULL,
	job_type         TEXT NOT NULL,
	industry         TEXT NOT NULL,
	experience_level TEXT NOT NULL,
	salary_min       BIGINT NOT NULL DEFAULT 0,
	salary_max       BIGINT NOT NULL DEFAULT 0,
	description      TEXT NOT NULL DEFAULT '',
	requirements     TEXT NOT NULL DEFAULT '[]',
	benefits         TEXT NOT NULL DEFAULT '[]',
	featured         BOOLEAN NOT NULL DEFAULT FALSE,
	applicants       INTEGER NOT NULL DEFAULT 0,
	posted_at        TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_jobs_posted_at ON jobs (posted_at DESC, id DESC);

CREATE TABLE IF NOT EXISTS candidates (
	id               BIGSERIAL PRIMARY KEY,
	name             TEXT NOT NULL,
	email            TEXT NOT NULL,
	phone            TEXT NOT NULL DEFAULT '',
	location         TEXT NOT NULL DEFAULT '',
	headline         TEXT NOT NULL DEFAULT '',
	position         TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL DEFAULT 'new',
	experience_level TEXT NOT NULL DEFAULT '',
	skills           TEXT NOT NULL DEFAULT '[]',
	experience       TEXT NOT NULL DEFAULT '[]',
	summary          TEXT NOT NULL DEFAULT '',
	availability     TEXT NOT NULL DEFAULT '',
	resume_url       TEXT NULL,
	created_at       TIMESTAMPTZ NOT NULL,
	updated_at       TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS applications (
	id           BIGSERIAL PRIMARY KEY,
	job_id       BIGINT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
	candidate_id BIGINT NOT NULL,
	applied_at   TIMESTAMPTZ NOT NULL,
	status       TEXT NOT NULL,
	notes        TEXT NOT NULL DEFAULT '',
	interview    TEXT NULL,
	UNIQUE (job_id, candidate_id)
);
CREATE INDEX IF NOT EXISTS idx_applications_candidate ON applications (candidate_id);

CREATE TABLE IF NOT EXISTS saved_jobs (
	id           BIGSERIAL PRIMARY KEY,
	job_id       BIGINT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
	candidate_id BIGINT NOT NULL,
	saved_at     TIMESTAMPTZ NOT NULL,
	notes        TEXT NOT NULL DEFAULT '',
	UNIQUE (candidate_id, job_id)
);

CREATE TABLE IF NOT EXISTS application_events (
	id             BIGSERIAL PRIMARY KEY,
	event_id       TEXT NOT NULL UNIQUE,
	event_type     TEXT NOT NULL,
	application_id BIGINT NOT NULL,
	job_id         BIGINT NOT NULL,
	candidate_id   BIGINT NOT NULL,
	status         TEXT NOT NULL DEFAULT '',
	occurred_at    TIMESTAMPTZ NOT NULL,
	processed_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_application_events_app ON application_events (application_id, occurred_at);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS jobs (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	title            TEXT NOT NULL,
	company          TEXT NOT NULL,
	location         TEXT NOT NULL,
	job_type         TEXT NOT NULL,
	industry         TEXT NOT NULL,
	experience_level TEXT NOT NULL,
	salary_min       INTEGER NOT NULL DEFAULT 0,
	salary_max       INTEGER NOT NULL DEFAULT 0,
	description      TEXT NOT NULL DEFAULT '',
	requirements     TEXT NOT NULL DEFAULT '[]',
	benefits         TEXT NOT NULL DEFAULT '[]',
	featured         BOOLEAN NOT NULL DEFAULT 0,
	applicants       INTEGER NOT NULL DEFAULT 0,
	posted_at        TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_jobs_posted_at ON jobs (posted_at DESC, id DESC);

CREATE TABLE IF NOT EXISTS candidates (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	name             TEXT NOT NULL,
	email            TEXT NOT NULL,
	phone            TEXT NOT NULL DEFAULT '',
	location         TEXT NOT NULL DEFAULT '',
	headline         TEXT NOT NULL DEFAULT '',
	position         TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL DEFAULT 'new',
	experience_level TEXT NOT NULL DEFAULT '',
	skills           TEXT NOT NULL DEFAULT '[]',
	experience       TEXT NOT NULL DEFAULT '[]',
	summary          TEXT NOT NULL DEFAULT '',
	availability     TEXT NOT NULL DEFAULT '',
	resume_url       TEXT NULL,
	created_at       TIMESTAMP NOT NULL,
	updated_at       TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS applications (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	job_id       INTEGER NOT NULL,
	candidate_id INTEGER NOT NULL,
	applied_at   TIMESTAMP NOT NULL,
	status       TEXT NOT NULL,
	notes        TEXT NOT NULL DEFAULT '',
	interview    TEXT NULL,
	UNIQUE (job_id, candidate_id),
	FOREIGN KEY (job_id) REFERENCES jobs(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_applications_candidate ON applications (candidate_id);

CREATE TABLE IF NOT EXISTS saved_jobs (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	job_id       INTEGER NOT NULL,
	candidate_id INTEGER NOT NULL,
	saved_at     TIMESTAMP NOT NULL,
	notes        TEXT NOT NULL DEFAULT '',
	UNIQUE (candidate_id, job_id),
	FOREIGN KEY (job_id) REFERENCES jobs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS application_events (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	event_id       TEXT NOT NULL UNIQUE,
	event_type     TEXT NOT NULL,
	application_id INTEGER NOT NULL,
	job_id         INTEGER NOT NULL,
	candidate_id   INTEGER NOT NULL,
	status         TEXT NOT NULL DEFAULT '',
	occurred_at    TIMESTAMP NOT NULL,
	processed_at   TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_application_events_app ON application_events (application_id, occurred_at);
`

// Migrate creates every table used by the api and worker services
func Migrate(ctx context.Context, client *database.Client) error {
	schema := postgresSchema
	if client.DriverName() == database.DriverSQLite {
		schema = sqliteSchema
	}

	if _, err := client.GetDB().ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate %s schema: %w", client.DriverName(), err)
	}
	return nil
}
