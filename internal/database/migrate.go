package database

// migrate.go creates the marketplace schema on startup.  The statements are
// idempotent (CREATE TABLE IF NOT EXISTS) so running them on every boot is
// safe.  Uniqueness rules that the application relies on are declared here
// as constraints: users.email and the (user_id, car_id) favorite pair must
// be enforced by the storage engine, not only by application checks,
// otherwise two concurrent requests can slip past the pre-insert lookup.

import (
	"context"
	"database/sql"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name          VARCHAR(100) NOT NULL,
		email         VARCHAR(120) NOT NULL,
		phone         VARCHAR(20)  NOT NULL,
		password_hash VARCHAR(128) NOT NULL,
		profile_photo VARCHAR(500) NULL,
		is_admin      TINYINT(1)   NOT NULL DEFAULT 0,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS cars (
		id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		brand        VARCHAR(50)  NOT NULL,
		model        VARCHAR(50)  NOT NULL,
		year         INT          NOT NULL,
		mileage      INT          NOT NULL,
		price        DECIMAL(12,2) NOT NULL,
		color        VARCHAR(30)  NOT NULL,
		fuel_type    VARCHAR(20)  NOT NULL,
		transmission VARCHAR(20)  NOT NULL,
		car_type     VARCHAR(50)  NOT NULL,
		description  TEXT NULL,
		status       VARCHAR(20) NOT NULL DEFAULT 'AVAILABLE',
		images       TEXT NULL,
		created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_cars_type_status (car_type, status)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS favorites (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id    BIGINT UNSIGNED NOT NULL,
		car_id     BIGINT UNSIGNED NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_favorites_user_car (user_id, car_id),
		KEY idx_favorites_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS reservations (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id    BIGINT UNSIGNED NOT NULL,
		car_id     BIGINT UNSIGNED NOT NULL,
		message    TEXT NULL,
		status     VARCHAR(20) NOT NULL DEFAULT 'PENDING',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_reservations_user (user_id),
		KEY idx_reservations_created (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS comments (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id    BIGINT UNSIGNED NOT NULL,
		car_id     BIGINT UNSIGNED NULL,
		comment    TEXT NOT NULL,
		rating     INT  NOT NULL,
		photo      TEXT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_comments_car (car_id),
		KEY idx_comments_created (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the schema statements in order.  It stops at the first
// failure so a broken DDL statement is reported instead of being skipped.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
