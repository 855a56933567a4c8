package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/shramba/internal/model"
)

// CreateDevice records a newly paired device.
func CreateDevice(ctx context.Context, db *sql.DB, name string) (*model.Device, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO devices (name) VALUES (?)`, name,
	)
	if err != nil {
		return nil, fmt.Errorf("creating device: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting device id: %w", err)
	}

	return GetDevice(ctx, db, id)
}

// GetDevice returns a device by ID, or ErrNotFound.
func GetDevice(ctx context.Context, db *sql.DB, id int64) (*model.Device, error) {
	device := &model.Device{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, paired_at, revoked_at FROM devices WHERE id = ?`, id,
	).Scan(&device.ID, &device.Name, &device.PairedAt, &device.RevokedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting device: %w", err)
	}
	return device, nil
}

// ListDevices returns all paired devices, newest first.
func ListDevices(ctx context.Context, db *sql.DB) ([]model.Device, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, paired_at, revoked_at FROM devices ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}
	defer rows.Close()

	var devices []model.Device
	for rows.Next() {
		var device model.Device
		if err := rows.Scan(&device.ID, &device.Name, &device.PairedAt, &device.RevokedAt); err != nil {
			return nil, fmt.Errorf("scanning device: %w", err)
		}
		devices = append(devices, device)
	}
	return devices, rows.Err()
}

// RevokeDevice marks a device as revoked so its tokens stop working.
// Revoking a missing or already revoked device is a no-op.
func RevokeDevice(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx,
		`UPDATE devices SET revoked_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND revoked_at IS NULL`, id,
	)
	if err != nil {
		return fmt.Errorf("revoking device: %w", err)
	}
	return nil
}

// IsDeviceRevoked reports whether a device has been revoked or removed.
func IsDeviceRevoked(ctx context.Context, db *sql.DB, id int64) (bool, error) {
	var active bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM devices WHERE id = ? AND revoked_at IS NULL)`, id,
	).Scan(&active)
	if err != nil {
		return false, fmt.Errorf("checking device revocation: %w", err)
	}
	return !active, nil
}
