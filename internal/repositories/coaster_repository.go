package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "tiketi/internal/config"
	"tiketi/internal/domain"
	"tiketi/internal/domain/models"
)

type CoasterRepository struct {
	DB *sql.DB
}

func (r CoasterRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const coasterColumns = `
	id,
	user_id,
	COALESCE(name,''),
	COALESCE(plate_number,''),
	COALESCE(capacity,0),
	COALESCE(model,''),
	COALESCE(color,''),
	COALESCE(status,'available'),
	COALESCE(driver_name,''),
	COALESCE(driver_contact,''),
	COALESCE(features,''),
	COALESCE(latitude,0),
	COALESCE(longitude,0),
	COALESCE(last_location_update,'')`

func scanCoaster(row *sql.Row) (models.Coaster, error) {
	var c models.Coaster
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.PlateNumber,
		&c.Capacity,
		&c.Model,
		&c.Color,
		&c.Status,
		&c.DriverName,
		&c.DriverContact,
		&c.Features,
		&c.Latitude,
		&c.Longitude,
		&c.LastLocation,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c, domain.NotFoundError{Resource: "coaster", Err: err}
		}
		return c, err
	}
	return c, nil
}

func (r CoasterRepository) GetByID(id int64) (models.Coaster, error) {
	if id <= 0 {
		return models.Coaster{}, domain.ValidationError{Field: "coaster_id", Msg: "must be positive"}
	}
	row := r.db().QueryRow(`SELECT`+coasterColumns+` FROM coasters WHERE id=? LIMIT 1`, id)
	return scanCoaster(row)
}

// List returns the owner's fleet, newest first, optionally filtered by
// status.
func (r CoasterRepository) List(userID int64, status string) ([]models.Coaster, error) {
	query := `SELECT` + coasterColumns + ` FROM coasters WHERE user_id=?`
	args := []interface{}{userID}
	if status != "" {
		query += ` AND status=?`
		args = append(args, status)
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Coaster{}
	for rows.Next() {
		var c models.Coaster
		if err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.Name,
			&c.PlateNumber,
			&c.Capacity,
			&c.Model,
			&c.Color,
			&c.Status,
			&c.DriverName,
			&c.DriverContact,
			&c.Features,
			&c.Latitude,
			&c.Longitude,
			&c.LastLocation,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r CoasterRepository) Create(c models.Coaster) (int64, error) {
	if c.Name == "" {
		return 0, domain.ValidationError{Field: "name", Msg: "must not be empty"}
	}
	if c.PlateNumber == "" {
		return 0, domain.ValidationError{Field: "plate_number", Msg: "must not be empty"}
	}
	if c.Status == "" {
		c.Status = models.CoasterAvailable
	}

	res, err := r.db().Exec(`
		INSERT INTO coasters
			(user_id, name, plate_number, capacity, model, color, status,
			 driver_name, driver_contact, features, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,NOW(),NOW())`,
		c.UserID, c.Name, c.PlateNumber, c.Capacity, c.Model, c.Color, c.Status,
		c.DriverName, c.DriverContact, c.Features)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: "coaster", Msg: "plate number already registered"}
		}
		return 0, err
	}
	return res.LastInsertId()
}

// Update applies only the fields the caller actually sent.
func (r CoasterRepository) Update(id int64, upd models.CoasterUpdate) error {
	sets := []string{}
	args := []interface{}{}

	add := func(col string, v interface{}) {
		sets = append(sets, col+"=?")
		args = append(args, v)
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.PlateNumber != nil {
		add("plate_number", *upd.PlateNumber)
	}
	if upd.Capacity != nil {
		add("capacity", *upd.Capacity)
	}
	if upd.Model != nil {
		add("model", *upd.Model)
	}
	if upd.Color != nil {
		add("color", *upd.Color)
	}
	if upd.Status != nil {
		switch *upd.Status {
		case models.CoasterAvailable, models.CoasterOnHire, models.CoasterMaintenance:
		default:
			return domain.ValidationError{Field: "status", Msg: "unknown coaster status"}
		}
		add("status", *upd.Status)
	}
	if upd.DriverName != nil {
		add("driver_name", *upd.DriverName)
	}
	if upd.DriverContact != nil {
		add("driver_contact", *upd.DriverContact)
	}
	if upd.Features != nil {
		add("features", *upd.Features)
	}
	if len(sets) == 0 {
		return domain.ValidationError{Field: "body", Msg: "no updatable fields provided"}
	}

	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)

	res, err := r.db().Exec(
		fmt.Sprintf(`UPDATE coasters SET %s WHERE id=?`, strings.Join(sets, ", ")),
		args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		if _, getErr := r.GetByID(id); getErr != nil {
			return getErr
		}
	}
	return err
}

// SetStatus flips the availability state without touching other fields.
func (r CoasterRepository) SetStatus(id int64, status string) error {
	s := status
	return r.Update(id, models.CoasterUpdate{Status: &s})
}

// UpdateLocation records the latest GPS ping.
func (r CoasterRepository) UpdateLocation(id int64, lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return domain.ValidationError{Field: "latitude", Msg: "out of range"}
	}
	if lng < -180 || lng > 180 {
		return domain.ValidationError{Field: "longitude", Msg: "out of range"}
	}
	_, err := r.db().Exec(`
		UPDATE coasters
		SET latitude=?, longitude=?, last_location_update=NOW(), updated_at=NOW()
		WHERE id=?`, lat, lng, id)
	return err
}

// Delete refuses when the coaster still has open orders.
func (r CoasterRepository) Delete(id int64) error {
	var open int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM hire_orders
		WHERE coaster_id=? AND order_status IN ('pending','confirmed','in_progress')`, id).Scan(&open)
	if err != nil {
		return err
	}
	if open > 0 {
		return domain.ConflictError{Resource: "coaster", Msg: "coaster has active orders"}
	}

	res, err := r.db().Exec(`DELETE FROM coasters WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "coaster"}
	}
	return nil
}

func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
