package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/farebonus/internal/models"
)

const upsertPreference = `INSERT INTO preferences (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value`

// GetSettings reads every preference, falling back to defaults for missing keys.
func (s *SQLiteStore) GetSettings(ctx context.Context) (*models.Settings, error) {
	values, err := s.loadPreferences(ctx)
	if err != nil {
		return nil, err
	}

	settings := &models.Settings{Fares: make(map[models.FareType]decimal.Decimal, len(models.FareTypes))}
	for _, fare := range models.FareTypes {
		d, err := decimalValue(values, string(fare))
		if err != nil {
			return nil, err
		}
		settings.Fares[fare] = d
	}
	if settings.BonusPercentage, err = decimalValue(values, models.KeyBonusPercentage); err != nil {
		return nil, err
	}
	if settings.BonusMin, err = decimalValue(values, models.KeyBonusMin); err != nil {
		return nil, err
	}
	if settings.Increment, err = decimalValue(values, models.KeyIncrement); err != nil {
		return nil, err
	}

	return settings, nil
}

// SaveSettings writes every fare and policy value in one transaction.
func (s *SQLiteStore) SaveSettings(ctx context.Context, settings *models.Settings) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for fare, amount := range settings.Fares {
		if _, err := tx.ExecContext(ctx, upsertPreference, string(fare), amount.String()); err != nil {
			return fmt.Errorf("failed to save fare %s: %w", fare, err)
		}
	}

	policy := []struct {
		key   string
		value decimal.Decimal
	}{
		{models.KeyBonusPercentage, settings.BonusPercentage},
		{models.KeyBonusMin, settings.BonusMin},
		{models.KeyIncrement, settings.Increment},
	}
	for _, p := range policy {
		if _, err := tx.ExecContext(ctx, upsertPreference, p.key, p.value.String()); err != nil {
			return fmt.Errorf("failed to save %s: %w", p.key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RestoreDefaults clears every preference, then writes the documented defaults.
// The selected fare and recorded version are cleared as well.
func (s *SQLiteStore) RestoreDefaults(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM preferences"); err != nil {
		return fmt.Errorf("failed to clear preferences: %w", err)
	}

	keys := make([]string, 0, len(models.FareTypes)+3)
	for _, fare := range models.FareTypes {
		keys = append(keys, string(fare))
	}
	keys = append(keys, models.KeyBonusPercentage, models.KeyBonusMin, models.KeyIncrement)

	for _, key := range keys {
		value, _ := models.DefaultValue(key)
		if _, err := tx.ExecContext(ctx, upsertPreference, key, value); err != nil {
			return fmt.Errorf("failed to write default %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetSelectedFare returns the last selected fare type. Unknown or missing
// values resolve to models.DefaultSelectedFare.
func (s *SQLiteStore) GetSelectedFare(ctx context.Context) (models.FareType, error) {
	value, ok, err := s.getPreference(ctx, models.KeySelectedFare)
	if err != nil {
		return "", err
	}
	if !ok {
		return models.DefaultSelectedFare, nil
	}
	fare, err := models.ParseFareType(value)
	if err != nil {
		return models.DefaultSelectedFare, nil
	}
	return fare, nil
}

// SetSelectedFare persists the selected fare type.
func (s *SQLiteStore) SetSelectedFare(ctx context.Context, fare models.FareType) error {
	if !fare.Valid() {
		return fmt.Errorf("unknown fare type: %q", fare)
	}
	if _, err := s.db.ExecContext(ctx, upsertPreference, models.KeySelectedFare, string(fare)); err != nil {
		return fmt.Errorf("failed to save selected fare: %w", err)
	}
	return nil
}

// GetVersion returns the recorded app version, or "" if none was recorded.
func (s *SQLiteStore) GetVersion(ctx context.Context) (string, error) {
	value, _, err := s.getPreference(ctx, models.KeyVersion)
	return value, err
}

// SetVersion records the running app version.
func (s *SQLiteStore) SetVersion(ctx context.Context, version string) error {
	if _, err := s.db.ExecContext(ctx, upsertPreference, models.KeyVersion, version); err != nil {
		return fmt.Errorf("failed to save version: %w", err)
	}
	return nil
}

func (s *SQLiteStore) getPreference(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get preference %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) loadPreferences(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM preferences")
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate preferences: %w", err)
	}
	return values, nil
}

// decimalValue parses the persisted value for key, or its default if absent.
func decimalValue(values map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := values[key]
	if !ok {
		raw, _ = models.DefaultValue(key)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid value for preference %s: %q: %w", key, raw, err)
	}
	return d, nil
}
