package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/halicz/shopfloor/internal/model"
)

// LabelConfigRepo stores the label layout document.  The field list is a
// JSON document column on the configuration row, matching the designer's
// save shape.  Exactly one configuration is active: readers load the most
// recently created row and saves overwrite it in place.
type LabelConfigRepo struct{ DB *sql.DB }

func NewLabelConfigRepo(db *sql.DB) *LabelConfigRepo { return &LabelConfigRepo{DB: db} }

const configColumns = "id,width_mm,height_mm,orientation,company_name,logo_url,fields,created_at,updated_at"

// GetActive loads the active configuration.  Returns ErrConfigNotFound when
// no row exists yet.
func (r *LabelConfigRepo) GetActive(ctx context.Context) (model.LabelConfig, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+configColumns+" FROM label_configs ORDER BY created_at DESC, id DESC LIMIT 1")
	cfg, err := scanConfig(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.LabelConfig{}, ErrConfigNotFound
		}
		return model.LabelConfig{}, err
	}
	return cfg, nil
}

// Save overwrites the active configuration, creating the row on first use.
// The update targets the same row GetActive reads so every consumer
// observes the edit on its next fetch or change notification.
func (r *LabelConfigRepo) Save(ctx context.Context, cfg model.LabelConfig) (model.LabelConfig, error) {
	fields, err := json.Marshal(cfg.Fields)
	if err != nil {
		return model.LabelConfig{}, fmt.Errorf("marshal fields: %w", err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.LabelConfig{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var id uint64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM label_configs ORDER BY created_at DESC, id DESC LIMIT 1 FOR UPDATE").Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, insErr := tx.ExecContext(ctx,
			`INSERT INTO label_configs (width_mm, height_mm, orientation, company_name, logo_url, fields)
			 VALUES (?,?,?,?,?,?)`,
			cfg.WidthMM, cfg.HeightMM, cfg.Orientation, cfg.CompanyName, cfg.LogoURL, fields)
		if insErr != nil {
			return model.LabelConfig{}, insErr
		}
		newID, insErr := res.LastInsertId()
		if insErr != nil {
			return model.LabelConfig{}, insErr
		}
		id = uint64(newID)
	case err != nil:
		return model.LabelConfig{}, err
	default:
		if _, err = tx.ExecContext(ctx,
			`UPDATE label_configs
			 SET width_mm=?, height_mm=?, orientation=?, company_name=?, logo_url=?, fields=?
			 WHERE id=?`,
			cfg.WidthMM, cfg.HeightMM, cfg.Orientation, cfg.CompanyName, cfg.LogoURL, fields, id); err != nil {
			return model.LabelConfig{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return model.LabelConfig{}, err
	}
	committed = true

	cfg.ID = id
	return cfg, nil
}

func scanConfig(row *sql.Row) (model.LabelConfig, error) {
	var (
		cfg    model.LabelConfig
		fields []byte
	)
	if err := row.Scan(&cfg.ID, &cfg.WidthMM, &cfg.HeightMM, &cfg.Orientation,
		&cfg.CompanyName, &cfg.LogoURL, &fields, &cfg.CreatedAt, &cfg.UpdatedAt); err != nil {
		return model.LabelConfig{}, err
	}
	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &cfg.Fields); err != nil {
			return model.LabelConfig{}, fmt.Errorf("unmarshal fields: %w", err)
		}
	}
	return cfg, nil
}
