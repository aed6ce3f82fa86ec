package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/lagiland/scoreboard/internal/domain/model"
	"github.com/lagiland/scoreboard/pkg/logger"
)

// contestantRow is the persisted shape. The nested rating structures travel
// as opaque JSON payloads rather than flattened columns.
type contestantRow struct {
	ID         string         `gorm:"type:uuid;primaryKey"`
	Name       string         `gorm:"not null"`
	EntryCode  string         `gorm:"column:entry_code;not null"`
	Category   string         `gorm:"not null"`
	General    datatypes.JSON `gorm:"type:jsonb"`
	Specific   datatypes.JSON `gorm:"type:jsonb"`
	Social     datatypes.JSON `gorm:"type:jsonb"`
	TotalScore float64        `gorm:"column:total_score;not null"`
	AIFeedback string         `gorm:"column:ai_feedback"`
	CreatedAt  time.Time      `gorm:"index:idx_contestants_created_at,sort:desc"`
}

func (contestantRow) TableName() string {
	return "contestants"
}

// BeforeCreate assigns the store-side identity.
func (r *contestantRow) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// GormStore implements Store on top of a gorm-managed database.
type GormStore struct {
	db  *gorm.DB
	log logger.Logger
}

// GormOption applies a configuration option to the GormStore.
type GormOption func(*GormStore)

// WithLogger sets a custom logger for the store.
func WithLogger(log logger.Logger) GormOption {
	return func(s *GormStore) {
		if log != nil {
			s.log = log
		}
	}
}

// Open connects to Postgres with the given DSN.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", errors.Join(ErrStore, err))
	}
	return db, nil
}

// NewGormStore wraps db as a contestant Store and migrates the table.
func NewGormStore(db *gorm.DB, opts ...GormOption) (*GormStore, error) {
	s := &GormStore{db: db}
	for _, opt := range opts {
		opt(s)
	}
	if err := db.AutoMigrate(&contestantRow{}); err != nil {
		return nil, fmt.Errorf("migrate contestants: %w", errors.Join(ErrStore, err))
	}
	return s, nil
}

// Create inserts a new row and returns the store-assigned id.
func (s *GormStore) Create(ctx context.Context, c model.Contestant) (string, error) {
	row, err := toRow(c)
	if err != nil {
		return "", fmt.Errorf("encode contestant: %w", errors.Join(ErrStore, err))
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		if s.log != nil {
			s.log.Error(ctx, "contestant insert failed",
				logger.String("entryCode", c.EntryCode),
				logger.Error(err),
			)
		}
		return "", fmt.Errorf("create contestant: %w", errors.Join(ErrStore, err))
	}
	return row.ID, nil
}

// List returns all rows, most recently created first.
func (s *GormStore) List(ctx context.Context) ([]model.Contestant, error) {
	var rows []contestantRow
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list contestants: %w", errors.Join(ErrStore, err))
	}

	out := make([]model.Contestant, 0, len(rows))
	for _, row := range rows {
		c, err := fromRow(row)
		if err != nil {
			return nil, fmt.Errorf("decode contestant %s: %w", row.ID, errors.Join(ErrStore, err))
		}
		out = append(out, c)
	}
	return out, nil
}

// Delete removes exactly one row by id.
func (s *GormStore) Delete(ctx context.Context, id string) error {
	tx := s.db.WithContext(ctx).Where("id = ?", id).Delete(&contestantRow{})
	if tx.Error != nil {
		return fmt.Errorf("delete contestant %s: %w", id, errors.Join(ErrStore, tx.Error))
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("delete contestant %s: %w", id, ErrNotFound)
	}
	return nil
}

// Count returns the number of persisted contestants.
func (s *GormStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&contestantRow{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count contestants: %w", errors.Join(ErrStore, err))
	}
	return n, nil
}

func toRow(c model.Contestant) (*contestantRow, error) {
	general, err := json.Marshal(c.General)
	if err != nil {
		return nil, err
	}
	specific, err := json.Marshal(c.Specific)
	if err != nil {
		return nil, err
	}
	social, err := json.Marshal(c.Social)
	if err != nil {
		return nil, err
	}
	return &contestantRow{
		Name:       c.Name,
		EntryCode:  c.EntryCode,
		Category:   string(c.Category),
		General:    general,
		Specific:   specific,
		Social:     social,
		TotalScore: c.TotalScore,
		AIFeedback: c.AIFeedback,
	}, nil
}

func fromRow(row contestantRow) (model.Contestant, error) {
	c := model.Contestant{
		ID:         row.ID,
		Name:       row.Name,
		EntryCode:  row.EntryCode,
		Category:   model.Category(row.Category),
		TotalScore: row.TotalScore,
		AIFeedback: row.AIFeedback,
		Timestamp:  row.CreatedAt.UnixMilli(),
	}
	if err := json.Unmarshal(row.General, &c.General); err != nil {
		return model.Contestant{}, err
	}
	if err := json.Unmarshal(row.Specific, &c.Specific); err != nil {
		return model.Contestant{}, err
	}
	if err := json.Unmarshal(row.Social, &c.Social); err != nil {
		return model.Contestant{}, err
	}
	return c, nil
}
