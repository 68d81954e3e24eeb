package postgres

import (
	"errors"
	"time"

	sessionDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/session"
	"github.com/frahmantamala/trackit/internal/session"
	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) session.RepositoryAPI {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(s *sessionDatamodel.Session) error {
	return r.db.Create(s).Error
}

func (r *SessionRepository) GetByID(id string) (*sessionDatamodel.Session, error) {
	var s sessionDatamodel.Session
	err := r.db.Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) UpdateLocale(id, locale string) error {
	return r.db.Model(&sessionDatamodel.Session{}).Where("id = ?", id).Update("locale", locale).Error
}

func (r *SessionRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&sessionDatamodel.Session{}).Error
}

func (r *SessionRepository) DeleteExpired(now time.Time) ([]string, error) {
	var ids []string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&sessionDatamodel.Session{}).Where("expires_at <= ?", now).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return tx.Where("id IN ?", ids).Delete(&sessionDatamodel.Session{}).Error
	})
	return ids, err
}
