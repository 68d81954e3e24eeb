package affectation

import (
	"context"
	"time"

	"github.com/frahmantamala/trackit/internal/core/crud"
	"github.com/frahmantamala/trackit/internal/core/datamodel"
	affectationDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/affectation"
	"github.com/frahmantamala/trackit/internal/core/events"
)

type Service struct {
	*crud.Service[affectationDatamodel.Affectation]
	now func() time.Time
}

func NewService(d crud.Deps) *Service {
	s := &Service{now: time.Now}
	s.Service = crud.New(d, Collection, NewSchema(func() time.Time { return s.now() }))
	return s
}

// SetClock replaces the time source, for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) today() string {
	return s.now().Format(datamodel.DateLayout)
}

// Close sets the end date of a running affectation.
func (s *Service) Close(ctx context.Context, id string, form CloseDTO) (affectationDatamodel.Affectation, error) {
	var item affectationDatamodel.Affectation
	if err := s.Validator.Struct(ctx, &form); err != nil {
		return item, err
	}
	if form.DateFin == "" {
		form.DateFin = s.today()
	}

	if err := s.Client.Client().Post(ctx, s.Client.Path(id, "close"), form, &item); err != nil {
		return item, err
	}

	if item.ID == 0 {
		err := s.Page.Refresh(ctx)
		if err != nil {
			s.Logger().Warn("failed to refresh affectations", "id", id, "error", err)
		}
	} else if err := s.Page.Upsert(ctx, item); err != nil {
		s.Logger().Warn("failed to patch page cache", "resource", Collection, "error", err)
	}
	if err := s.Page.CloseModal(ctx); err != nil {
		s.Logger().Warn("failed to close modal", "resource", Collection, "error", err)
	}

	s.Announce(ctx, events.ActionClosed, id)
	return item, nil
}
