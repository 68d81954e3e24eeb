package materiel

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	errors "github.com/frahmantamala/trackit/internal"
	"github.com/frahmantamala/trackit/internal/apiclient"
	"github.com/frahmantamala/trackit/internal/core/crud"
	"github.com/frahmantamala/trackit/internal/core/datamodel"
	materielDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/materiel"
	"github.com/frahmantamala/trackit/internal/core/events"
	"github.com/frahmantamala/trackit/internal/core/locale"
	"github.com/frahmantamala/trackit/internal/export"
)

type Service struct {
	*crud.Service[materielDatamodel.Materiel]
	bundle *locale.Bundle
	now    func() time.Time
}

func NewService(d crud.Deps) *Service {
	return &Service{
		Service: crud.New(d, Collection, Schema),
		bundle:  d.Locale,
		now:     time.Now,
	}
}

// SetClock replaces the time source, for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) today() string {
	return s.now().Format(datamodel.DateLayout)
}

// BulkAdd posts one equipment per row, in order. Rows that fail are
// reported in the result and in a single summary toast; a refused session
// stops the run.
func (s *Service) BulkAdd(ctx context.Context, form BulkDTO) (*BulkResult, error) {
	trimSerials(&form)
	if err := s.Validator.Struct(ctx, &form); err != nil {
		return nil, err
	}
	if err := duplicateSerials(form.Rows); err != nil {
		return nil, err
	}

	result := &BulkResult{
		Created: []materielDatamodel.Materiel{},
		Failed:  []BulkFailure{},
		Total:   len(form.Rows),
	}
	quiet := apiclient.Quiet(ctx)
	today := s.today()
	lang := errors.LocaleFromContext(ctx)

	for i := range form.Rows {
		payload := form.Materiel(i, today)
		item, err := s.Client.Create(quiet, payload)
		if err != nil {
			appErr, ok := errors.IsAppError(err)
			if !ok {
				appErr = errors.NewInternalError("bulk add failed", err)
			}
			if appErr.Code == errors.ErrCodeSessionExpired {
				s.publishFailure(ctx, appErr)
				return nil, appErr
			}
			s.Logger().Warn("bulk add row failed", "numero_serie", payload.NumeroSerie, "code", appErr.Code)
			result.Failed = append(result.Failed, BulkFailure{
				NumeroSerie: payload.NumeroSerie,
				Code:        string(appErr.Code),
				Message:     s.message(lang, appErr),
			})
			continue
		}
		if item.NumeroSerie == "" {
			item = materielDatamodel.Materiel{
				NumeroSerie: payload.NumeroSerie,
				Marque:      payload.Marque,
				Modele:      payload.Modele,
				Categorie:   payload.Categorie,
				Statut:      materielDatamodel.Status(payload.Statut),
				DateAjout:   datamodel.NewDate(s.now()),
			}
		}
		result.Created = append(result.Created, item)
	}

	if len(result.Created) > 0 {
		if err := s.Page.Upsert(ctx, result.Created...); err != nil {
			s.Logger().Warn("failed to patch page cache", "resource", Collection, "error", err)
		}
		s.AnnounceCount(ctx, events.ActionBulkCreated, "", len(result.Created))
	}
	if len(result.Failed) > 0 {
		serials := make([]string, len(result.Failed))
		for i, f := range result.Failed {
			serials[i] = f.NumeroSerie
		}
		s.publishFailure(ctx, errors.NewBulkPartialError(len(result.Failed), result.Total, serials))
	} else if err := s.Page.CloseModal(ctx); err != nil {
		s.Logger().Warn("failed to close modal", "resource", Collection, "error", err)
	}

	s.Logger().Info("bulk add done", "created", len(result.Created), "failed", len(result.Failed))
	return result, nil
}

func (s *Service) message(lang string, err *errors.AppError) string {
	if s.bundle == nil {
		return err.Message
	}
	return s.bundle.ErrorMessage(lang, err)
}

func (s *Service) publishFailure(ctx context.Context, err *errors.AppError) {
	if s.Publisher() == nil {
		return
	}
	e := events.NewAPIFailedEvent(errors.SessionIDFromContext(ctx), errors.LocaleFromContext(ctx), Collection, "POST", err)
	if perr := s.Publisher().PublishSync(ctx, e); perr != nil {
		s.Logger().Error("failed to publish bulk failure", "error", perr)
	}
}

// Export writes the currently filtered list as an XLSX workbook.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	items, err := s.Page.Matching(ctx)
	if err != nil {
		return err
	}
	return export.Write(w, s.bundle, errors.LocaleFromContext(ctx), export.Sheet[materielDatamodel.Materiel]{
		Name:    Collection,
		Columns: Columns,
		Rows:    items,
	})
}

// Filename is the download name of today's export.
func (s *Service) Filename() string {
	return export.Filename(Collection, s.today())
}

func trimSerials(form *BulkDTO) {
	for i := range form.Rows {
		form.Rows[i].NumeroSerie = strings.TrimSpace(form.Rows[i].NumeroSerie)
	}
}

func duplicateSerials(rows []BulkRowDTO) error {
	seen := make(map[string]bool, len(rows))
	var dups []errors.ValidationError
	for i, row := range rows {
		key := strings.ToUpper(row.NumeroSerie)
		if seen[key] {
			dups = append(dups, errors.ValidationError{
				Field:   "rows[" + strconv.Itoa(i) + "].numero_serie",
				Message: row.NumeroSerie,
				Code:    string(errors.ErrCodeDuplicateSerial),
			})
		}
		seen[key] = true
	}
	if len(dups) > 0 {
		return errors.NewDuplicateSerialError(dups)
	}
	return nil
}
