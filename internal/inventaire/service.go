package inventaire

import (
	"context"
	"io"
	"strings"
	"time"

	errors "github.com/frahmantamala/trackit/internal"
	"github.com/frahmantamala/trackit/internal/apiclient"
	"github.com/frahmantamala/trackit/internal/core/crud"
	"github.com/frahmantamala/trackit/internal/core/datamodel"
	inventaireDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/inventaire"
	materielDatamodel "github.com/frahmantamala/trackit/internal/core/datamodel/materiel"
	"github.com/frahmantamala/trackit/internal/core/events"
	"github.com/frahmantamala/trackit/internal/core/locale"
	"github.com/frahmantamala/trackit/internal/core/pagecache"
	"github.com/frahmantamala/trackit/internal/export"
	"github.com/frahmantamala/trackit/internal/materiel"
)

type Service struct {
	*crud.Service[inventaireDatamodel.Inventaire]
	store  pagecache.Store
	bundle *locale.Bundle
	now    func() time.Time
}

func NewService(d crud.Deps) *Service {
	return &Service{
		Service: crud.New(d, Collection, Schema),
		store:   d.Store,
		bundle:  d.Locale,
		now:     time.Now,
	}
}

// SetClock replaces the time source, for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Start opens a new stock-take on the backend.
func (s *Service) Start(ctx context.Context, form StartDTO) (inventaireDatamodel.Inventaire, error) {
	var item inventaireDatamodel.Inventaire
	if err := s.Validator.Struct(ctx, &form); err != nil {
		return item, err
	}
	if form.Date == "" {
		form.Date = s.now().Format(datamodel.DateLayout)
	}
	if err := s.Client.Client().Post(ctx, s.Client.Path("start"), form, &item); err != nil {
		return item, err
	}
	s.patch(ctx, item)
	s.Announce(ctx, events.ActionStarted, item.Key())
	return item, nil
}

func (s *Service) sheetKey(ctx context.Context, id string) string {
	return pagecache.Key(errors.SessionIDFromContext(ctx), Collection, id, "count")
}

// Sheet returns the count sheet of inventory id, empty when nothing was
// scanned yet.
func (s *Service) Sheet(ctx context.Context, id string) (*CountSheet, error) {
	sheet, ok, err := pagecache.Load[CountSheet](ctx, s.store, s.sheetKey(ctx, id))
	if err != nil {
		return nil, errors.NewInternalError("failed to load count sheet", err)
	}
	if !ok {
		sheet = CountSheet{InventaireID: id}
	}
	if sheet.Materiels == nil {
		sheet.Materiels = []materielDatamodel.Materiel{}
	}
	return &sheet, nil
}

func (s *Service) saveSheet(ctx context.Context, sheet *CountSheet) error {
	sheet.UpdatedAt = s.now()
	if err := pagecache.Save(ctx, s.store, s.sheetKey(ctx, sheet.InventaireID), sheet); err != nil {
		return errors.NewInternalError("failed to save count sheet", err)
	}
	return nil
}

// Scan adds one serial number to the sheet after checking the equipment
// exists. Scanning the same unit twice counts it once.
func (s *Service) Scan(ctx context.Context, id string, form ScanDTO) (*CountSheet, error) {
	form.NumeroSerie = strings.TrimSpace(form.NumeroSerie)
	if err := s.Validator.Struct(ctx, &form); err != nil {
		return nil, err
	}
	sheet, err := s.Sheet(ctx, id)
	if err != nil {
		return nil, err
	}
	if sheet.index(form.NumeroSerie) >= 0 {
		return sheet, nil
	}

	var m materielDatamodel.Materiel
	if err := s.Client.Client().Get(ctx, apiclient.JoinPath(materiel.Collection, form.NumeroSerie), nil, &m); err != nil {
		return nil, err
	}
	if m.NumeroSerie == "" {
		m.NumeroSerie = form.NumeroSerie
	}

	sheet.Materiels = append(sheet.Materiels, m)
	if err := s.saveSheet(ctx, sheet); err != nil {
		return nil, err
	}
	return sheet, nil
}

func (s *Service) Unscan(ctx context.Context, id, serial string) (*CountSheet, error) {
	sheet, err := s.Sheet(ctx, id)
	if err != nil {
		return nil, err
	}
	i := sheet.index(serial)
	if i < 0 {
		return sheet, nil
	}
	sheet.Materiels = append(sheet.Materiels[:i], sheet.Materiels[i+1:]...)
	if err := s.saveSheet(ctx, sheet); err != nil {
		return nil, err
	}
	return sheet, nil
}

// Validate submits the count sheet and closes the inventory.
func (s *Service) Validate(ctx context.Context, id string) (inventaireDatamodel.Inventaire, error) {
	var item inventaireDatamodel.Inventaire
	sheet, err := s.Sheet(ctx, id)
	if err != nil {
		return item, err
	}
	if len(sheet.Materiels) == 0 {
		return item, errors.NewEmptyCountError()
	}

	body := ValidateDTO{Materiels: sheet.Serials()}
	if err := s.Client.Client().Post(ctx, s.Client.Path(id, "validate"), body, &item); err != nil {
		return item, err
	}

	if err := s.store.Delete(ctx, s.sheetKey(ctx, id)); err != nil {
		s.Logger().Warn("failed to clear count sheet", "id", id, "error", err)
	}
	s.patch(ctx, item)
	s.Announce(ctx, events.ActionValidated, id)
	s.Logger().Info("inventory validated", "id", id, "counted", len(body.Materiels))
	return item, nil
}

func (s *Service) patch(ctx context.Context, item inventaireDatamodel.Inventaire) {
	var err error
	if item.ID == 0 {
		err = s.Page.Refresh(ctx)
	} else {
		err = s.Page.Upsert(ctx, item)
	}
	if err != nil {
		s.Logger().Warn("failed to update page after mutation", "resource", Collection, "error", err)
	}
	if err := s.Page.CloseModal(ctx); err != nil {
		s.Logger().Warn("failed to close modal", "resource", Collection, "error", err)
	}
}

// Export writes one inventory as XLSX. A validated inventory lists what
// the backend recorded, an open one what this session has scanned.
func (s *Service) Export(ctx context.Context, id string, w io.Writer) error {
	inv, err := s.Client.Get(ctx, id)
	if err != nil {
		return err
	}
	counted := inv.Materiels
	if !inv.Valide {
		sheet, err := s.Sheet(ctx, id)
		if err != nil {
			return err
		}
		counted = sheet.Materiels
	}

	return export.Write(w, s.bundle, errors.LocaleFromContext(ctx), export.Sheet[materielDatamodel.Materiel]{
		Name: "inventaire",
		Fields: []export.Field{
			{Label: "salle", Value: salleLabel(inv)},
			{Label: "responsable", Value: inv.Responsable},
			{Label: "date", Value: inv.Date.String()},
			{Label: "compte", Value: len(counted)},
		},
		Columns: materiel.Columns,
		Rows:    counted,
	})
}

func (s *Service) Filename(id string) string {
	return export.Filename(Collection+"-"+id, s.now().Format(datamodel.DateLayout))
}
