package quoting

import (
	"context"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/identity"
	"github.com/jhoicas/Cotizador-api/internal/domain/quote"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

// SaveInput formulario a guardar. QuoteID vacío crea una cotización nueva.
type SaveInput struct {
	Form     quote.QuoteForm
	QuoteID  string
	TenantID string
}

// SaveResult id canónico guardado y, si aplica, el aviso de anomalía.
type SaveResult struct {
	QuoteID string          `json:"quote_id"`
	Anomaly *entity.Anomaly `json:"anomaly,omitempty"`
}

// SaveUseCase valida, completa la vinculación CRM, arma el payload y lo guarda atómicamente.
type SaveUseCase struct {
	saver     AtomicSaver
	quotes    repository.QuoteRepository
	opps      repository.OpportunityRepository
	cache     *AggregateCache
	anomalies *AnomalyValidator
	forms     *quote.FormValidator
	metrics   Metrics
	log       *logger.Logger
}

// NewSaveUseCase construye el caso de uso.
func NewSaveUseCase(
	saver AtomicSaver,
	quotes repository.QuoteRepository,
	opps repository.OpportunityRepository,
	cache *AggregateCache,
	anomalies *AnomalyValidator,
	forms *quote.FormValidator,
	metrics Metrics,
	log *logger.Logger,
) *SaveUseCase {
	return &SaveUseCase{
		saver:     saver,
		quotes:    quotes,
		opps:      opps,
		cache:     cache,
		anomalies: anomalies,
		forms:     forms,
		metrics:   orNop(metrics),
		log:       log,
	}
}

// Save guarda el formulario. Un quoteID canónico debe existir y pertenecer a TenantID.
// Un fallo del procedimiento no invalida ningún caché.
// Tras el éxito invalida el agregado y encadena la validación de anomalías, cuyo fallo nunca
// hace fallar el guardado.
func (uc *SaveUseCase) Save(ctx context.Context, in SaveInput) (*SaveResult, error) {
	if err := uc.forms.Validate(in.Form); err != nil {
		uc.metrics.SaveResult("invalid")
		return nil, err
	}
	if identity.IsCanonical(in.QuoteID) {
		if err := uc.checkOwner(ctx, in.QuoteID, in.TenantID); err != nil {
			uc.metrics.SaveResult("rejected")
			return nil, err
		}
	}

	form := uc.backfillCRM(ctx, in.Form)
	payload := quote.BuildPayload(form, in.QuoteID, in.TenantID)

	id, err := uc.saver.SaveQuoteAtomic(ctx, payload)
	if err != nil {
		uc.metrics.SaveResult("error")
		uc.log.Error().Err(err).Str("quote_id", in.QuoteID).Str("tenant_id", in.TenantID).Msg("guardado atómico fallido")
		return nil, err
	}

	uc.cache.InvalidateQuote(id)
	if in.QuoteID != "" && in.QuoteID != id {
		uc.cache.InvalidateQuote(in.QuoteID)
	}
	uc.metrics.SaveResult("ok")
	uc.log.Info().
		Str("quote_id", id).
		Str("tenant_id", in.TenantID).
		Int("items", len(payload.Items)).
		Int("options", len(payload.Options)).
		Msg("cotización guardada")

	return &SaveResult{QuoteID: id, Anomaly: uc.anomalies.Validate(ctx, id, in.TenantID)}, nil
}

// backfillCRM completa cuenta y contacto desde la oportunidad seleccionada cuando faltan.
// Es una espera secuencial dentro del guardado; un fallo de lectura solo se registra.
func (uc *SaveUseCase) backfillCRM(ctx context.Context, f quote.QuoteForm) quote.QuoteForm {
	if !identity.IsCanonical(f.OpportunityID) {
		return f
	}
	needAccount := !identity.IsCanonical(f.AccountID)
	needContact := !identity.IsCanonical(f.ContactID)
	if !needAccount && !needContact {
		return f
	}

	opp, err := uc.opps.GetByID(ctx, f.OpportunityID)
	if err != nil || opp == nil {
		uc.log.Warn().Err(err).Str("opportunity_id", f.OpportunityID).Msg("no se pudo completar la vinculación CRM; se guarda con lo disponible")
		return f
	}
	if needAccount && opp.AccountID != nil {
		f.AccountID = *opp.AccountID
	}
	if needContact && opp.ContactID != nil {
		f.ContactID = *opp.ContactID
	}
	return f
}

// checkOwner verifica que la cotización exista y sea del tenant antes de sobrescribirla.
func (uc *SaveUseCase) checkOwner(ctx context.Context, quoteID, tenantID string) error {
	core, _, ok := uc.cache.Get(quoteID)
	if !ok {
		var err error
		if core, err = uc.quotes.LoadCore(ctx, quoteID); err != nil {
			return err
		}
	}
	if t := core.Quote.TenantID; t != nil && *t != tenantID {
		uc.log.Warn().Str("quote_id", quoteID).Str("tenant_id", tenantID).Msg("guardado sobre cotización de otro tenant rechazado")
		return domain.ErrForbidden
	}
	return nil
}
