package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

func sp(s string) *string { return &s }

// ─── Ensamblado del árbol ────────────────────────────────────────────────────

func TestAssembleProjection(t *testing.T) {
	flat := []projectionRow{
		{optionID: "o1", legID: sp("l1"), chargeID: sp("c1")},
		{optionID: "o1", legID: sp("l1"), chargeID: sp("c2")},
		{optionID: "o1", legID: sp("l2"), chargeID: nil},
		{optionID: "o2", legID: nil, chargeID: nil},
	}
	got := assembleProjection(flat)

	require.Len(t, got, 2)
	assert.Equal(t, "o1", got[0].ID)
	require.Len(t, got[0].Legs, 2)
	assert.Equal(t, []string{"c1", "c2"}, got[0].Legs[0].ChargeIDs)
	assert.Empty(t, got[0].Legs[1].ChargeIDs, "tramo sin cargos")
	assert.Equal(t, "o2", got[1].ID)
	assert.Empty(t, got[1].Legs, "opción sin tramos")
}

func TestAssembleProjection_SinFilas(t *testing.T) {
	assert.Empty(t, assembleProjection(nil))
}

func TestAssembleVersion_RespetaOrdenDeLectura(t *testing.T) {
	v := &entity.QuotationVersion{Options: []entity.VersionOption{{ID: "o1"}, {ID: "o2"}}}
	legs := []entity.OptionLeg{
		{ID: "l1", OptionID: "o1", SortOrder: 1},
		{ID: "l2", OptionID: "o1", SortOrder: 2},
		{ID: "l3", OptionID: "o2", SortOrder: 1},
	}
	charges := []entity.LegCharge{
		{ID: "c1", LegID: "l2"},
		{ID: "c2", LegID: "l3"},
		{ID: "c3", LegID: "l3"},
	}
	assembleVersion(v, legs, charges)

	require.Len(t, v.Options[0].Legs, 2)
	assert.Equal(t, "l1", v.Options[0].Legs[0].ID)
	assert.Empty(t, v.Options[0].Legs[0].Charges)
	require.Len(t, v.Options[0].Legs[1].Charges, 1)
	require.Len(t, v.Options[1].Legs, 1)
	assert.Equal(t, "c2", v.Options[1].Legs[0].Charges[0].ID)
	assert.Equal(t, "c3", v.Options[1].Legs[0].Charges[1].ID)
}

// ─── Lecturas puntuales ──────────────────────────────────────────────────────

func TestLoadCore_NoExisteEsNotFound(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}
	_, err := NewQuoteRepository(q, nil).LoadCore(context.Background(), "q-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoadLatestVersion_SinVersionesEsNil(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}
	repo := NewQuoteRepository(q, nil)

	v, err := repo.LoadLatestVersion(context.Background(), "q-1")
	require.NoError(t, err)
	assert.Nil(t, v)

	p, err := repo.LoadLatestVersionProjection(context.Background(), "q-1")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestLoadLatestVersion_ErrorDeLecturaSePropaga(t *testing.T) {
	boom := errors.New("timeout")
	q := &fakeQuerier{row: fakeRow{err: boom}}
	_, err := NewQuoteRepository(q, nil).LoadLatestVersion(context.Background(), "q-1")
	assert.ErrorIs(t, err, boom)
}

// ─── Log de anomalías ────────────────────────────────────────────────────────

func TestAppendAnomaly(t *testing.T) {
	q := &fakeQuerier{tag: pgconn.NewCommandTag("UPDATE 1")}
	a := entity.Anomaly{Type: entity.AnomalyTypeEmptyAggregate, Severity: entity.SeverityWarning, DetectedAt: time.Now()}

	require.NoError(t, NewQuoteRepository(q, nil).AppendAnomaly(context.Background(), "v-1", a))
	assert.Equal(t, appendAnomalySQL, q.lastSQL)
	require.Len(t, q.lastArgs, 2)
	assert.Equal(t, "v-1", q.lastArgs[0])
	assert.Contains(t, string(q.lastArgs[1].([]byte)), entity.AnomalyTypeEmptyAggregate)
}

func TestAppendAnomaly_VersionInexistente(t *testing.T) {
	q := &fakeQuerier{tag: pgconn.NewCommandTag("UPDATE 0")}
	err := NewQuoteRepository(q, nil).AppendAnomaly(context.Background(), "v-x", entity.Anomaly{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
