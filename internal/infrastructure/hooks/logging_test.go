package hooks_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/probaar-api/internal/domain/entity"
	"github.com/jhoicas/probaar-api/internal/infrastructure/hooks"
)

func TestLogging_SetupPlace(t *testing.T) {
	var buf bytes.Buffer
	h := hooks.NewLogging(zerolog.New(&buf))
	org := int64(4)

	require.NoError(t, h.SetupPlace(context.Background(), &entity.Place{ID: 9, OrgID: &org, Type: entity.PlaceStore}))
	assert.Contains(t, buf.String(), `"place_id":9`)
	assert.Contains(t, buf.String(), `"org_id":4`)
}

func TestLogging_UnitSaved(t *testing.T) {
	var buf bytes.Buffer
	h := hooks.NewLogging(zerolog.New(&buf).Level(zerolog.DebugLevel))

	require.NoError(t, h.UnitSaved(context.Background(), &entity.Unit{ID: 2, ShortName: "kg"}))
	assert.Contains(t, buf.String(), `"short_name":"kg"`)
}

func TestLogging_Job(t *testing.T) {
	var buf bytes.Buffer
	h := hooks.NewLogging(zerolog.New(&buf))

	require.NoError(t, h.Job(entity.JobRebuildIndex)(context.Background()))
	assert.Contains(t, buf.String(), `"job":"rebuild_index"`)
}
