package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/edusync/statesync/internal/config"
	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/internal/mock"
	"github.com/edusync/statesync/internal/store"
	"github.com/edusync/statesync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.StructuredConfig {
	return &config.StructuredConfig{
		Sync: config.Sync{
			BatchSize:               config.DefaultBatchSize,
			PullLimit:               config.DefaultPullLimit,
			PullMaxLimit:            config.DefaultPullMaxLimit,
			MaxConflictsPerResponse: config.DefaultMaxConflictsPerResponse,
			ConflictRetentionDays:   config.DefaultConflictRetentionDays,
			HistoryRetentionDays:    config.DefaultHistoryRetentionDays,
			DeltaSyncEnabled:        true,
			AutoResolveEnabled:      true,
			LiveSyncEnabled:         true,
		},
		Workers: config.Workers{
			SweepBatchSize: config.DefaultSweepBatchSize,
		},
	}
}

func testAuth() models.AuthContext {
	return models.AuthContext{
		UserID:   "user-1",
		TenantID: "tenant-1",
		DeviceID: "device-a",
	}
}

func raw(s string) models.FieldValue {
	return models.FieldValue{Value: json.RawMessage(s)}
}

func newTestDeltaSvc(t *testing.T, ctrl *gomock.Controller) (DeltaManager, *mock.MockEntityRepository, *mock.MockHistoryRepository) {
	t.Helper()

	entities := mock.NewMockEntityRepository(ctrl)
	history := mock.NewMockHistoryRepository(ctrl)
	log := logger.Nop()

	return NewDeltaService(entities, history, testConfig(), log), entities, history
}

func TestDeltaService_FeatureDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entities := mock.NewMockEntityRepository(ctrl)
	history := mock.NewMockHistoryRepository(ctrl)
	cfg := testConfig()
	cfg.Sync.DeltaSyncEnabled = false

	svc := NewDeltaService(entities, history, cfg, logger.Nop())

	_, err := svc.ComputeDelta(context.Background(), testAuth(), models.DeltaRequest{
		EntityType: models.EntityTypeProgress,
		EntityID:   "p-1",
	})
	assert.ErrorIs(t, err, ErrFeatureDisabled)
}

func TestDeltaService_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestDeltaSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.ComputeDelta(ctx, testAuth(), models.DeltaRequest{
		EntityType: "homework",
		EntityID:   "p-1",
	})
	assert.ErrorIs(t, err, ErrUnknownEntityType)

	_, err = svc.ComputeDelta(ctx, testAuth(), models.DeltaRequest{
		EntityType: models.EntityTypeProgress,
	})
	assert.ErrorIs(t, err, ErrEmptyEntityID)
}

func TestDeltaService_EntityMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, entities, _ := newTestDeltaSvc(t, ctrl)
	ctx := context.Background()

	entities.EXPECT().
		GetEntity(ctx, gomock.Any()).
		Return(models.EntityRecord{}, store.ErrEntityNotFound)

	result, err := svc.ComputeDelta(ctx, testAuth(), models.DeltaRequest{
		EntityType:   models.EntityTypeProgress,
		EntityID:     "p-1",
		ClientFields: models.FieldMap{"score": raw(`10`)},
	})
	require.NoError(t, err)

	assert.False(t, result.HasConflict)
	assert.Equal(t, int64(0), result.ServerVersion)
	require.Len(t, result.FieldDeltas, 1)
	assert.False(t, result.FieldDeltas[0].HasConflict)
}

func TestDeltaService_ClientIsCurrent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, entities, _ := newTestDeltaSvc(t, ctrl)
	ctx := context.Background()

	entities.EXPECT().
		GetEntity(ctx, gomock.Any()).
		Return(models.EntityRecord{
			Version: 4,
			Fields:  models.FieldMap{"score": raw(`10`)},
		}, nil)

	// values differ, but the client saw the latest version: this is a
	// local edit, not a conflict
	result, err := svc.ComputeDelta(ctx, testAuth(), models.DeltaRequest{
		EntityType:    models.EntityTypeProgress,
		EntityID:      "p-1",
		ClientVersion: 4,
		ClientFields:  models.FieldMap{"score": raw(`20`)},
	})
	require.NoError(t, err)

	assert.False(t, result.HasConflict)
	assert.Equal(t, int64(4), result.ServerVersion)
}

func TestDeltaService_ConflictDetection(t *testing.T) {
	serverFields := models.FieldMap{
		"score":  raw(`10`),
		"streak": raw(`3`),
		"theme":  raw(`"dark"`),
	}

	tests := []struct {
		name          string
		clientFields  models.FieldMap
		serverChanged map[string]struct{}
		wantConflicts []string
	}{
		{
			name:          "both changed same field to different values",
			clientFields:  models.FieldMap{"score": raw(`20`)},
			serverChanged: map[string]struct{}{"score": {}},
			wantConflicts: []string{"score"},
		},
		{
			name:          "client-only edit is not a conflict",
			clientFields:  models.FieldMap{"streak": raw(`4`)},
			serverChanged: map[string]struct{}{"score": {}},
			wantConflicts: nil,
		},
		{
			name:          "both arrived at the same value",
			clientFields:  models.FieldMap{"score": raw(`10`)},
			serverChanged: map[string]struct{}{"score": {}},
			wantConflicts: nil,
		},
		{
			name: "mixed edit conflicts only on the contested field",
			clientFields: models.FieldMap{
				"score": raw(`20`),
				"theme": raw(`"light"`),
			},
			serverChanged: map[string]struct{}{"score": {}},
			wantConflicts: []string{"score"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, entities, history := newTestDeltaSvc(t, ctrl)
			ctx := context.Background()

			entities.EXPECT().
				GetEntity(ctx, gomock.Any()).
				Return(models.EntityRecord{Version: 7, Fields: serverFields}, nil)
			history.EXPECT().
				FieldsChangedSince(ctx, gomock.Any(), int64(5)).
				Return(tt.serverChanged, nil)

			result, err := svc.ComputeDelta(ctx, testAuth(), models.DeltaRequest{
				EntityType:    models.EntityTypeProgress,
				EntityID:      "p-1",
				ClientVersion: 5,
				ClientFields:  tt.clientFields,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantConflicts, result.ConflictingFields())
			assert.Equal(t, len(tt.wantConflicts) > 0, result.HasConflict)
		})
	}
}
