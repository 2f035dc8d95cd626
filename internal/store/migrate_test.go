package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ruminaider/sso-profiles/internal/legacy"
	"github.com/ruminaider/sso-profiles/internal/profile"
	"github.com/ruminaider/sso-profiles/internal/storage"
	"github.com/ruminaider/sso-profiles/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nestedDoc = `{
  "mysso": {
    "awsProfilesByAccount": {
      "Root": {"awsProfilesByName": {"Admin": {"url": "https://mysso.awsapps.com/start/#/root"}}},
      "Dev": {"awsProfilesByName": {
        "ReadOnly": {"url": "https://mysso.awsapps.com/start/#/dev-ro"},
        "Admin": {"url": "https://mysso.awsapps.com/start/#/dev"}
      }},
      "Prod": {"awsProfilesByName": {"Admin": {"url": "https://mysso.awsapps.com/start/#/prod"}}}
    }
  }
}`

const flatLegacyDoc = `{
  "mysso - Prod - Admin": {
    "portalDomain": "mysso",
    "accountName": "Prod",
    "name": "Admin",
    "url": "https://mysso.awsapps.com/start/#/prod",
    "color": "red",
    "favorite": true
  },
  "mysso - Stage - Admin": {
    "portalDomain": "mysso",
    "accountName": "Stage",
    "name": "Admin",
    "url": "https://mysso.awsapps.com/start/#/saml/custom/555%20%28Stage%29/abc"
  },
  "mysso - 111 - ReadOnly": {
    "portalDomain": "mysso",
    "accountId": "111",
    "accountName": "Dev",
    "profileName": "ReadOnly",
    "url": "https://mysso.awsapps.com/start/#/dev-ro",
    "color": "green",
    "favorite": false
  }
}`

func TestMigrate_NestedLayout(t *testing.T) {
	ctx := context.Background()
	s, backend := newStore(t, storage.Document{legacy.ByDomainKey: json.RawMessage(nestedDoc)})

	report, err := s.Migrate(ctx)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, []legacy.Schema{legacy.SchemaV0Nested}, report.Schemas)
	assert.Len(t, report.Migrated, 4)
	assert.Empty(t, report.Rejected)

	doc, err := backend.Get(ctx, nil)
	require.NoError(t, err)
	assert.False(t, doc.Has(legacy.ByDomainKey))

	coll := storedCollection(t, backend)
	require.Len(t, coll, 4)
	assert.Equal(t, profile.Blue, coll["mysso - Dev - Admin"].Color)
	assert.Equal(t, profile.Turquoise, coll["mysso - Dev - ReadOnly"].Color)
	assert.Equal(t, profile.Green, coll["mysso - Prod - Admin"].Color)
	assert.Equal(t, profile.Yellow, coll["mysso - Root - Admin"].Color)
	for id, p := range coll {
		assert.Equal(t, "mysso", p.PortalDomain, id)
		assert.False(t, p.IsFavorite(), id)
	}

	again, err := s.Migrate(ctx)
	require.NoError(t, err)
	assert.Nil(t, again)
	assert.Equal(t, coll, storedCollection(t, backend))
}

func TestMigrate_FlatLegacyKeys(t *testing.T) {
	ctx := context.Background()
	s, backend := newStore(t, storage.Document{legacy.ProfilesKey: json.RawMessage(flatLegacyDoc)})

	all, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	coll := storedCollection(t, backend)
	require.Len(t, coll, 3)

	prod := coll["mysso - Prod - Admin"]
	assert.Equal(t, "Admin", prod.ProfileName)
	assert.Equal(t, profile.Red, prod.Color)
	assert.True(t, prod.IsFavorite())

	stage, ok := coll["mysso - 555 - Admin"]
	require.True(t, ok, "account id recovered from the legacy link")
	assert.Equal(t, "Stage", stage.AccountName)
	assert.NotEmpty(t, stage.Color)
	assert.NotContains(t, coll, "mysso - Stage - Admin")

	dev := coll["mysso - 111 - ReadOnly"]
	assert.Equal(t, profile.Green, dev.Color)

	doc, err := backend.Get(ctx, nil)
	require.NoError(t, err)
	assert.NotContains(t, string(doc[legacy.ProfilesKey]), `"name"`)

	report, err := s.Migrate(ctx)
	require.NoError(t, err)
	assert.Nil(t, report)
}

func TestMigrate_BothLayouts(t *testing.T) {
	ctx := context.Background()
	s, backend := newStore(t, storage.Document{
		legacy.ByDomainKey: json.RawMessage(nestedDoc),
		legacy.ProfilesKey: json.RawMessage(flatLegacyDoc),
	})

	report, err := s.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, []legacy.Schema{legacy.SchemaV0Nested, legacy.SchemaV1LegacyKeys}, report.Schemas)

	coll := storedCollection(t, backend)
	// "mysso - Prod - Admin" appears in both layouts and is stored once,
	// keeping the preferences of the flat record. The nested Dev ReadOnly
	// record folds into the one that already knows its account id.
	assert.Len(t, coll, 5)
	assert.Equal(t, profile.Red, coll["mysso - Prod - Admin"].Color)
	assert.True(t, coll["mysso - Prod - Admin"].IsFavorite())
	assert.NotContains(t, coll, "mysso - Dev - ReadOnly")
	assert.Equal(t, profile.Green, coll["mysso - 111 - ReadOnly"].Color)
}

func TestMigrate_RunsBeforeReconcile(t *testing.T) {
	ctx := context.Background()
	s, backend := newStore(t, storage.Document{legacy.ByDomainKey: json.RawMessage(nestedDoc)})

	stored, err := s.ReconcileOne(ctx, profile.Profile{
		PortalDomain: "mysso",
		AccountID:    "222",
		AccountName:  "Prod",
		ProfileName:  "Admin",
		URL:          "https://mysso.awsapps.com/start/#/prod-new",
	})
	require.NoError(t, err)

	assert.Equal(t, profile.Green, stored.Color, "color of the migrated record")
	coll := storedCollection(t, backend)
	assert.Len(t, coll, 4)
	assert.NotContains(t, coll, "mysso - Prod - Admin")
}

func TestMigrate_MalformedLegacyRecordsAreDropped(t *testing.T) {
	ctx := context.Background()
	s, backend := newStore(t, storage.Document{legacy.ProfilesKey: json.RawMessage(`{
		"junk": {"portalDomain": "mysso", "url": "https://x"},
		"mysso - Dev - Admin": {"portalDomain": "mysso", "accountName": "Dev", "name": "Admin", "url": "https://y"}
	}`)})

	report, err := s.Migrate(ctx)
	require.NoError(t, err)
	require.Len(t, report.Rejected, 1)
	assert.ErrorIs(t, report.Rejected[0], profile.ErrMalformed)

	coll := storedCollection(t, backend)
	assert.Len(t, coll, 1)
	assert.Contains(t, coll, "mysso - Dev - Admin")
}

// failingRemove lets writes through but cannot delete keys.
type failingRemove struct {
	storage.Backend
}

func (failingRemove) Remove(context.Context, ...string) error {
	return errDiskGone
}

func TestMigrate_InterruptedCleanupIsRetried(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory(storage.Document{legacy.ByDomainKey: json.RawMessage(nestedDoc)})

	_, err := store.New(failingRemove{mem}, quiet).Migrate(ctx)
	var unavailable *store.StorageUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, "migrate cleanup", unavailable.Op)

	// The collection was written but the old key survived.
	partial := storedCollection(t, mem)
	require.Len(t, partial, 4)

	s := store.New(mem, quiet)
	report, err := s.Migrate(ctx)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, partial, storedCollection(t, mem))

	doc, err := mem.Get(ctx, nil)
	require.NoError(t, err)
	assert.False(t, doc.Has(legacy.ByDomainKey))
}
