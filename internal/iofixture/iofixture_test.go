package iofixture_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/evefrontier/fixgen/internal/iofixture"
	"github.com/evefrontier/fixgen/internal/iosource"
	"github.com/evefrontier/fixgen/internal/iotesting"
	"github.com/evefrontier/fixgen/pkg/closure"
	"github.com/evefrontier/fixgen/pkg/errcode"
	"github.com/evefrontier/fixgen/pkg/schema"
	"github.com/evefrontier/fixgen/pkg/starmap"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func buildClosure(
	t *testing.T,
	ds *iosource.Dataset,
	ids ...starmap.ID,
) *closure.Result {
	t.Helper()
	res, err := closure.Build(context.Background(), starmap.NewIDSet(ids...), ds)
	require.NoError(t, err)
	require.NoError(t, res.Check())
	return res
}

func TestMaterialize(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src, err := iosource.Open(ctx, iotesting.ModernDataset(t, dir, iotesting.WithStations()))
	require.NoError(t, err)
	defer src.Close()

	res := buildClosure(t, src,
		iotesting.Nod, iotesting.NodGate, iotesting.Brana,
		iotesting.BranaGate, iotesting.Near)

	out := filepath.Join(dir, "out", "fixture.db")
	m := iofixture.New(false)
	counts, err := m.Materialize(ctx, res, src.Capabilities().Definition(), out)
	require.NoError(t, err)

	assert.Equal(t, int64(5), counts[schema.SolarSystemsTable])
	assert.Equal(t, int64(4), counts[schema.JumpsTable])
	assert.Equal(t, int64(2), counts[schema.PlanetsTable])
	assert.Equal(t, int64(2), counts[schema.MoonsTable])
	assert.Equal(t, int64(2), counts[schema.RegionsTable])
	assert.Equal(t, int64(3), counts[schema.ConstellationsTable])
	assert.Equal(t, int64(1), counts[schema.NpcStationsTable])

	for table, n := range counts {
		assert.Equal(t, n, iotesting.CountRows(t, out, table), table)
	}

	_, err = os.Stat(filepath.Join(dir, "out", ".fixture.db.tmp"))
	assert.True(t, os.IsNotExist(err))

	// A fixture is itself a valid source with the same layout.
	fix, err := iosource.Open(ctx, out)
	require.NoError(t, err)
	defer fix.Close()
	assert.Equal(t,
		src.Capabilities().Definition().Names(),
		fix.Capabilities().Definition().Names())

	again, err := closure.Build(ctx, res.SystemIDs(), fix)
	require.NoError(t, err)
	assert.True(t, res.Equal(again))
}

func TestMaterializeReferentialCompleteness(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src, err := iosource.Open(ctx, iotesting.ModernDataset(t, dir))
	require.NoError(t, err)
	defer src.Close()

	res := buildClosure(t, src, iotesting.Far, iotesting.Near)
	out := filepath.Join(dir, "fixture.db")
	_, err = iofixture.New(false).Materialize(ctx, res, src.Capabilities().Definition(), out)
	require.NoError(t, err)

	db, err := sql.Open("sqlite", out)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query("PRAGMA foreign_key_check")
	require.NoError(t, err)
	defer rows.Close()
	assert.False(t, rows.Next(), "fixture has dangling foreign keys")

	var orphans int
	err = db.QueryRow(`SELECT COUNT(*) FROM Moons
	WHERE planetId NOT IN (SELECT planetId FROM Planets)`).Scan(&orphans)
	require.NoError(t, err)
	assert.Zero(t, orphans)

	err = db.QueryRow(`SELECT COUNT(*) FROM Jumps
	WHERE fromSystemId NOT IN (SELECT solarSystemId FROM SolarSystems)
	   OR toSystemId NOT IN (SELECT solarSystemId FROM SolarSystems)`).Scan(&orphans)
	require.NoError(t, err)
	assert.Zero(t, orphans)
}

func TestMaterializeReplaces(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src, err := iosource.Open(ctx, iotesting.ModernDataset(t, dir))
	require.NoError(t, err)
	defer src.Close()

	out := filepath.Join(dir, "fixture.db")
	m := iofixture.New(false)
	def := src.Capabilities().Definition()

	_, err = m.Materialize(ctx, buildClosure(t, src, iotesting.Nod, iotesting.Brana), def, out)
	require.NoError(t, err)
	assert.Equal(t, int64(2), iotesting.CountRows(t, out, schema.SolarSystemsTable))

	_, err = m.Materialize(ctx, buildClosure(t, src, iotesting.Far), def, out)
	require.NoError(t, err)
	assert.Equal(t, int64(1), iotesting.CountRows(t, out, schema.SolarSystemsTable))
}

func TestMaterializeFailureKeepsOutput(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	out := filepath.Join(dir, "fixture.db")
	require.NoError(t, os.WriteFile(out, []byte("previous"), 0644))

	bad := schema.Definition{Tables: []*schema.Table{
		{Name: schema.SolarSystemsTable, Physical: "SolarSystems", DDL: "CREATE TABLE ("},
	}}
	_, err := iofixture.New(false).Materialize(ctx, &closure.Result{}, bad, out)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.FixtureCreateError, gnErr.Code)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
	_, err = os.Stat(filepath.Join(dir, ".fixture.db.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestMaterializeLegacy(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src, err := iosource.Open(ctx, iotesting.LegacyDataset(t, dir))
	require.NoError(t, err)
	defer src.Close()

	out := filepath.Join(dir, "fixture.db")
	counts, err := iofixture.New(false).Materialize(
		ctx, buildClosure(t, src, 1, 2), src.Capabilities().Definition(), out)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[schema.SolarSystemsTable])
	assert.Equal(t, int64(1), counts[schema.JumpsTable])
	assert.Equal(t, int64(2), iotesting.CountRows(t, out, "mapSolarSystems"))
}
