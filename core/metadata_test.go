package core

import (
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/fermata-energy/fermata/internal/contract"
	"github.com/fermata-energy/fermata/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMetadata = "bldg_id,in.cluster_name,in.comstock_building_type,in.heating_fuel,in.comstock_building_type_group\n" +
	"1,Phoenix Area,SmallOffice,NaturalGas,Office\n" +
	"2,Phoenix Area,SmallOffice,Electricity,Office\n" +
	"3,Phoenix Area,Warehouse,Electricity,Storage\n" +
	"4,Tucson,Warehouse,Electricity,Storage\n"

func TestDefaultCleanPath(t *testing.T) {
	assert.Equal(t, "data/meta_clean.csv", DefaultCleanPath("data/meta.csv"))
	assert.Equal(t, "meta_clean", DefaultCleanPath("meta"))
}

func TestCleanMetadata(t *testing.T) {
	cfg := testConfig(t)
	writeBuilding(t, cfg.BuildingDir, "1", sampleLoad, sampleWeather)
	writeBuilding(t, cfg.BuildingDir, "3", sampleLoad, "")
	cfg.MetadataPath = writeFile(t, filepath.Join(t.TempDir(), "meta.csv"), sampleMetadata)

	outPath := filepath.Join(t.TempDir(), "clean.csv")
	result, err := CleanMetadata(cfg, outPath)
	require.NoError(t, err)
	assert.Equal(t, schema.CleanResult{InputRows: 4, KeptRows: 2, OutputPath: outPath}, result)

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "1,"))
	assert.True(t, strings.HasPrefix(lines[2], "3,"))
}

func TestCleanMetadataErrors(t *testing.T) {
	cfg := testConfig(t)

	_, err := CleanMetadata(cfg, "out.csv")
	assert.ErrorContains(t, err, "--metadata is required")

	cfg.MetadataPath = writeFile(t, filepath.Join(t.TempDir(), "meta.csv"), sampleMetadata)
	_, err = CleanMetadata(cfg, filepath.Join(t.TempDir(), "out.csv"))
	assert.ErrorIs(t, err, ErrNoBuildings)

	cfg.MetadataPath = filepath.Join(t.TempDir(), "absent.csv")
	_, err = CleanMetadata(cfg, "out.csv")
	assert.ErrorIs(t, err, contract.ErrMissingSource)
}

func TestMetadataStatsFor(t *testing.T) {
	cfg := testConfig(t)
	cfg.MetadataPath = writeFile(t, filepath.Join(t.TempDir(), "meta.csv"), sampleMetadata)

	tests := []struct {
		name    string
		cluster string
		want    schema.MetadataStats
	}{
		{
			name:    "single cluster",
			cluster: "Phoenix Area",
			want: schema.MetadataStats{
				Cluster:       "Phoenix Area",
				Buildings:     3,
				Columns:       5,
				BuildingTypes: []schema.ValueCount{{Value: "SmallOffice", Count: 2}, {Value: "Warehouse", Count: 1}},
				HeatingFuels:  []schema.ValueCount{{Value: "Electricity", Count: 2}, {Value: "NaturalGas", Count: 1}},
			},
		},
		{
			name: "all rows",
			want: schema.MetadataStats{
				Buildings:     4,
				Columns:       5,
				BuildingTypes: []schema.ValueCount{{Value: "SmallOffice", Count: 2}, {Value: "Warehouse", Count: 2}},
				HeatingFuels:  []schema.ValueCount{{Value: "Electricity", Count: 3}, {Value: "NaturalGas", Count: 1}},
			},
		},
		{
			name:    "unknown cluster",
			cluster: "Nowhere",
			want: schema.MetadataStats{
				Cluster:       "Nowhere",
				Columns:       5,
				BuildingTypes: []schema.ValueCount{},
				HeatingFuels:  []schema.ValueCount{},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cfg.Clone()
			c.Cluster = tt.cluster
			got, err := MetadataStatsFor(c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMetadataStatsMissingColumn(t *testing.T) {
	cfg := testConfig(t)
	cfg.MetadataPath = writeFile(t, filepath.Join(t.TempDir(), "meta.csv"), "bldg_id,in.cluster_name\n1,A\n")
	_, err := MetadataStatsFor(cfg)
	assert.ErrorIs(t, err, contract.ErrMissingColumn)
}

func TestStratifiedSplit(t *testing.T) {
	var ids, groups []string
	for i := range 10 {
		ids = append(ids, "a"+strconv.Itoa(i))
		groups = append(groups, "Office")
	}
	for i := range 3 {
		ids = append(ids, "b"+strconv.Itoa(i))
		groups = append(groups, "Storage")
	}
	ids = append(ids, "c0", " ")
	groups = append(groups, "Lodging", "Lodging")

	result := StratifiedSplit(ids, groups, 0.2, 42)

	// ceil(0.2*10) + ceil(0.2*3) from the larger groups; the lone building stays in train
	assert.Len(t, result.TestBuildingIDs, 3)
	assert.Len(t, result.TrainBuildingIDs, 11)
	assert.Contains(t, result.TrainBuildingIDs, "c0.csv")

	all := append(slices.Clone(result.TrainBuildingIDs), result.TestBuildingIDs...)
	slices.Sort(all)
	want := make([]string, 0, 14)
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			want = append(want, id+".csv")
		}
	}
	slices.Sort(want)
	assert.Equal(t, want, all)

	again := StratifiedSplit(ids, groups, 0.2, 42)
	assert.Equal(t, result, again)
}

func TestStratifiedSplitEmpty(t *testing.T) {
	result := StratifiedSplit(nil, nil, 0.2, 1)
	assert.NotNil(t, result.TrainBuildingIDs)
	assert.NotNil(t, result.TestBuildingIDs)
	assert.Empty(t, result.TrainBuildingIDs)
}

func TestSplitBuildings(t *testing.T) {
	cfg := testConfig(t)

	_, err := SplitBuildings(cfg)
	assert.ErrorContains(t, err, "--metadata is required")

	cfg.MetadataPath = writeFile(t, filepath.Join(t.TempDir(), "meta.csv"), sampleMetadata)
	result, err := SplitBuildings(cfg)
	require.NoError(t, err)
	assert.Len(t, result.TestBuildingIDs, 2)
	assert.Len(t, result.TrainBuildingIDs, 2)

	cfg.MetadataPath = writeFile(t, filepath.Join(t.TempDir(), "bare.csv"), "bldg_id\n1\n")
	_, err = SplitBuildings(cfg)
	assert.ErrorIs(t, err, contract.ErrMissingColumn)
}
