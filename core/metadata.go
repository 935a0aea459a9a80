package core

import (
	"cmp"
	"fmt"
	"math"
	"math/rand/v2"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fermata-energy/fermata/internal/contract"
	"github.com/fermata-energy/fermata/internal/tsio"
	"github.com/fermata-energy/fermata/schema"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// DefaultCleanPath returns where a cleaned copy of the metadata file goes by default:
// next to the input, with a _clean suffix.
func DefaultCleanPath(metadataPath string) string {
	ext := filepath.Ext(metadataPath)
	return strings.TrimSuffix(metadataPath, ext) + "_clean" + ext
}

// CleanMetadata keeps the metadata rows whose building has a directory under the building
// directory and writes them to outPath.
func CleanMetadata(cfg *contract.Config, outPath string) (schema.CleanResult, error) {
	result := schema.CleanResult{OutputPath: outPath}
	if cfg.MetadataPath == "" {
		return result, fmt.Errorf("--metadata is required")
	}
	df, err := tsio.ReadMetadata(cfg.MetadataPath)
	if err != nil {
		return result, err
	}
	result.InputRows = df.Nrow()

	dirs, err := tsio.ListBuildingDirs(cfg.BuildingDir)
	if err != nil {
		return result, fmt.Errorf("failed to list building directory: %w", err)
	}
	if len(dirs) == 0 {
		return result, fmt.Errorf("no building directories under %s: %w", cfg.BuildingDir, ErrNoBuildings)
	}

	cleaned := df.Filter(dataframe.F{
		Colname:    schema.BuildingIDColumn,
		Comparator: series.In,
		Comparando: dirs,
	})
	if cleaned.Err != nil {
		return result, fmt.Errorf("failed to filter metadata: %w", cleaned.Err)
	}
	result.KeptRows = cleaned.Nrow()

	if err := tsio.WriteFrame(outPath, cleaned); err != nil {
		return result, err
	}
	return result, nil
}

// MetadataStatsFor counts the buildings of cfg.Cluster along with their building types and
// heating fuels. An empty cluster covers every row.
func MetadataStatsFor(cfg *contract.Config) (schema.MetadataStats, error) {
	stats := schema.MetadataStats{Cluster: cfg.Cluster}
	if cfg.MetadataPath == "" {
		return stats, fmt.Errorf("--metadata is required")
	}
	df, err := tsio.ReadMetadata(cfg.MetadataPath)
	if err != nil {
		return stats, err
	}
	if err := tsio.RequireColumns(df, cfg.MetadataPath,
		schema.ClusterNameColumn, schema.BuildingTypeColumn, schema.HeatingFuelColumn); err != nil {
		return stats, err
	}

	if cfg.Cluster != "" {
		df = df.Filter(dataframe.F{
			Colname:    schema.ClusterNameColumn,
			Comparator: series.Eq,
			Comparando: cfg.Cluster,
		})
		if df.Err != nil {
			return stats, fmt.Errorf("failed to filter metadata: %w", df.Err)
		}
	}

	stats.Buildings = df.Nrow()
	stats.Columns = df.Ncol()
	if stats.Buildings == 0 {
		stats.BuildingTypes = []schema.ValueCount{}
		stats.HeatingFuels = []schema.ValueCount{}
		return stats, nil
	}
	stats.BuildingTypes = valueCounts(df.Col(schema.BuildingTypeColumn).Records())
	stats.HeatingFuels = valueCounts(df.Col(schema.HeatingFuelColumn).Records())
	return stats, nil
}

// valueCounts counts each distinct value, most frequent first and ties by value.
func valueCounts(values []string) []schema.ValueCount {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}
	out := make([]schema.ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, schema.ValueCount{Value: v, Count: n})
	}
	slices.SortFunc(out, func(a, b schema.ValueCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
	return out
}

// SplitBuildings reads the metadata file and splits its buildings into train and test sets.
func SplitBuildings(cfg *contract.Config) (schema.SplitResult, error) {
	if cfg.MetadataPath == "" {
		return schema.SplitResult{}, fmt.Errorf("--metadata is required")
	}
	df, err := tsio.ReadMetadata(cfg.MetadataPath)
	if err != nil {
		return schema.SplitResult{}, err
	}
	if err := tsio.RequireColumns(df, cfg.MetadataPath, schema.BuildingTypeGroupColumn); err != nil {
		return schema.SplitResult{}, err
	}
	ids := df.Col(schema.BuildingIDColumn).Records()
	groups := df.Col(schema.BuildingTypeGroupColumn).Records()
	return StratifiedSplit(ids, groups, cfg.TestFraction, cfg.SplitSeed), nil
}

// StratifiedSplit splits ids within each group, visiting groups in sorted order. Every group
// gives ceil(fraction*n) shuffled members to the test set, but always keeps at least one in
// train. Names get a .csv suffix.
func StratifiedSplit(ids, groups []string, fraction float64, seed uint64) schema.SplitResult {
	byGroup := make(map[string][]string)
	for i, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		byGroup[groups[i]] = append(byGroup[groups[i]], id)
	}
	keys := make([]string, 0, len(byGroup))
	for k := range byGroup {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	result := schema.SplitResult{TrainBuildingIDs: []string{}, TestBuildingIDs: []string{}}
	for _, k := range keys {
		members := slices.Clone(byGroup[k])
		rng := rand.New(rand.NewPCG(seed, seed))
		rng.Shuffle(len(members), func(i, j int) {
			members[i], members[j] = members[j], members[i]
		})

		nTest := min(int(math.Ceil(fraction*float64(len(members)))), len(members)-1)
		for _, id := range members[:nTest] {
			result.TestBuildingIDs = append(result.TestBuildingIDs, id+".csv")
		}
		for _, id := range members[nTest:] {
			result.TrainBuildingIDs = append(result.TrainBuildingIDs, id+".csv")
		}
	}
	return result
}
