package schema

// ValueCount is the number of buildings sharing one categorical value.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// MetadataStats summarizes the buildings of one cluster.
type MetadataStats struct {
	Cluster       string       `json:"cluster"`
	Buildings     int          `json:"buildings"`
	Columns       int          `json:"columns"`
	BuildingTypes []ValueCount `json:"building_types"`
	HeatingFuels  []ValueCount `json:"heating_fuels"`
}

// CleanResult reports what a metadata clean kept and dropped.
type CleanResult struct {
	InputRows  int    `json:"input_rows"`
	KeptRows   int    `json:"kept_rows"`
	OutputPath string `json:"output_path"`
}

// SplitResult holds the train and test building file names.
type SplitResult struct {
	TrainBuildingIDs []string `json:"train_bldg_ids"`
	TestBuildingIDs  []string `json:"test_bldg_ids"`
}

// SpectrumPoint is one non-negative frequency bin of a load spectrum.
type SpectrumPoint struct {
	FrequencyHz float64 `json:"frequency_hz"`
	Magnitude   float64 `json:"magnitude"`
	Phase       float64 `json:"phase"`
}

// SpectrumResult is the Fourier spectrum of a building's load.
type SpectrumResult struct {
	BuildingID      string          `json:"bldg_id"`
	Samples         int             `json:"samples"`
	SampleIntervalS float64         `json:"sample_interval_s"`
	Points          []SpectrumPoint `json:"points"`
}
