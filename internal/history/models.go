package history

import "time"

const SchemaVersion = 1

// Snapshot is one persisted analysis run.
type Snapshot struct {
	SchemaVersion int       `json:"schema_version"`
	AnalysisID    string    `json:"analysis_id"`
	Timestamp     time.Time `json:"timestamp"`
	FileCount     int       `json:"file_count"`
	EntityCount   int       `json:"entity_count"`
	ImportCount   int       `json:"import_count"`
	HitCount      int       `json:"hit_count"`
	MissCount     int       `json:"miss_count"`
	CycleCount    int       `json:"cycle_count"`
	DurationMS    int64     `json:"duration_ms"`
}
