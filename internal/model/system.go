package model

import "time"

// SystemSetting is a key/value configuration row. Values flagged as
// encrypted are fernet tokens and must go through the settings service.
type SystemSetting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Encrypted bool      `json:"encrypted"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VersionInfo describes the running build and schema.
type VersionInfo struct {
	Version       string `json:"version"`
	SchemaVersion int64  `json:"schemaVersion"`
}

// HealthStatus is the health-check response body.
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
