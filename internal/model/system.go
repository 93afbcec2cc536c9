package model

// VersionInfo reports the running build and the latest applied schema migration.
type VersionInfo struct {
	AppVersion string `json:"app_version"`
	DbVersion  string `json:"db_version"`
}
