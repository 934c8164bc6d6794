package models

// PreferenceModel is a per-client key-value row. One row per (client, name);
// values are JSON-encoded.
type PreferenceModel struct {
	Base
	ClientID string `json:"client_id" gorm:"uniqueIndex:idx_client_name;not null"`
	Name     string `json:"name"      gorm:"uniqueIndex:idx_client_name;not null"`
	Value    string `json:"value"     gorm:"type:longtext"`
}

func (PreferenceModel) TableName() string { return "preferences" }
