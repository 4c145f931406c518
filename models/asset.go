package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Asset environments
const (
	EnvProduction  = "production"
	EnvStaging     = "staging"
	EnvDevelopment = "development"
)

// Asset criticality bounds. 1 is the most critical tier, 5 the least.
const (
	CriticalityHighest = 1
	CriticalityLowest  = 5
)

// Asset represents a managed host or system under assessment
type Asset struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Hostname    string             `json:"hostname" bson:"hostname"`
	IPAddress   string             `json:"ip_address,omitempty" bson:"ip_address,omitempty"`
	AssetType   string             `json:"asset_type" bson:"asset_type"` // server, workstation, container, cloud
	Owner       string             `json:"owner,omitempty" bson:"owner,omitempty"`
	Environment string             `json:"environment" bson:"environment"`
	Criticality int                `json:"criticality" bson:"criticality"` // 1=critical ... 5=low (inverted scale)

	// Inventory metadata
	OperatingSystem        string   `json:"operating_system,omitempty" bson:"operating_system,omitempty"`
	Location               string   `json:"location,omitempty" bson:"location,omitempty"`
	BusinessUnit           string   `json:"business_unit,omitempty" bson:"business_unit,omitempty"`
	ComplianceRequirements []string `json:"compliance_requirements" bson:"compliance_requirements"`
	Tags                   []string `json:"tags" bson:"tags"`

	LastScan  *time.Time `json:"last_scan,omitempty" bson:"last_scan,omitempty"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

// Collection names for assets
const (
	CollectionAssets = "assets"
)
