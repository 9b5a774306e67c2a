package dataset

// TypeRecord represents one item type from the extracted type files
type TypeRecord struct {
	TypeName  string  `json:"typeName,omitempty"`
	GroupID   int     `json:"groupID,omitempty"`
	Mass      float64 `json:"mass,omitempty"`
	Volume    float64 `json:"volume,omitempty"`
	BasePrice float64 `json:"basePrice,omitempty"`
}

// DogmaAttribute is a single named attribute attached to a type
type DogmaAttribute struct {
	AttributeID int     `json:"attributeID"`
	Value       float64 `json:"value"`
	DisplayName string  `json:"displayName,omitempty"`
	Unit        string  `json:"unit,omitempty"`
}

// AttributeBag maps attribute name to its dogma attribute
type AttributeBag map[string]DogmaAttribute

// ShipStats is the fixed set of derived ship stats. Each field resolves
// from one dogma attribute id, zero when the attribute is absent.
type ShipStats struct {
	HighSlots          int     `json:"highSlots"`
	MidSlots           int     `json:"midSlots"`
	LowSlots           int     `json:"lowSlots"`
	TurretHardpoints   int     `json:"turretHardpoints"`
	LauncherHardpoints int     `json:"launcherHardpoints"`
	ShieldCapacity     float64 `json:"shieldCapacity"`
	ArmorHP            float64 `json:"armorHP"`
	StructureHP        float64 `json:"structureHP"`
	MaxVelocity        float64 `json:"maxVelocity"`
	Capacitor          float64 `json:"capacitor"`
	CargoCapacity      float64 `json:"cargoCapacity"`
	PowerOutput        float64 `json:"powerOutput"`
	CPUOutput          float64 `json:"cpuOutput"`
}

// ShipRecord is a type record enriched with derived stats and dogma data
type ShipRecord struct {
	TypeName        string       `json:"typeName,omitempty"`
	GroupID         int          `json:"groupID,omitempty"`
	GroupName       string       `json:"groupName,omitempty"`
	Mass            float64      `json:"mass,omitempty"`
	Volume          float64      `json:"volume,omitempty"`
	BasePrice       float64      `json:"basePrice,omitempty"`
	Stats           *ShipStats   `json:"stats,omitempty"`
	DogmaAttributes AttributeBag `json:"dogmaAttributes,omitempty"`
}

// Blueprint represents a manufacturing recipe
type Blueprint struct {
	BlueprintTypeID    int                 `json:"blueprintTypeID,omitempty"`
	MaxProductionLimit int                 `json:"maxProductionLimit,omitempty"`
	Activities         map[string]Activity `json:"activities"`
}

// Activity represents blueprint activities (manufacturing, research, etc.)
type Activity struct {
	Materials []Material `json:"materials,omitempty"`
	Products  []Product  `json:"products,omitempty"`
	Skills    []Skill    `json:"skills,omitempty"`
	Time      int        `json:"time,omitempty"`
}

// Material represents required materials for blueprint activities
type Material struct {
	Quantity int `json:"quantity"`
	TypeID   int `json:"typeID"`
}

// Product represents products from blueprint activities
type Product struct {
	Quantity    int     `json:"quantity"`
	TypeID      int     `json:"typeID"`
	Probability float64 `json:"probability,omitempty"`
}

// Skill represents required skills for blueprint activities
type Skill struct {
	Level  int `json:"level"`
	TypeID int `json:"typeID"`
}

// Dogma attribute ids resolved into ShipStats fields
const (
	attrStructureHP    = 9
	attrPowerOutput    = 11
	attrLowSlots       = 12
	attrMidSlots       = 13
	attrHighSlots      = 14
	attrMaxVelocity    = 37
	attrCargoCapacity  = 38
	attrCPUOutput      = 48
	attrLauncherSlots  = 101
	attrTurretSlots    = 102
	attrShieldCapacity = 263
	attrArmorHP        = 265
	attrCapacitor      = 482
)

// DeriveShipStats scans an attribute bag for the fixed stat attribute ids.
// Absent attributes resolve to zero values.
func DeriveShipStats(attrs AttributeBag) *ShipStats {
	stats := &ShipStats{}
	for _, attr := range attrs {
		switch attr.AttributeID {
		case attrHighSlots:
			stats.HighSlots = int(attr.Value)
		case attrMidSlots:
			stats.MidSlots = int(attr.Value)
		case attrLowSlots:
			stats.LowSlots = int(attr.Value)
		case attrTurretSlots:
			stats.TurretHardpoints = int(attr.Value)
		case attrLauncherSlots:
			stats.LauncherHardpoints = int(attr.Value)
		case attrShieldCapacity:
			stats.ShieldCapacity = attr.Value
		case attrArmorHP:
			stats.ArmorHP = attr.Value
		case attrStructureHP:
			stats.StructureHP = attr.Value
		case attrMaxVelocity:
			stats.MaxVelocity = attr.Value
		case attrCapacitor:
			stats.Capacitor = attr.Value
		case attrCargoCapacity:
			stats.CargoCapacity = attr.Value
		case attrPowerOutput:
			stats.PowerOutput = attr.Value
		case attrCPUOutput:
			stats.CPUOutput = attr.Value
		}
	}
	return stats
}
