package domain

// Measurement Model
//
// One field observation submitted by a user. Form values are stored verbatim
// as submitted; no numeric parsing or range checks happen at this layer.
// Records are immutable after insert.
type Measurement struct {
	ID          uint   `gorm:"primaryKey"`     // Primary key
	UserID      uint   `gorm:"index;not null"` // Foreign key to the owning User
	ProjectType string // Project type tag
	WaterType   string // Water type tag
	Date        string // Observation date, as submitted
	Time        string // Observation time, as submitted
	Latitude    string // Latitude, as submitted
	Longitude   string // Longitude, as submitted
	PinID       string // Pin identifier
	ImagePath   string // Relative path to the uploaded image, empty when none
	Temperature string // Temperature reading
	PH          string `gorm:"column:ph"`  // pH reading
	DO          string `gorm:"column:do"`  // Dissolved oxygen reading
	TDS         string `gorm:"column:tds"` // Total dissolved solids reading
	Chlorophyll string // Chlorophyll reading
	TA          string `gorm:"column:ta"`  // Total alkalinity reading
	DIC         string `gorm:"column:dic"` // Dissolved inorganic carbon reading
	CreatedAt   int64  `gorm:"autoCreateTime:milli"` // Timestamp of creation in milliseconds
}
