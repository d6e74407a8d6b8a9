package types

// Sample is one stored metric observation. Rows are append-only: nothing in
// this service updates or deletes them once inserted.
type Sample struct {
	ID   uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string   `gorm:"type:varchar(100);not null" json:"name"`
	UV   int64    `gorm:"column:uv;not null" json:"uv"`
	PV   int64    `gorm:"column:pv;not null" json:"pv"`
	Amt  int64    `gorm:"column:amt;not null" json:"amt"`
	Date DateTime `gorm:"column:date;not null;index" json:"date"`
}

func (Sample) TableName() string { return "cc_charts" }
