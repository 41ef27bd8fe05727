package model

// Badge 徽章目录条目，积分达到阈值即获得
type Badge struct {
	BaseModel
	Name            string `gorm:"size:100;not null" json:"name"`
	Icon            string `gorm:"size:255" json:"icon"`
	Description     string `gorm:"size:255" json:"description"`
	ThresholdPoints int    `gorm:"not null;default:0;index" json:"thresholdPoints"`
	// Position 目录声明顺序，阈值相同时用于排序
	Position int `gorm:"not null;default:0" json:"position"`
}

func (Badge) TableName() string {
	return "badges"
}
