package model

const (
	ActivityModuleCompleted = "module_completed"
	ActivityCourseCompleted = "course_completed"
	ActivityChallengeWon    = "challenge_won"
)

// ActivityLog 记录学习者的进度事件，与状态变更在同一事务中写入
type ActivityLog struct {
	BaseModel
	UserID   uint   `gorm:"index;not null" json:"userId"`
	Activity string `gorm:"size:50;not null" json:"activity"`
	TargetID uint   `gorm:"index" json:"targetId"`
	Content  string `gorm:"type:text" json:"content"`
	Points   int    `gorm:"default:0" json:"points"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
