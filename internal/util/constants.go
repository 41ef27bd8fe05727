package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	// DefaultLeaderboardLimit 排行榜默认条数
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)
