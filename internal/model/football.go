package model

// FootballFeedResponse 足球源接口返回结构
type FootballFeedResponse struct {
	Matches []FootballMatch `json:"matches"`
}

// FootballMatch 足球源原生比赛结构（snake_case，比分叫 goals，进度用分钟数）
type FootballMatch struct {
	MatchID   int    `json:"match_id"`   // 源内数字ID
	HomeTeam  string `json:"home_team"`  // 主队名称
	AwayTeam  string `json:"away_team"`  // 客队名称
	HomeGoals int    `json:"home_goals"` // 主队进球
	AwayGoals int    `json:"away_goals"` // 客队进球
	Status    string `json:"status"`     // scheduled/first_half/half_time/second_half/extra_time/full_time
	Minute    int    `json:"minute"`     // 比赛进行分钟数
}
