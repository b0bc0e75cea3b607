package model

// BasketballFeedResponse 篮球源接口返回结构
type BasketballFeedResponse struct {
	Games []BasketballGame `json:"games"`
}

// BasketballGame 篮球源原生比赛结构（camelCase，队伍信息嵌套，进度为节+计时）
type BasketballGame struct {
	GameID string          `json:"gameId"` // 源内字符串ID（如 "BKB-101"）
	Teams  BasketballTeams `json:"teams"`
	State  string          `json:"state"` // SCHEDULED/LIVE/HALFTIME/FINAL/POSTPONED
	Period int             `json:"period"`
	Clock  string          `json:"clock"` // 节内剩余时间（如 "05:12"）
}

// BasketballTeams 主客队嵌套结构
type BasketballTeams struct {
	Home BasketballTeam `json:"home"`
	Away BasketballTeam `json:"away"`
}

// BasketballTeam 单支队伍（名称+得分）
type BasketballTeam struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}
