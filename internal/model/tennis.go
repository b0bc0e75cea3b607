package model

// TennisFeedResponse 网球源接口返回结构（payload 外层再包一层 data）
type TennisFeedResponse struct {
	Data TennisFeedData `json:"data"`
}

// TennisFeedData 网球源数据体
type TennisFeedData struct {
	Matches []TennisMatch `json:"matches"`
}

// TennisMatch 网球源原生比赛结构（比分按盘数计，进度为盘+局比分）
type TennisMatch struct {
	Code       string `json:"code"`        // 源内编码（如 "ATP-55"）
	PlayerOne  string `json:"player_one"`  // 选手一
	PlayerTwo  string `json:"player_two"`  // 选手二
	SetsOne    int    `json:"sets_one"`    // 选手一已胜盘数
	SetsTwo    int    `json:"sets_two"`    // 选手二已胜盘数
	CurrentSet int    `json:"current_set"` // 当前第几盘
	GameScore  string `json:"game_score"`  // 当前局比分（如 "40-15"）
	Phase      string `json:"phase"`       // not_started/warmup/in_progress/completed/retired
}
