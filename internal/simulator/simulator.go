package simulator

import (
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"MatchPulse/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Simulator 三个上游源的内置模拟器（开发/联调用）。
// 每次被拉取时推进内部状态；刻意包含"已结束比赛回退"、"比分清零"、
// 未知状态词等对抗性行为，用于验证同步核心的容忍度
type Simulator struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger *logrus.Logger

	football   []model.FootballMatch
	basketball []model.BasketballGame
	tennis     []model.TennisMatch
}

// New 创建模拟器并生成每个源 matchCount 场初始比赛
func New(matchCount int, logger *logrus.Logger) *Simulator {
	if matchCount <= 0 {
		matchCount = 4
	}
	s := &Simulator{
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: logger,
	}
	s.seed(matchCount)
	return s
}

// Register 挂载模拟源路由（与业务API同一进程同一端口）
func (s *Simulator) Register(r *gin.Engine) {
	r.GET("/sim/football/matches", s.footballFeed)
	r.GET("/sim/basketball/games", s.basketballFeed)
	r.GET("/sim/tennis/matches", s.tennisFeed)
	s.logger.Info("模拟源已挂载: /sim/{football,basketball,tennis}")
}

var (
	footballTeams   = []string{"Crimson United", "Harbor City", "Northgate FC", "Valle Real", "Eastbrook", "Silver Rovers", "Oldtown Athletic", "Westport FC"}
	basketballTeams = []string{"Riverside Hawks", "Metro Kings", "Bayside Storm", "Summit Wolves", "Ironworks", "Lakeshore Comets", "Redhill Giants", "Canyon Heat"}
	tennisPlayers   = []string{"A. Moreno", "K. Lindqvist", "T. Okafor", "J. Petrov", "L. Tanaka", "M. Ribeiro", "S. Novak", "D. Keller"}
)

// seed 生成初始比赛（全部未开赛、零比分）
func (s *Simulator) seed(n int) {
	for i := 0; i < n; i++ {
		s.football = append(s.football, model.FootballMatch{
			MatchID:  100 + i,
			HomeTeam: footballTeams[(2*i)%len(footballTeams)],
			AwayTeam: footballTeams[(2*i+1)%len(footballTeams)],
			Status:   "scheduled",
		})
		s.basketball = append(s.basketball, model.BasketballGame{
			GameID: fmt.Sprintf("BKB-%d", 200+i),
			Teams: model.BasketballTeams{
				Home: model.BasketballTeam{Name: basketballTeams[(2*i)%len(basketballTeams)]},
				Away: model.BasketballTeam{Name: basketballTeams[(2*i+1)%len(basketballTeams)]},
			},
			State: "SCHEDULED",
		})
		s.tennis = append(s.tennis, model.TennisMatch{
			Code:      fmt.Sprintf("ATP-%d", 300+i),
			PlayerOne: tennisPlayers[(2*i)%len(tennisPlayers)],
			PlayerTwo: tennisPlayers[(2*i+1)%len(tennisPlayers)],
			Phase:     "not_started",
		})
	}
}

// footballFeed GET /sim/football/matches
func (s *Simulator) footballFeed(c *gin.Context) {
	s.mu.Lock()
	for i := range s.football {
		s.stepFootball(&s.football[i])
	}
	resp := model.FootballFeedResponse{Matches: append([]model.FootballMatch(nil), s.football...)}
	s.mu.Unlock()

	c.JSON(http.StatusOK, resp)
}

func (s *Simulator) stepFootball(m *model.FootballMatch) {
	switch m.Status {
	case "scheduled":
		if s.chance(40) {
			m.Status = "first_half"
			m.Minute = 1
		}
	case "first_half":
		m.Minute += 1 + s.rng.Intn(8)
		s.maybeGoal(m)
		if m.Minute >= 45 {
			m.Minute = 45
			m.Status = "half_time"
		}
	case "half_time":
		m.Status = "second_half"
		m.Minute = 46
	case "second_half":
		m.Minute += 1 + s.rng.Intn(8)
		s.maybeGoal(m)
		if m.Minute >= 90 {
			m.Minute = 90
			m.Status = "full_time"
		}
	case "full_time":
		// 对抗行为：已结束比赛回退为未开赛且比分清零
		if s.chance(5) {
			m.Status = "scheduled"
			m.Minute = 0
			m.HomeGoals = 0
			m.AwayGoals = 0
		}
	default:
		m.Status = "scheduled"
	}
	// 对抗行为：偶发吐出未知状态词
	if s.chance(2) {
		m.Status = "tbd"
	}
}

func (s *Simulator) maybeGoal(m *model.FootballMatch) {
	if s.chance(25) {
		if s.chance(50) {
			m.HomeGoals++
		} else {
			m.AwayGoals++
		}
	}
}

// basketballFeed GET /sim/basketball/games
func (s *Simulator) basketballFeed(c *gin.Context) {
	s.mu.Lock()
	for i := range s.basketball {
		s.stepBasketball(&s.basketball[i])
	}
	resp := model.BasketballFeedResponse{Games: append([]model.BasketballGame(nil), s.basketball...)}
	s.mu.Unlock()

	c.JSON(http.StatusOK, resp)
}

func (s *Simulator) stepBasketball(g *model.BasketballGame) {
	switch g.State {
	case "SCHEDULED":
		if s.chance(40) {
			g.State = "LIVE"
			g.Period = 1
			g.Clock = "12:00"
		}
	case "LIVE":
		g.Teams.Home.Points += s.rng.Intn(9)
		g.Teams.Away.Points += s.rng.Intn(9)
		g.Clock = fmt.Sprintf("%02d:%02d", s.rng.Intn(12), s.rng.Intn(60))
		if s.chance(30) {
			g.Period++
		}
		if g.Period == 2 && s.chance(30) {
			g.State = "HALFTIME"
			g.Clock = ""
		}
		if g.Period > 4 {
			g.Period = 4
			g.State = "FINAL"
			g.Clock = ""
		}
	case "HALFTIME":
		g.State = "LIVE"
		g.Period = 3
		g.Clock = "12:00"
	case "FINAL":
		if s.chance(5) {
			g.State = "SCHEDULED"
			g.Period = 0
			g.Clock = ""
			g.Teams.Home.Points = 0
			g.Teams.Away.Points = 0
		}
	default:
		g.State = "SCHEDULED"
	}
}

// tennisFeed GET /sim/tennis/matches
func (s *Simulator) tennisFeed(c *gin.Context) {
	s.mu.Lock()
	for i := range s.tennis {
		s.stepTennis(&s.tennis[i])
	}
	resp := model.TennisFeedResponse{
		Data: model.TennisFeedData{Matches: append([]model.TennisMatch(nil), s.tennis...)},
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, resp)
}

var tennisGameScores = []string{"0-0", "15-0", "30-15", "40-15", "40-30", "Deuce", "Adv"}

func (s *Simulator) stepTennis(m *model.TennisMatch) {
	switch m.Phase {
	case "not_started":
		if s.chance(35) {
			m.Phase = "warmup"
		}
	case "warmup":
		m.Phase = "in_progress"
		m.CurrentSet = 1
		m.GameScore = "0-0"
	case "in_progress":
		m.GameScore = tennisGameScores[s.rng.Intn(len(tennisGameScores))]
		if s.chance(20) {
			if s.chance(50) {
				m.SetsOne++
			} else {
				m.SetsTwo++
			}
			m.CurrentSet++
		}
		if m.SetsOne == 2 || m.SetsTwo == 2 {
			m.Phase = "completed"
			m.GameScore = ""
		} else if s.chance(3) {
			m.Phase = "retired"
			m.GameScore = ""
		}
	case "completed", "retired":
		if s.chance(5) {
			m.Phase = "not_started"
			m.SetsOne = 0
			m.SetsTwo = 0
			m.CurrentSet = 0
			m.GameScore = ""
		}
	default:
		m.Phase = "not_started"
	}
}

// chance 百分比掷骰
func (s *Simulator) chance(percent int) bool {
	return s.rng.Intn(100) < percent
}
