package app

// MissionConfig holds the gamification tuning. The level thresholds are UI
// configuration, not domain law; nothing server-side confirms them.
type MissionConfig struct {
	CasePoints     int
	FollowUpPoints int
	SilverAt       int
	GoldAt         int
}

// DefaultMissionConfig mirrors the shipped reporting-screen behavior.
func DefaultMissionConfig() MissionConfig {
	return MissionConfig{
		CasePoints:     20,
		FollowUpPoints: 30,
		SilverAt:       50,
		GoldAt:         100,
	}
}

// Mission is the reporter's presentational progress. It is derived purely
// from completion events; there is no independently mutable score.
type Mission struct {
	Points    int
	Streak    int
	Level     string
	Completed bool
}

// Level names in ascending order.
const (
	LevelBronze = "Bronze"
	LevelSilver = "Silver"
	LevelGold   = "Gold"
)

// NewMission starts a mission when a case is submitted.
func NewMission(cfg MissionConfig) Mission {
	m := Mission{Points: cfg.CasePoints, Streak: 1}
	m.Level = levelFor(m.Points, cfg)
	return m
}

// FollowUpCompleted awards the follow-up points and extends the streak.
func (m Mission) FollowUpCompleted(cfg MissionConfig) Mission {
	m.Points += cfg.FollowUpPoints
	m.Streak++
	m.Completed = true
	m.Level = levelFor(m.Points, cfg)
	return m
}

// Badges lists the earned achievement labels.
func (m Mission) Badges() []string {
	badges := []string{"Safety Rookie"}
	if m.Completed {
		badges = append(badges, "Follow-up Hero")
	}
	return badges
}

func levelFor(points int, cfg MissionConfig) string {
	switch {
	case points >= cfg.GoldAt:
		return LevelGold
	case points >= cfg.SilverAt:
		return LevelSilver
	}
	return LevelBronze
}
