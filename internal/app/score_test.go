package app

import "testing"

func TestMissionStartsAtCaseSubmission(t *testing.T) {
	m := NewMission(DefaultMissionConfig())
	if m.Points != 20 {
		t.Fatalf("expected 20 points, got %d", m.Points)
	}
	if m.Level != LevelBronze {
		t.Fatalf("expected Bronze, got %s", m.Level)
	}
	if m.Streak != 1 {
		t.Fatalf("expected streak 1, got %d", m.Streak)
	}
	if m.Completed {
		t.Fatalf("mission must not start completed")
	}
}

func TestFollowUpCompletionAwardsAndLevels(t *testing.T) {
	cfg := DefaultMissionConfig()
	m := NewMission(cfg).FollowUpCompleted(cfg)
	if m.Points != 50 {
		t.Fatalf("expected 50 points, got %d", m.Points)
	}
	if m.Level != LevelSilver {
		t.Fatalf("expected Silver at threshold, got %s", m.Level)
	}
	if !m.Completed || m.Streak != 2 {
		t.Fatalf("unexpected mission state %+v", m)
	}

	m = m.FollowUpCompleted(cfg).FollowUpCompleted(cfg)
	if m.Points != 110 || m.Level != LevelGold {
		t.Fatalf("expected Gold at 110 points, got %+v", m)
	}
}

func TestThresholdsAreConfiguration(t *testing.T) {
	cfg := MissionConfig{CasePoints: 5, FollowUpPoints: 5, SilverAt: 10, GoldAt: 15}
	m := NewMission(cfg).FollowUpCompleted(cfg)
	if m.Level != LevelSilver {
		t.Fatalf("expected Silver with custom thresholds, got %s", m.Level)
	}
	if m.FollowUpCompleted(cfg).Level != LevelGold {
		t.Fatalf("expected Gold with custom thresholds")
	}
}

func TestBadges(t *testing.T) {
	cfg := DefaultMissionConfig()
	m := NewMission(cfg)
	if got := m.Badges(); len(got) != 1 || got[0] != "Safety Rookie" {
		t.Fatalf("unexpected badges %v", got)
	}
	m = m.FollowUpCompleted(cfg)
	if got := m.Badges(); len(got) != 2 || got[1] != "Follow-up Hero" {
		t.Fatalf("unexpected badges %v", got)
	}
}
