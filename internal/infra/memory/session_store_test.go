package memory

import (
	"testing"

	"pv-intake/internal/domain"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()

	if _, _, ok := store.Current(); ok {
		t.Fatalf("expected no session initially")
	}

	session, gen, err := store.Start("1234567890", []domain.Question{{ResponseID: "1", Text: "q"}}, domain.SubjectInfo{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if session == nil || gen == 0 {
		t.Fatalf("expected session with generation, got %v gen %d", session, gen)
	}
	if current, curGen, ok := store.Current(); !ok || current != session || curGen != gen {
		t.Fatalf("expected same session back")
	}

	resetGen := store.Reset()
	if resetGen <= gen {
		t.Fatalf("reset must bump generation: %d -> %d", gen, resetGen)
	}
	if _, _, ok := store.Current(); ok {
		t.Fatalf("expected session removed after reset")
	}
}

func TestStartRejectsBlankSubject(t *testing.T) {
	store := NewSessionStore()
	if _, _, err := store.Start("   ", nil, domain.SubjectInfo{}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.Generation() != 0 {
		t.Fatalf("failed start must not bump generation")
	}
}

func TestStartReplacesPriorSession(t *testing.T) {
	store := NewSessionStore()
	_, gen1, err := store.Start("1111111111", nil, domain.SubjectInfo{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	second, gen2, err := store.Start("2222222222", nil, domain.SubjectInfo{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if gen2 <= gen1 {
		t.Fatalf("replacement must bump generation")
	}
	current, _, ok := store.Current()
	if !ok || current != second {
		t.Fatalf("expected replacement session active")
	}
	if current.SubjectID() != "2222222222" {
		t.Fatalf("unexpected subject %q", current.SubjectID())
	}
}
