package ledger

import "testing"

// TestExportImport_RoundTrip verifies an exported document imported into an
// empty store reproduces the ledger state.
func TestExportImport_RoundTrip(t *testing.T) {
	l, _ := newTestLedger(t)
	squat := mustProfile(t, "squat")
	if _, err := l.FinalizeSet(squat, 12, ModeStandard, day1); err != nil {
		t.Fatal(err)
	}

	doc, err := l.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(doc) == 0 {
		t.Fatal("export produced empty document")
	}

	dst, _ := newTestLedger(t)
	if err := dst.Import(doc); err != nil {
		t.Fatalf("Import: %v", err)
	}

	got, want := dst.Snapshot(), l.Snapshot()
	if got.XP != want.XP || got.Streak != want.Streak ||
		got.DailyTotal != want.DailyTotal || got.LastWorkoutDate != want.LastWorkoutDate {
		t.Errorf("imported snapshot %+v, want %+v", got, want)
	}
	if len(dst.History("squat")) != 1 {
		t.Error("history not imported")
	}
}

// TestImport_MalformedRejectedWithoutMutation verifies a document with any
// bad entry fails as a whole and writes nothing.
func TestImport_MalformedRejectedWithoutMutation(t *testing.T) {
	l, store := newTestLedger(t)

	cases := []map[string]string{
		{"total_xp": "12", "streak": "not a number"},
		{"total_xp": "-5"},
		{"history_squat": "{broken"},
		{"activity_calendar": "[1,2,3]"},
		{"last_workout_date": "March 9th"},
		{"mystery_key": "42"},
	}
	for _, doc := range cases {
		if err := l.Import(doc); err == nil {
			t.Errorf("Import(%v): expected error", doc)
		}
	}

	if keys := store.Keys(); len(keys) != 0 {
		t.Errorf("store mutated by rejected imports: %v", keys)
	}
}

// TestImport_OverwritesOnlyPresentKeys verifies keys absent from the
// document keep their stored values.
func TestImport_OverwritesOnlyPresentKeys(t *testing.T) {
	l, _ := newTestLedger(t)
	squat := mustProfile(t, "squat")
	if _, err := l.FinalizeSet(squat, 12, ModeStandard, day1); err != nil {
		t.Fatal(err)
	}
	beforeStreak := l.Snapshot().Streak

	if err := l.Import(map[string]string{"total_xp": "990"}); err != nil {
		t.Fatalf("Import: %v", err)
	}

	snap := l.Snapshot()
	if snap.XP != 990 {
		t.Errorf("xp = %d, want imported 990", snap.XP)
	}
	if snap.Level != 10 {
		t.Errorf("level = %d, want 10", snap.Level)
	}
	if snap.Streak != beforeStreak {
		t.Errorf("streak = %d, want untouched %d", snap.Streak, beforeStreak)
	}
	if len(l.History("squat")) != 1 {
		t.Error("history lost on partial import")
	}
}
