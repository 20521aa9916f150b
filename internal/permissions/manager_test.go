package permissions

import (
	"context"
	"testing"
)

func testDescriptor(t *testing.T, id string) Descriptor {
	t.Helper()
	for _, d := range Catalog {
		if d.ID == id {
			return d
		}
	}
	t.Fatalf("descriptor %s not in catalog", id)
	return Descriptor{}
}

func TestRefresh_NotApplicableBelowMinOSVersion(t *testing.T) {
	// API level 30: POST_NOTIFICATIONS (min 33) must be NotApplicable,
	// QUERY_ALL_PACKAGES (min 30) must not.
	env := StaticEnvironment{Version: 30}
	querier := NewStaticQuerier()
	m := NewManager(env, querier)

	state, err := m.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	for _, r := range state.AllRecords() {
		applicable := r.Descriptor.ApplicableTo(30)
		if !applicable && r.Status != NotApplicable {
			t.Errorf("%s: expected NotApplicable, got %v", r.Descriptor.ID, r.Status)
		}
		if applicable && r.Status == NotApplicable {
			t.Errorf("%s: unexpected NotApplicable", r.Descriptor.ID)
		}
	}

	notif, ok := state.Record("android.permission.POST_NOTIFICATIONS")
	if !ok {
		t.Fatal("POST_NOTIFICATIONS missing from state")
	}
	if notif.Status != NotApplicable {
		t.Errorf("expected POST_NOTIFICATIONS NotApplicable on API 30, got %v", notif.Status)
	}
}

func TestRefresh_PicksUpGrantedTruth(t *testing.T) {
	querier := NewStaticQuerier()
	querier.SetGranted("android.permission.CAMERA", true)
	m := NewManager(StaticEnvironment{Version: 34}, querier)

	state, err := m.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	camera, _ := state.Record("android.permission.CAMERA")
	if camera.Status != Granted {
		t.Errorf("expected Granted, got %v", camera.Status)
	}
	mic, _ := state.Record("android.permission.RECORD_AUDIO")
	if mic.Status != NotRequested {
		t.Errorf("expected NotRequested, got %v", mic.Status)
	}

	// Normal permissions are auto-granted.
	ticktick, _ := state.Record("com.ticktick.task.permission.READ_TASKS")
	if ticktick.Status != Granted {
		t.Errorf("expected normal permission Granted, got %v", ticktick.Status)
	}
}

func TestUpdateRecord_ChangesExactlyOneRecord(t *testing.T) {
	m := NewManager(StaticEnvironment{Version: 34}, NewStaticQuerier())
	before := m.State()

	if err := m.UpdateRecord("android.permission.CAMERA", Denied, true); err != nil {
		t.Fatalf("UpdateRecord failed: %v", err)
	}
	after := m.State()

	for _, prev := range before.AllRecords() {
		curr, ok := after.Record(prev.Descriptor.ID)
		if !ok {
			t.Fatalf("%s disappeared", prev.Descriptor.ID)
		}
		if prev.Descriptor.ID == "android.permission.CAMERA" {
			if curr.Status != Denied {
				t.Errorf("expected Denied, got %v", curr.Status)
			}
			if !curr.CanShowRationale {
				t.Error("expected rationale flag set")
			}
			if curr.RequestCount != prev.RequestCount+1 {
				t.Errorf("expected request count %d, got %d", prev.RequestCount+1, curr.RequestCount)
			}
			if curr.LastRequestTime.IsZero() {
				t.Error("expected request time stamped")
			}
			continue
		}
		if curr != prev {
			t.Errorf("%s changed unexpectedly", prev.Descriptor.ID)
		}
	}
}

func TestUpdateRecord_UnknownPermission(t *testing.T) {
	m := NewManager(StaticEnvironment{Version: 34}, NewStaticQuerier())
	if err := m.UpdateRecord("android.permission.NOPE", Granted, false); err == nil {
		t.Fatal("expected error for unknown permission")
	}
}

func TestNeedsAction_SplitByProtectionLevel(t *testing.T) {
	m := NewManager(StaticEnvironment{Version: 34}, NewStaticQuerier())

	runtime := m.NeedsAction(Dangerous)
	for _, r := range runtime {
		if r.Descriptor.Level != Dangerous {
			t.Errorf("%s: expected dangerous only, got %v", r.Descriptor.ID, r.Descriptor.Level)
		}
	}
	if len(runtime) == 0 {
		t.Error("expected dangerous permissions needing action")
	}

	special := m.NeedsAction(Special)
	for _, r := range special {
		if r.Descriptor.Level != Special {
			t.Errorf("%s: expected special only, got %v", r.Descriptor.ID, r.Descriptor.Level)
		}
	}

	// Display ordering: group priority first, then protection level.
	all := m.NeedsAction(AnyLevel)
	for i := 1; i < len(all); i++ {
		prev, curr := all[i-1], all[i]
		pg, cg := prev.Descriptor.Group.Priority(), curr.Descriptor.Group.Priority()
		if pg > cg {
			t.Fatalf("records out of group priority order at %d", i)
		}
		if pg == cg && prev.Descriptor.Level > curr.Descriptor.Level {
			t.Fatalf("records out of protection level order at %d", i)
		}
	}
}

func TestFullySetUp(t *testing.T) {
	querier := NewStaticQuerier()
	m := NewManager(StaticEnvironment{Version: 22}, querier)
	// On API 22 every dangerous/special permission still needs a grant.
	if m.State().FullySetUp() {
		t.Fatal("expected not fully set up initially")
	}

	for _, d := range Catalog {
		querier.SetGranted(d.ID, true)
	}
	if _, err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if !m.State().FullySetUp() {
		t.Fatal("expected fully set up after granting everything")
	}
}

func TestWatch_SeesAtomicReplacements(t *testing.T) {
	m := NewManager(StaticEnvironment{Version: 34}, NewStaticQuerier())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := m.Watch(ctx)

	first := <-ch
	if len(first.Groups) == 0 {
		t.Fatal("expected initial snapshot")
	}

	if err := m.UpdateRecord("android.permission.CAMERA", Granted, false); err != nil {
		t.Fatalf("UpdateRecord failed: %v", err)
	}

	next := <-ch
	camera, _ := next.Record("android.permission.CAMERA")
	if camera.Status != Granted {
		t.Errorf("watcher saw stale record: %v", camera.Status)
	}
}
