package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/luoran06/PairLog/internal/schema"
)

type stubReportStore struct {
	latest *schema.Report
}

func (s *stubReportStore) LatestByUserAndType(_ context.Context, _, _ string) (*schema.Report, error) {
	return s.latest, nil
}

type stubDiaryStore struct {
	count int64
}

func (s *stubDiaryStore) CountByOwnerAndRange(_ context.Context, _, _, _ string) (int64, error) {
	return s.count, nil
}

func fixedNow(t *testing.T) time.Time {
	t.Helper()
	now, err := time.Parse("2006-01-02 15:04", "2025-08-25 10:00")
	if err != nil {
		t.Fatalf("parse fixed now: %v", err)
	}
	return now
}

func TestCheckAvailabilityCooldownBlocks(t *testing.T) {
	now := fixedNow(t)
	reports := &stubReportStore{latest: &schema.Report{
		UserID: "u1", Type: schema.ReportTypeWeekly,
		CreatedAt: now.Add(-3 * 24 * time.Hour),
	}}
	sched := NewReportScheduler(reports, &stubDiaryStore{count: 10})
	sched.now = func() time.Time { return now }

	avail, err := sched.CheckAvailability(context.Background(), "u1", schema.ReportTypeWeekly)
	if err != nil {
		t.Fatalf("CheckAvailability error: %v", err)
	}
	if avail.Available {
		t.Fatalf("available = true during cooldown")
	}
	if avail.State != StateCoolingDown {
		t.Fatalf("state = %q, want %q", avail.State, StateCoolingDown)
	}
	if avail.DaysRemaining != 4 {
		t.Fatalf("daysRemaining = %d, want 4", avail.DaysRemaining)
	}
	if !strings.Contains(avail.Reason, "4 天") {
		t.Fatalf("reason = %q, want remaining days mentioned", avail.Reason)
	}
}

func TestCheckAvailabilityAfterCooldownWithData(t *testing.T) {
	now := fixedNow(t)
	reports := &stubReportStore{latest: &schema.Report{
		UserID: "u1", Type: schema.ReportTypeWeekly,
		CreatedAt: now.Add(-8 * 24 * time.Hour),
	}}
	sched := NewReportScheduler(reports, &stubDiaryStore{count: 5})
	sched.now = func() time.Time { return now }

	avail, err := sched.CheckAvailability(context.Background(), "u1", schema.ReportTypeWeekly)
	if err != nil {
		t.Fatalf("CheckAvailability error: %v", err)
	}
	if !avail.Available {
		t.Fatalf("available = false, reason %q", avail.Reason)
	}
	if avail.State != StateReady || avail.EntriesFound != 5 {
		t.Fatalf("avail = %+v, want ready with 5 entries", avail)
	}
}

func TestCheckAvailabilityNeedsMoreEntries(t *testing.T) {
	now := fixedNow(t)
	sched := NewReportScheduler(&stubReportStore{}, &stubDiaryStore{count: 2})
	sched.now = func() time.Time { return now }

	avail, err := sched.CheckAvailability(context.Background(), "u1", schema.ReportTypeWeekly)
	if err != nil {
		t.Fatalf("CheckAvailability error: %v", err)
	}
	if avail.Available {
		t.Fatalf("available = true with 2 entries, weekly needs 4")
	}
	if avail.State != StateReady {
		t.Fatalf("state = %q, want %q (数据门不算冷却)", avail.State, StateReady)
	}
	if avail.EntriesFound != 2 || avail.EntriesNeeded != 2 {
		t.Fatalf("avail = %+v, want found 2 needed 2", avail)
	}
}

func TestCheckAvailabilityCustomSkipsCooldown(t *testing.T) {
	now := fixedNow(t)
	// 昨天刚生成过，custom 类型没有冷却窗口
	reports := &stubReportStore{latest: &schema.Report{
		UserID: "u1", Type: schema.ReportTypeCustom,
		CreatedAt: now.Add(-24 * time.Hour),
	}}
	sched := NewReportScheduler(reports, &stubDiaryStore{count: 3})
	sched.now = func() time.Time { return now }

	avail, err := sched.CheckAvailability(context.Background(), "u1", schema.ReportTypeCustom)
	if err != nil {
		t.Fatalf("CheckAvailability error: %v", err)
	}
	if !avail.Available {
		t.Fatalf("custom report blocked: %+v", avail)
	}
}

func TestCheckAvailabilityMonthlyThreshold(t *testing.T) {
	now := fixedNow(t)
	sched := NewReportScheduler(&stubReportStore{}, &stubDiaryStore{count: 14})
	sched.now = func() time.Time { return now }

	avail, err := sched.CheckAvailability(context.Background(), "u1", schema.ReportTypeMonthly)
	if err != nil {
		t.Fatalf("CheckAvailability error: %v", err)
	}
	if avail.Available || avail.EntriesNeeded != 1 {
		t.Fatalf("avail = %+v, want blocked needing 1 more", avail)
	}

	sched = NewReportScheduler(&stubReportStore{}, &stubDiaryStore{count: 15})
	sched.now = func() time.Time { return now }
	avail, err = sched.CheckAvailability(context.Background(), "u1", schema.ReportTypeMonthly)
	if err != nil || !avail.Available {
		t.Fatalf("avail = %+v, %v, want available at 15 entries", avail, err)
	}
}

func TestCheckAvailabilityUnknownType(t *testing.T) {
	sched := NewReportScheduler(&stubReportStore{}, &stubDiaryStore{})
	if _, err := sched.CheckAvailability(context.Background(), "u1", "yearly"); err == nil {
		t.Fatalf("unknown report type should fail")
	}
}
