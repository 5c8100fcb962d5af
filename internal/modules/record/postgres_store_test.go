package record

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("NAVIRECO_DB_DSN")
	if dsn == "" {
		t.Skip("NAVIRECO_DB_DSN not set; skipping postgres integration test")
	}
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func TestPostgresAppendAndQueryRecent(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	store := NewPostgresStore(pool)
	if err := store.Migrate(ctx); err != nil {
		t.Fatal(err)
	}

	userID := "pg-test-" + time.Now().Format("150405.000")
	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, "DELETE FROM location_records WHERE user_id = $1", userID)
	})

	base := time.Now().UTC().Truncate(time.Second)
	recs := []Record{
		{Latitude: 33.2411, Longitude: 130.2844, RecordedAt: base, PlaceName: "佐賀大学", Category: "university", AccuracyM: 65},
		{Latitude: 33.2646, Longitude: 130.2944, RecordedAt: base.Add(30 * time.Minute), PlaceName: "佐賀駅", Category: "train_station", AccuracyM: 20},
		{Latitude: 33.2500, Longitude: 130.2900, RecordedAt: base.Add(time.Hour), PlaceName: "不明な場所", Category: "移動中", AccuracyM: 100},
	}
	for _, r := range recs {
		if err := store.Append(ctx, userID, r); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.QueryRecent(ctx, userID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	// Recent-first for the timeline.
	if got[0].PlaceName != "不明な場所" || got[2].PlaceName != "佐賀大学" {
		t.Errorf("ordering wrong: first=%q last=%q", got[0].PlaceName, got[2].PlaceName)
	}
	if !got[0].RecordedAt.After(got[1].RecordedAt) {
		t.Error("records not ordered newest first")
	}
}

func TestPostgresQueryRecentHonorsLimit(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	store := NewPostgresStore(pool)
	if err := store.Migrate(ctx); err != nil {
		t.Fatal(err)
	}

	userID := "pg-limit-" + time.Now().Format("150405.000")
	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, "DELETE FROM location_records WHERE user_id = $1", userID)
	})

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		rec := Record{
			Latitude: 33.24, Longitude: 130.28,
			RecordedAt: base.Add(time.Duration(i) * time.Minute),
			PlaceName:  "somewhere", Category: "カテゴリなし",
		}
		if err := store.Append(ctx, userID, rec); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.QueryRecent(ctx, userID, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("limit 2 returned %d records", len(got))
	}
}

func TestPostgresIsolatesUsers(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	store := NewPostgresStore(pool)
	if err := store.Migrate(ctx); err != nil {
		t.Fatal(err)
	}

	suffix := time.Now().Format("150405.000")
	userA, userB := "pg-a-"+suffix, "pg-b-"+suffix
	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, "DELETE FROM location_records WHERE user_id = ANY($1)", []string{userA, userB})
	})

	rec := Record{Latitude: 1, Longitude: 2, RecordedAt: time.Now().UTC(), PlaceName: "a", Category: "b"}
	if err := store.Append(ctx, userA, rec); err != nil {
		t.Fatal(err)
	}

	got, err := store.QueryRecent(ctx, userB, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("user B sees %d of user A's records", len(got))
	}
}
