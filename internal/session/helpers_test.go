package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/akyairhashvil/everyride/internal/catalog"
	"github.com/akyairhashvil/everyride/internal/database"
	"github.com/akyairhashvil/everyride/internal/testutil"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestClock() *testClock {
	return &testClock{now: testutil.BaseTime}
}

// testCatalog holds mk-1..mk-3 (LL and SR), ep-1 (standby only) and dl-1.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	rides := testutil.MagicKingdom(3)
	rides = append(rides,
		testutil.NewRide("ep-1").InPark("wdw", "ep").WithName("Test Track").Build(),
		testutil.NewRide("dl-1").InPark("dlr", "dl").WithName("Matterhorn Bobsleds").Build(),
	)
	cat, err := catalog.New(rides)
	if err != nil {
		t.Fatalf("catalog.New failed: %v", err)
	}
	return cat
}

func setupTestStore(t *testing.T, ctx context.Context) *database.Database {
	t.Helper()
	db, err := database.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("db close failed: %v", err)
		}
	})
	return db
}

func openSession(t *testing.T, ctx context.Context, store Store, clock *testClock) *Session {
	t.Helper()
	s, err := Open(ctx, store, testCatalog(t),
		WithClock(clock.Now),
		WithLocation(time.UTC),
	)
	if err != nil {
		t.Fatalf("session Open failed: %v", err)
	}
	return s
}
