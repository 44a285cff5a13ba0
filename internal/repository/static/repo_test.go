package static

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/kailas-cloud/helix/internal/domain"
	"github.com/kailas-cloud/helix/internal/domain/catalog"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const twoContacts = `
listings:
  contacts:
    - id: yormark
      name: Brett Yormark
      title: Commissioner
      department: Conference Office
      school: Big 12 Conference
      email: commissioner@big12sports.com
      phone: "469-524-1000"
    - name: Ed Stewart
      title: Senior Vice President
      department: Football
      school: Big 12 Conference
      email: estewart@big12sports.com
      phone: "469-524-1010"
`

const oneContact = `
listings:
  contacts:
    - id: yormark
      name: Brett Yormark
      title: Commissioner
      department: Conference Office
      school: Big 12 Conference
      email: commissioner@big12sports.com
      phone: "469-524-1000"
`

func writeSeed(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "listings.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ListsSeedOrder(t *testing.T) {
	path := writeSeed(t, t.TempDir(), twoContacts)
	repo, err := Load(path, catalog.Default(), zap.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got, err := repo.List(context.Background(), catalog.Contacts)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(got))
	}
	if got[0].ID() != "yormark" {
		t.Errorf("first id = %q", got[0].ID())
	}
	if got[1].ID() == "" {
		t.Error("entry without id should get a derived id")
	}

	empty, _ := repo.List(context.Background(), catalog.Venues)
	if len(empty) != 0 {
		t.Errorf("kind absent from seed should be empty, got %d", len(empty))
	}
}

func TestParseSeed_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"unknown kind", "listings:\n  flights:\n    - name: x\n", domain.ErrListingNotFound},
		{"missing field", "listings:\n  contacts:\n    - name: x\n", domain.ErrInvalidRecord},
		{"wrong type", `
listings:
  venues:
    - name: Allen Fieldhouse
      school: Kansas
      city: Lawrence
      state: Kansas
      sport: Basketball
      capacity: lots
`, domain.ErrInvalidRecord},
		{"duplicate id", `
listings:
  awards:
    - {id: a, name: Trophy, category: Championship, sport: Football, status: In Stock, quantity: 1, vendor: Acme}
    - {id: a, name: Ring, category: Championship, sport: Football, status: In Stock, quantity: 2, vendor: Acme}
`, domain.ErrInvalidRecord},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSeed([]byte(tc.body), catalog.Default())
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestParseSeed_InvalidYAML(t *testing.T) {
	if _, err := ParseSeed([]byte("listings: [unclosed"), catalog.Default()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestReload_KeepsSnapshotOnError(t *testing.T) {
	dir := t.TempDir()
	path := writeSeed(t, dir, twoContacts)
	repo, err := Load(path, catalog.Default(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	writeSeed(t, dir, "listings: [unclosed")
	if err := repo.Reload(); err == nil {
		t.Fatal("expected reload error")
	}
	got, _ := repo.List(context.Background(), catalog.Contacts)
	if len(got) != 2 {
		t.Errorf("snapshot lost after failed reload: %d records", len(got))
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeSeed(t, dir, twoContacts)
	repo, err := Load(path, catalog.Default(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	repo.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- repo.Watch(ctx) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	writeSeed(t, dir, oneContact)

	deadline := time.Now().Add(5 * time.Second)
	for {
		got, _ := repo.List(context.Background(), catalog.Contacts)
		if len(got) == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("seed not reloaded, still %d contacts", len(got))
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned %v", err)
	}
}

func TestReadSeed_ShippedFile(t *testing.T) {
	listings, err := ReadSeed(filepath.Join("..", "..", "..", "seed", "listings.yaml"), catalog.Default())
	if err != nil {
		t.Fatalf("shipped seed does not load: %v", err)
	}
	if got := len(listings[catalog.Schools]); got != 16 {
		t.Errorf("expected 16 member schools, got %d", got)
	}
	for _, kind := range catalog.Default().Kinds() {
		if len(listings[kind]) == 0 {
			t.Errorf("shipped seed has no %s", kind)
		}
	}
}
