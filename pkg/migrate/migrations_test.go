package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/everestcrafts/souvenirs-backend/pkg/migrate"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestProductsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_products.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS products",
		"FOREIGN KEY (category_id) REFERENCES categories(id)",
		"CHECK (in_stock >= 0)",
		"CHECK (rating >= 0 AND rating <= 5)",
		"DROP TABLE IF EXISTS products",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCartItemsMigrationEnforcesOneLinePerProduct(t *testing.T) {
	content := readMigration(t, "*_create_cart_items.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS cart_items",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_session_product ON cart_items (session_key, product_id)",
		"CHECK (quantity >= 1)",
		"FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOrderMigrationsSnapshotShape(t *testing.T) {
	orders := readMigration(t, "*_create_orders.sql")
	items := readMigration(t, "*_create_order_items.sql")

	for _, sub := range []string{
		"status TEXT NOT NULL DEFAULT 'pending'",
		"CHECK (status IN ('pending', 'processing', 'shipped', 'delivered', 'cancelled'))",
	} {
		if !strings.Contains(orders, sub) {
			t.Errorf("orders migration missing %q", sub)
		}
	}
	for _, sub := range []string{
		"price NUMERIC(10,2) NOT NULL",
		"FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE",
	} {
		if !strings.Contains(items, sub) {
			t.Errorf("order_items migration missing %q", sub)
		}
	}
}

func TestMigrationDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}
