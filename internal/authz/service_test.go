package authz

import "testing"

func TestNormalizeRole(t *testing.T) {
	got, err := NormalizeRole("  Operations ")
	if err != nil {
		t.Fatalf("normalize role failed: %v", err)
	}
	if got != "role:operations" {
		t.Fatalf("role want role:operations got %s", got)
	}

	got, err = NormalizeRole("role:support")
	if err != nil {
		t.Fatalf("normalize prefixed role failed: %v", err)
	}
	if got != "role:support" {
		t.Fatalf("prefixed role want role:support got %s", got)
	}

	if _, err := NormalizeRole("   "); err == nil {
		t.Fatalf("empty role should be rejected")
	}
}

func TestNormalizeObject(t *testing.T) {
	if got := NormalizeObject("/api/v1/admin/orders"); got != "/admin/orders" {
		t.Fatalf("object want /admin/orders got %s", got)
	}
	if got := NormalizeObject("admin/cards"); got != "/admin/cards" {
		t.Fatalf("object want /admin/cards got %s", got)
	}
	if got := NormalizeObject(""); got != "" {
		t.Fatalf("empty object should stay empty, got %s", got)
	}
}

func TestNormalizeAction(t *testing.T) {
	if got := NormalizeAction(" get "); got != "GET" {
		t.Fatalf("action want GET got %s", got)
	}
}

func TestSubjectForAdmin(t *testing.T) {
	if got := SubjectForAdmin(7); got != "admin:7" {
		t.Fatalf("subject want admin:7 got %s", got)
	}
}
