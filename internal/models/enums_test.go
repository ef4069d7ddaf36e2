package models

import "testing"

func TestLocationZoneValid(t *testing.T) {
	for _, zone := range LocationZones {
		if !zone.Valid() {
			t.Fatalf("expected zone %q to be valid", zone)
		}
	}
	for _, bad := range []LocationZone{"", "KM6", "km1", "Kampala"} {
		if bad.Valid() {
			t.Fatalf("expected zone %q to be invalid", bad)
		}
	}
}

func TestPartCategoryValid(t *testing.T) {
	if !PartCategory("Tyres & Wheels").Valid() {
		t.Fatal("expected known category to be valid")
	}
	for _, bad := range []PartCategory{"", "engine parts", "Wheels"} {
		if bad.Valid() {
			t.Fatalf("expected category %q to be invalid", bad)
		}
	}
}

func TestRoleAndStatusEnums(t *testing.T) {
	if !RoleShopOwner.Valid() || !RoleMechanic.Valid() || !RoleBuyer.Valid() {
		t.Fatal("expected all roles to be valid")
	}
	if UserRole("admin").Valid() {
		t.Fatal("expected unknown role to be invalid")
	}
	if !PostStatusActive.Valid() || PostStatus("archived").Valid() {
		t.Fatal("post status validation mismatch")
	}
	if !ConditionRefurbished.Valid() || ListingCondition("broken").Valid() {
		t.Fatal("listing condition validation mismatch")
	}
	if !ResponseToFeed.Valid() || ResponsePostType("comment").Valid() {
		t.Fatal("response post type validation mismatch")
	}
}
