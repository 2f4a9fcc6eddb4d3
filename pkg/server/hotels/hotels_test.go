package hotels

import "testing"

func TestResolve_ExactName(t *testing.T) {
	hotel, ok := Resolve("Secrets Puerto Los Cabos")
	if !ok {
		t.Fatal("Expected match for exact hotel name")
	}
	if hotel.ID != "91258374" {
		t.Errorf("Expected ID 91258374, got %s", hotel.ID)
	}
	if hotel.Destination != "CSL" {
		t.Errorf("Expected destination CSL, got %s", hotel.Destination)
	}
}

func TestResolve_AliasCaseInsensitive(t *testing.T) {
	cases := []string{"secrets los cabos", "SECRETS LOS CABOS", "  Puerto Los Cabos  "}
	for _, input := range cases {
		hotel, ok := Resolve(input)
		if !ok {
			t.Errorf("Expected match for %q", input)
			continue
		}
		if hotel.Name != "Secrets Puerto Los Cabos" {
			t.Errorf("Expected Secrets Puerto Los Cabos for %q, got %s", input, hotel.Name)
		}
	}
}

func TestResolve_NoMatch(t *testing.T) {
	if _, ok := Resolve("Some Random Hotel"); ok {
		t.Error("Expected no match for unknown destination")
	}
	if _, ok := Resolve(""); ok {
		t.Error("Expected no match for empty destination")
	}
}

func TestDestinations_ReturnsCopy(t *testing.T) {
	first := Destinations()
	if len(first) != 5 {
		t.Fatalf("Expected 5 destinations, got %d", len(first))
	}

	first[0].Code = "XXX"
	second := Destinations()
	if second[0].Code == "XXX" {
		t.Error("Destinations must return a copy")
	}
}

func TestCatalog_ReturnsCopy(t *testing.T) {
	first := Catalog()
	if len(first) == 0 {
		t.Fatal("Expected non-empty catalog")
	}

	first[0].ID = "tampered"
	second := Catalog()
	if second[0].ID == "tampered" {
		t.Error("Catalog must return a copy")
	}
}
