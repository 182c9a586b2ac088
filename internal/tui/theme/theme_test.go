package theme

import (
	"testing"

	"github.com/loaishar/RealEstateManager/internal/model"
)

func TestByNameFallsBack(t *testing.T) {
	if got := ByName("tokyo-night").Name; got != "tokyo-night" {
		t.Errorf("ByName(tokyo-night) = %s", got)
	}
	if got := ByName("nope").Name; got != FlexokiDark.Name {
		t.Errorf("unknown theme = %s, want %s", got, FlexokiDark.Name)
	}
}

func TestStatusColorsDistinct(t *testing.T) {
	for _, th := range All {
		seen := map[string]model.Status{}
		for _, s := range model.Statuses {
			c := string(th.StatusColor(s))
			if c == "" {
				t.Errorf("%s: no color for %s", th.Name, s)
			}
			if prev, dup := seen[c]; dup {
				t.Errorf("%s: %s and %s share color %s", th.Name, prev, s, c)
			}
			seen[c] = s
		}
	}
}

func TestSetActive(t *testing.T) {
	defer SetActive(FlexokiDark.Name)
	SetActive("terminal")
	if Active.Name != "terminal" {
		t.Errorf("Active = %s", Active.Name)
	}
}
