package theme

import (
	"testing"

	"github.com/kokostudy/koko/internal/profile"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		gender    profile.Gender
		name      string
		companion string
	}{
		{profile.Female, Princess, "Koko"},
		{profile.Male, Champion, "Max"},
		{profile.Gender(""), Princess, "Koko"},
	}
	for _, tt := range tests {
		th := Resolve(tt.gender)
		if th.Name != tt.name {
			t.Errorf("Resolve(%q).Name = %q, want %q", tt.gender, th.Name, tt.name)
		}
		if th.Labels.Companion != tt.companion {
			t.Errorf("Resolve(%q).Labels.Companion = %q, want %q", tt.gender, th.Labels.Companion, tt.companion)
		}
	}
}

func TestThemesComplete(t *testing.T) {
	for _, th := range []Theme{Resolve(profile.Female), Resolve(profile.Male)} {
		p := th.Palette
		for name, c := range map[string]any{
			"Primary": p.Primary, "Secondary": p.Secondary, "Accent": p.Accent,
			"Success": p.Success, "Error": p.Error, "Text": p.Text, "TextDim": p.TextDim,
			"BgDark": p.BgDark, "BgCard": p.BgCard, "Border": p.Border,
		} {
			if c == nil {
				t.Errorf("%s: palette color %s is unset", th.Name, name)
			}
		}
		if th.Assets.Companion == "" || len(th.Assets.Sparkles) == 0 {
			t.Errorf("%s: missing assets", th.Name)
		}
		if th.Labels.AppTitle == "" || th.Labels.Tagline == "" {
			t.Errorf("%s: missing labels", th.Name)
		}
	}
}

func TestOutfitCataloguesShareIDs(t *testing.T) {
	princess, champion := Resolve(profile.Female), Resolve(profile.Male)
	if len(princess.Assets.Outfits) != len(champion.Assets.Outfits) {
		t.Fatalf("catalogue sizes differ: %d vs %d", len(princess.Assets.Outfits), len(champion.Assets.Outfits))
	}
	for i, o := range princess.Assets.Outfits {
		c := champion.Assets.Outfits[i]
		if o.ID != c.ID || o.Cost != c.Cost {
			t.Errorf("outfit %d: %s/%d vs %s/%d", i, o.ID, o.Cost, c.ID, c.Cost)
		}
		if o.Name == "" || o.Emoji == "" || o.Cost <= 0 {
			t.Errorf("outfit %q is incomplete", o.ID)
		}
		if o.ID == "default" {
			t.Errorf("outfit ID %q is reserved", o.ID)
		}
	}
	for _, th := range []Theme{princess, champion} {
		if len(th.Assets.Quotes) == 0 {
			t.Errorf("%s: no timer quotes", th.Name)
		}
	}
}
