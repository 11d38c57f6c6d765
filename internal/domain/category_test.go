package domain

import "testing"

func TestCategoriesOrderAndAttributes(t *testing.T) {
	categories := Categories()
	if len(categories) != 2 {
		t.Fatalf("expected two categories, got %d", len(categories))
	}

	if categories[0].Name != "Events" || categories[0].Attribute != "event_name" {
		t.Fatalf("expected Events/event_name first, got %s/%s", categories[0].Name, categories[0].Attribute)
	}
	if categories[0].Screen != nil {
		t.Fatalf("the event name is a top-level column, not a nested parameter")
	}

	if categories[1].Name != "Screens" || categories[1].Attribute != "screen_name" {
		t.Fatalf("expected Screens/screen_name second, got %s/%s", categories[1].Name, categories[1].Attribute)
	}
	screen := categories[1].Screen
	if screen == nil || screen.EventName != "screen_view" || screen.ParamKey != "firebase_screen" {
		t.Fatalf("unexpected screen extraction rule: %+v", screen)
	}
}

func TestWhitelistColumns(t *testing.T) {
	if Events.WhitelistColumn != 1 {
		t.Fatalf("expected Events in column 1, got %d", Events.WhitelistColumn)
	}
	if Screens.WhitelistColumn != 2 {
		t.Fatalf("expected Screens in column 2, got %d", Screens.WhitelistColumn)
	}
}

func TestPlatformsAreFixed(t *testing.T) {
	platforms := Platforms()
	if len(platforms) != 2 || platforms[0] != PlatformIOS || platforms[1] != PlatformAndroid {
		t.Fatalf("expected [IOS ANDROID], got %v", platforms)
	}
}

func TestCheckResultMissing(t *testing.T) {
	if (CheckResult{Count: 1}).Missing() {
		t.Fatalf("a counted cell is not missing")
	}
	if !(CheckResult{Count: 0}).Missing() {
		t.Fatalf("a zero-count cell is missing")
	}
}

func TestCheckResultCell(t *testing.T) {
	result := CheckResult{Name: "app_open", Platform: PlatformAndroid}
	if result.Cell() != "(app_open, ANDROID)" {
		t.Fatalf("unexpected cell rendering: %s", result.Cell())
	}
}
