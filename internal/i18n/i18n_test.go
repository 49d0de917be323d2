package i18n

import "testing"

func TestTranslateDefaultLocale(t *testing.T) {
	if got := T("zh-CN", "error.not_found"); got == "error.not_found" {
		t.Fatalf("zh-CN should have translation for error.not_found")
	}
	if got := T("", "error.not_found"); got == "error.not_found" {
		t.Fatalf("empty locale should fall back to zh-CN")
	}
}

func TestTranslateEnglishFallback(t *testing.T) {
	zh := T("zh-CN", "error.forbidden")
	en := T("en-US", "error.forbidden")
	if zh == en {
		t.Fatalf("zh and en translations should differ, both: %s", zh)
	}
}

func TestTranslateUnknownKeyReturnsKey(t *testing.T) {
	if got := T("zh-CN", "error.__missing__"); got != "error.__missing__" {
		t.Fatalf("unknown key should echo key, got: %s", got)
	}
}

func TestSprintfWithArgs(t *testing.T) {
	got := Sprintf("zh-CN", "error.category_in_use", 3)
	if got == "error.category_in_use" {
		t.Fatalf("expected formatted message, got raw key")
	}
}

func TestNormalizeLocale(t *testing.T) {
	cases := map[string]string{
		"en":         "en-US",
		"en-GB":      "en-US",
		"zh":         "zh-CN",
		"zh-TW":      "zh-CN",
		"fr":         "zh-CN",
		"":           "zh-CN",
		" EN-us ":    "en-US",
		"zh-Hans-CN": "zh-CN",
	}
	for input, want := range cases {
		if got := normalizeLocale(input); got != want {
			t.Fatalf("normalize %q want %s got %s", input, want, got)
		}
	}
}
