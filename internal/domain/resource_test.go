package domain

import "testing"

func TestMatchTemplateStatic(t *testing.T) {
	match := MatchTemplate("resource://boards", "resource://boards")
	if !match.Matched || len(match.Params) != 0 {
		t.Fatalf("static template did not match its own URI: %+v", match)
	}

	if MatchTemplate("resource://boards", "resource://boards/7").Matched {
		t.Errorf("static template matched a longer URI")
	}
	if MatchTemplate("resource://boards", "resource://board").Matched {
		t.Errorf("static template matched a different URI")
	}
}

func TestMatchTemplatePlaceholder(t *testing.T) {
	match := MatchTemplate("resource://board/{boardId}", "resource://board/42")
	if !match.Matched {
		t.Fatalf("placeholder template did not match")
	}
	if match.Params["boardId"] != "42" {
		t.Errorf("boardId = %q, want 42", match.Params["boardId"])
	}
}

func TestMatchTemplatePlaceholderDecodesSegments(t *testing.T) {
	match := MatchTemplate("resource://project/{key}", "resource://project/MY%20PROJ")
	if !match.Matched || match.Params["key"] != "MY PROJ" {
		t.Errorf("decoded segment = %+v", match)
	}
}

func TestMatchTemplateSegmentCountMismatch(t *testing.T) {
	if MatchTemplate("resource://board/{boardId}", "resource://board").Matched {
		t.Errorf("matched with a missing segment")
	}
	if MatchTemplate("resource://board/{boardId}", "resource://board/42/extra").Matched {
		t.Errorf("matched with an extra segment")
	}
}

func TestMatchTemplateEmptyPlaceholder(t *testing.T) {
	match := MatchTemplate("resource://board/{boardId}", "resource://board/")
	if !match.Matched {
		t.Fatalf("shape with empty segment should structurally match")
	}
	if match.EmptyPlaceholder != "boardId" {
		t.Errorf("EmptyPlaceholder = %q, want boardId", match.EmptyPlaceholder)
	}

	blank := MatchTemplate("resource://board/{boardId}", "resource://board/%20")
	if !blank.Matched || blank.EmptyPlaceholder != "boardId" {
		t.Errorf("blank segment = %+v, want empty-placeholder report", blank)
	}
}

func TestMatchTemplateStaticSegmentMismatch(t *testing.T) {
	if MatchTemplate("resource://board/{boardId}", "resource://sprint/42").Matched {
		t.Errorf("matched against a different static segment")
	}
}
