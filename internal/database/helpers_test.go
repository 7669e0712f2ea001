package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/akyairhashvil/mvno/internal/testutil"
)

func TestNullableHelpers(t *testing.T) {
	if got := nullableString(""); got.Valid {
		t.Fatalf("expected nullableString(\"\") to be invalid, got valid")
	}
	if got := nullableString("note"); !got.Valid || got.String != "note" {
		t.Fatalf("expected nullableString(\"note\") to be valid, got %+v", got)
	}
	if got := toNullableArg[int](nil); got != nil {
		t.Fatalf("expected toNullableArg(nil) to return nil, got %v", got)
	}
	value := 7
	if got := toNullableArg(&value); got != 7 {
		t.Fatalf("expected toNullableArg(&7) to return 7, got %v", got)
	}
}

func TestDateHelpers(t *testing.T) {
	day := testutil.Day(2026, 2, 28)
	arg := dateArg(day)
	if !arg.Valid || arg.String != "2026-02-28" {
		t.Fatalf("dateArg = %+v", arg)
	}
	if !parseDate(arg).Equal(day) {
		t.Fatalf("parseDate(%q) = %v", arg.String, parseDate(arg))
	}
	if dateArg(time.Time{}).Valid {
		t.Fatalf("zero time must be stored as NULL")
	}
	if got := parseDate(sql.NullString{}); !got.IsZero() {
		t.Fatalf("NULL should parse to zero time")
	}
	if got := parseDate(sql.NullString{String: "31/12/2026", Valid: true}); !got.IsZero() {
		t.Fatalf("bad layout should parse to zero time, got %v", got)
	}
}
