package scraper

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/weichenlin/judgment-fetcher/internal/record"
)

func TestExtractParties(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []record.PartyMatch
	}{
		{
			name: "Role then name",
			text: "被告：王小明，原告：李大華",
			want: []record.PartyMatch{
				{Role: "被告", Name: "王小明"},
				{Role: "原告", Name: "李大華"},
			},
		},
		{
			name: "Name then role is normalized",
			text: "王小明 為 被告",
			want: []record.PartyMatch{
				{Role: "被告", Name: "王小明"},
			},
		},
		{
			name: "Duplicate pairs collapse to first occurrence",
			text: "被告：王小明。被告：王小明。王小明係被告",
			want: []record.PartyMatch{
				{Role: "被告", Name: "王小明"},
			},
		},
		{
			name: "Same name under two roles keeps both",
			text: "被告：王小明，債權人：王小明",
			want: []record.PartyMatch{
				{Role: "被告", Name: "王小明"},
				{Role: "債權人", Name: "王小明"},
			},
		},
		{
			name: "Single character name rejected",
			text: "被告：王",
			want: nil,
		},
		{
			name: "No roles present",
			text: "本件無任何相關記載",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractParties(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractParties() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("match %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// Output pairs must be unique, and every name must be 2-10 characters of
// CJK ideographs, digits or ASCII letters.
func TestExtractPartiesInvariants(t *testing.T) {
	text := strings.Repeat("被告：王小明。原告：林美玉。債務人：陳志強。陳志強即債務人。", 3) +
		"聲請人：台灣銀行股份有限公司代表人甲某某某某某某某"

	matches := ExtractParties(text)
	seen := make(map[record.PartyMatch]bool)
	for _, pm := range matches {
		if seen[pm] {
			t.Errorf("duplicate pair %v in output", pm)
		}
		seen[pm] = true

		length := utf8.RuneCountInString(pm.Name)
		if length < 2 || length > 10 {
			t.Errorf("name %q has length %d, want 2..10", pm.Name, length)
		}
		if nameSanitizer.MatchString(pm.Name) {
			t.Errorf("name %q contains disallowed characters", pm.Name)
		}
	}
}

func TestDetermineTargetRole(t *testing.T) {
	tests := []struct {
		name    string
		matches []record.PartyMatch
		target  string
		want    string
	}{
		{
			name: "Priority order places 被告 before 債權人",
			matches: []record.PartyMatch{
				{Role: "被告", Name: "王小明"},
				{Role: "債權人", Name: "王小明"},
			},
			target: "王小明",
			want:   "被告",
		},
		{
			name: "債務人 outranks 被告",
			matches: []record.PartyMatch{
				{Role: "被告", Name: "王小明"},
				{Role: "債務人", Name: "王小明"},
			},
			target: "王小明",
			want:   "債務人",
		},
		{
			name: "Substring containment matches partial name",
			matches: []record.PartyMatch{
				{Role: "聲請人", Name: "王小明君"},
			},
			target: "王小明",
			want:   "聲請人",
		},
		{
			name: "No match yields sentinel",
			matches: []record.PartyMatch{
				{Role: "被告", Name: "李大華"},
			},
			target: "王小明",
			want:   RoleOther,
		},
		{
			name:    "Empty matches yields sentinel",
			matches: nil,
			target:  "王小明",
			want:    RoleOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetermineTargetRole(tt.matches, tt.target)
			if got != tt.want {
				t.Errorf("DetermineTargetRole() = %q, want %q", got, tt.want)
			}
			// Determinism: the same input always yields the same role.
			if again := DetermineTargetRole(tt.matches, tt.target); again != got {
				t.Errorf("DetermineTargetRole() not deterministic: %q then %q", got, again)
			}
		})
	}
}

func TestJoinPartyNames(t *testing.T) {
	matches := []record.PartyMatch{
		{Role: "被告", Name: "王小明"},
		{Role: "債權人", Name: "王小明"},
		{Role: "原告", Name: "李大華"},
	}
	got := JoinPartyNames(matches)
	want := "王小明, 李大華"
	if got != want {
		t.Errorf("JoinPartyNames() = %q, want %q", got, want)
	}
}

func TestJoinRoleAssignments(t *testing.T) {
	matches := []record.PartyMatch{
		{Role: "被告", Name: "王小明"},
		{Role: "原告", Name: "李大華"},
	}
	got := JoinRoleAssignments(matches)
	want := "被告:王小明; 原告:李大華"
	if got != want {
		t.Errorf("JoinRoleAssignments() = %q, want %q", got, want)
	}
}
