package cssdistill

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNamerClaim(t *testing.T) {
	n := newNamer()
	require.Equal(t, "space-1", n.claim("space-1"))
	require.Equal(t, "space-1-2", n.claim("space-1"))
	require.Equal(t, "space-1-3", n.claim("space-1"))
	require.Equal(t, "space-2", n.claim("space-2"))
}

func TestStableSuffix(t *testing.T) {
	require.Equal(t, stableSuffix("16px"), stableSuffix("16px"))
	require.NotEqual(t, stableSuffix("16px"), stableSuffix("8px"))
	require.Regexp(t, regexp.MustCompile(`^[0-9a-f]{8}$`), stableSuffix("16px"))
}

func TestAssignNamesSequential(t *testing.T) {
	cands := []*Candidate{{Literal: "16px"}, {Literal: "8px"}, {Literal: "4px"}}
	names := assignNames(cands, "space", false)
	require.Equal(t, map[string]string{
		"16px": "space-1",
		"8px":  "space-2",
		"4px":  "space-3",
	}, names)
}

func TestAssignNamesStableSurvivesReordering(t *testing.T) {
	a := assignNames([]*Candidate{{Literal: "16px"}, {Literal: "8px"}}, "space", true)
	b := assignNames([]*Candidate{{Literal: "8px"}, {Literal: "16px"}}, "space", true)
	require.Equal(t, a["16px"], b["16px"])
	require.Equal(t, a["8px"], b["8px"])
}

func TestAssignColorNames(t *testing.T) {
	roles := map[Role]string{
		RoleForeground: "#111",
		RoleBackground: "#fff",
		RolePrimary:    "#3b82f6",
	}
	numbered := []*ColorCandidate{{Literal: "#f59e0b"}, {Literal: "#10b981"}}

	names := assignColorNames(roles, numbered, "color", false)
	require.Equal(t, "color-fg", names["#111"])
	require.Equal(t, "color-bg", names["#fff"])
	require.Equal(t, "color-primary", names["#3b82f6"])
	require.Equal(t, "color-1", names["#f59e0b"])
	require.Equal(t, "color-2", names["#10b981"])
}

func TestAssignColorNamesRolesStaySemanticInStableMode(t *testing.T) {
	roles := map[Role]string{RoleForeground: "#111"}
	numbered := []*ColorCandidate{{Literal: "#f59e0b"}}

	names := assignColorNames(roles, numbered, "color", true)
	require.Equal(t, "color-fg", names["#111"])
	require.Equal(t, "color-"+stableSuffix("#f59e0b"), names["#f59e0b"])
}

func TestLineHeightValue(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		literal string
		want    float64
	}{
		{"1.5", 1.5},
		{"normal", 1.2},
		{"NORMAL", 1.2},
		{"24px", 1.5}, // approximated against the root size
		{"garbage", 0},
	}
	for _, tt := range tests {
		require.InDelta(t, tt.want, lineHeightValue(tt.literal, cfg), 1e-9, tt.literal)
	}
}

func TestFontWeightValue(t *testing.T) {
	tests := []struct {
		literal string
		want    float64
	}{
		{"400", 400},
		{"bold", 700},
		{"normal", 400},
		{"lighter", 500},
		{"bolder", 500},
		{" 600 ", 600},
		{"oblique", 0},
	}
	for _, tt := range tests {
		require.InDelta(t, tt.want, fontWeightValue(tt.literal), 1e-9, tt.literal)
	}
}

func TestSortCandidates(t *testing.T) {
	cfg := DefaultConfig()
	cands := []*Candidate{
		{Literal: "8px", Count: 2},
		{Literal: "16px", Count: 2},
		{Literal: "4px", Count: 5},
	}
	sortCandidates(cands, byPixelDesc(cfg))
	require.Equal(t, "4px", cands[0].Literal)
	require.Equal(t, "16px", cands[1].Literal)
	require.Equal(t, "8px", cands[2].Literal)
}
