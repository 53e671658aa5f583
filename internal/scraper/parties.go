package scraper

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/weichenlin/judgment-fetcher/internal/record"
)

// RoleOther is returned when the target person matches no extracted party.
const RoleOther = "其他"

// ExtractFailed marks derived fields of a degraded record.
const ExtractFailed = "擷取失敗"

// roleTokens is the closed set of litigation-role labels recognized in
// judgment text.
const roleTokens = `原告|被告|抗告人|相對人|上訴人|被上訴人|聲請人|債務人|債權人|第三人`

// rolePriority is the fixed tie-break order applied when the target person
// appears under several roles.
var rolePriority = []string{
	"債務人", "被告", "抗告人", "上訴人", "被上訴人",
	"債權人", "原告", "聲請人", "相對人", "第三人",
}

var (
	// roleThenName matches "被告：王小明" style declarations.
	roleThenName = regexp.MustCompile(
		`(` + roleTokens + `)[：:\s]*([^\s，。；、\n\r\t]{2,20})`)
	// nameThenRole matches "王小明 為 被告" style declarations; role and
	// name are swapped before merging so both patterns normalize to the
	// same (role, name) shape.
	nameThenRole = regexp.MustCompile(
		`([^\s，。；、\n\r\t]{2,20})\s*(?:為|係|即)\s*(` + roleTokens + `)`)
	// nameSanitizer strips everything except CJK ideographs, ASCII digits
	// and ASCII letters from a name candidate.
	nameSanitizer = regexp.MustCompile(`[^\x{4e00}-\x{9fff}0-9A-Za-z]`)
)

// ExtractParties scans full judgment text for (role, name) pairs. Names
// are sanitized and kept only when 2 to 10 characters long; duplicate
// pairs are dropped, first occurrence wins, discovery order is preserved.
func ExtractParties(text string) []record.PartyMatch {
	var raw []record.PartyMatch
	for _, m := range roleThenName.FindAllStringSubmatch(text, -1) {
		raw = append(raw, record.PartyMatch{Role: m[1], Name: m[2]})
	}
	for _, m := range nameThenRole.FindAllStringSubmatch(text, -1) {
		raw = append(raw, record.PartyMatch{Role: m[2], Name: m[1]})
	}

	var matches []record.PartyMatch
	seen := make(map[record.PartyMatch]struct{})
	for _, pm := range raw {
		name := strings.TrimSpace(nameSanitizer.ReplaceAllString(pm.Name, ""))
		length := utf8.RuneCountInString(name)
		if length < 2 || length > 10 {
			continue
		}
		cleaned := record.PartyMatch{Role: pm.Role, Name: name}
		if _, dup := seen[cleaned]; dup {
			continue
		}
		seen[cleaned] = struct{}{}
		matches = append(matches, cleaned)
	}
	return matches
}

// DetermineTargetRole decides which role the target person holds among the
// extracted parties. Matching is deliberately loose: a party matches when
// either string contains the other, which favors recall over precision
// given noisy formatting in judgment text. Among matched roles the fixed
// priority order decides; with no priority hit the first matched role in
// discovery order is returned, and with no match at all RoleOther.
func DetermineTargetRole(matches []record.PartyMatch, targetName string) string {
	var targetRoles []string
	for _, pm := range matches {
		if strings.Contains(pm.Name, targetName) || strings.Contains(targetName, pm.Name) {
			targetRoles = append(targetRoles, pm.Role)
		}
	}
	if len(targetRoles) == 0 {
		return RoleOther
	}
	for _, priority := range rolePriority {
		for _, role := range targetRoles {
			if role == priority {
				return priority
			}
		}
	}
	return targetRoles[0]
}

// JoinPartyNames renders the deduplicated, order-preserving list of all
// party names found in one judgment.
func JoinPartyNames(matches []record.PartyMatch) string {
	var names []string
	seen := make(map[string]struct{})
	for _, pm := range matches {
		if _, dup := seen[pm.Name]; dup {
			continue
		}
		seen[pm.Name] = struct{}{}
		names = append(names, pm.Name)
	}
	return strings.Join(names, ", ")
}

// JoinRoleAssignments renders every (role, name) pair as "role:name"
// entries separated by semicolons.
func JoinRoleAssignments(matches []record.PartyMatch) string {
	var pairs []string
	for _, pm := range matches {
		pairs = append(pairs, pm.Role+":"+pm.Name)
	}
	return strings.Join(pairs, "; ")
}
