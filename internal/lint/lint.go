// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lint validates a claimed narrative against its vocabulary ceiling
// and citation contract, after a repair pass strips the violations that can
// be fixed mechanically. See docs/ARCHITECTURE § Validation.
package lint

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/narrative-engine/internal/generate"
	"github.com/pdiddy/narrative-engine/pkg/types"
)

// citationMarkerRe matches an inline citation marker like [pad.state.p12].
var citationMarkerRe = regexp.MustCompile(`\[([a-zA-Z0-9_.-]+)\]`)

// capsTokenRe approximates SDK-token usage in prose: any capitalized word.
// It overreaches on ordinary sentence-initial words, so Lint checks matches
// against the allowed set rather than flagging them outright.
var capsTokenRe = regexp.MustCompile(`\b[A-Z][A-Za-z0-9_]*\b`)

// Repair drops claimed citations that are not among the provided passage ids
// and strips the corresponding inline markers from the narrative text. The
// claimed token list is left alone; token violations are lint findings, not
// repairable ones.
func Repair(raw types.RawNarrative, providedIDs []string) types.RawNarrative {
	provided := make(map[string]bool, len(providedIDs))
	for _, id := range providedIDs {
		provided[id] = true
	}

	kept := make([]string, 0, len(raw.CitationsUsed))
	for _, id := range raw.CitationsUsed {
		if provided[id] {
			kept = append(kept, id)
		}
	}
	raw.CitationsUsed = kept

	// Markers are substituted in place; the surrounding text is left intact.
	raw.Narrative = citationMarkerRe.ReplaceAllStringFunc(raw.Narrative, func(m string) string {
		id := citationMarkerRe.FindStringSubmatch(m)[1]
		if provided[id] {
			return m
		}
		return ""
	})
	return raw
}

// Lint checks a repaired narrative and returns every violation found.
//
// Checks, in order: capitalized words outside the allowed-token set (plus
// "I" and the platform name), an empty citation list, citation ids outside
// the provided passages, and whole-word occurrences of unrepresentable
// event terms.
func Lint(raw types.RawNarrative, allowed, providedIDs, unrepresentable []string) []string {
	var issues []string

	exempt := map[string]bool{"I": true, generate.PlatformLiteral: true}
	allowedSet := make(map[string]bool, len(allowed))
	for _, tok := range allowed {
		allowedSet[tok] = true
	}

	seen := map[string]bool{}
	var offenders []string
	for _, word := range capsTokenRe.FindAllString(raw.Narrative, -1) {
		if exempt[word] || allowedSet[word] || seen[word] {
			continue
		}
		seen[word] = true
		offenders = append(offenders, word)
	}
	sort.Strings(offenders)
	for _, word := range offenders {
		issues = append(issues, fmt.Sprintf("token not allowed: %s", word))
	}

	if len(raw.CitationsUsed) == 0 {
		issues = append(issues, "no citations used")
	}

	provided := make(map[string]bool, len(providedIDs))
	for _, id := range providedIDs {
		provided[id] = true
	}
	for _, id := range raw.CitationsUsed {
		if !provided[id] {
			issues = append(issues, fmt.Sprintf("bad citation id: %s", id))
		}
	}

	lowerNarrative := strings.ToLower(raw.Narrative)
	for _, term := range unrepresentable {
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(strings.ToLower(term)) + `\b`)
		if err != nil {
			continue
		}
		if re.MatchString(lowerNarrative) {
			issues = append(issues, fmt.Sprintf("unrepresentable term present: %s", term))
		}
	}

	return issues
}
